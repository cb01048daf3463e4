package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lexsync/backend/internal/domain/contact"
	"github.com/lexsync/backend/internal/domain/shared"
	"github.com/lexsync/backend/internal/infrastructure/persistence/models"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*contact.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRemoteContactID finds a contact by its remote record ID
func (r *GormContactRepository) FindByRemoteContactID(ctx context.Context, remoteContactID string) (*contact.Contact, error) {
	if remoteContactID == "" {
		return nil, shared.NewDomainError("INVALID_REMOTE_CONTACT", "Remote contact ID cannot be empty")
	}
	var model models.ContactModel
	if err := r.db.WithContext(ctx).
		Where("remote_contact_id = ?", remoteContactID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all contacts matching the filter
func (r *GormContactRepository) FindAll(ctx context.Context, filter contact.ContactFilter) ([]contact.Contact, error) {
	var contactModels []models.ContactModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ContactModel{}), filter)

	if err := query.Find(&contactModels).Error; err != nil {
		return nil, err
	}

	contacts := make([]contact.Contact, len(contactModels))
	for i, model := range contactModels {
		contacts[i] = *model.ToDomain()
	}
	return contacts, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, c *contact.Contact) error {
	model := models.ContactModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a contact
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContactModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts contacts matching the filter
func (r *GormContactRepository) Count(ctx context.Context, filter contact.ContactFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ContactModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormContactRepository) applyFilter(query *gorm.DB, filter contact.ContactFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with validated sort field and direction
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, ContactSortFields, "company_name")
		sortOrder := ValidateSortOrder(filter.OrderDir)
		query = query.Order(sortField + " " + sortOrder)
	} else {
		// Default ordering
		query = query.Order("company_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormContactRepository) applyFilterWithoutPagination(query *gorm.DB, filter contact.ContactFilter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("company_name ILIKE ? OR customer_number ILIKE ?",
			searchPattern, searchPattern)
	}

	if filter.Archived != nil {
		query = query.Where("archived = ?", *filter.Archived)
	}
	if filter.Synced != nil {
		if *filter.Synced {
			query = query.Where("remote_contact_id IS NOT NULL")
		} else {
			query = query.Where("remote_contact_id IS NULL")
		}
	}

	return query
}

// Ensure GormContactRepository implements ContactRepository
var _ contact.ContactRepository = (*GormContactRepository)(nil)
