package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lexsync/backend/internal/domain/invoicing"
	"github.com/lexsync/backend/internal/domain/shared"
	"github.com/lexsync/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its line items by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_order ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRemoteID finds an invoice by its remote document ID
func (r *GormInvoiceRepository) FindByRemoteID(ctx context.Context, remoteID string) (*invoicing.Invoice, error) {
	if remoteID == "" {
		return nil, shared.NewDomainError("INVALID_REMOTE_ID", "Remote ID cannot be empty")
	}
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_order ASC")
		}).
		Where("remote_id = ?", remoteID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter invoicing.InvoiceFilter) ([]invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)

	if err := query.
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_order ASC")
		}).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]invoicing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Save creates or updates an invoice and replaces its line items atomically.
// Line items absent from the aggregate are removed in the same transaction.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}

		// Remove line items that are no longer part of the aggregate
		currentItemIDs := make([]uuid.UUID, len(model.LineItems))
		for i, item := range model.LineItems {
			currentItemIDs[i] = item.ID
		}

		deleteQuery := tx.Where("invoice_id = ?", model.ID)
		if len(currentItemIDs) > 0 {
			deleteQuery = deleteQuery.Where("id NOT IN ?", currentItemIDs)
		}
		if err := deleteQuery.Delete(&models.LineItemModel{}).Error; err != nil {
			return err
		}

		for i := range model.LineItems {
			model.LineItems[i].InvoiceID = model.ID
			if err := tx.Save(&model.LineItems[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an invoice together with its line items
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.LineItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.InvoiceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter invoicing.InvoiceFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns invoice counts grouped by transmission status
func (r *GormInvoiceRepository) CountByStatus(ctx context.Context) ([]invoicing.StatusCount, error) {
	var counts []invoicing.StatusCount
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// Exists checks whether an invoice exists
func (r *GormInvoiceRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter invoicing.InvoiceFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with validated sort field and direction
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "voucher_date")
		sortOrder := ValidateSortOrder(filter.OrderDir)
		query = query.Order(sortField + " " + sortOrder)
	} else {
		// Default ordering
		query = query.Order("voucher_date DESC, created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter invoicing.InvoiceFilter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR introduction ILIKE ? OR remark ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if filter.ContactID != nil {
		query = query.Where("contact_id = ?", *filter.ContactID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Archived != nil {
		query = query.Where("archived = ?", *filter.Archived)
	}
	if filter.FromDate != nil {
		query = query.Where("voucher_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("voucher_date <= ?", *filter.ToDate)
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
