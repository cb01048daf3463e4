package contact

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lexsync/backend/internal/domain/contact"
	"github.com/lexsync/backend/internal/domain/shared"
)

// ContactService provides application-level contact operations
type ContactService struct {
	contactRepo contact.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo contact.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// CreateContactRequest represents a request to create a local contact
type CreateContactRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
}

// ContactListFilter defines filtering options for contact list queries
type ContactListFilter struct {
	Search   string `form:"search"`
	Archived *bool  `form:"archived"`
	Synced   *bool  `form:"synced"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID                   uuid.UUID `json:"id"`
	CompanyName          string    `json:"company_name"`
	RemoteContactID      *string   `json:"remote_contact_id,omitempty"`
	OrganizationID       string    `json:"organization_id,omitempty"`
	RemoteVersion        int       `json:"remote_version"`
	CustomerNumber       *string   `json:"customer_number,omitempty"`
	AllowTaxFreeInvoices bool      `json:"allow_tax_free_invoices"`
	Archived             bool      `json:"archived"`
	Synced               bool      `json:"synced"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreateContact creates a new local-only contact
func (s *ContactService) CreateContact(ctx context.Context, req CreateContactRequest) (*ContactResponse, error) {
	c, err := contact.NewContact(req.CompanyName)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// GetContact returns one contact
func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	c, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// ListContacts returns a page of contacts matching the filter
func (s *ContactService) ListContacts(ctx context.Context, filter ContactListFilter) (*shared.Paginated[ContactResponse], error) {
	domainFilter := toContactFilter(filter)

	contacts, err := s.contactRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.contactRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, *toContactResponse(&contacts[i]))
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

func toContactFilter(filter ContactListFilter) contact.ContactFilter {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}
	base.Search = filter.Search

	return contact.ContactFilter{
		Filter:   base,
		Archived: filter.Archived,
		Synced:   filter.Synced,
	}
}

func toContactResponse(c *contact.Contact) *ContactResponse {
	return &ContactResponse{
		ID:                   c.ID,
		CompanyName:          c.CompanyName,
		RemoteContactID:      c.RemoteContactID,
		OrganizationID:       c.OrganizationID,
		RemoteVersion:        c.RemoteVersion,
		CustomerNumber:       c.CustomerNumber,
		AllowTaxFreeInvoices: c.AllowTaxFreeInvoices,
		Archived:             c.Archived,
		Synced:               c.IsSynced(),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}
