package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lexsync/backend/internal/domain/shared"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	ContactID *uuid.UUID     // Filter by addressed contact
	Status    *InvoiceStatus // Filter by transmission status
	Archived  *bool          // Filter by archive flag
	FromDate  *time.Time     // Filter by voucher date range start
	ToDate    *time.Time     // Filter by voucher date range end
}

// StatusCount is one row of the per-status invoice statistics
type StatusCount struct {
	Status InvoiceStatus `json:"status"`
	Count  int64         `json:"count"`
}

// InvoiceRepository defines the interface for invoice persistence.
// Save persists the invoice together with its full line-item set in one
// atomic operation; stale line items are removed in the same transaction.
type InvoiceRepository interface {
	// FindByID finds an invoice with its line items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByRemoteID finds an invoice by its remote document ID
	FindByRemoteID(ctx context.Context, remoteID string) (*Invoice, error)

	// FindAll finds invoices with filtering and pagination
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// Save creates or updates an invoice and replaces its line items atomically
	Save(ctx context.Context, invoice *Invoice) error

	// Delete removes a draft invoice
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// CountByStatus returns invoice counts grouped by transmission status
	CountByStatus(ctx context.Context) ([]StatusCount, error)

	// Exists checks whether an invoice exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
