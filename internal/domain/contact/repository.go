package contact

import (
	"context"

	"github.com/google/uuid"

	"github.com/lexsync/backend/internal/domain/shared"
)

// ContactFilter defines filtering options for contact queries
type ContactFilter struct {
	shared.Filter
	Archived *bool // Filter by archive flag
	Synced   *bool // Filter by remote linkage
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByID finds a contact by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)

	// FindByRemoteContactID finds a contact by its remote contact ID
	FindByRemoteContactID(ctx context.Context, remoteContactID string) (*Contact, error)

	// FindAll finds contacts with filtering and pagination
	FindAll(ctx context.Context, filter ContactFilter) ([]Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// Delete removes a contact
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts contacts matching the filter
	Count(ctx context.Context, filter ContactFilter) (int64, error)
}
