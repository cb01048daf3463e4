package contact

import (
	"github.com/lexsync/backend/internal/domain/shared"
)

const aggregateTypeContact = "Contact"

// Event types
const (
	EventContactCreated = "contact.created"
	EventContactSynced  = "contact.synced"
)

// ContactCreatedEvent is raised when a local contact is created
type ContactCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyName string `json:"company_name"`
}

// NewContactCreatedEvent creates a new ContactCreatedEvent
func NewContactCreatedEvent(c *Contact) *ContactCreatedEvent {
	return &ContactCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContactCreated, aggregateTypeContact, c.ID),
		CompanyName:     c.CompanyName,
	}
}

// ContactSyncedEvent is raised when a contact is linked to or refreshed
// from its remote record
type ContactSyncedEvent struct {
	shared.BaseDomainEvent
	RemoteContactID string `json:"remote_contact_id"`
	RemoteVersion   int    `json:"remote_version"`
}

// NewContactSyncedEvent creates a new ContactSyncedEvent
func NewContactSyncedEvent(c *Contact) *ContactSyncedEvent {
	event := &ContactSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContactSynced, aggregateTypeContact, c.ID),
		RemoteVersion:   c.RemoteVersion,
	}
	if c.RemoteContactID != nil {
		event.RemoteContactID = *c.RemoteContactID
	}
	return event
}
