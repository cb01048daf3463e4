package contact

import (
	"time"

	"github.com/lexsync/backend/internal/domain/shared"
)

// Contact represents a business contact aggregate root.
// Contacts mirror records of the remote accounting service; a contact that
// has no remote contact ID yet cannot be referenced by outgoing invoices.
type Contact struct {
	shared.BaseAggregateRoot
	CompanyName          string  `json:"company_name"`
	RemoteContactID      *string `json:"remote_contact_id,omitempty"`
	OrganizationID       string  `json:"organization_id,omitempty"`
	RemoteVersion        int     `json:"remote_version"`
	CustomerNumber       *string `json:"customer_number,omitempty"`
	AllowTaxFreeInvoices bool    `json:"allow_tax_free_invoices"`
	Archived             bool    `json:"archived"`
}

// NewContact creates a new local-only contact
func NewContact(companyName string) (*Contact, error) {
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}

	contact := &Contact{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyName:       companyName,
	}

	contact.AddDomainEvent(NewContactCreatedEvent(contact))

	return contact, nil
}

// IsSynced returns true if the contact is linked to a remote record
func (c *Contact) IsSynced() bool {
	return c.RemoteContactID != nil && *c.RemoteContactID != ""
}

// RemoteState carries the fields of a remote contact record as fetched
// from the accounting service.
type RemoteState struct {
	RemoteContactID      string
	OrganizationID       string
	RemoteVersion        int
	CompanyName          string
	CustomerNumber       *string
	AllowTaxFreeInvoices bool
	Archived             bool
}

// ApplyRemoteState overwrites the mirrored fields from a remote record.
// The remote side wins for every mirrored field; local-only fields are
// left alone.
func (c *Contact) ApplyRemoteState(state RemoteState) {
	c.RemoteContactID = &state.RemoteContactID
	c.OrganizationID = state.OrganizationID
	c.RemoteVersion = state.RemoteVersion
	if state.CompanyName != "" {
		c.CompanyName = state.CompanyName
	}
	c.CustomerNumber = state.CustomerNumber
	c.AllowTaxFreeInvoices = state.AllowTaxFreeInvoices
	c.Archived = state.Archived
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContactSyncedEvent(c))
}

// NewContactFromRemote creates a contact mirroring a remote record that has
// no local counterpart yet.
func NewContactFromRemote(state RemoteState) (*Contact, error) {
	if state.RemoteContactID == "" {
		return nil, shared.NewDomainError("INVALID_REMOTE_CONTACT", "Remote contact ID cannot be empty")
	}
	name := state.CompanyName
	if name == "" {
		name = state.RemoteContactID
	}

	contact := &Contact{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		CompanyName:          name,
		RemoteContactID:      &state.RemoteContactID,
		OrganizationID:       state.OrganizationID,
		RemoteVersion:        state.RemoteVersion,
		CustomerNumber:       state.CustomerNumber,
		AllowTaxFreeInvoices: state.AllowTaxFreeInvoices,
		Archived:             state.Archived,
	}

	contact.AddDomainEvent(NewContactSyncedEvent(contact))

	return contact, nil
}

// Archive marks the contact as archived locally
func (c *Contact) Archive() {
	if c.Archived {
		return
	}
	c.Archived = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Rename changes the local company name
func (c *Contact) Rename(companyName string) error {
	if companyName == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	c.CompanyName = companyName
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
