package invoicing

import (
	"github.com/lexsync/backend/internal/domain/shared"
)

const aggregateTypeInvoice = "Invoice"

// Event types
const (
	EventInvoiceCreated            = "invoice.created"
	EventInvoiceTransmitted        = "invoice.transmitted"
	EventInvoiceTransmissionFailed = "invoice.transmission_failed"
)

// InvoiceCreatedEvent is raised when a new draft invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	ContactID string `json:"contact_id"`
	Currency  string `json:"currency"`
	ItemCount int    `json:"item_count"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoiceCreated, aggregateTypeInvoice, inv.ID),
		ContactID:       inv.ContactID.String(),
		Currency:        string(inv.Currency),
		ItemCount:       len(inv.LineItems),
	}
}

// InvoiceTransmittedEvent is raised when the remote service accepts an invoice
type InvoiceTransmittedEvent struct {
	shared.BaseDomainEvent
	RemoteID          string `json:"remote_id"`
	RemoteResourceURI string `json:"remote_resource_uri"`
}

// NewInvoiceTransmittedEvent creates a new InvoiceTransmittedEvent
func NewInvoiceTransmittedEvent(inv *Invoice) *InvoiceTransmittedEvent {
	event := &InvoiceTransmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoiceTransmitted, aggregateTypeInvoice, inv.ID),
	}
	if inv.RemoteID != nil {
		event.RemoteID = *inv.RemoteID
	}
	if inv.RemoteResourceURI != nil {
		event.RemoteResourceURI = *inv.RemoteResourceURI
	}
	return event
}

// InvoiceTransmissionFailedEvent is raised when a transmission attempt fails
type InvoiceTransmissionFailedEvent struct {
	shared.BaseDomainEvent
	ErrorMessage string  `json:"error_message"`
	ErrorCode    *string `json:"error_code,omitempty"`
	Attempts     int     `json:"attempts"`
}

// NewInvoiceTransmissionFailedEvent creates a new InvoiceTransmissionFailedEvent
func NewInvoiceTransmissionFailedEvent(inv *Invoice, message string, code *string) *InvoiceTransmissionFailedEvent {
	return &InvoiceTransmissionFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoiceTransmissionFailed, aggregateTypeInvoice, inv.ID),
		ErrorMessage:    message,
		ErrorCode:       code,
		Attempts:        inv.TransmissionAttempts,
	}
}
