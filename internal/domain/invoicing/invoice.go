package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lexsync/backend/internal/domain/shared"
	"github.com/lexsync/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the transmission status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft             InvoiceStatus = "draft"              // Local only, editable
	InvoiceStatusTransmitted       InvoiceStatus = "transmitted"        // Accepted by the remote service
	InvoiceStatusTransmissionError InvoiceStatus = "transmission_error" // Last transmission attempt failed
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusTransmitted, InvoiceStatusTransmissionError:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanEdit returns true if local mutation of the invoice content is allowed.
// Once transmitted the document belongs to the remote service and is not
// reopened locally.
func (s InvoiceStatus) CanEdit() bool {
	return s != InvoiceStatusTransmitted
}

// TaxType represents how line-item amounts relate to tax
type TaxType string

const (
	TaxTypeNet     TaxType = "net"     // Amounts are net, tax is added
	TaxTypeGross   TaxType = "gross"   // Amounts include tax
	TaxTypeVatFree TaxType = "vatfree" // No tax applies
)

// IsValid checks if the tax type is valid
func (t TaxType) IsValid() bool {
	switch t {
	case TaxTypeNet, TaxTypeGross, TaxTypeVatFree:
		return true
	}
	return false
}

// PaymentConditions holds the optional payment terms of an invoice
type PaymentConditions struct {
	PaymentTermLabel    string           `json:"payment_term_label,omitempty"`
	PaymentTermDuration *int             `json:"payment_term_duration,omitempty"`
	DiscountPercentage  *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountRange       *int             `json:"discount_range,omitempty"`
}

// IsEmpty returns true when no constituent field is set
func (pc *PaymentConditions) IsEmpty() bool {
	if pc == nil {
		return true
	}
	return pc.PaymentTermLabel == "" && pc.PaymentTermDuration == nil &&
		pc.DiscountPercentage == nil && pc.DiscountRange == nil
}

// ShippingConditions holds the optional shipping block of an invoice
type ShippingConditions struct {
	ShippingDate *time.Time `json:"shipping_date,omitempty"`
	ShippingType string     `json:"shipping_type,omitempty"`
}

// IsEmpty returns true when no constituent field is set
func (sc *ShippingConditions) IsEmpty() bool {
	if sc == nil {
		return true
	}
	return sc.ShippingDate == nil && sc.ShippingType == ""
}

// Invoice represents an invoice aggregate root.
// It owns its line items and the transmission lifecycle towards the remote
// accounting service. Totals are always derived from the line items.
type Invoice struct {
	shared.BaseAggregateRoot
	ContactID          uuid.UUID            `json:"contact_id"`
	VoucherDate        time.Time            `json:"voucher_date"`
	Currency           valueobject.Currency `json:"currency"`
	Title              string               `json:"title,omitempty"`
	Introduction       string               `json:"introduction,omitempty"`
	Remark             string               `json:"remark,omitempty"`
	Archived           bool                 `json:"archived"`
	TaxType            TaxType              `json:"tax_type"`
	PaymentConditions  *PaymentConditions   `json:"payment_conditions,omitempty"`
	ShippingConditions *ShippingConditions  `json:"shipping_conditions,omitempty"`
	LineItems          []LineItem           `json:"line_items"`
	TotalNetAmount     decimal.Decimal      `json:"total_net_amount"`
	TotalGrossAmount   decimal.Decimal      `json:"total_gross_amount"`
	Status             InvoiceStatus        `json:"status"`

	// Remote linkage, populated if and only if status is transmitted
	RemoteID          *string    `json:"remote_id,omitempty"`
	RemoteResourceURI *string    `json:"remote_resource_uri,omitempty"`
	RemoteVersion     *int       `json:"remote_version,omitempty"`
	RemoteCreatedAt   *time.Time `json:"remote_created_at,omitempty"`
	RemoteUpdatedAt   *time.Time `json:"remote_updated_at,omitempty"`

	// Transmission audit trail
	LastErrorMessage          *string    `json:"last_error_message,omitempty"`
	LastErrorCode             *string    `json:"last_error_code,omitempty"`
	TransmissionAttempts      int        `json:"transmission_attempts"`
	LastTransmissionAttemptAt *time.Time `json:"last_transmission_attempt_at,omitempty"`
	TransmittedAt             *time.Time `json:"transmitted_at,omitempty"`
}

// InvoiceInput carries the caller-provided fields for a new draft invoice
type InvoiceInput struct {
	ContactID          uuid.UUID
	VoucherDate        time.Time
	Currency           valueobject.Currency
	Title              string
	Introduction       string
	Remark             string
	Archived           bool
	TaxType            TaxType
	PaymentConditions  *PaymentConditions
	ShippingConditions *ShippingConditions
	LineItems          []LineItemInput
}

// NewInvoice creates a new draft invoice with its line items.
// Line items are numbered in the given order starting at 1 and the invoice
// totals are derived immediately.
func NewInvoice(input InvoiceInput) (*Invoice, error) {
	if input.ContactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}
	if input.VoucherDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_DATE", "Voucher date is required")
	}
	if input.TaxType == "" {
		input.TaxType = TaxTypeNet
	}
	if !input.TaxType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TAX_TYPE", "Tax type is not valid")
	}
	if input.Currency == "" {
		input.Currency = valueobject.DefaultCurrency
	}

	inv := &Invoice{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		ContactID:          input.ContactID,
		VoucherDate:        input.VoucherDate,
		Currency:           input.Currency,
		Title:              input.Title,
		Introduction:       input.Introduction,
		Remark:             input.Remark,
		Archived:           input.Archived,
		TaxType:            input.TaxType,
		PaymentConditions:  input.PaymentConditions,
		ShippingConditions: input.ShippingConditions,
		Status:             InvoiceStatusDraft,
	}

	if err := inv.setLineItems(input.LineItems); err != nil {
		return nil, err
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// ReplaceLineItems replaces the full line-item set and rederives the totals.
// There is no partial-update path: totals are always a function of the
// current line items.
func (inv *Invoice) ReplaceLineItems(inputs []LineItemInput) error {
	if !inv.Status.CanEdit() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a transmitted invoice")
	}
	if err := inv.setLineItems(inputs); err != nil {
		return err
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// setLineItems builds the owned line items and recomputes the totals
func (inv *Invoice) setLineItems(inputs []LineItemInput) error {
	items := make([]LineItem, 0, len(inputs))
	for i, input := range inputs {
		item, err := NewLineItem(inv.ID, i+1, input)
		if err != nil {
			return err
		}
		items = append(items, *item)
	}
	inv.LineItems = items
	inv.recomputeTotals()
	return nil
}

// recomputeTotals rederives the invoice totals from the current line items
func (inv *Invoice) recomputeTotals() {
	totals := NewLineItemCalculator().ComputeInvoiceTotals(inv.LineItems)
	inv.TotalNetAmount = totals.Net
	inv.TotalGrossAmount = totals.Gross
}

// MarkTransmitted applies a successful transmission outcome.
// The remote linkage fields are taken from the remote document; remote
// timestamps that fail to parse are dropped for that field only. Prior
// error fields are cleared and the attempt count is left untouched.
func (inv *Invoice) MarkTransmitted(doc RemoteDocument, dates DateConverter) {
	now := time.Now()

	inv.Status = InvoiceStatusTransmitted
	inv.RemoteID = &doc.ID
	inv.RemoteResourceURI = &doc.ResourceURI
	inv.RemoteVersion = &doc.Version
	inv.RemoteCreatedAt = parseRemoteTime(doc.CreatedDate, dates)
	inv.RemoteUpdatedAt = parseRemoteTime(doc.UpdatedDate, dates)
	inv.TransmittedAt = &now
	inv.LastErrorMessage = nil
	inv.LastErrorCode = nil
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceTransmittedEvent(inv))
}

// RecordTransmissionError applies a failed transmission outcome.
// Every call represents one real attempt: the attempt count increases by
// exactly 1 and the last-attempt timestamp is set to the current time.
func (inv *Invoice) RecordTransmissionError(message string, code *string) {
	now := time.Now()

	inv.Status = InvoiceStatusTransmissionError
	inv.LastErrorMessage = &message
	inv.LastErrorCode = code
	inv.TransmissionAttempts++
	inv.LastTransmissionAttemptAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceTransmissionFailedEvent(inv, message, code))
}

// parseRemoteTime parses a remote timestamp, dropping unparsable values
func parseRemoteTime(s string, dates DateConverter) *time.Time {
	if s == "" {
		return nil
	}
	t, err := dates.FromRemoteFormat(s)
	if err != nil {
		return nil
	}
	return &t
}

// IsDraft returns true if the invoice has never left draft
func (inv *Invoice) IsDraft() bool {
	return inv.Status == InvoiceStatusDraft
}

// IsTransmitted returns true if the invoice was accepted by the remote service
func (inv *Invoice) IsTransmitted() bool {
	return inv.Status == InvoiceStatusTransmitted
}

// HasTransmissionError returns true if the last transmission attempt failed
func (inv *Invoice) HasTransmissionError() bool {
	return inv.Status == InvoiceStatusTransmissionError
}

// PricedItemCount returns the number of line items that carry pricing
func (inv *Invoice) PricedItemCount() int {
	count := 0
	for i := range inv.LineItems {
		if inv.LineItems[i].IsPriced() {
			count++
		}
	}
	return count
}

// GetTotalNetMoney returns the net total as Money
func (inv *Invoice) GetTotalNetMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(inv.TotalNetAmount, inv.Currency)
	return m
}

// GetTotalGrossMoney returns the gross total as Money
func (inv *Invoice) GetTotalGrossMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(inv.TotalGrossAmount, inv.Currency)
	return m
}
