package invoicing

import (
	"encoding/json"

	"github.com/lexsync/backend/internal/domain/shared"
)

// InvoicePayload is the wire representation of an invoice as the remote
// accounting service expects it. Numeric fields go out as JSON numbers.
type InvoicePayload struct {
	Archived           bool                       `json:"archived"`
	VoucherDate        string                     `json:"voucherDate"`
	Address            PayloadAddress             `json:"address"`
	LineItems          []PayloadLineItem          `json:"lineItems"`
	TotalPrice         PayloadTotalPrice          `json:"totalPrice"`
	TaxConditions      PayloadTaxConditions       `json:"taxConditions"`
	PaymentConditions  *PayloadPaymentConditions  `json:"paymentConditions,omitempty"`
	ShippingConditions *PayloadShippingConditions `json:"shippingConditions,omitempty"`
	Title              string                     `json:"title"`
	Introduction       string                     `json:"introduction"`
	Remark             string                     `json:"remark"`
}

// PayloadAddress references the remote contact the invoice is addressed to
type PayloadAddress struct {
	ContactID string `json:"contactId"`
}

// PayloadUnitPrice is the per-unit pricing block of a priced line item
type PayloadUnitPrice struct {
	Currency          string  `json:"currency"`
	NetAmount         float64 `json:"netAmount"`
	TaxRatePercentage float64 `json:"taxRatePercentage"`
}

// PayloadLineItem is one wire line item. Text rows omit all pricing blocks.
type PayloadLineItem struct {
	Type               string            `json:"type"`
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	Quantity           *float64          `json:"quantity,omitempty"`
	UnitName           string            `json:"unitName,omitempty"`
	UnitPrice          *PayloadUnitPrice `json:"unitPrice,omitempty"`
	DiscountPercentage *float64          `json:"discountPercentage,omitempty"`
}

// PayloadTotalPrice carries the invoice currency; the remote service derives
// the totals itself.
type PayloadTotalPrice struct {
	Currency string `json:"currency"`
}

// PayloadTaxConditions carries the invoice tax type
type PayloadTaxConditions struct {
	TaxType string `json:"taxType"`
}

// PayloadDiscountConditions is the early-payment discount block
type PayloadDiscountConditions struct {
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountRange      int     `json:"discountRange"`
}

// PayloadPaymentConditions is the wire payment terms block
type PayloadPaymentConditions struct {
	PaymentTermLabel          string                     `json:"paymentTermLabel,omitempty"`
	PaymentTermDuration       *int                       `json:"paymentTermDuration,omitempty"`
	PaymentDiscountConditions *PayloadDiscountConditions `json:"paymentDiscountConditions,omitempty"`
}

// PayloadShippingConditions is the wire shipping block
type PayloadShippingConditions struct {
	ShippingDate string `json:"shippingDate,omitempty"`
	ShippingType string `json:"shippingType,omitempty"`
}

// PayloadBuilder renders invoices into the remote wire shape.
// It is pure: building a payload never mutates the invoice.
type PayloadBuilder struct {
	dates DateConverter
}

// NewPayloadBuilder creates a new PayloadBuilder
func NewPayloadBuilder(dates DateConverter) *PayloadBuilder {
	return &PayloadBuilder{dates: dates}
}

// Build renders the invoice into the remote wire shape.
// The contact must already be known to the remote service; an empty remote
// contact ID fails the build before anything is sent.
func (b *PayloadBuilder) Build(inv *Invoice, remoteContactID string) (*InvoicePayload, error) {
	if remoteContactID == "" {
		return nil, shared.ErrContactNotSynced
	}

	payload := &InvoicePayload{
		Archived:    inv.Archived,
		VoucherDate: b.dates.ToRemoteFormat(inv.VoucherDate),
		Address:     PayloadAddress{ContactID: remoteContactID},
		LineItems:   make([]PayloadLineItem, 0, len(inv.LineItems)),
		TotalPrice:  PayloadTotalPrice{Currency: string(inv.Currency)},
		TaxConditions: PayloadTaxConditions{
			TaxType: string(inv.TaxType),
		},
		Title:        inv.Title,
		Introduction: inv.Introduction,
		Remark:       inv.Remark,
	}

	for i := range inv.LineItems {
		payload.LineItems = append(payload.LineItems, b.buildLineItem(&inv.LineItems[i]))
	}

	if !inv.PaymentConditions.IsEmpty() {
		payload.PaymentConditions = b.buildPaymentConditions(inv.PaymentConditions)
	}
	if !inv.ShippingConditions.IsEmpty() {
		payload.ShippingConditions = b.buildShippingConditions(inv.ShippingConditions)
	}

	return payload, nil
}

func (b *PayloadBuilder) buildLineItem(item *LineItem) PayloadLineItem {
	wire := PayloadLineItem{
		Type:        item.Type.String(),
		Name:        item.Name,
		Description: item.Description,
	}
	if item.Type.IsText() {
		return wire
	}

	if item.Quantity != nil {
		qty := item.Quantity.InexactFloat64()
		wire.Quantity = &qty
	}
	wire.UnitName = item.UnitName

	unitPrice := PayloadUnitPrice{Currency: string(item.Currency)}
	if item.NetAmount != nil {
		unitPrice.NetAmount = item.NetAmount.InexactFloat64()
	}
	if item.TaxRatePercentage != nil {
		unitPrice.TaxRatePercentage = item.TaxRatePercentage.InexactFloat64()
	}
	wire.UnitPrice = &unitPrice

	discount := item.DiscountPercentage.InexactFloat64()
	wire.DiscountPercentage = &discount

	return wire
}

func (b *PayloadBuilder) buildPaymentConditions(pc *PaymentConditions) *PayloadPaymentConditions {
	wire := &PayloadPaymentConditions{
		PaymentTermLabel:    pc.PaymentTermLabel,
		PaymentTermDuration: pc.PaymentTermDuration,
	}
	if pc.DiscountPercentage != nil && pc.DiscountRange != nil {
		wire.PaymentDiscountConditions = &PayloadDiscountConditions{
			DiscountPercentage: pc.DiscountPercentage.InexactFloat64(),
			DiscountRange:      *pc.DiscountRange,
		}
	}
	return wire
}

func (b *PayloadBuilder) buildShippingConditions(sc *ShippingConditions) *PayloadShippingConditions {
	wire := &PayloadShippingConditions{
		ShippingType: sc.ShippingType,
	}
	if sc.ShippingDate != nil {
		wire.ShippingDate = b.dates.ToRemoteFormat(*sc.ShippingDate)
	}
	return wire
}

// RemoteDocument is the remote service's view of a stored invoice, as
// returned on a successful transmission.
type RemoteDocument struct {
	ID          string `json:"id"`
	ResourceURI string `json:"resourceUri"`
	Version     int    `json:"version"`
	CreatedDate string `json:"createdDate"`
	UpdatedDate string `json:"updatedDate"`
}

// ParseRemoteDocument decodes a remote success body into a RemoteDocument
func ParseRemoteDocument(body []byte) (RemoteDocument, error) {
	var doc RemoteDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return RemoteDocument{}, shared.NewDomainError("INVALID_REMOTE_DOCUMENT", "Remote response body is not a valid document")
	}
	return doc, nil
}
