package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lexsync/backend/internal/domain/shared"
	"github.com/lexsync/backend/internal/domain/shared/valueobject"
)

// LineItemType represents the kind of an invoice line item
type LineItemType string

const (
	LineItemTypeCustom   LineItemType = "custom"   // Free-form priced position
	LineItemTypeText     LineItemType = "text"     // Descriptive row, carries no pricing
	LineItemTypeMaterial LineItemType = "material" // Material position
	LineItemTypeService  LineItemType = "service"  // Service position
)

// IsValid checks if the type is a valid LineItemType
func (t LineItemType) IsValid() bool {
	switch t {
	case LineItemTypeCustom, LineItemTypeText, LineItemTypeMaterial, LineItemTypeService:
		return true
	}
	return false
}

// String returns the string representation of LineItemType
func (t LineItemType) String() string {
	return string(t)
}

// IsText returns true for descriptive rows that carry no pricing
func (t LineItemType) IsText() bool {
	return t == LineItemTypeText
}

// LineItem represents a single row of an invoice.
// It is owned exclusively by its parent invoice; line totals are derived
// from the pricing fields and are never set independently.
type LineItem struct {
	ID                 uuid.UUID            `json:"id"`
	InvoiceID          uuid.UUID            `json:"invoice_id"`
	LineOrder          int                  `json:"line_order"` // 1-based, unique within the invoice
	Type               LineItemType         `json:"type"`
	Name               string               `json:"name"`
	Description        string               `json:"description,omitempty"`
	Quantity           *decimal.Decimal     `json:"quantity,omitempty"`
	UnitName           string               `json:"unit_name,omitempty"`
	Currency           valueobject.Currency `json:"currency,omitempty"`
	NetAmount          *decimal.Decimal     `json:"net_amount,omitempty"`
	TaxRatePercentage  *decimal.Decimal     `json:"tax_rate_percentage,omitempty"`
	DiscountPercentage decimal.Decimal      `json:"discount_percentage"`
	LineTotalNet       *decimal.Decimal     `json:"line_total_net,omitempty"`
	LineTotalGross     *decimal.Decimal     `json:"line_total_gross,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// LineItemInput carries the caller-provided fields for one line item.
// It is the single construction path for new line items regardless of
// origin (local form input or remote line-item data), so a LineItem is
// never observable in a partially-initialized state.
type LineItemInput struct {
	Type               LineItemType
	Name               string
	Description        string
	Quantity           *decimal.Decimal
	UnitName           string
	Currency           valueobject.Currency
	NetAmount          *decimal.Decimal
	TaxRatePercentage  *decimal.Decimal
	DiscountPercentage *decimal.Decimal
}

// NewLineItem creates a canonical line item for the given invoice and position.
// Text items drop all pricing fields; priced items get defaults for absent
// quantity, tax rate and discount, and their totals are computed immediately.
func NewLineItem(invoiceID uuid.UUID, lineOrder int, input LineItemInput) (*LineItem, error) {
	if !input.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM_TYPE", "Line item type is not valid")
	}
	if input.Name == "" {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM_NAME", "Line item name cannot be empty")
	}
	if lineOrder < 1 {
		return nil, shared.NewDomainError("INVALID_LINE_ORDER", "Line order must be 1-based")
	}

	now := time.Now()
	item := &LineItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		LineOrder:   lineOrder,
		Type:        input.Type,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.Type.IsText() {
		return item, nil
	}

	item.Quantity = input.Quantity
	if item.Quantity == nil {
		one := decimal.NewFromInt(1)
		item.Quantity = &one
	}
	item.UnitName = input.UnitName
	item.Currency = input.Currency
	if item.Currency == "" {
		item.Currency = valueobject.DefaultCurrency
	}
	item.NetAmount = input.NetAmount
	if item.NetAmount == nil {
		zero := decimal.Zero
		item.NetAmount = &zero
	}
	item.TaxRatePercentage = input.TaxRatePercentage
	if item.TaxRatePercentage == nil {
		zero := decimal.Zero
		item.TaxRatePercentage = &zero
	}
	if input.DiscountPercentage != nil {
		item.DiscountPercentage = *input.DiscountPercentage
	}

	item.Recalculate()
	return item, nil
}

// Recalculate recomputes the derived line totals from the pricing fields.
// Called whenever pricing fields change.
func (li *LineItem) Recalculate() {
	totals := NewLineItemCalculator().ComputeLineTotals(*li)
	li.LineTotalNet = totals.Net
	li.LineTotalGross = totals.Gross
	li.UpdatedAt = time.Now()
}

// IsPriced returns true if the item carries computable pricing
func (li *LineItem) IsPriced() bool {
	return !li.Type.IsText() && li.Quantity != nil && li.NetAmount != nil
}
