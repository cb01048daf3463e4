package invoicing

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// LineTotals holds the derived totals of a single line item.
// Both values are nil for text rows and for rows whose pricing is incomplete.
type LineTotals struct {
	Net   *decimal.Decimal
	Gross *decimal.Decimal
}

// InvoiceTotals holds the aggregate totals over an invoice's line items
type InvoiceTotals struct {
	Net   decimal.Decimal
	Gross decimal.Decimal
}

// LineItemCalculator performs pure, side-effect-free arithmetic over line
// items and invoices. Inputs are taken as given; range validation (negative
// quantities, out-of-range percentages) is a caller responsibility.
type LineItemCalculator struct{}

// NewLineItemCalculator creates a new LineItemCalculator
func NewLineItemCalculator() *LineItemCalculator {
	return &LineItemCalculator{}
}

// ComputeLineTotals derives the net and gross totals of one line item.
// Text rows and rows missing quantity or net amount yield nil totals.
// The net total is rounded to 2 decimal places before the tax step, and the
// gross total is rounded again; ties round away from zero.
func (c *LineItemCalculator) ComputeLineTotals(item LineItem) LineTotals {
	if item.Type.IsText() || item.Quantity == nil || item.NetAmount == nil {
		return LineTotals{}
	}

	taxRate := decimal.Zero
	if item.TaxRatePercentage != nil {
		taxRate = *item.TaxRatePercentage
	}

	netBeforeDiscount := item.Quantity.Mul(*item.NetAmount)
	discountAmount := netBeforeDiscount.Mul(item.DiscountPercentage.Div(oneHundred))
	lineNet := netBeforeDiscount.Sub(discountAmount).Round(2)
	lineGross := lineNet.Mul(decimal.NewFromInt(1).Add(taxRate.Div(oneHundred))).Round(2)

	return LineTotals{Net: &lineNet, Gross: &lineGross}
}

// ComputeInvoiceTotals sums the line totals over all items that carry them,
// skipping text rows and incomplete rows. Each partial sum is rounded to
// 2 decimal places once, at the end. An empty or all-text item set yields
// zero totals, not nil.
func (c *LineItemCalculator) ComputeInvoiceTotals(items []LineItem) InvoiceTotals {
	net := decimal.Zero
	gross := decimal.Zero
	for _, item := range items {
		totals := c.ComputeLineTotals(item)
		if totals.Net == nil || totals.Gross == nil {
			continue
		}
		net = net.Add(*totals.Net)
		gross = gross.Add(*totals.Gross)
	}
	return InvoiceTotals{
		Net:   net.Round(2),
		Gross: gross.Round(2),
	}
}
