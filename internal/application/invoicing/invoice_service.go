package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lexsync/backend/internal/domain/contact"
	"github.com/lexsync/backend/internal/domain/invoicing"
	"github.com/lexsync/backend/internal/domain/shared"
	"github.com/lexsync/backend/internal/domain/shared/valueobject"
)

// InvoiceService provides application-level invoice operations
type InvoiceService struct {
	invoiceRepo invoicing.InvoiceRepository
	contactRepo contact.ContactRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	contactRepo contact.ContactRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
	}
}

// LineItemRequest represents one line item in a create or update request
type LineItemRequest struct {
	Type               string           `json:"type" binding:"required"`
	Name               string           `json:"name" binding:"required"`
	Description        string           `json:"description"`
	Quantity           *decimal.Decimal `json:"quantity"`
	UnitName           string           `json:"unit_name"`
	Currency           string           `json:"currency" binding:"omitempty,currency"`
	NetAmount          *decimal.Decimal `json:"net_amount"`
	TaxRatePercentage  *decimal.Decimal `json:"tax_rate_percentage"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
}

// PaymentConditionsRequest represents the optional payment terms block
type PaymentConditionsRequest struct {
	PaymentTermLabel    string           `json:"payment_term_label"`
	PaymentTermDuration *int             `json:"payment_term_duration"`
	DiscountPercentage  *decimal.Decimal `json:"discount_percentage"`
	DiscountRange       *int             `json:"discount_range"`
}

// ShippingConditionsRequest represents the optional shipping block
type ShippingConditionsRequest struct {
	ShippingDate *time.Time `json:"shipping_date"`
	ShippingType string     `json:"shipping_type"`
}

// CreateInvoiceRequest represents a request to create a draft invoice
type CreateInvoiceRequest struct {
	ContactID          uuid.UUID                  `json:"contact_id" binding:"required"`
	VoucherDate        time.Time                  `json:"voucher_date" binding:"required"`
	Currency           string                     `json:"currency" binding:"omitempty,currency"`
	Title              string                     `json:"title"`
	Introduction       string                     `json:"introduction"`
	Remark             string                     `json:"remark"`
	Archived           bool                       `json:"archived"`
	TaxType            string                     `json:"tax_type"`
	PaymentConditions  *PaymentConditionsRequest  `json:"payment_conditions"`
	ShippingConditions *ShippingConditionsRequest `json:"shipping_conditions"`
	LineItems          []LineItemRequest          `json:"line_items"`
}

// UpdateInvoiceRequest represents a request to update a draft invoice.
// The line-item set is replaced wholesale; totals are rederived.
type UpdateInvoiceRequest struct {
	VoucherDate        time.Time                  `json:"voucher_date" binding:"required"`
	Title              string                     `json:"title"`
	Introduction       string                     `json:"introduction"`
	Remark             string                     `json:"remark"`
	Archived           bool                       `json:"archived"`
	TaxType            string                     `json:"tax_type"`
	PaymentConditions  *PaymentConditionsRequest  `json:"payment_conditions"`
	ShippingConditions *ShippingConditionsRequest `json:"shipping_conditions"`
	LineItems          []LineItemRequest          `json:"line_items"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	ContactID *uuid.UUID `form:"contact_id"`
	Status    string     `form:"status"`
	Archived  *bool      `form:"archived"`
	FromDate  *time.Time `form:"from_date"`
	ToDate    *time.Time `form:"to_date"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID                 uuid.UUID        `json:"id"`
	LineOrder          int              `json:"line_order"`
	Type               string           `json:"type"`
	Name               string           `json:"name"`
	Description        string           `json:"description,omitempty"`
	Quantity           *decimal.Decimal `json:"quantity,omitempty"`
	UnitName           string           `json:"unit_name,omitempty"`
	Currency           string           `json:"currency,omitempty"`
	NetAmount          *decimal.Decimal `json:"net_amount,omitempty"`
	TaxRatePercentage  *decimal.Decimal `json:"tax_rate_percentage,omitempty"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	LineTotalNet       *decimal.Decimal `json:"line_total_net,omitempty"`
	LineTotalGross     *decimal.Decimal `json:"line_total_gross,omitempty"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                 uuid.UUID                      `json:"id"`
	ContactID          uuid.UUID                      `json:"contact_id"`
	VoucherDate        time.Time                      `json:"voucher_date"`
	Currency           string                         `json:"currency"`
	Title              string                         `json:"title,omitempty"`
	Introduction       string                         `json:"introduction,omitempty"`
	Remark             string                         `json:"remark,omitempty"`
	Archived           bool                           `json:"archived"`
	TaxType            string                         `json:"tax_type"`
	PaymentConditions  *invoicing.PaymentConditions   `json:"payment_conditions,omitempty"`
	ShippingConditions *invoicing.ShippingConditions  `json:"shipping_conditions,omitempty"`
	LineItems          []LineItemResponse             `json:"line_items"`
	TotalNetAmount     decimal.Decimal                `json:"total_net_amount"`
	TotalGrossAmount   decimal.Decimal                `json:"total_gross_amount"`
	Status             string                         `json:"status"`

	RemoteID          *string    `json:"remote_id,omitempty"`
	RemoteResourceURI *string    `json:"remote_resource_uri,omitempty"`
	RemoteVersion     *int       `json:"remote_version,omitempty"`
	RemoteCreatedAt   *time.Time `json:"remote_created_at,omitempty"`
	RemoteUpdatedAt   *time.Time `json:"remote_updated_at,omitempty"`

	LastErrorMessage          *string    `json:"last_error_message,omitempty"`
	LastErrorCode             *string    `json:"last_error_code,omitempty"`
	TransmissionAttempts      int        `json:"transmission_attempts"`
	LastTransmissionAttemptAt *time.Time `json:"last_transmission_attempt_at,omitempty"`
	TransmittedAt             *time.Time `json:"transmitted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// StatusCountResponse is one row of the per-status invoice statistics
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// StatisticsResponse summarizes the invoice set by transmission status
type StatisticsResponse struct {
	Total    int64                 `json:"total"`
	ByStatus []StatusCountResponse `json:"by_status"`
}

// CreateInvoice creates a new draft invoice for an existing contact
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if _, err := s.contactRepo.FindByID(ctx, req.ContactID); err != nil {
		return nil, err
	}

	inv, err := invoicing.NewInvoice(invoicing.InvoiceInput{
		ContactID:          req.ContactID,
		VoucherDate:        req.VoucherDate,
		Currency:           valueobject.Currency(req.Currency),
		Title:              req.Title,
		Introduction:       req.Introduction,
		Remark:             req.Remark,
		Archived:           req.Archived,
		TaxType:            invoicing.TaxType(req.TaxType),
		PaymentConditions:  toPaymentConditions(req.PaymentConditions),
		ShippingConditions: toShippingConditions(req.ShippingConditions),
		LineItems:          toLineItemInputs(req.LineItems),
	})
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// GetInvoice returns one invoice with its line items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices returns a page of invoices matching the filter
func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	domainFilter := toInvoiceFilter(filter)

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *toInvoiceResponse(&invoices[i]))
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// UpdateInvoice updates a draft invoice and replaces its line items
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !inv.Status.CanEdit() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify a transmitted invoice")
	}

	if req.TaxType != "" {
		taxType := invoicing.TaxType(req.TaxType)
		if !taxType.IsValid() {
			return nil, shared.NewDomainError("INVALID_TAX_TYPE", "Tax type is not valid")
		}
		inv.TaxType = taxType
	}
	inv.VoucherDate = req.VoucherDate
	inv.Title = req.Title
	inv.Introduction = req.Introduction
	inv.Remark = req.Remark
	inv.Archived = req.Archived
	inv.PaymentConditions = toPaymentConditions(req.PaymentConditions)
	inv.ShippingConditions = toShippingConditions(req.ShippingConditions)

	if err := inv.ReplaceLineItems(toLineItemInputs(req.LineItems)); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// DeleteInvoice removes an invoice that has not been transmitted
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.IsTransmitted() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a transmitted invoice")
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// Statistics returns invoice counts grouped by transmission status
func (s *InvoiceService) Statistics(ctx context.Context) (*StatisticsResponse, error) {
	counts, err := s.invoiceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	resp := &StatisticsResponse{
		ByStatus: make([]StatusCountResponse, 0, len(counts)),
	}
	for _, row := range counts {
		resp.Total += row.Count
		resp.ByStatus = append(resp.ByStatus, StatusCountResponse{
			Status: row.Status.String(),
			Count:  row.Count,
		})
	}
	return resp, nil
}

func toLineItemInputs(items []LineItemRequest) []invoicing.LineItemInput {
	inputs := make([]invoicing.LineItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, invoicing.LineItemInput{
			Type:               invoicing.LineItemType(item.Type),
			Name:               item.Name,
			Description:        item.Description,
			Quantity:           item.Quantity,
			UnitName:           item.UnitName,
			Currency:           valueobject.Currency(item.Currency),
			NetAmount:          item.NetAmount,
			TaxRatePercentage:  item.TaxRatePercentage,
			DiscountPercentage: item.DiscountPercentage,
		})
	}
	return inputs
}

func toPaymentConditions(req *PaymentConditionsRequest) *invoicing.PaymentConditions {
	if req == nil {
		return nil
	}
	return &invoicing.PaymentConditions{
		PaymentTermLabel:    req.PaymentTermLabel,
		PaymentTermDuration: req.PaymentTermDuration,
		DiscountPercentage:  req.DiscountPercentage,
		DiscountRange:       req.DiscountRange,
	}
}

func toShippingConditions(req *ShippingConditionsRequest) *invoicing.ShippingConditions {
	if req == nil {
		return nil
	}
	return &invoicing.ShippingConditions{
		ShippingDate: req.ShippingDate,
		ShippingType: req.ShippingType,
	}
}

func toInvoiceFilter(filter InvoiceListFilter) invoicing.InvoiceFilter {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}

	domainFilter := invoicing.InvoiceFilter{
		Filter:    base,
		ContactID: filter.ContactID,
		Archived:  filter.Archived,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
	}
	if filter.Status != "" {
		status := invoicing.InvoiceStatus(filter.Status)
		domainFilter.Status = &status
	}
	return domainFilter
}

func toLineItemResponse(item *invoicing.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:                 item.ID,
		LineOrder:          item.LineOrder,
		Type:               item.Type.String(),
		Name:               item.Name,
		Description:        item.Description,
		Quantity:           item.Quantity,
		UnitName:           item.UnitName,
		Currency:           string(item.Currency),
		NetAmount:          item.NetAmount,
		TaxRatePercentage:  item.TaxRatePercentage,
		DiscountPercentage: item.DiscountPercentage,
		LineTotalNet:       item.LineTotalNet,
		LineTotalGross:     item.LineTotalGross,
	}
}

func toInvoiceResponse(inv *invoicing.Invoice) *InvoiceResponse {
	items := make([]LineItemResponse, 0, len(inv.LineItems))
	for i := range inv.LineItems {
		items = append(items, toLineItemResponse(&inv.LineItems[i]))
	}

	return &InvoiceResponse{
		ID:                 inv.ID,
		ContactID:          inv.ContactID,
		VoucherDate:        inv.VoucherDate,
		Currency:           string(inv.Currency),
		Title:              inv.Title,
		Introduction:       inv.Introduction,
		Remark:             inv.Remark,
		Archived:           inv.Archived,
		TaxType:            string(inv.TaxType),
		PaymentConditions:  inv.PaymentConditions,
		ShippingConditions: inv.ShippingConditions,
		LineItems:          items,
		TotalNetAmount:     inv.TotalNetAmount,
		TotalGrossAmount:   inv.TotalGrossAmount,
		Status:             inv.Status.String(),

		RemoteID:          inv.RemoteID,
		RemoteResourceURI: inv.RemoteResourceURI,
		RemoteVersion:     inv.RemoteVersion,
		RemoteCreatedAt:   inv.RemoteCreatedAt,
		RemoteUpdatedAt:   inv.RemoteUpdatedAt,

		LastErrorMessage:          inv.LastErrorMessage,
		LastErrorCode:             inv.LastErrorCode,
		TransmissionAttempts:      inv.TransmissionAttempts,
		LastTransmissionAttemptAt: inv.LastTransmissionAttemptAt,
		TransmittedAt:             inv.TransmittedAt,

		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
		Version:   inv.Version,
	}
}
