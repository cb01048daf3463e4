package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appinvoicing "github.com/lexsync/backend/internal/application/invoicing"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	BaseHandler
	invoiceService      *appinvoicing.InvoiceService
	transmissionService *appinvoicing.TransmissionService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	invoiceService *appinvoicing.InvoiceService,
	transmissionService *appinvoicing.TransmissionService,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:      invoiceService,
		transmissionService: transmissionService,
	}
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req appinvoicing.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID handles GET /invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter appinvoicing.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.invoiceService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req appinvoicing.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Transmit handles POST /invoices/:id/transmit
func (h *InvoiceHandler) Transmit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.transmissionService.Transmit(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Statistics handles GET /invoices/statistics
func (h *InvoiceHandler) Statistics(c *gin.Context) {
	resp, err := h.invoiceService.Statistics(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
