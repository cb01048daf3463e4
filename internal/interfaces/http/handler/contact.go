package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcontact "github.com/lexsync/backend/internal/application/contact"
)

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	BaseHandler
	contactService *appcontact.ContactService
	syncService    *appcontact.SyncService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(
	contactService *appcontact.ContactService,
	syncService *appcontact.SyncService,
) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		syncService:    syncService,
	}
}

// Create handles POST /contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var req appcontact.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contactService.CreateContact(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID handles GET /contacts/:id
func (h *ContactHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	resp, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /contacts
func (h *ContactHandler) List(c *gin.Context) {
	var filter appcontact.ContactListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.contactService.ListContacts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Sync handles POST /contacts/sync
//
// The sync runs inline in the request. A mid-run failure still reports the
// pages already applied alongside the error.
func (h *ContactHandler) Sync(c *gin.Context) {
	result, err := h.syncService.SyncAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
