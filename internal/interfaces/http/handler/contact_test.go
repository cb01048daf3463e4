package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	appcontact "github.com/lexsync/backend/internal/application/contact"
	"github.com/lexsync/backend/internal/domain/contact"
	"github.com/lexsync/backend/internal/domain/shared"
	"github.com/lexsync/backend/internal/infrastructure/remote"
)

// MockContactGateway implements the outbound contact port for testing
type MockContactGateway struct {
	mock.Mock
}

func (m *MockContactGateway) ListContacts(ctx context.Context, page, size int) *remote.Response {
	args := m.Called(ctx, page, size)
	return args.Get(0).(*remote.Response)
}

func setupContactTestRouter() (*gin.Engine, *MockContactRepository, *MockContactGateway, *ContactHandler) {
	gin.SetMode(gin.TestMode)

	contactRepo := new(MockContactRepository)
	gateway := new(MockContactGateway)

	contactService := appcontact.NewContactService(contactRepo)
	syncService := appcontact.NewSyncService(contactRepo, gateway, 100, zap.NewNop())
	handler := NewContactHandler(contactService, syncService)

	router := gin.New()
	return router, contactRepo, gateway, handler
}

func TestContactHandler_Create(t *testing.T) {
	t.Run("should create contact successfully", func(t *testing.T) {
		router, contactRepo, _, handler := setupContactTestRouter()
		router.POST("/contacts", handler.Create)

		contactRepo.On("Save", mock.Anything, mock.AnythingOfType("*contact.Contact")).
			Return(nil)

		reqBody := appcontact.CreateContactRequest{CompanyName: "Acme GmbH"}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/contacts", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.True(t, response["success"].(bool))

		data := response["data"].(map[string]interface{})
		assert.Equal(t, "Acme GmbH", data["company_name"])
		assert.Equal(t, false, data["synced"])

		contactRepo.AssertExpectations(t)
	})

	t.Run("should return error for missing company name", func(t *testing.T) {
		router, _, _, handler := setupContactTestRouter()
		router.POST("/contacts", handler.Create)

		body, _ := json.Marshal(map[string]interface{}{})

		req, _ := http.NewRequest(http.MethodPost, "/contacts", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestContactHandler_GetByID(t *testing.T) {
	t.Run("should get contact by ID", func(t *testing.T) {
		router, contactRepo, _, handler := setupContactTestRouter()
		router.GET("/contacts/:id", handler.GetByID)

		testContact := createSyncedContact("Acme GmbH", "remote-contact-1")
		contactRepo.On("FindByID", mock.Anything, testContact.ID).
			Return(testContact, nil)

		req, _ := http.NewRequest(http.MethodGet, "/contacts/"+testContact.ID.String(), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)

		data := response["data"].(map[string]interface{})
		assert.Equal(t, "remote-contact-1", data["remote_contact_id"])
		assert.Equal(t, true, data["synced"])

		contactRepo.AssertExpectations(t)
	})

	t.Run("should return 404 for non-existent contact", func(t *testing.T) {
		router, contactRepo, _, handler := setupContactTestRouter()
		router.GET("/contacts/:id", handler.GetByID)

		contactID := uuid.New()
		contactRepo.On("FindByID", mock.Anything, contactID).
			Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodGet, "/contacts/"+contactID.String(), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		contactRepo.AssertExpectations(t)
	})

	t.Run("should return error for invalid contact ID", func(t *testing.T) {
		router, _, _, handler := setupContactTestRouter()
		router.GET("/contacts/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/contacts/not-a-uuid", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestContactHandler_List(t *testing.T) {
	t.Run("should list contacts with pagination meta", func(t *testing.T) {
		router, contactRepo, _, handler := setupContactTestRouter()
		router.GET("/contacts", handler.List)

		testContact := createTestContact("Acme GmbH")
		contactRepo.On("FindAll", mock.Anything, mock.AnythingOfType("contact.ContactFilter")).
			Return([]contact.Contact{*testContact}, nil)
		contactRepo.On("Count", mock.Anything, mock.AnythingOfType("contact.ContactFilter")).
			Return(int64(1), nil)

		req, _ := http.NewRequest(http.MethodGet, "/contacts?search=acme&page=1&page_size=20", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.True(t, response["success"].(bool))

		meta := response["meta"].(map[string]interface{})
		assert.Equal(t, float64(1), meta["total"])

		contactRepo.AssertExpectations(t)
	})
}

func TestContactHandler_Sync(t *testing.T) {
	t.Run("should sync contacts from remote", func(t *testing.T) {
		router, contactRepo, gateway, handler := setupContactTestRouter()
		router.POST("/contacts/sync", handler.Sync)

		pageBody := []byte(`{
			"content": [
				{
					"id": "remote-contact-1",
					"organizationId": "org-1",
					"version": 2,
					"roles": {"customer": {"number": 10001}},
					"company": {"name": "Acme GmbH", "allowTaxFreeInvoices": false},
					"archived": false
				}
			],
			"totalPages": 1,
			"totalElements": 1,
			"number": 0,
			"last": true
		}`)

		gateway.On("ListContacts", mock.Anything, 0, 100).
			Return(&remote.Response{StatusCode: 200, Body: pageBody})
		contactRepo.On("FindByRemoteContactID", mock.Anything, "remote-contact-1").
			Return(nil, shared.ErrNotFound)
		contactRepo.On("Save", mock.Anything, mock.AnythingOfType("*contact.Contact")).
			Return(nil)

		req, _ := http.NewRequest(http.MethodPost, "/contacts/sync", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.True(t, response["success"].(bool))

		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["pages"])
		assert.Equal(t, float64(1), data["fetched"])
		assert.Equal(t, float64(1), data["created"])
		assert.Equal(t, float64(0), data["updated"])

		gateway.AssertExpectations(t)
		contactRepo.AssertExpectations(t)
	})

	t.Run("should return 500 when remote listing fails", func(t *testing.T) {
		router, _, gateway, handler := setupContactTestRouter()
		router.POST("/contacts/sync", handler.Sync)

		gateway.On("ListContacts", mock.Anything, 0, 100).
			Return(&remote.Response{StatusCode: 503, Body: []byte(`{"message":"maintenance"}`)})

		req, _ := http.NewRequest(http.MethodPost, "/contacts/sync", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		gateway.AssertExpectations(t)
	})
}
