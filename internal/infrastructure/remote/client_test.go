package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lexsync/backend/internal/infrastructure/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.RemoteConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestClientCreateInvoice(t *testing.T) {
	t.Run("sends bearer auth and JSON body", func(t *testing.T) {
		var gotAuth, gotContentType, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"remote-1","resourceUri":"uri","version":1}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		resp := client.CreateInvoice(context.Background(), map[string]string{"title": "x"})

		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "/v1/invoices", gotPath)
		assert.True(t, resp.IsSuccess())
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Contains(t, string(resp.Body), "remote-1")
	})

	t.Run("4xx is not a success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"voucherDate is missing"}`))
		}))
		defer server.Close()

		resp := newTestClient(server.URL).CreateInvoice(context.Background(), map[string]string{})

		assert.False(t, resp.IsSuccess())
		assert.Equal(t, "voucherDate is missing", resp.ErrorMessage())
		require.NotNil(t, resp.ErrorCode())
		assert.Equal(t, "422", *resp.ErrorCode())
	})

	t.Run("transport failure has no status code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // force a connection error

		resp := newTestClient(server.URL).CreateInvoice(context.Background(), map[string]string{})

		assert.False(t, resp.IsSuccess())
		assert.NotNil(t, resp.Err)
		assert.Nil(t, resp.ErrorCode())
		assert.NotEmpty(t, resp.ErrorMessage())
	})
}

func TestClientListContacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/contacts", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("size"))
		w.Write([]byte(`{"content":[],"totalPages":3,"number":2,"last":true}`))
	}))
	defer server.Close()

	resp := newTestClient(server.URL).ListContacts(context.Background(), 2, 50)
	require.True(t, resp.IsSuccess())

	page, err := ParseContactPage(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Number)
	assert.True(t, page.Last)
}

func TestResponseErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		resp     Response
		expected string
	}{
		{
			name:     "transport error wins",
			resp:     Response{StatusCode: 500, Body: []byte(`{"message":"ignored"}`), Err: errors.New("dial tcp: refused")},
			expected: "dial tcp: refused",
		},
		{
			name:     "message field",
			resp:     Response{StatusCode: 400, Body: []byte(`{"message":"bad voucher"}`)},
			expected: "bad voucher",
		},
		{
			name:     "msg field",
			resp:     Response{StatusCode: 400, Body: []byte(`{"msg":"short form"}`)},
			expected: "short form",
		},
		{
			name:     "error_description field",
			resp:     Response{StatusCode: 401, Body: []byte(`{"error_description":"token expired"}`)},
			expected: "token expired",
		},
		{
			name:     "detail field",
			resp:     Response{StatusCode: 403, Body: []byte(`{"detail":"not allowed"}`)},
			expected: "not allowed",
		},
		{
			name:     "falls back to status text",
			resp:     Response{StatusCode: 502, Body: []byte(`{"unrelated":"field"}`)},
			expected: "Bad Gateway",
		},
		{
			name:     "non-JSON body falls back to status text",
			resp:     Response{StatusCode: 503, Body: []byte("<html>oops</html>")},
			expected: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resp.ErrorMessage())
		})
	}
}

func TestParseContactPage(t *testing.T) {
	t.Run("parses records with roles and company", func(t *testing.T) {
		body := []byte(`{
			"content": [
				{
					"id": "remote-1",
					"organizationId": "org-1",
					"version": 3,
					"roles": {"customer": {"number": 10023}},
					"company": {"name": "Musterfirma GmbH", "allowTaxFreeInvoices": true},
					"archived": false
				},
				{"id": "remote-2", "version": 1, "roles": {}}
			],
			"totalPages": 1,
			"totalElements": 2,
			"number": 0,
			"last": true
		}`)

		page, err := ParseContactPage(body)
		require.NoError(t, err)
		require.Len(t, page.Content, 2)

		first := page.Content[0]
		assert.Equal(t, "Musterfirma GmbH", first.CompanyName())
		require.NotNil(t, first.CustomerNumber())
		assert.Equal(t, "10023", *first.CustomerNumber())
		assert.True(t, first.AllowTaxFreeInvoices())

		second := page.Content[1]
		assert.Equal(t, "", second.CompanyName())
		assert.Nil(t, second.CustomerNumber())
		assert.False(t, second.AllowTaxFreeInvoices())
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		_, err := ParseContactPage([]byte("nope"))
		assert.Error(t, err)
	})
}
