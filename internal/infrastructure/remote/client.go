package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lexsync/backend/internal/infrastructure/config"
)

const (
	invoicesPath = "/v1/invoices"
	contactsPath = "/v1/contacts"
)

// Client talks to the remote accounting service API.
// Every call authenticates with the configured bearer token; responses are
// wrapped in Response so transport failures and HTTP errors share one path.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new remote API client
func NewClient(cfg config.RemoteConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("remote"),
	}
}

// CreateInvoice submits an invoice payload to the remote service
func (c *Client) CreateInvoice(ctx context.Context, payload any) *Response {
	return c.post(ctx, invoicesPath, payload)
}

// ListContacts fetches one zero-based page of remote contacts
func (c *Client) ListContacts(ctx context.Context, page, size int) *Response {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return c.get(ctx, contactsPath+"?"+query.Encode())
}

func (c *Client) post(ctx context.Context, path string, payload any) *Response {
	body, err := json.Marshal(payload)
	if err != nil {
		return &Response{Err: fmt.Errorf("encoding request body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &Response{Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) *Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Response{Err: fmt.Errorf("building request: %w", err)}
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) *Response {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("remote call failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		return &Response{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Response{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.logger.Debug("remote call completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	return &Response{StatusCode: resp.StatusCode, Body: body}
}
