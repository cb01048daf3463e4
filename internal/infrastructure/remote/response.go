package remote

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Response captures the outcome of one remote API call. Transport failures
// and HTTP error statuses are both carried here instead of surfacing as Go
// errors, so callers can interpret the outcome in one place.
type Response struct {
	StatusCode int
	Body       []byte
	Err        error
}

// IsSuccess reports whether the call reached the remote service and was
// answered with a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrorCode returns the HTTP status as a string, or nil when the call never
// produced a status (transport failure).
func (r *Response) ErrorCode() *string {
	if r.StatusCode == 0 {
		return nil
	}
	code := strconv.Itoa(r.StatusCode)
	return &code
}

// ErrorMessage extracts a human-readable failure description. Transport
// errors win; otherwise the first recognized field of the error body is
// used, falling back to the HTTP status text.
func (r *Response) ErrorMessage() string {
	if r.Err != nil {
		return r.Err.Error()
	}

	if msg := extractBodyMessage(r.Body); msg != "" {
		return msg
	}

	if text := http.StatusText(r.StatusCode); text != "" {
		return text
	}
	return "unknown error"
}

// messageFields are checked in order against the error body
var messageFields = []string{"message", "msg", "error_description", "detail"}

func extractBodyMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	for _, field := range messageFields {
		if value, ok := parsed[field].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
