package habitat

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError describes a response the server did send: a non-2xx status plus
// whatever the body carried. Transport failures (no response at all) are
// returned as plain wrapped errors instead, so callers can tell the two
// apart with errors.As.
type APIError struct {
	StatusCode int

	// Common message-bearing body fields, decoded permissively. Backends
	// disagree on which one they use, so all four are kept.
	Message string
	Reason  string // the body's "error" field
	Details string
	Title   string

	// Body holds the trimmed raw body when it carried no recognizable field.
	Body string
}

func (e *APIError) Error() string {
	if msg := e.text(); msg != "" {
		return fmt.Sprintf("server returned status %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Text returns the most specific message the body carried, in the fixed
// priority order message, error, details, title, raw body.
func (e *APIError) Text() string {
	return e.text()
}

func (e *APIError) text() string {
	for _, candidate := range []string{e.Message, e.Reason, e.Details, e.Title, e.Body} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// newAPIError decodes an error body without ever failing: JSON objects get
// their message fields probed (one level of nesting tolerated), JSON strings
// become the message, anything else is kept as raw text.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return apiErr
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		apiErr.Message = messageString(fields["message"])
		apiErr.Reason = messageString(fields["error"])
		apiErr.Details = messageString(fields["details"])
		apiErr.Title = messageString(fields["title"])
		if apiErr.text() == "" {
			apiErr.Body = trimmed
		}
		return apiErr
	}

	var text string
	if err := json.Unmarshal(body, &text); err == nil {
		apiErr.Message = strings.TrimSpace(text)
		return apiErr
	}

	apiErr.Body = trimmed
	return apiErr
}

// messageString coerces a body field into display text. Some backends nest
// an object under "error"; in that case the inner message fields are probed.
func messageString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		for _, key := range []string{"message", "error", "details", "title"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
