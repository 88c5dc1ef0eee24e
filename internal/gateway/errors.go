package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Every gateway failure reaches callers as exactly one of ValidationError,
// NetworkError or TimeoutError.

// ValidationError is a field-scoped rejection reported by the API, such as a
// duplicate SKU or e-mail. Field is empty for non-field errors.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "api validation: " + e.Message
	}
	return fmt.Sprintf("api validation: %s: %s", e.Field, e.Message)
}

// NetworkError is any other failed exchange. Status is 0 when no response
// was received.
type NetworkError struct {
	Op     string
	Status int
	Raw    []byte
	Err    error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case len(e.Raw) > 0:
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, truncate(string(e.Raw), 200))
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) NotFound() bool { return e.Status == http.StatusNotFound }

// TimeoutError means the request was abandoned after the client timeout.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string { return e.Op + ": request timed out" }

func (e *TimeoutError) Timeout() bool { return true }

// fieldError reads the first message of a DRF style error body:
// {"sku": ["product with this sku already exists."]} or {"detail": "..."}.
func fieldError(body []byte) (*ValidationError, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return nil, false
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		msg := firstMessage(fields[k])
		if msg == "" {
			continue
		}
		field := k
		if k == "non_field_errors" || k == "detail" {
			field = ""
		}
		return &ValidationError{Field: field, Message: msg}, true
	}
	return nil, false
}

func firstMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
