package honeycomb

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError reports invalid construction input. No request has been sent
// when a ConfigError is returned.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "honeycomb: invalid config: " + e.Reason
}

// APIError reports a failed round trip: either a non-2xx response (Status and
// Body carry the server's answer) or a transport failure (Status is zero and
// Err holds the cause). The client never retries; callers decide.
type APIError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("honeycomb: request failed: %v", e.Err)
	}
	return fmt.Sprintf("honeycomb: request failed: status %d: %s", e.Status, bodySnippet(e.Body))
}

func (e *APIError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not valid JSON or is missing
// an expected envelope field.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("honeycomb: decode response: missing field %q", e.Field)
	}
	return fmt.Sprintf("honeycomb: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AsAPIError unwraps err into an *APIError when the chain contains one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
