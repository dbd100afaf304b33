package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const fallbackMessage = "request failed"

// APIError is a normalised upstream failure. Message is what the user gets to see.
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationDetail struct {
	Loc []interface{} `json:"loc"`
	Msg string        `json:"msg"`
}

// newAPIError reads `detail` (a string or a list of validation entries), then `message`,
// then falls back to a generic text.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: fallbackMessage}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}

	if msg := detailMessage(parsed.Detail); msg != "" {
		apiErr.Message = msg
		return apiErr
	}
	if strings.TrimSpace(parsed.Message) != "" {
		apiErr.Message = parsed.Message
	}
	return apiErr
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var entries []validationDetail
	if err := json.Unmarshal(raw, &entries); err == nil {
		messages := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.Msg != "" {
				messages = append(messages, entry.Msg)
			}
		}
		return strings.Join(messages, "; ")
	}
	return ""
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// HasMessage reports whether err carries text from the server rather than the generic fallback.
func HasMessage(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != fallbackMessage
}

// Message extracts the text to show in a toast for any error returned by this package.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallbackMessage
}
