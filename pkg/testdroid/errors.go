package testdroid

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AuthError represents a failed token acquisition or refresh. Code and
// Description carry the server's OAuth2 error fields.
type AuthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	StatusCode  int    `json:"-"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("authentication failed: %s: %s", e.Code, e.Description)
	case e.Description != "":
		return "authentication failed: " + e.Description
	case e.Code != "":
		return "authentication failed: " + e.Code
	default:
		return fmt.Sprintf("authentication failed with status %d", e.StatusCode)
	}
}

// RequestError represents a non-success HTTP response from the API. Message
// is taken from the server error body when one is present.
type RequestError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}

	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// ProxyTimeoutError reports that the proxy polling retry budget was exhausted
// without the proxy session ever appearing.
type ProxyTimeoutError struct {
	Type      string
	SessionID int64
	Attempts  int
}

// Error implements the error interface.
func (e *ProxyTimeoutError) Error() string {
	return fmt.Sprintf("no %s proxy available for session %d after %d attempts", e.Type, e.SessionID, e.Attempts)
}

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrEndpointRequired    = errors.New("cloud endpoint is required")
	ErrCredentialsRequired = errors.New("username/password or access token is required")
	ErrLabelIDRequired     = errors.New("label id is required")
	ErrLabelNameRequired   = errors.New("label name is required")
	ErrLabelGroupRequired  = errors.New("label group is required")
	ErrLabelGroupNotFound  = errors.New("label group not found")
	ErrLabelNotFound       = errors.New("label not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidProxyType    = errors.New("invalid proxy type")
	ErrStaticTokenRefresh  = errors.New("static token cannot be refreshed")
)

// IsAuthError checks if the error is a token acquisition/refresh failure.
func IsAuthError(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr)
}

// IsRequestError checks if the error is a non-success API response.
func IsRequestError(err error) bool {
	reqErr := &RequestError{}

	return errors.As(err, &reqErr)
}

// IsNotFound checks if the error reports a missing resource, either a failed
// client-side lookup or a 404 from the API.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrLabelGroupNotFound) ||
		errors.Is(err, ErrLabelNotFound) ||
		errors.Is(err, ErrProjectNotFound) {
		return true
	}

	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error indicates missing or rejected
// credentials.
func IsUnauthorized(err error) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusUnauthorized
	}

	return IsAuthError(err)
}

// ParseRequestError builds a RequestError from an error response body. The
// API reports failures as {"error_message": ...} or {"message": ...}; the raw
// body is used when neither field is present.
func ParseRequestError(statusCode int, body []byte) *RequestError {
	var payload struct {
		ErrorMessage string `json:"error_message"`
		Message      string `json:"message"`
	}

	_ = json.Unmarshal(body, &payload)

	message := payload.ErrorMessage
	if message == "" {
		message = payload.Message
	}

	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	return &RequestError{StatusCode: statusCode, Message: message}
}
