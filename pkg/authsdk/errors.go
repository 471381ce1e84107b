package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/emberchat/ember/pkg/httpx"
)

// Error codes returned in the "error" field of failure responses.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeUpstreamAuth      = "upstream_auth_failed"
	ErrorCodeUpstreamProfile   = "upstream_profile_failed"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrorCodeServerError       = "server_error"
)

// APIError is the error envelope for every failure response from the service.
// It implements the error interface and is used both by the HTTP handlers (to
// write responses) and by the SDK client (to surface them).
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

var (
	// ErrInvalidRequest is returned when the request body is malformed or a
	// required parameter is missing.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrUpstreamAuth is returned when GitHub rejects the authorization code.
	// Codes are single-use; the client must restart the OAuth flow.
	ErrUpstreamAuth = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUpstreamAuth,
		Description: "the authorization code was rejected by the identity provider",
	}

	// ErrUpstreamProfile is returned when the profile fetch from GitHub fails
	// after a successful code exchange.
	ErrUpstreamProfile = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeUpstreamProfile,
		Description: "failed to fetch the user profile from the identity provider",
	}

	// ErrInvalidToken is returned when a bearer session token is missing,
	// malformed, expired or fails signature verification.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the session token is missing, invalid or expired",
	}

	// ErrNotFound is returned when the referenced resource does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource was not found",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an unexpected internal error occurred",
	}
)
