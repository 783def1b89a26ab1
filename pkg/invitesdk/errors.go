package invitesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shiftbook/shiftbook/pkg/httpx"
)

// Error codes used in the {"error", "error_description"} envelope.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeConflict       = "conflict"
	ErrorCodeGone           = "gone"
	ErrorCodeRateLimited    = "rate_limited"
	ErrorCodeServerError    = "server_error"
)

// APIError is the service's wire error. It implements the error interface
// and is used both by the server (to write responses) and by the SDK client
// (to surface them).
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

// WithDescription returns a copy of e carrying a more specific description.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{
		StatusCode:  e.StatusCode,
		Code:        e.Code,
		Description: desc,
	}
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest covers malformed bodies and input that fails
	// validation before any I/O.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrNotFound covers ids and tokens with no matching record.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "invitation not found",
	}

	// ErrConflict covers duplicate pending invitations, registered emails,
	// and invitations that were already accepted.
	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "the request conflicts with the invitation's current state",
	}

	// ErrGone covers expired and cancelled invitations. The record exists
	// but can never be used, which is worth distinguishing from not-found.
	ErrGone = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeGone,
		Description: "invitation is no longer available",
	}

	// ErrRateLimited covers the resend ceiling. It is a property of the
	// invitation, not of the caller's request rate, so it travels as a 400
	// rather than a 429.
	ErrRateLimited = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeRateLimited,
		Description: "resend limit reached for this invitation",
	}

	// ErrServerError covers store and transport failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response body into a typed *APIError.
// Bodies that are not the standard envelope still produce a usable error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Code == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected response (status %d)", resp.StatusCode),
		}
	}
	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}
