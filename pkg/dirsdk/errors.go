package dirsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Machine-checkable error codes used across the API. A client can branch on
// Code to tell retryable input problems from terminal invite states.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInviteUnavailable  = "invite_unavailable"
	ErrorCodeUsernameTaken      = "username_taken"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeConflict           = "conflict"
	ErrorCodeServerError        = "server_error"
)

// APIError is the error body every non-2xx response carries. It implements
// the error interface so SDK callers can inspect it with errors.As.
type APIError struct {
	// StatusCode is the HTTP status of the response, not serialized.
	StatusCode int `json:"-"`

	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("directory api error (%d %s): %s", e.StatusCode, e.Code, e.Message)
}

// parseAPIError reads an error body from a response. It never returns nil
// for a non-2xx response, even when the body is not valid JSON.
func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = ErrorCodeServerError
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
