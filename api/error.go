package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrNotFound         = &Error{Status: http.StatusNotFound}
	ErrInvalidArgument  = &Error{Status: http.StatusBadRequest}
	ErrPermissionDenied = &Error{Status: http.StatusForbidden}
	ErrUnauthorized     = &Error{Status: http.StatusUnauthorized}
)

// Error is the API error returned for any non-2xx response. Detail carries
// the backend-provided human-readable message when the response body had one.
type Error struct {
	Status int    `json:"status"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// AsServerError returns an api *Error from the provided error. If the provided
// error is not an api Error nil is returned instead.
func AsServerError(in error) *Error {
	var serverErr *Error
	if !errors.As(in, &serverErr) {
		return nil
	}
	return serverErr
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("%s (status %d)", http.StatusText(e.Status), e.Status)
}

// Errors are considered the same iff they are both api.Errors and their
// statuses are the same. This makes errors.Is(err, api.ErrNotFound) work
// regardless of the backend detail message.
func (e *Error) Is(target error) bool {
	tApiErr := AsServerError(target)
	return tApiErr != nil && tApiErr.Status == e.Status
}

// ErrorDetail extracts the backend detail message from err, or returns the
// empty string when err carries none. Used by callers that display errors.
func ErrorDetail(err error) string {
	if apiErr := AsServerError(err); apiErr != nil {
		return apiErr.Detail
	}
	return ""
}

// errorBody is the JSON shape the backend uses for error responses.
type errorBody struct {
	Detail  string `json:"detail"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeError builds an *Error from a non-2xx response. The body is read in
// full so the underlying connection can be reused.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var parsed errorBody
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr == nil {
		apiErr.Code = parsed.Code
		apiErr.Detail = parsed.Detail
		if apiErr.Detail == "" {
			apiErr.Detail = parsed.Message
		}
	}

	return apiErr
}
