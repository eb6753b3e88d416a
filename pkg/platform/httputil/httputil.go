// Package httputil centralizes JSON response writing and domain error
// translation so every handler produces the same envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "policy-manager/pkg/domain-errors"
)

// ErrorResponse is the 4xx/5xx envelope: {"detail": "..."} with per-field
// detail attached for validation failures only.
type ErrorResponse struct {
	Detail string               `json:"detail"`
	Errors []dErrors.FieldError `json:"errors,omitempty"`
}

// DecodeJSON decodes the request body into v. A body that is not valid JSON
// is a schema failure, so it surfaces through the 422 validation envelope.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.NewValidation([]dErrors.FieldError{
			{Field: "body", Message: "must be valid JSON"},
		})
	}
	return nil
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP status and envelope.
// Internal errors always return the generic message; the real detail belongs
// in the server log, not the response.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := ErrorResponse{Detail: dErrors.MessageOf(err)}
	if code == dErrors.CodeInternal {
		resp.Detail = "Internal server error"
	}
	if code == dErrors.CodeValidation {
		resp.Detail = "Validation error"
		resp.Errors = dErrors.FieldsOf(err)
	}
	WriteJSON(w, StatusFor(code), resp)
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidID, dErrors.CodeDuplicateEmail, dErrors.CodeAlreadyAssigned, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
