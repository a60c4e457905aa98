package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/ilkol21/company-crm/internal/domain"
)

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
}

// WriteError translates a domain error into an HTTP response. Unknown
// errors are reported as 500 without leaking their message.
func WriteError(w http.ResponseWriter, err error) {
	resp := errorResponse{StatusCode: http.StatusInternalServerError, Message: "internal server error"}

	switch {
	case domain.IsValidation(err):
		resp.StatusCode = http.StatusBadRequest
		resp.Message = err.Error()
		if v, ok := err.(*domain.ValidationError); ok {
			resp.Field = v.Field
		}
	case domain.IsConflict(err):
		resp.StatusCode = http.StatusBadRequest
		resp.Message = err.Error()
	case domain.IsUnauthorized(err):
		resp.StatusCode = http.StatusUnauthorized
		resp.Message = err.Error()
	case domain.IsForbidden(err):
		resp.StatusCode = http.StatusForbidden
		resp.Message = err.Error()
	case domain.IsNotFound(err):
		resp.StatusCode = http.StatusNotFound
		resp.Message = err.Error()
	}

	WriteJSON(w, resp.StatusCode, resp)
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
