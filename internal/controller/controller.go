// Package controller exposes the HTTP surface. Handlers decode the wire
// format, delegate to services and translate domain errors to status
// codes; authorization decisions stay in the middleware and services.
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/middleware"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return &domain.ValidationError{Message: "invalid request body"}
	}
	return nil
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Message: "invalid id parameter", Field: "id"}
	}
	return id, nil
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

func queryFloat(r *http.Request, key string) *float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryTime(r *http.Request, key string) *time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// actor pulls the authenticated identity out of the context. Guarded
// routes always have one; a missing identity is a wiring mistake.
func actor(w http.ResponseWriter, r *http.Request) *domain.User {
	a := middleware.ActorFromContext(r.Context())
	if a == nil {
		middleware.WriteError(w, &domain.UnauthorizedError{Message: "authentication required"})
		return nil
	}
	return a
}
