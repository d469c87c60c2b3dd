// Package handlers wires the HTTP surface to the persistence gateway. Every
// handler follows the same discipline: decode/validate, one gateway call per
// step, translate failures into the httpx envelope. Backend detail is logged,
// never returned.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/orcapro/orcapro/internal/auth"
	"github.com/orcapro/orcapro/internal/httpx"
	"github.com/orcapro/orcapro/internal/middleware"
	"github.com/orcapro/orcapro/internal/models"
	"github.com/orcapro/orcapro/internal/store"
)

// decodeJSON reads a request body into dst, rejecting unknown behavior
// loosely: unknown fields are ignored, malformed JSON is an error.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// currentUser loads the session user from the store. Handlers that gate on
// the subscription flag need the full record, not just the id.
func currentUser(r *http.Request, st store.Store) (*models.User, error) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return nil, store.ErrNotFound
	}
	return st.UserByID(r.Context(), uid)
}

// failStore maps a gateway error onto the envelope: not-found and
// not-configured keep their codes, everything else collapses to a generic
// internal error with the detail logged only.
func failStore(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	lang := middleware.LangFrom(r)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.Fail(w, lang, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, store.ErrNotConfigured):
		httpx.Fail(w, lang, http.StatusServiceUnavailable, "not_configured", nil)
	default:
		log.Error("store call failed", zap.String("path", r.URL.Path), zap.Error(err))
		httpx.Fail(w, lang, http.StatusInternalServerError, "internal_error", nil)
	}
}

func failValidation(w http.ResponseWriter, r *http.Request, details any) {
	httpx.Fail(w, middleware.LangFrom(r), http.StatusBadRequest, "required", details)
}
