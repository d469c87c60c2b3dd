package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/orcapro/orcapro/internal/auth"
	"github.com/orcapro/orcapro/internal/httpx"
	"github.com/orcapro/orcapro/internal/middleware"
	"github.com/orcapro/orcapro/internal/models"
	"github.com/orcapro/orcapro/internal/registry"
	"github.com/orcapro/orcapro/internal/store"
	"github.com/orcapro/orcapro/internal/validation"
)

type CompanyHandler struct {
	Store    store.Store
	Registry *registry.Client
	Log      *zap.Logger
}

func NewCompanyHandler(st store.Store, reg *registry.Client, log *zap.Logger) *CompanyHandler {
	return &CompanyHandler{Store: st, Registry: reg, Log: log}
}

// Get returns the user's company profile. Absence is not an error: the
// client gets an empty profile to fill in.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	company, err := h.Store.CompanyByUser(r.Context(), uid)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	if company == nil {
		company = &models.CompanyInfo{UserID: uid}
	}
	httpx.JSON(w, http.StatusOK, company)
}

// Save upserts the single profile row for the user.
func (h *CompanyHandler) Save(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var company models.CompanyInfo
	if err := decodeJSON(r, &company); err != nil {
		failValidation(w, r, map[string]string{"body": "invalid_json"})
		return
	}
	v := validation.Violations{}
	validation.Required("nome", company.Nome, v)
	if !v.Empty() {
		failValidation(w, r, v)
		return
	}
	company.UserID = uid
	if err := h.Store.UpsertCompany(r.Context(), &company); err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, company)
}

// Lookup queries the tax-id registry and returns the profile with the
// returned fields merged in. Nothing is persisted here; the client reviews
// the merged form and saves it explicitly.
func (h *CompanyHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		CNPJ string `json:"cnpj"`
	}
	if err := decodeJSON(r, &req); err != nil {
		failValidation(w, r, map[string]string{"body": "invalid_json"})
		return
	}
	lang := middleware.LangFrom(r)

	data, err := h.Registry.Lookup(r.Context(), req.CNPJ)
	switch {
	case errors.Is(err, registry.ErrInvalidTaxID):
		httpx.Fail(w, lang, http.StatusBadRequest, "invalid_tax_id", nil)
		return
	case errors.Is(err, registry.ErrNotFound):
		httpx.Fail(w, lang, http.StatusNotFound, "tax_id_not_found", nil)
		return
	case err != nil:
		h.Log.Error("registry lookup failed", zap.Error(err))
		httpx.Fail(w, lang, http.StatusBadGateway, "registry_unavailable", nil)
		return
	}

	company, err := h.Store.CompanyByUser(r.Context(), uid)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	if company == nil {
		company = &models.CompanyInfo{UserID: uid}
	}
	company.CNPJ = req.CNPJ
	data.Apply(company)
	httpx.JSON(w, http.StatusOK, company)
}
