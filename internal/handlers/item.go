package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/orcapro/orcapro/internal/auth"
	"github.com/orcapro/orcapro/internal/entitlement"
	"github.com/orcapro/orcapro/internal/httpx"
	"github.com/orcapro/orcapro/internal/middleware"
	"github.com/orcapro/orcapro/internal/models"
	"github.com/orcapro/orcapro/internal/services"
	"github.com/orcapro/orcapro/internal/store"
	"github.com/orcapro/orcapro/internal/validation"
)

type ItemHandler struct {
	Store store.Store
	Gate  *entitlement.Gate
	Log   *zap.Logger
}

func NewItemHandler(st store.Store, gate *entitlement.Gate, log *zap.Logger) *ItemHandler {
	return &ItemHandler{Store: st, Gate: gate, Log: log}
}

// List returns the catalog newest-first, optionally filtered by ?q= on name
// or description.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	items, err := h.Store.Items(r.Context(), uid)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	if q := r.URL.Query().Get("q"); q != "" {
		needle := strings.ToLower(q)
		filtered := make([]models.Item, 0, len(items))
		for _, it := range items {
			if strings.Contains(strings.ToLower(it.Nome), needle) ||
				strings.Contains(strings.ToLower(it.Descricao), needle) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, r.PathValue("id"))
}

// save handles create and update identically: validate, gate the photo
// field, persist. An entitlement failure discards the whole change, leaving
// the stored record untouched.
func (h *ItemHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	user, err := currentUser(r, h.Store)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	var item models.Item
	if err := decodeJSON(r, &item); err != nil {
		failValidation(w, r, map[string]string{"body": "invalid_json"})
		return
	}
	v := validation.Violations{}
	validation.Required("nome", item.Nome, v)
	validation.PositiveFloat("preco", item.Preco, v)
	if item.Categoria != "" {
		validation.OneOf("categoria", item.Categoria, []string{models.CategoriaProduto, models.CategoriaServico}, v)
	}
	if !v.Empty() {
		failValidation(w, r, v)
		return
	}
	if item.Foto != "" && h.Gate.Authorize(user, entitlement.FeaturePhoto) != nil {
		httpx.Fail(w, middleware.LangFrom(r), http.StatusForbidden, "not_entitled", nil)
		return
	}

	item.UserID = user.ID
	if id == "" {
		item.ID = ""
		if err := h.Store.CreateItem(r.Context(), &item); err != nil {
			failStore(w, r, h.Log, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, item)
		return
	}
	item.ID = id
	if err := h.Store.UpdateItem(r.Context(), &item); err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Store.DeleteItem(r.Context(), uid, r.PathValue("id")); err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Adjust applies the bulk percentage price adjustment to every catalog item.
// The updates are per item and not atomic; on a mid-sequence failure the
// count already applied is logged and the client gets a generic error.
func (h *ItemHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		Percentual string `json:"percentual"`
	}
	if err := decodeJSON(r, &req); err != nil {
		failValidation(w, r, map[string]string{"body": "invalid_json"})
		return
	}
	percent, ok := validation.ParsePercent(req.Percentual)
	if !ok {
		httpx.Fail(w, middleware.LangFrom(r), http.StatusBadRequest, "invalid_percent", nil)
		return
	}
	res, err := services.BulkPriceAdjustment(r.Context(), h.Store, uid, percent)
	if err != nil {
		h.Log.Error("bulk price adjustment failed",
			zap.Int("applied", res.Applied), zap.Int("total", res.Total), zap.Error(err))
		httpx.Fail(w, middleware.LangFrom(r), http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
