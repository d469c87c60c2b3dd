package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/orcapro/orcapro/internal/auth"
	"github.com/orcapro/orcapro/internal/entitlement"
	"github.com/orcapro/orcapro/internal/httpx"
	"github.com/orcapro/orcapro/internal/i18n"
	"github.com/orcapro/orcapro/internal/middleware"
	"github.com/orcapro/orcapro/internal/models"
	"github.com/orcapro/orcapro/internal/pdf"
	"github.com/orcapro/orcapro/internal/services"
	"github.com/orcapro/orcapro/internal/share"
	"github.com/orcapro/orcapro/internal/store"
)

type QuoteHandler struct {
	Store store.Store
	Gate  *entitlement.Gate
	Log   *zap.Logger
}

func NewQuoteHandler(st store.Store, gate *entitlement.Gate, log *zap.Logger) *QuoteHandler {
	return &QuoteHandler{Store: st, Gate: gate, Log: log}
}

// draftRequest is the composer payload: the selected client plus item
// references with quantities. Prices are snapshotted server-side from the
// catalog, never taken from the request.
type draftRequest struct {
	ClienteID   string `json:"cliente_id"`
	Itens       []struct {
		ItemID     string `json:"item_id"`
		Quantidade int    `json:"quantidade"`
	} `json:"itens"`
	Observacoes string `json:"observacoes"`
	Assinatura  string `json:"assinatura"`
}

// buildDraft replays the composer operations over the request payload.
func (h *QuoteHandler) buildDraft(w http.ResponseWriter, r *http.Request, uid string) (*services.Draft, bool) {
	var req draftRequest
	if err := decodeJSON(r, &req); err != nil {
		failValidation(w, r, map[string]string{"body": "invalid_json"})
		return nil, false
	}
	lang := middleware.LangFrom(r)
	draft := &services.Draft{Observacoes: req.Observacoes, Assinatura: req.Assinatura}
	draft.SelectClient(req.ClienteID)
	for _, entry := range req.Itens {
		item, err := h.Store.ItemByID(r.Context(), uid, entry.ItemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				failValidation(w, r, map[string]string{"itens": "unknown_item"})
				return nil, false
			}
			failStore(w, r, h.Log, err)
			return nil, false
		}
		if err := draft.AddItem(*item); err != nil {
			httpx.Fail(w, lang, http.StatusBadRequest, "duplicate_item", map[string]string{"item_id": entry.ItemID})
			return nil, false
		}
		draft.SetQuantity(item.ID, entry.Quantidade)
	}
	return draft, true
}

func (h *QuoteHandler) validateDraft(w http.ResponseWriter, r *http.Request, user *models.User, draft *services.Draft) bool {
	lang := middleware.LangFrom(r)
	if err := draft.Validate(); err != nil {
		switch {
		case errors.Is(err, services.ErrNoClientSelected):
			httpx.Fail(w, lang, http.StatusBadRequest, "no_client_selected", nil)
		default:
			httpx.Fail(w, lang, http.StatusBadRequest, "no_items", nil)
		}
		return false
	}
	if draft.Assinatura != "" && h.Gate.Authorize(user, entitlement.FeatureSignature) != nil {
		httpx.Fail(w, lang, http.StatusForbidden, "not_entitled", nil)
		return false
	}
	return true
}

// Create persists a draft as a new pending quote.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.Store)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	draft, ok := h.buildDraft(w, r, user.ID)
	if !ok {
		return
	}
	if !h.validateDraft(w, r, user, draft) {
		return
	}
	quote := draft.Quote(user.ID)
	if err := h.Store.CreateQuote(r.Context(), quote); err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, quote)
}

// quoteView decorates a quote with the resolved client name and badge color
// for the ledger.
type quoteView struct {
	models.Quote
	ClienteNome string `json:"cliente_nome"`
	Badge       string `json:"badge"`
}

// List returns the ledger newest-first. ?q= filters case-insensitively on
// the resolved client name; quotes whose client was deleted resolve to the
// translated "client not found" fallback and are still listed.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	quotes, err := h.Store.Quotes(r.Context(), uid)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	clients, err := h.Store.Clients(r.Context(), uid)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Nome
	}
	fallback := i18n.T(middleware.LangFrom(r), "client_not_found")

	q := strings.ToLower(r.URL.Query().Get("q"))
	views := make([]quoteView, 0, len(quotes))
	for _, quote := range quotes {
		nome, ok := names[quote.ClienteID]
		if !ok {
			nome = fallback
		}
		if q != "" && !strings.Contains(strings.ToLower(nome), q) {
			continue
		}
		views = append(views, quoteView{Quote: quote, ClienteNome: nome, Badge: quote.BadgeColor()})
	}
	httpx.JSON(w, http.StatusOK, views)
}

// Duplicate copies a quote into a new record, dropping only id and
// created-at. Status and line items carry over verbatim.
func (h *QuoteHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	original, err := h.Store.QuoteByID(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	copied := services.DuplicateQuote(*original)
	if err := h.Store.CreateQuote(r.Context(), &copied); err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, copied)
}

func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Store.DeleteQuote(r.Context(), uid, r.PathValue("id")); err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PDF streams the rendered document for a persisted quote.
func (h *QuoteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.Store)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	quote, err := h.Store.QuoteByID(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	h.renderPDF(w, r, user, quote)
}

// PreviewPDF renders a draft payload without persisting anything; the
// composer's "generate PDF" action.
func (h *QuoteHandler) PreviewPDF(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.Store)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	draft, ok := h.buildDraft(w, r, user.ID)
	if !ok {
		return
	}
	if !h.validateDraft(w, r, user, draft) {
		return
	}
	h.renderPDF(w, r, user, draft.Quote(user.ID))
}

func (h *QuoteHandler) renderPDF(w http.ResponseWriter, r *http.Request, user *models.User, quote *models.Quote) {
	company, err := h.Store.CompanyByUser(r.Context(), user.ID)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	if company == nil {
		company = &models.CompanyInfo{UserID: user.ID}
	}
	client, err := h.Store.ClientByID(r.Context(), user.ID, quote.ClienteID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			failStore(w, r, h.Log, err)
			return
		}
		client = &models.Client{Nome: i18n.T(middleware.LangFrom(r), "client_not_found")}
	}
	entitled := h.Gate.Allows(user, entitlement.FeatureAdFree)
	data, err := pdf.Render(quote, company, client, entitled)
	if err != nil {
		h.Log.Error("pdf generation failed", zap.Error(err))
		httpx.Fail(w, middleware.LangFrom(r), http.StatusInternalServerError, "internal_error", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	name := "orcamento"
	if quote.ID != "" {
		name += "-" + quote.ID
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// WhatsApp returns the deep link for sending a persisted quote to its
// client. Requires the client to still exist: without a phone number there
// is nothing to address.
func (h *QuoteHandler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	quote, err := h.Store.QuoteByID(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	client, err := h.Store.ClientByID(r.Context(), uid, quote.ClienteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Fail(w, middleware.LangFrom(r), http.StatusNotFound, "client_not_found", nil)
			return
		}
		failStore(w, r, h.Log, err)
		return
	}
	message := share.QuoteMessage(client.Nome, quote.Total)
	httpx.JSON(w, http.StatusOK, map[string]string{
		"url":      share.WhatsAppLink(client.Telefone, message),
		"mensagem": message,
	})
}

// PreviewWhatsApp builds the deep link for an unsaved draft.
func (h *QuoteHandler) PreviewWhatsApp(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.Store)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	draft, ok := h.buildDraft(w, r, user.ID)
	if !ok {
		return
	}
	if !h.validateDraft(w, r, user, draft) {
		return
	}
	client, err := h.Store.ClientByID(r.Context(), user.ID, draft.ClienteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Fail(w, middleware.LangFrom(r), http.StatusNotFound, "client_not_found", nil)
			return
		}
		failStore(w, r, h.Log, err)
		return
	}
	message := share.QuoteMessage(client.Nome, draft.Total())
	httpx.JSON(w, http.StatusOK, map[string]string{
		"url":      share.WhatsAppLink(client.Telefone, message),
		"mensagem": message,
	})
}
