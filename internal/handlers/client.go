package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/orcapro/orcapro/internal/auth"
	"github.com/orcapro/orcapro/internal/httpx"
	"github.com/orcapro/orcapro/internal/models"
	"github.com/orcapro/orcapro/internal/store"
	"github.com/orcapro/orcapro/internal/validation"
)

type ClientHandler struct {
	Store store.Store
	Log   *zap.Logger
}

func NewClientHandler(st store.Store, log *zap.Logger) *ClientHandler {
	return &ClientHandler{Store: st, Log: log}
}

// List returns the user's clients, optionally filtered by ?q= with a
// case-insensitive substring match on name or tax id. The filter runs over
// the full in-memory list; there is no server-side search.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	clients, err := h.Store.Clients(r.Context(), uid)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	if q := r.URL.Query().Get("q"); q != "" {
		clients = filterClients(clients, q)
	}
	httpx.JSON(w, http.StatusOK, clients)
}

func filterClients(clients []models.Client, q string) []models.Client {
	needle := strings.ToLower(q)
	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Nome), needle) || strings.Contains(c.CNPJ, q) {
			out = append(out, c)
		}
	}
	return out
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var client models.Client
	if err := decodeJSON(r, &client); err != nil {
		failValidation(w, r, map[string]string{"body": "invalid_json"})
		return
	}
	if v := validateClient(&client); !v.Empty() {
		failValidation(w, r, v)
		return
	}
	client.ID = ""
	client.UserID = uid
	if err := h.Store.CreateClient(r.Context(), &client); err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var client models.Client
	if err := decodeJSON(r, &client); err != nil {
		failValidation(w, r, map[string]string{"body": "invalid_json"})
		return
	}
	if v := validateClient(&client); !v.Empty() {
		failValidation(w, r, v)
		return
	}
	client.ID = r.PathValue("id")
	client.UserID = uid
	if err := h.Store.UpdateClient(r.Context(), &client); err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete is irreversible; the interactive confirmation lives in the client.
// Quotes referencing the client are left in place.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Store.DeleteClient(r.Context(), uid, r.PathValue("id")); err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func validateClient(c *models.Client) validation.Violations {
	v := validation.Violations{}
	validation.Required("nome", c.Nome, v)
	validation.Required("telefone", c.Telefone, v)
	return v
}
