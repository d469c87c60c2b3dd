package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/orcapro/orcapro/internal/entitlement"
	"github.com/orcapro/orcapro/internal/httpx"
	"github.com/orcapro/orcapro/internal/store"
)

type PlansHandler struct {
	Store       store.Store
	Gate        *entitlement.Gate
	CheckoutURL string
	Log         *zap.Logger
}

func NewPlansHandler(st store.Store, gate *entitlement.Gate, checkoutURL string, log *zap.Logger) *PlansHandler {
	return &PlansHandler{Store: st, Gate: gate, CheckoutURL: checkoutURL, Log: log}
}

type planView struct {
	Nome     string   `json:"nome"`
	Ativo    bool     `json:"ativo"`
	Recursos []string `json:"recursos"`
	Checkout string   `json:"checkout,omitempty"`
}

// List describes the two plans and which one the user is on. Upgrading
// happens through the external checkout link; the subscription flag is
// flipped out of band.
func (h *PlansHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.Store)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	pro := h.Gate.Allows(user, entitlement.FeatureAdFree)
	plans := []planView{
		{
			Nome:  "Gratuito",
			Ativo: !pro,
			Recursos: []string{
				"Clientes e itens ilimitados",
				"Orçamentos em PDF",
				"Envio por WhatsApp",
			},
		},
		{
			Nome:  "PRO",
			Ativo: pro,
			Recursos: []string{
				"PDF sem marca d'água",
				"Fotos nos itens",
				"Assinatura nos orçamentos",
			},
			Checkout: h.CheckoutURL,
		},
	}
	httpx.JSON(w, http.StatusOK, plans)
}
