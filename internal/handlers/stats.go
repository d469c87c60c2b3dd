package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/orcapro/orcapro/internal/auth"
	"github.com/orcapro/orcapro/internal/httpx"
	"github.com/orcapro/orcapro/internal/services"
	"github.com/orcapro/orcapro/internal/store"
)

type StatsHandler struct {
	Store store.Store
	Log   *zap.Logger
	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewStatsHandler(st store.Store, log *zap.Logger) *StatsHandler {
	return &StatsHandler{Store: st, Log: log, Now: time.Now}
}

// Monthly returns the dashboard numbers for the current calendar month.
func (h *StatsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	stats, err := services.MonthlyStats(r.Context(), h.Store, uid, h.Now())
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
