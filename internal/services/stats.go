package services

import (
	"context"
	"math"
	"time"

	"github.com/orcapro/orcapro/internal/models"
	"github.com/orcapro/orcapro/internal/store"
)

// Stats summarizes the current month's quoting activity for the dashboard.
type Stats struct {
	OrcamentosNoMes int     `json:"orcamentos_no_mes"`
	TotalNoMes      float64 `json:"total_no_mes"`
	TaxaAprovacao   int     `json:"taxa_aprovacao"` // percent, rounded
}

// MonthlyStats loads the quotes created since the first day of the current
// month and derives count, summed total and approval rate.
func MonthlyStats(ctx context.Context, st store.Store, userID string, now time.Time) (Stats, error) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	quotes, err := st.QuotesSince(ctx, userID, firstOfMonth)
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	var approved int
	for _, q := range quotes {
		s.OrcamentosNoMes++
		s.TotalNoMes += q.Total
		if q.Status == models.StatusAprovado {
			approved++
		}
	}
	if s.OrcamentosNoMes > 0 {
		s.TaxaAprovacao = int(math.Round(float64(approved) / float64(s.OrcamentosNoMes) * 100))
	}
	return s, nil
}
