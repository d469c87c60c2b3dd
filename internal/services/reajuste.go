package services

import (
	"context"
	"fmt"

	"github.com/orcapro/orcapro/internal/store"
)

// ReajusteResult reports how the bulk adjustment went. The updates are issued
// per item with no transaction around them, so a mid-sequence failure leaves
// the earlier items adjusted; Applied tells the caller how far it got.
type ReajusteResult struct {
	Percentual float64 `json:"percentual"`
	Applied    int     `json:"itens_atualizados"`
	Total      int     `json:"itens_total"`
}

// BulkPriceAdjustment multiplies every catalog item's price by
// (1 + percent/100) and persists each item individually.
func BulkPriceAdjustment(ctx context.Context, st store.Store, userID string, percent float64) (ReajusteResult, error) {
	items, err := st.Items(ctx, userID)
	if err != nil {
		return ReajusteResult{Percentual: percent}, err
	}
	res := ReajusteResult{Percentual: percent, Total: len(items)}
	factor := 1 + percent/100
	for _, it := range items {
		if err := st.UpdateItemPrice(ctx, userID, it.ID, it.Preco*factor); err != nil {
			return res, fmt.Errorf("adjusted %d of %d items: %w", res.Applied, res.Total, err)
		}
		res.Applied++
	}
	return res, nil
}
