package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orcapro/orcapro/internal/models"
)

func item(id, nome string, preco float64) models.Item {
	return models.Item{ID: id, Nome: nome, Preco: preco}
}

func TestDraftAddItemSnapshotsPrice(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.AddItem(item("a", "Consulting Hour", 150)))

	require.Len(t, d.Itens, 1)
	assert.Equal(t, 1, d.Itens[0].Quantidade)
	assert.Equal(t, 150.0, d.Itens[0].Subtotal)
	assert.Equal(t, "Consulting Hour", d.Itens[0].Nome)
}

func TestDraftAddItemRejectsDuplicate(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.AddItem(item("a", "Parafuso", 2)))

	err := d.AddItem(item("a", "Parafuso", 2))
	assert.ErrorIs(t, err, ErrDuplicateItem)
	assert.Len(t, d.Itens, 1, "duplicate add must leave the draft unchanged")
}

func TestDraftSetQuantityRecomputesSubtotal(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.AddItem(item("a", "Consulting Hour", 150)))

	d.SetQuantity("a", 3)
	assert.Equal(t, 450.0, d.Itens[0].Subtotal)
	assert.Equal(t, 450.0, d.Total())

	// Non-positive quantities fall back to 1.
	d.SetQuantity("a", 0)
	assert.Equal(t, 1, d.Itens[0].Quantidade)
	assert.Equal(t, 150.0, d.Itens[0].Subtotal)

	d.SetQuantity("a", -5)
	assert.Equal(t, 1, d.Itens[0].Quantidade)
}

func TestDraftTotalSumsSubtotals(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.AddItem(item("a", "A", 10)))
	require.NoError(t, d.AddItem(item("b", "B", 2.5)))
	d.SetQuantity("b", 4)

	assert.Equal(t, 20.0, d.Total())

	d.RemoveItem("a")
	assert.Equal(t, 10.0, d.Total())
}

func TestDraftValidate(t *testing.T) {
	d := &Draft{}
	assert.ErrorIs(t, d.Validate(), ErrNoClientSelected)

	d.SelectClient("c1")
	assert.ErrorIs(t, d.Validate(), ErrNoItems)

	require.NoError(t, d.AddItem(item("a", "A", 10)))
	assert.NoError(t, d.Validate())
}

func TestDraftQuoteMaterializesPending(t *testing.T) {
	d := &Draft{Observacoes: "entrega em 5 dias", Assinatura: "Fulano"}
	d.SelectClient("c1")
	require.NoError(t, d.AddItem(item("a", "A", 99.9)))

	q := d.Quote("u1")
	assert.Equal(t, "u1", q.UserID)
	assert.Equal(t, "c1", q.ClienteID)
	assert.Equal(t, models.StatusPendente, q.Status)
	assert.Equal(t, 99.9, q.Total)
	assert.Equal(t, "entrega em 5 dias", q.Observacoes)
	assert.Equal(t, "Fulano", q.Assinatura)
}

func TestDuplicateQuoteResetsIdentityOnly(t *testing.T) {
	orig := models.Quote{
		ID:        "q1",
		UserID:    "u1",
		ClienteID: "c1",
		Itens:     []models.QuoteLineItem{{ItemID: "a", Nome: "A", Preco: 10, Quantidade: 2, Subtotal: 20}},
		Total:     20,
		Status:    models.StatusAprovado,
	}
	copied := DuplicateQuote(orig)

	assert.Empty(t, copied.ID)
	assert.True(t, copied.CreatedAt.IsZero())
	assert.Equal(t, models.StatusAprovado, copied.Status, "status carries over verbatim")
	assert.Equal(t, orig.Itens, copied.Itens)
	assert.Equal(t, orig.Total, copied.Total)
}
