package services

import (
	"errors"
	"time"

	"github.com/orcapro/orcapro/internal/models"
)

// Draft composition errors.
var (
	ErrDuplicateItem    = errors.New("duplicate_item")
	ErrNoClientSelected = errors.New("no_client_selected")
	ErrNoItems          = errors.New("no_items")
)

// Draft is an in-progress quote. It holds snapshots of catalog items: once
// added, a line keeps the name/description/price it was added with.
type Draft struct {
	ClienteID   string
	Itens       []models.QuoteLineItem
	Observacoes string
	Assinatura  string
}

func (d *Draft) SelectClient(clienteID string) {
	d.ClienteID = clienteID
}

// AddItem snapshots a catalog item into the draft with quantity 1. Adding an
// item that is already present leaves the draft unchanged and reports
// ErrDuplicateItem.
func (d *Draft) AddItem(item models.Item) error {
	for _, li := range d.Itens {
		if li.ItemID == item.ID {
			return ErrDuplicateItem
		}
	}
	d.Itens = append(d.Itens, models.QuoteLineItem{
		ItemID:     item.ID,
		Nome:       item.Nome,
		Descricao:  item.Descricao,
		Preco:      item.Preco,
		Quantidade: 1,
		Subtotal:   item.Preco,
	})
	return nil
}

// SetQuantity recomputes the line's subtotal from its snapshotted price.
// Non-positive quantities fall back to 1.
func (d *Draft) SetQuantity(itemID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range d.Itens {
		if d.Itens[i].ItemID == itemID {
			d.Itens[i].Quantidade = qty
			d.Itens[i].Subtotal = d.Itens[i].Preco * float64(qty)
			return
		}
	}
}

func (d *Draft) RemoveItem(itemID string) {
	for i, li := range d.Itens {
		if li.ItemID == itemID {
			d.Itens = append(d.Itens[:i], d.Itens[i+1:]...)
			return
		}
	}
}

// Total sums the line subtotals. Recomputed on demand, never cached.
func (d *Draft) Total() float64 {
	var sum float64
	for _, li := range d.Itens {
		sum += li.Subtotal
	}
	return sum
}

// Validate checks the save preconditions: a selected client and at least one
// line item. The signature entitlement check lives with the caller, which
// knows the acting user.
func (d *Draft) Validate() error {
	if d.ClienteID == "" {
		return ErrNoClientSelected
	}
	if len(d.Itens) == 0 {
		return ErrNoItems
	}
	return nil
}

// Quote materializes the draft as a persistable record with status pending.
func (d *Draft) Quote(userID string) *models.Quote {
	return &models.Quote{
		UserID:      userID,
		ClienteID:   d.ClienteID,
		Itens:       d.Itens,
		Total:       d.Total(),
		Status:      models.StatusPendente,
		Observacoes: d.Observacoes,
		Assinatura:  d.Assinatura,
	}
}

// DuplicateQuote copies every field of a persisted quote except id and
// created-at; status and line items carry over verbatim.
func DuplicateQuote(q models.Quote) models.Quote {
	copied := q
	copied.ID = ""
	copied.CreatedAt = time.Time{}
	copied.UpdatedAt = time.Time{}
	return copied
}
