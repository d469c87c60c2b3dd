package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quote statuses as persisted. The flow only ever writes "pendente"; the
// other two are set outside this application (e.g. manually in the store).
const (
	StatusPendente  = "pendente"
	StatusAprovado  = "aprovado"
	StatusRejeitado = "rejeitado"
)

// QuoteLineItem is a snapshot of a catalog item taken when it was added to a
// quote. It is never re-linked to the catalog: later price or name edits on
// the item do not touch existing quotes.
type QuoteLineItem struct {
	ItemID     string  `json:"item_id"`
	Nome       string  `json:"nome"`
	Descricao  string  `json:"descricao"`
	Preco      float64 `json:"preco"`
	Quantidade int     `json:"quantidade"`
	Subtotal   float64 `json:"subtotal"`
}

// Quote is a priced proposal for a single client. Line items are embedded as
// an ordered JSON list; Total must equal the sum of the line subtotals at
// save time.
type Quote struct {
	ID          string                                `gorm:"primaryKey;size:36" json:"id"`
	UserID      string                                `gorm:"size:36;index;not null" json:"user_id"`
	ClienteID   string                                `gorm:"size:36;not null" json:"cliente_id"`
	Itens       datatypes.JSONSlice[QuoteLineItem]    `json:"itens"`
	Total       float64                               `gorm:"not null" json:"total"`
	Status      string                                `gorm:"not null;default:'pendente'" json:"status"`
	Observacoes string                                `json:"observacoes"`
	Assinatura  string                                `json:"assinatura"`
	CreatedAt   time.Time                             `json:"created_at"`
	UpdatedAt   time.Time                             `json:"-"`
}

func (Quote) TableName() string { return "orcamentos" }

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// BadgeColor maps a status to the badge shown in the ledger. Anything
// unrecognized renders like a pending quote.
func (q *Quote) BadgeColor() string {
	switch q.Status {
	case StatusAprovado:
		return "green"
	case StatusRejeitado:
		return "red"
	default:
		return "amber"
	}
}
