package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog item categories.
const (
	CategoriaProduto = "Produto"
	CategoriaServico = "Serviço"
)

// Item is a reusable product/service definition. The photo is a premium field
// and may only be set for subscribed users.
type Item struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	UserID    string  `gorm:"size:36;index;not null" json:"user_id"`
	Nome      string  `gorm:"not null" json:"nome"`
	Descricao string  `json:"descricao"`
	Categoria string  `gorm:"not null;default:'Produto'" json:"categoria"`
	Preco     float64 `gorm:"not null" json:"preco"`
	Unidade   string  `json:"unidade"` // UN, M², KG, HR...
	Foto      string  `gorm:"type:text" json:"foto"` // base64 data URL, premium
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Item) TableName() string { return "itens" }

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
