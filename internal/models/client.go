package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer a quote can be addressed to. Quotes reference clients
// by id with no cascade: deleting a client leaves its quotes dangling and the
// ledger renders a fallback name for them.
type Client struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	UserID    string `gorm:"size:36;index;not null" json:"user_id"`
	Nome      string `gorm:"not null" json:"nome"`
	Telefone  string `gorm:"not null" json:"telefone"`
	CNPJ      string `json:"cnpj"`
	Endereco  string `json:"endereco"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Client) TableName() string { return "clientes" }

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
