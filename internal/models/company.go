package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyInfo holds the issuing company's own profile, printed in the quote
// header. At most one row per user; saves go through an upsert keyed on
// user_id and the row is never deleted.
type CompanyInfo struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	Nome        string    `gorm:"not null" json:"nome"`
	Logo        string    `gorm:"type:text" json:"logo"` // base64 data URL, optional
	Telefone    string    `json:"telefone"`
	Whatsapp    string    `json:"whatsapp"`
	CNPJ        string    `json:"cnpj"`
	Endereco    string    `json:"endereco"`
	Responsavel string    `json:"responsavel"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

func (CompanyInfo) TableName() string { return "empresa_info" }

func (c *CompanyInfo) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
