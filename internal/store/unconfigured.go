package store

import (
	"context"
	"time"

	"github.com/orcapro/orcapro/internal/models"
)

// Unconfigured is the stand-in store used when no DATABASE_DSN is set. Every
// call reports the same condition so the UI can degrade to setup instructions
// instead of crashing.
type Unconfigured struct{}

func NewUnconfigured() Store { return Unconfigured{} }

func (Unconfigured) Ping(context.Context) error { return ErrNotConfigured }

func (Unconfigured) CreateUser(context.Context, *models.User) error { return ErrNotConfigured }
func (Unconfigured) UserByEmail(context.Context, string) (*models.User, error) {
	return nil, ErrNotConfigured
}
func (Unconfigured) UserByID(context.Context, string) (*models.User, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) CompanyByUser(context.Context, string) (*models.CompanyInfo, error) {
	return nil, ErrNotConfigured
}
func (Unconfigured) UpsertCompany(context.Context, *models.CompanyInfo) error {
	return ErrNotConfigured
}

func (Unconfigured) Clients(context.Context, string) ([]models.Client, error) {
	return nil, ErrNotConfigured
}
func (Unconfigured) ClientByID(context.Context, string, string) (*models.Client, error) {
	return nil, ErrNotConfigured
}
func (Unconfigured) CreateClient(context.Context, *models.Client) error { return ErrNotConfigured }
func (Unconfigured) UpdateClient(context.Context, *models.Client) error { return ErrNotConfigured }
func (Unconfigured) DeleteClient(context.Context, string, string) error { return ErrNotConfigured }

func (Unconfigured) Items(context.Context, string) ([]models.Item, error) {
	return nil, ErrNotConfigured
}
func (Unconfigured) ItemByID(context.Context, string, string) (*models.Item, error) {
	return nil, ErrNotConfigured
}
func (Unconfigured) CreateItem(context.Context, *models.Item) error { return ErrNotConfigured }
func (Unconfigured) UpdateItem(context.Context, *models.Item) error { return ErrNotConfigured }
func (Unconfigured) DeleteItem(context.Context, string, string) error { return ErrNotConfigured }
func (Unconfigured) UpdateItemPrice(context.Context, string, string, float64) error {
	return ErrNotConfigured
}

func (Unconfigured) Quotes(context.Context, string) ([]models.Quote, error) {
	return nil, ErrNotConfigured
}
func (Unconfigured) QuotesSince(context.Context, string, time.Time) ([]models.Quote, error) {
	return nil, ErrNotConfigured
}
func (Unconfigured) QuoteByID(context.Context, string, string) (*models.Quote, error) {
	return nil, ErrNotConfigured
}
func (Unconfigured) CreateQuote(context.Context, *models.Quote) error { return ErrNotConfigured }
func (Unconfigured) DeleteQuote(context.Context, string, string) error { return ErrNotConfigured }
