// Package store is the persistence gateway. Handlers depend on the Store
// interface only; the concrete implementation is chosen once at startup:
// gorm-backed when a DSN is configured, otherwise the Unconfigured stub that
// fails every call with ErrNotConfigured instead of crashing the app.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/orcapro/orcapro/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist (or belongs to a
	// different user, which callers must not be able to distinguish).
	ErrNotFound = errors.New("record not found")
	// ErrNotConfigured is the uniform failure of the Unconfigured stub.
	ErrNotConfigured = errors.New("store not configured")
	// ErrEmailTaken is returned by CreateUser on a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
)

// Store exposes row-level CRUD over the five collections plus the auth
// primitives. Every query below the user level is scoped by userID.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)

	// CompanyByUser returns (nil, nil) when no profile exists yet: an empty
	// form, not an error.
	CompanyByUser(ctx context.Context, userID string) (*models.CompanyInfo, error)
	UpsertCompany(ctx context.Context, c *models.CompanyInfo) error

	Clients(ctx context.Context, userID string) ([]models.Client, error)
	ClientByID(ctx context.Context, userID, id string) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, userID, id string) error

	Items(ctx context.Context, userID string) ([]models.Item, error)
	ItemByID(ctx context.Context, userID, id string) (*models.Item, error)
	CreateItem(ctx context.Context, i *models.Item) error
	UpdateItem(ctx context.Context, i *models.Item) error
	DeleteItem(ctx context.Context, userID, id string) error
	// UpdateItemPrice persists a single item's price. The bulk adjustment
	// issues one call per item with no atomicity across them.
	UpdateItemPrice(ctx context.Context, userID, id string, preco float64) error

	Quotes(ctx context.Context, userID string) ([]models.Quote, error)
	QuotesSince(ctx context.Context, userID string, since time.Time) ([]models.Quote, error)
	QuoteByID(ctx context.Context, userID, id string) (*models.Quote, error)
	CreateQuote(ctx context.Context, q *models.Quote) error
	DeleteQuote(ctx context.Context, userID, id string) error
}
