package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orcapro/orcapro/internal/models"
)

type gormStore struct {
	db *gorm.DB
}

// NewGorm wraps an open gorm connection in the Store interface.
func NewGorm(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) Ping(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// --- users ---

func (s *gormStore) CreateUser(ctx context.Context, u *models.User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique")) {
		return ErrEmailTaken
	}
	return err
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// --- company profile ---

func (s *gormStore) CompanyByUser(ctx context.Context, userID string) (*models.CompanyInfo, error) {
	var c models.CompanyInfo
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) UpsertCompany(ctx context.Context, c *models.CompanyInfo) error {
	existing, err := s.CompanyByUser(ctx, c.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.db.WithContext(ctx).Create(c).Error
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Model(&models.CompanyInfo{}).
		Where("user_id = ?", c.UserID).
		Select("Nome", "Logo", "Telefone", "Whatsapp", "CNPJ", "Endereco", "Responsavel", "Email").
		Updates(c).Error
}

// --- clients ---

func (s *gormStore) Clients(ctx context.Context, userID string) ([]models.Client, error) {
	var cs []models.Client
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("nome asc").Find(&cs).Error
	return cs, err
}

func (s *gormStore) ClientByID(ctx context.Context, userID, id string) (*models.Client, error) {
	var c models.Client
	if err := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *gormStore) CreateClient(ctx context.Context, c *models.Client) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *gormStore) UpdateClient(ctx context.Context, c *models.Client) error {
	res := s.db.WithContext(ctx).Model(&models.Client{}).
		Where("user_id = ? AND id = ?", c.UserID, c.ID).
		Select("Nome", "Telefone", "CNPJ", "Endereco").
		Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteClient(ctx context.Context, userID, id string) error {
	return deleteScoped[models.Client](s.db.WithContext(ctx), userID, id)
}

// --- catalog items ---

func (s *gormStore) Items(ctx context.Context, userID string) ([]models.Item, error) {
	var is []models.Item
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&is).Error
	return is, err
}

func (s *gormStore) ItemByID(ctx context.Context, userID, id string) (*models.Item, error) {
	var i models.Item
	if err := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&i).Error; err != nil {
		return nil, translate(err)
	}
	return &i, nil
}

func (s *gormStore) CreateItem(ctx context.Context, i *models.Item) error {
	return s.db.WithContext(ctx).Create(i).Error
}

func (s *gormStore) UpdateItem(ctx context.Context, i *models.Item) error {
	res := s.db.WithContext(ctx).Model(&models.Item{}).
		Where("user_id = ? AND id = ?", i.UserID, i.ID).
		Select("Nome", "Descricao", "Categoria", "Preco", "Unidade", "Foto").
		Updates(i)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteItem(ctx context.Context, userID, id string) error {
	return deleteScoped[models.Item](s.db.WithContext(ctx), userID, id)
}

func (s *gormStore) UpdateItemPrice(ctx context.Context, userID, id string, preco float64) error {
	res := s.db.WithContext(ctx).Model(&models.Item{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("preco", preco)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- quotes ---

func (s *gormStore) Quotes(ctx context.Context, userID string) ([]models.Quote, error) {
	var qs []models.Quote
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&qs).Error
	return qs, err
}

func (s *gormStore) QuotesSince(ctx context.Context, userID string, since time.Time) ([]models.Quote, error) {
	var qs []models.Quote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at desc").Find(&qs).Error
	return qs, err
}

func (s *gormStore) QuoteByID(ctx context.Context, userID, id string) (*models.Quote, error) {
	var q models.Quote
	if err := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&q).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (s *gormStore) CreateQuote(ctx context.Context, q *models.Quote) error {
	return s.db.WithContext(ctx).Create(q).Error
}

func (s *gormStore) DeleteQuote(ctx context.Context, userID, id string) error {
	return deleteScoped[models.Quote](s.db.WithContext(ctx), userID, id)
}

func deleteScoped[T any](db *gorm.DB, userID, id string) error {
	var zero T
	res := db.Where("user_id = ? AND id = ?", userID, id).Delete(&zero)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
