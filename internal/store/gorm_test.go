package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orcapro/orcapro/internal/models"
)

func openStore(t *testing.T) Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = conn.AutoMigrate(&models.User{}, &models.CompanyInfo{}, &models.Client{}, &models.Item{}, &models.Quote{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGorm(conn)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	if err := st.CreateUser(ctx, &models.User{Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := st.CreateUser(ctx, &models.User{Email: "a@b.com", Password: "y"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserLookups(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	u := models.User{Email: "a@b.com", Password: "x"}
	if err := st.CreateUser(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("id not assigned on create")
	}

	byEmail, err := st.UserByEmail(ctx, "a@b.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("by email: %v %v", byEmail, err)
	}
	if _, err := st.UserByEmail(ctx, "nobody@b.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.UserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertCompanyKeepsSingleRow(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	if c, err := st.CompanyByUser(ctx, "u1"); err != nil || c != nil {
		t.Fatalf("missing profile should be (nil, nil), got %v %v", c, err)
	}

	first := models.CompanyInfo{UserID: "u1", Nome: "ACME"}
	if err := st.UpsertCompany(ctx, &first); err != nil {
		t.Fatalf("insert: %v", err)
	}
	second := models.CompanyInfo{UserID: "u1", Nome: "ACME Serviços", Telefone: "11 1234"}
	if err := st.UpsertCompany(ctx, &second); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := st.CompanyByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("update must reuse the existing row, got id %s want %s", got.ID, first.ID)
	}
	if got.Nome != "ACME Serviços" || got.Telefone != "11 1234" {
		t.Fatalf("fields not updated: %+v", got)
	}
}

func TestClientCRUDScopedByUser(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	mine := models.Client{UserID: "u1", Nome: "Bruna", Telefone: "11 1111"}
	theirs := models.Client{UserID: "u2", Nome: "Alex", Telefone: "11 2222"}
	for _, c := range []*models.Client{&mine, &theirs} {
		if err := st.CreateClient(ctx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := st.Clients(ctx, "u1")
	if err != nil || len(list) != 1 || list[0].Nome != "Bruna" {
		t.Fatalf("list: %v %v", list, err)
	}

	// Cross-user access looks identical to a missing record.
	if _, err := st.ClientByID(ctx, "u1", theirs.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user read: %v", err)
	}
	if err := st.DeleteClient(ctx, "u1", theirs.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user delete: %v", err)
	}

	mine.Nome = "Bruna Lima"
	if err := st.UpdateClient(ctx, &mine); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := st.ClientByID(ctx, "u1", mine.ID)
	if err != nil || got.Nome != "Bruna Lima" {
		t.Fatalf("after update: %v %v", got, err)
	}

	if err := st.DeleteClient(ctx, "u1", mine.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.ClientByID(ctx, "u1", mine.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: %v", err)
	}
}

func TestClientsOrderedByName(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	for _, nome := range []string{"Carla", "Alex", "Bruna"} {
		if err := st.CreateClient(ctx, &models.Client{UserID: "u1", Nome: nome, Telefone: "x"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, err := st.Clients(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, want := range []string{"Alex", "Bruna", "Carla"} {
		if list[i].Nome != want {
			t.Fatalf("order: got %v", list)
		}
	}
}

func TestUpdateItemPrice(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	it := models.Item{UserID: "u1", Nome: "Parafuso", Preco: 2}
	if err := st.CreateItem(ctx, &it); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.UpdateItemPrice(ctx, "u1", it.ID, 2.2); err != nil {
		t.Fatalf("update price: %v", err)
	}
	got, err := st.ItemByID(ctx, "u1", it.ID)
	if err != nil || got.Preco != 2.2 {
		t.Fatalf("after update: %v %v", got, err)
	}
	if err := st.UpdateItemPrice(ctx, "u1", "missing", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing item: %v", err)
	}
}

func TestQuoteLineItemsRoundTrip(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	q := models.Quote{
		UserID:    "u1",
		ClienteID: "c1",
		Itens: []models.QuoteLineItem{
			{ItemID: "a", Nome: "Consulting Hour", Preco: 150, Quantidade: 3, Subtotal: 450},
		},
		Total:  450,
		Status: models.StatusPendente,
	}
	if err := st.CreateQuote(ctx, &q); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := st.QuoteByID(ctx, "u1", q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Itens) != 1 || got.Itens[0].Subtotal != 450 || got.Itens[0].Nome != "Consulting Hour" {
		t.Fatalf("line items did not survive storage: %+v", got.Itens)
	}
}
