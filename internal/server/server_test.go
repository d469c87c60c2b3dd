package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orcapro/orcapro/internal/auth"
	"github.com/orcapro/orcapro/internal/config"
	"github.com/orcapro/orcapro/internal/models"
	"github.com/orcapro/orcapro/internal/store"
)

// env bundles a full handler over an in-memory sqlite store. The raw gorm
// connection stays available for fixtures the API cannot produce, like
// flipping the subscription flag or approving a quote.
type env struct {
	t  *testing.T
	h  http.Handler
	db *gorm.DB
	st store.Store
}

func newEnv(t *testing.T) *env {
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
	st := store.NewGorm(conn)
	auth.SetUserVerifier(func(ctx context.Context, uid string) bool {
		_, err := st.UserByID(ctx, uid)
		return err == nil
	})
	t.Cleanup(func() { auth.SetUserVerifier(nil) })

	cfg := config.Config{
		Port:        "0",
		RegistryURL: "http://127.0.0.1:1", // tests that need the registry point it at a fake server
		CheckoutURL: "https://pay.example.com/pro",
	}
	return &env{t: t, h: New(st, cfg, zap.NewNop()), db: conn, st: st}
}

// newEnvWith lets a test override the config, e.g. to aim the registry at a
// local httptest server.
func newEnvWith(t *testing.T, cfg config.Config) *env {
	e := newEnv(t)
	e.h = New(e.st, cfg, zap.NewNop())
	return e
}

func (e *env) do(method, path string, body any, session *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}
	r := httptest.NewRequest(method, path, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		r.AddCookie(session)
	}
	w := httptest.NewRecorder()
	e.h.ServeHTTP(w, r)
	return w
}

func (e *env) decode(w *httptest.ResponseRecorder, dst any) {
	e.t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		e.t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// signup registers an account and returns the session cookie.
func (e *env) signup(email string) *http.Cookie {
	e.t.Helper()
	w := e.do(http.MethodPost, "/auth/signup", map[string]string{"email": email, "password": "s3cret"}, nil)
	if w.Code != http.StatusCreated {
		e.t.Fatalf("signup %s: %d %s", email, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			return c
		}
	}
	e.t.Fatal("signup did not set a session cookie")
	return nil
}

// makePro flips the subscription flag directly in the store.
func (e *env) makePro(email string) {
	e.t.Helper()
	res := e.db.Model(&models.User{}).Where("email = ?", email).Update("plano_pro", true)
	if res.Error != nil || res.RowsAffected == 0 {
		e.t.Fatalf("makePro: %v (%d rows)", res.Error, res.RowsAffected)
	}
}

func (e *env) errorCode(w *httptest.ResponseRecorder) string {
	e.t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	e.decode(w, &body)
	return body.Error
}
