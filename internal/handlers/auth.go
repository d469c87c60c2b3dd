package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/orcapro/orcapro/internal/auth"
	"github.com/orcapro/orcapro/internal/httpx"
	"github.com/orcapro/orcapro/internal/middleware"
	"github.com/orcapro/orcapro/internal/models"
	"github.com/orcapro/orcapro/internal/store"
)

type AuthHandler struct {
	Store store.Store
	Log   *zap.Logger
}

func NewAuthHandler(st store.Store, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Store: st, Log: log}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates the account and opens a session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		failValidation(w, r, map[string]string{"body": "invalid_json"})
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		failValidation(w, r, map[string]string{"email": "required", "password": "required"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	user := models.User{Email: req.Email, Password: string(hash)}
	if err := h.Store.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			httpx.Fail(w, middleware.LangFrom(r), http.StatusConflict, "email_taken", nil)
			return
		}
		failStore(w, r, h.Log, err)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusCreated, user)
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		failValidation(w, r, map[string]string{"body": "invalid_json"})
		return
	}
	lang := middleware.LangFrom(r)
	user, err := h.Store.UserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Fail(w, lang, http.StatusUnauthorized, "invalid_credentials", nil)
			return
		}
		failStore(w, r, h.Log, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.Fail(w, lang, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, user)
}

// Logout clears the session cookie. Always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.Store)
	if err != nil {
		failStore(w, r, h.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
