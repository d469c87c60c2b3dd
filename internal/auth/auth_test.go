package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sessionRequest(cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	return r
}

func TestSessionRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, "user-123")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	uid, ok := ParseSession(sessionRequest(cookies[0]))
	if !ok || uid != "user-123" {
		t.Fatalf("round trip failed: uid=%q ok=%v", uid, ok)
	}
}

func TestParseSessionRejectsTampering(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, "user-123")
	c := w.Result().Cookies()[0]

	// Swap the user id, keep the signature.
	i := strings.LastIndex(c.Value, ".")
	c.Value = "user-456." + c.Value[i+1:]

	if _, ok := ParseSession(sessionRequest(c)); ok {
		t.Fatal("tampered session accepted")
	}
}

func TestParseSessionRejectsGarbage(t *testing.T) {
	for _, v := range []string{"", "nodot", ".sigonly", "uid."} {
		c := &http.Cookie{Name: "session", Value: v}
		if _, ok := ParseSession(sessionRequest(c)); ok {
			t.Fatalf("accepted %q", v)
		}
	}
}

func TestRequireAuthWithoutSession(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthClearsStaleSession(t *testing.T) {
	SetUserVerifier(func(_ context.Context, uid string) bool { return false })
	defer SetUserVerifier(nil)

	rec := httptest.NewRecorder()
	CreateSession(rec, "ghost")
	r := sessionRequest(rec.Result().Cookies()[0])

	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a deleted user")
	})))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("stale session cookie was not cleared")
	}
}

func TestMiddlewareInjectsUserID(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, "user-123")
	r := sessionRequest(rec.Result().Cookies()[0])

	var got string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserIDFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), r)
	if got != "user-123" {
		t.Fatalf("context uid = %q", got)
	}
}
