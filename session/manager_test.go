package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func withCookies(r *http.Request, resp *httptest.ResponseRecorder) *http.Request {
	for _, c := range resp.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestHasWithoutCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", time.Hour, false)

	ok, err := m.Has(httptest.NewRequest(http.MethodGet, "/admin", nil), Admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected anonymous request to lack the admin flag")
	}
}

func TestGrantThenRevoke(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, "secret", time.Hour, false)

	granted := httptest.NewRecorder()
	if err := m.Grant(granted, httptest.NewRequest(http.MethodPost, "/admin/login", nil), Admin); err != nil {
		t.Fatalf("grant: %v", err)
	}
	cookies := granted.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected one session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("expected HttpOnly session cookie")
	}

	r := withCookies(httptest.NewRequest(http.MethodGet, "/admin", nil), granted)
	ok, err := m.Has(r, Admin)
	if err != nil || !ok {
		t.Fatalf("expected admin flag after grant, got %v (%v)", ok, err)
	}

	revoked := httptest.NewRecorder()
	if err := m.Revoke(revoked, r, Admin); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, _ = m.Has(r, Admin)
	if ok {
		t.Fatal("expected admin flag to be gone after revoke")
	}
	expired := revoked.Result().Cookies()
	if len(expired) != 1 || expired[0].MaxAge >= 0 {
		t.Fatalf("expected the session cookie to be expired, got %v", expired)
	}
}

func TestRevokeWithoutSessionIsNoop(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", time.Hour, false)
	resp := httptest.NewRecorder()

	if err := m.Revoke(resp, httptest.NewRequest(http.MethodGet, "/logout", nil), Admin); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("expected no cookie to be written")
	}
}

func TestGrantRotatesToken(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, "secret", time.Hour, false)

	first := httptest.NewRecorder()
	m.Grant(first, httptest.NewRequest(http.MethodPost, "/admin/login", nil), Admin)
	r := withCookies(httptest.NewRequest(http.MethodPost, "/admin/login", nil), first)
	oldToken, err := m.Token(r)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	second := httptest.NewRecorder()
	if err := m.Grant(second, r, Admin); err != nil {
		t.Fatalf("grant again: %v", err)
	}
	newToken, err := m.Token(withCookies(httptest.NewRequest(http.MethodGet, "/admin", nil), second))
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if newToken == oldToken {
		t.Fatal("expected a fresh token on every grant")
	}

	flags, _ := store.Get(context.Background(), oldToken)
	if len(flags) != 0 {
		t.Fatalf("expected old token to be dropped, got %v", flags)
	}
}

func TestTamperedCookieIsIgnored(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", time.Hour, false)
	granted := httptest.NewRecorder()
	m.Grant(granted, httptest.NewRequest(http.MethodPost, "/admin/login", nil), Admin)

	other := NewManager(NewMemoryStore(), "another-secret", time.Hour, false)
	r := withCookies(httptest.NewRequest(http.MethodGet, "/admin", nil), granted)
	if _, err := other.Token(r); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession for cookie signed with another key, got %v", err)
	}

	r = httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	ok, err := m.Has(r, Admin)
	if err != nil || ok {
		t.Fatalf("expected garbage cookie to be anonymous, got %v (%v)", ok, err)
	}
}
