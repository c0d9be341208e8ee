package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/mbolis/survey-box/log"
)

const CookieName = "qsurvey_session"

// Manager ties the session cookie of a request to the flags kept in a Store.
type Manager struct {
	store  Store
	codec  *securecookie.SecureCookie
	maxAge int
	secure bool
}

func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	maxAge := int(ttl / time.Second)
	codec := securecookie.New([]byte(secret), nil)
	codec.MaxAge(maxAge)

	return &Manager{
		store:  store,
		codec:  codec,
		maxAge: maxAge,
		secure: secure,
	}
}

// Token returns the session token carried by r. A missing, tampered or
// expired cookie yields ErrNoSession.
func (m *Manager) Token(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrNoSession
	}

	var token string
	err = m.codec.Decode(CookieName, cookie.Value, &token)
	if err != nil {
		log.Debugf("session.decode: %s", err)
		return "", ErrNoSession
	}
	return token, nil
}

// Has reports whether the session of r carries flag.
func (m *Manager) Has(r *http.Request, flag string) (bool, error) {
	token, err := m.Token(r)
	if errors.Is(err, ErrNoSession) {
		return false, nil
	}

	flags, err := m.store.Get(r.Context(), token)
	if err != nil {
		return false, err
	}
	return flags[flag], nil
}

// Grant sets flag on a freshly issued session. Flags held by the previous
// session of r move over to the new token, and the old token is dropped.
func (m *Manager) Grant(w http.ResponseWriter, r *http.Request, flag string) error {
	token := uuid.NewString()

	if old, err := m.Token(r); err == nil {
		flags, err := m.store.Get(r.Context(), old)
		if err != nil {
			return err
		}
		for f, on := range flags {
			if !on {
				continue
			}
			if err = m.store.Set(r.Context(), token, f); err != nil {
				return err
			}
		}
		if err = m.store.Delete(r.Context(), old); err != nil {
			return err
		}
	}

	err := m.store.Set(r.Context(), token, flag)
	if err != nil {
		return err
	}

	encoded, err := m.codec.Encode(CookieName, token)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(encoded, m.maxAge))
	return nil
}

// Revoke removes flag from the session of r. Once the session holds no
// flags, it is deleted and the cookie expired.
func (m *Manager) Revoke(w http.ResponseWriter, r *http.Request, flag string) error {
	token, err := m.Token(r)
	if errors.Is(err, ErrNoSession) {
		return nil
	}

	err = m.store.Clear(r.Context(), token, flag)
	if err != nil {
		return err
	}

	flags, err := m.store.Get(r.Context(), token)
	if err != nil {
		return err
	}
	for _, on := range flags {
		if on {
			return nil
		}
	}

	err = m.store.Delete(r.Context(), token)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie("", -1))
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Path:     "/",
		Name:     CookieName,
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
