// Package session keeps per-client flags on the server side, keyed by an
// opaque token that the client carries in a signed cookie.
package session

import (
	"context"
	"errors"
)

// Admin marks a session that passed the admin login.
const Admin = "admin"

var ErrNoSession = errors.New("no session")

// Flags is the set of markers held by one session.
type Flags map[string]bool

// Store maps session tokens to their flags. Get on an unknown token returns
// empty Flags, Clear and Delete on unknown tokens are no-ops.
type Store interface {
	Get(ctx context.Context, token string) (Flags, error)
	Set(ctx context.Context, token string, flag string) error
	Clear(ctx context.Context, token string, flag string) error
	Delete(ctx context.Context, token string) error
}
