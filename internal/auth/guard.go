// Package auth gates destructive ledger operations (stock removal,
// transaction deletion, migrations) behind an owner check. The check lives
// behind an interface so a future per-user permission system can be swapped
// in without touching the ledger services.
package auth

import (
	"crypto/subtle"

	"liquorpos/internal/apperr"
)

// Guard authorizes destructive operations.
type Guard interface {
	// Authorize returns nil when the supplied credential grants owner
	// access, or a KindUnauthorized error otherwise. Implementations must
	// not leak anything beyond "invalid owner password".
	Authorize(password string) error
}

// SharedSecretGuard compares the supplied password against a single
// process-wide secret. No hashing or rotation — the secret is scoped to one
// shop owner and configured via OWNER_PASSWORD.
type SharedSecretGuard struct {
	secret string
}

func NewSharedSecretGuard(secret string) *SharedSecretGuard {
	return &SharedSecretGuard{secret: secret}
}

func (g *SharedSecretGuard) Authorize(password string) error {
	if g.secret == "" || subtle.ConstantTimeCompare([]byte(password), []byte(g.secret)) != 1 {
		return apperr.Unauthorized("Unauthorized: Invalid owner password")
	}
	return nil
}
