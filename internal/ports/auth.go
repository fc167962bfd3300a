// Package ports holds the auth-facing interfaces the service layer depends
// on. Concrete implementations live under internal/adapters (OIDC, dev
// short-circuit, Redis sessions, static role mapping).
package ports

import (
	"context"

	domainauth "github.com/gameforge/ui-api/internal/domain/auth"
)

// BeginInput carries the caller-supplied inputs for starting a login flow.
type BeginInput struct {
	// RedirectURL is where the provider sends the browser after consent.
	RedirectURL string
}

// ExchangeInput groups the parameters for the authorization-code exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider drives the two halves of an identity-provider login.
type AuthProvider interface {
	// Begin produces the provider authorization URL plus the opaque state
	// and nonce the callback must echo back.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange redeems the authorization code, checks state and nonce, and
	// returns the verified identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists user sessions keyed by opaque session ID.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper resolves provider group claims to an application role.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
