package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/gameforge/ui-api/internal/domain/auth"
	mocks "github.com/gameforge/ui-api/internal/mocks/auth"
	"github.com/gameforge/ui-api/internal/ports"
)

func newTestAuthService() (*AuthService, *mocks.MockAuthProvider, *mocks.MemorySessionStore) {
	provider := mocks.NewMockAuthProvider()
	sessions := mocks.NewMemorySessionStore()
	roles := mocks.StaticRoleMapper{
		AdminGroup:   "gameforge-admins",
		CreatorGroup: "gameforge-creators",
		MemberGroup:  "gameforge-members",
	}
	svc := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: sessions,
		Roles:    roles,
	})
	return svc, provider, sessions
}

func TestAuthService_BeginLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()

	result, err := svc.BeginLogin(context.Background(), "http://localhost:8080/auth/callback")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AuthURL)
	assert.NotEmpty(t, result.State)
	assert.NotEmpty(t, result.Nonce)

	_, err = svc.BeginLogin(context.Background(), "")
	require.Error(t, err)
}

func TestAuthService_CompleteLogin_Success(t *testing.T) {
	svc, provider, sessions := newTestAuthService()
	provider.DefaultUser.Groups = []string{"gameforge-creators"}

	result, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:  "code-1",
		State: "state-1",
		Nonce: "nonce-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCreator, result.Session.Role)
	assert.NotEmpty(t, result.Session.ID)

	stored, err := sessions.Get(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session.UserID, stored.UserID)
}

func TestAuthService_CompleteLogin_MissingParams(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	cases := []CompleteLoginInput{
		{State: "s", Nonce: "n"},
		{Code: "c", Nonce: "n"},
		{Code: "c", State: "s"},
	}
	for _, input := range cases {
		_, err := svc.CompleteLogin(ctx, input)
		require.Error(t, err)
	}
}

func TestAuthService_CompleteLogin_ExchangeFails(t *testing.T) {
	svc, provider, _ := newTestAuthService()
	provider.ExchangeFunc = func(context.Context, ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{}, errors.New("invalid state")
	}

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:  "code-1",
		State: "tampered",
		Nonce: "nonce-1",
	})
	require.Error(t, err)
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	expired := domainauth.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Role:      domainauth.RoleMember,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, sessions.Save(context.Background(), expired))

	_, err := svc.GetSession(context.Background(), "sess-1")
	require.Error(t, err)
	assert.True(t, ErrSessionExpired(err))

	// Expired session was purged from the store.
	_, err = sessions.Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, mocks.ErrNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	sess := domainauth.Session{
		ID:        "sess-2",
		UserID:    "user-2",
		Role:      domainauth.RoleMember,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Save(context.Background(), sess))

	require.NoError(t, svc.Logout(context.Background(), "sess-2"))
	_, err := sessions.Get(context.Background(), "sess-2")
	assert.ErrorIs(t, err, mocks.ErrNotFound)

	// Logging out a missing session is a no-op.
	require.NoError(t, svc.Logout(context.Background(), ""))
}
