package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stuccorite/fieldforms/internal/portal/store"
	"github.com/stuccorite/fieldforms/internal/portal/store/drivers/sqlite"
	"github.com/stuccorite/fieldforms/pkg/jwtx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestTokens() *jwtx.HS256 {
	return jwtx.NewHS256([]byte("test-secret-0123456789"), "fieldforms-test")
}

func newAuthService(t *testing.T) (*AuthService, store.Store) {
	t.Helper()
	st := newTestStore(t)
	return &AuthService{
		Store:      st,
		Tokens:     newTestTokens(),
		InviteCode: "STUCCO2024",
		SessionTTL: jwtx.DefaultSessionTTL,
		PendingTTL: jwtx.DefaultPendingTTL,
	}, st
}

func registerTestUser(t *testing.T, auth *AuthService) string {
	t.Helper()
	user, _, err := auth.Register(context.Background(), RegisterParams{
		Username:   "msanchez",
		Email:      "msanchez@example.com",
		Password:   "correct horse battery",
		FullName:   "Maria Sanchez",
		InviteCode: "STUCCO2024",
	})
	require.NoError(t, err)
	return user.ID
}

func TestRegisterInviteCode(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, RegisterParams{
		Username: "a", Email: "a@example.com", Password: "pw", FullName: "A",
		InviteCode: "WRONG",
	})
	require.ErrorIs(t, err, ErrInvalidInviteCode)

	// The invite code matches case-insensitively.
	_, _, err = auth.Register(ctx, RegisterParams{
		Username: "a", Email: "a@example.com", Password: "pw", FullName: "A",
		InviteCode: "stucco2024",
	})
	require.NoError(t, err)
}

func TestRegisterDuplicate(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()
	registerTestUser(t, auth)

	_, _, err := auth.Register(ctx, RegisterParams{
		Username: "msanchez", Email: "other@example.com", Password: "pw",
		FullName: "Other", InviteCode: "STUCCO2024",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, _, err = auth.Register(ctx, RegisterParams{
		Username: "other", Email: "msanchez@example.com", Password: "pw",
		FullName: "Other", InviteCode: "STUCCO2024",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()
	registerTestUser(t, auth)

	res, err := auth.Login(ctx, "msanchez", "correct horse battery")
	require.NoError(t, err)
	require.False(t, res.RequiresTwoFactor)
	require.NotEmpty(t, res.Token)

	res, err = auth.Login(ctx, "msanchez@example.com", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	// Login matching is case-sensitive as entered.
	_, err = auth.Login(ctx, "MSANCHEZ", "correct horse battery")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "msanchez", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesFullToken(t *testing.T) {
	auth, st := newAuthService(t)
	ctx := context.Background()
	userID := registerTestUser(t, auth)

	res, err := auth.Login(ctx, "msanchez", "correct horse battery")
	require.NoError(t, err)

	claims, err := auth.Tokens.Verify(res.Token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.Subject)
	require.False(t, claims.Temp)

	user, err := st.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
}

func TestLoginWithTwoFactorIssuesPendingToken(t *testing.T) {
	auth, st := newAuthService(t)
	ctx := context.Background()
	userID := registerTestUser(t, auth)

	secret := "JBSWY3DPEHPK3PXP"
	require.NoError(t, st.Users().SetTwoFactor(ctx, userID, true, &secret))

	res, err := auth.Login(ctx, "msanchez", "correct horse battery")
	require.NoError(t, err)
	require.True(t, res.RequiresTwoFactor)

	claims, err := auth.Tokens.Verify(res.Token)
	require.NoError(t, err)
	require.True(t, claims.Temp)

	// No lastLogin until the second factor clears.
	user, err := st.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, user.LastLogin)
}

func TestPendingTokenExpiry(t *testing.T) {
	tokens := newTestTokens()
	issued := time.Now().Add(-10 * time.Minute)
	tok, err := tokens.Sign(jwtx.NewPendingClaims("u1", tokens.Issuer(), jwtx.DefaultPendingTTL, issued))
	require.NoError(t, err)

	_, err = tokens.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}
