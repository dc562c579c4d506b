// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cardfolio/internal/config"
	"github.com/carterperez-dev/cardfolio/internal/core"
)

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()

	rawKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	privateKey, err := jwk.Import(rawKey)
	require.NoError(t, err)

	tm, err := newTokenManager(privateKey, config.JWTConfig{
		AccessTokenExpire: time.Hour,
		Issuer:            "cardfolio-test",
		Audience:          "cardfolio-test-api",
	})
	require.NoError(t, err)

	return tm
}

func newTestService(
	t *testing.T,
	provider AccountProvider,
	now time.Time,
) *Service {
	t.Helper()
	return NewService(provider, newTestTokenManager(t), newTestLockout(provider, now))
}

func seedAccount(t *testing.T, password string) (*fakeProvider, *AccountInfo) {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	acct := &AccountInfo{
		ID:           "u1",
		Email:        "dana@example.com",
		Name:         "Dana Cohen",
		PasswordHash: hash,
		IsBusiness:   true,
	}
	return newFakeProvider(acct), acct
}

func TestLoginSuccess(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider, _ := seedAccount(t, "Password!1")
	svc := newTestService(t, provider, now)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dana@example.com",
		Password: "Password!1",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", resp.User.ID)
	assert.True(t, resp.User.IsBusiness)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
}

func TestLoginUnknownEmail(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider, _ := seedAccount(t, "Password!1")
	svc := newTestService(t, provider, now)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "Password!1",
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLoginThirdFailureLocks(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider, _ := seedAccount(t, "Password!1")
	svc := newTestService(t, provider, now)
	ctx := context.Background()

	bad := LoginRequest{Email: "dana@example.com", Password: "Wrong!pass1"}

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, bad)
	var locked *AccountLockedError
	require.ErrorAs(t, err, &locked)
	assert.True(t, locked.JustLocked)
	assert.Equal(t, 2*time.Hour, locked.Remaining)
	assert.Equal(t, "account locked for 120 minutes", locked.Error())
}

func TestLoginCorrectPasswordRejectedWhileLocked(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider, _ := seedAccount(t, "Password!1")
	svc := newTestService(t, provider, now)
	ctx := context.Background()

	bad := LoginRequest{Email: "dana@example.com", Password: "Wrong!pass1"}
	for i := 0; i < 3; i++ {
		_, _ = svc.Login(ctx, bad) //nolint:errcheck // building lock state
	}

	_, err := svc.Login(ctx, LoginRequest{
		Email:    "dana@example.com",
		Password: "Password!1",
	})
	var locked *AccountLockedError
	require.ErrorAs(t, err, &locked)
	assert.False(t, locked.JustLocked, "pre-existing lock, not triggered now")
	assert.Contains(t, locked.Error(), "account is locked, try again in")

	// Counter must not advance while the lock holds.
	stored, getErr := provider.GetByID(ctx, "u1")
	require.NoError(t, getErr)
	assert.Equal(t, 3, stored.LoginAttempts)
}

func TestLoginSuccessResetsCounter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider, _ := seedAccount(t, "Password!1")
	svc := newTestService(t, provider, now)
	ctx := context.Background()

	bad := LoginRequest{Email: "dana@example.com", Password: "Wrong!pass1"}
	for i := 0; i < 2; i++ {
		_, _ = svc.Login(ctx, bad) //nolint:errcheck // building attempt state
	}

	_, err := svc.Login(ctx, LoginRequest{
		Email:    "dana@example.com",
		Password: "Password!1",
	})
	require.NoError(t, err)

	stored, getErr := provider.GetByID(ctx, "u1")
	require.NoError(t, getErr)
	assert.Zero(t, stored.LoginAttempts)
	assert.Nil(t, stored.LockUntil)

	// The slate is clean: three fresh failures are needed to lock again.
	_, err = svc.Login(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginAfterLockExpiryStartsFreshCycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider, _ := seedAccount(t, "Password!1")

	tm := newTestTokenManager(t)
	lockout := newTestLockout(provider, now)
	svc := NewService(provider, tm, lockout)
	ctx := context.Background()

	bad := LoginRequest{Email: "dana@example.com", Password: "Wrong!pass1"}
	for i := 0; i < 3; i++ {
		_, _ = svc.Login(ctx, bad) //nolint:errcheck // building lock state
	}

	// Advance past the lock window.
	lockout.now = func() time.Time { return now.Add(2*time.Hour + time.Second) }

	_, err := svc.Login(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "lapsed lock starts over")

	stored, getErr := provider.GetByID(ctx, "u1")
	require.NoError(t, getErr)
	assert.Equal(t, 1, stored.LoginAttempts)
	assert.Nil(t, stored.LockUntil)

	// And a correct password now succeeds.
	_, err = svc.Login(ctx, LoginRequest{
		Email:    "dana@example.com",
		Password: "Password!1",
	})
	assert.NoError(t, err)
}

func TestLockedErrorMessageRoundsUp(t *testing.T) {
	err := &AccountLockedError{Remaining: 119*time.Minute + time.Second}
	assert.Equal(t, "account is locked, try again in 120 minutes", err.Error())
}

func TestRegister(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	req := RegisterRequest{
		Name:     NameInput{First: "Noa", Last: "Levi"},
		Phone:    "050-123 4567",
		Email:    "noa@example.com",
		Password: "Password!1",
		Address: AddressInput{
			Country:     "Israel",
			City:        "Haifa",
			Street:      "Herzl",
			HouseNumber: 7,
		},
		IsBusiness: true,
	}

	t.Run("creates account and issues token", func(t *testing.T) {
		provider := newFakeProvider()
		svc := newTestService(t, provider, now)

		resp, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "noa@example.com", resp.User.Email)
		assert.True(t, resp.User.IsBusiness)
		assert.NotEmpty(t, resp.Token.AccessToken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		provider := newFakeProvider()
		svc := newTestService(t, provider, now)

		_, err := svc.Register(context.Background(), req)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}
