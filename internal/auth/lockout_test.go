// AngelaMos | 2026
// lockout_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cardfolio/internal/config"
	"github.com/carterperez-dev/cardfolio/internal/core"
)

type lockoutUpdate struct {
	id        string
	attempts  int
	lockUntil *time.Time
}

type fakeProvider struct {
	accounts  map[string]*AccountInfo
	updates   []lockoutUpdate
	passwords map[string]string
	updateErr error
}

func newFakeProvider(accounts ...*AccountInfo) *fakeProvider {
	p := &fakeProvider{
		accounts:  make(map[string]*AccountInfo),
		passwords: make(map[string]string),
	}
	for _, acct := range accounts {
		p.accounts[acct.Email] = acct
	}
	return p
}

func (p *fakeProvider) GetByEmail(
	_ context.Context,
	email string,
) (*AccountInfo, error) {
	acct, ok := p.accounts[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *acct
	return &copied, nil
}

func (p *fakeProvider) GetByID(
	_ context.Context,
	id string,
) (*AccountInfo, error) {
	for _, acct := range p.accounts {
		if acct.ID == id {
			copied := *acct
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (p *fakeProvider) Create(
	_ context.Context,
	req RegisterRequest,
	passwordHash string,
) (*AccountInfo, error) {
	if _, ok := p.accounts[req.Email]; ok {
		return nil, core.ErrDuplicateKey
	}
	acct := &AccountInfo{
		ID:           "acct-" + req.Email,
		Email:        req.Email,
		Name:         req.Name.First + " " + req.Name.Last,
		PasswordHash: passwordHash,
		IsBusiness:   req.IsBusiness,
	}
	p.accounts[req.Email] = acct
	copied := *acct
	return &copied, nil
}

func (p *fakeProvider) UpdateLockoutState(
	_ context.Context,
	id string,
	attempts int,
	lockUntil *time.Time,
) error {
	if p.updateErr != nil {
		return p.updateErr
	}
	p.updates = append(p.updates, lockoutUpdate{
		id:        id,
		attempts:  attempts,
		lockUntil: lockUntil,
	})
	for _, acct := range p.accounts {
		if acct.ID == id {
			acct.LoginAttempts = attempts
			acct.LockUntil = lockUntil
		}
	}
	return nil
}

func (p *fakeProvider) UpdatePassword(
	_ context.Context,
	id, passwordHash string,
) error {
	p.passwords[id] = passwordHash
	return nil
}

func newTestLockout(provider AccountProvider, now time.Time) *Lockout {
	l := NewLockout(provider, config.LockoutConfig{
		MaxAttempts: 3,
		Duration:    2 * time.Hour,
	})
	l.now = func() time.Time { return now }
	return l
}

func TestLockoutRecordFailureLocksAtThreshold(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	acct := &AccountInfo{ID: "u1", Email: "a@b.c"}
	provider := newFakeProvider(acct)
	lockout := newTestLockout(provider, now)

	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		justLocked, err := lockout.RecordFailure(ctx, acct)
		require.NoError(t, err)
		assert.False(t, justLocked, "attempt %d should not lock", i)
		assert.Equal(t, i, acct.LoginAttempts)
		assert.Nil(t, acct.LockUntil)
	}

	justLocked, err := lockout.RecordFailure(ctx, acct)
	require.NoError(t, err)
	assert.True(t, justLocked)
	require.NotNil(t, acct.LockUntil)
	assert.Equal(t, now.Add(2*time.Hour), *acct.LockUntil)
	assert.Equal(t, 3, acct.LoginAttempts)
}

func TestLockoutRemainingLazyExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active lock", func(t *testing.T) {
		until := now.Add(30 * time.Minute)
		acct := &AccountInfo{ID: "u1", LoginAttempts: 3, LockUntil: &until}
		lockout := newTestLockout(newFakeProvider(), now)

		assert.Equal(t, 30*time.Minute, lockout.Remaining(acct))
	})

	t.Run("lapsed lock reads open without mutation", func(t *testing.T) {
		until := now.Add(-time.Minute)
		acct := &AccountInfo{ID: "u1", LoginAttempts: 3, LockUntil: &until}
		provider := newFakeProvider()
		lockout := newTestLockout(provider, now)

		assert.Zero(t, lockout.Remaining(acct))
		assert.Empty(t, provider.updates, "read must not persist anything")
		assert.NotNil(t, acct.LockUntil, "read must not clear the lock")
	})

	t.Run("clean account", func(t *testing.T) {
		acct := &AccountInfo{ID: "u1"}
		lockout := newTestLockout(newFakeProvider(), now)

		assert.Zero(t, lockout.Remaining(acct))
	})
}

func TestLockoutFreshCycleAfterLapsedLock(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(-time.Second)
	acct := &AccountInfo{
		ID:            "u1",
		Email:         "a@b.c",
		LoginAttempts: 3,
		LockUntil:     &until,
	}
	provider := newFakeProvider(acct)
	lockout := newTestLockout(provider, now)

	justLocked, err := lockout.RecordFailure(context.Background(), acct)
	require.NoError(t, err)
	assert.False(t, justLocked)
	assert.Equal(t, 1, acct.LoginAttempts, "counter restarts after expiry")
	assert.Nil(t, acct.LockUntil)
}

func TestLockoutReset(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("clears counter and lock", func(t *testing.T) {
		until := now.Add(time.Hour)
		acct := &AccountInfo{
			ID:            "u1",
			Email:         "a@b.c",
			LoginAttempts: 3,
			LockUntil:     &until,
		}
		provider := newFakeProvider(acct)
		lockout := newTestLockout(provider, now)

		require.NoError(t, lockout.Reset(ctx, acct))
		assert.Zero(t, acct.LoginAttempts)
		assert.Nil(t, acct.LockUntil)
		require.Len(t, provider.updates, 1)
		assert.Zero(t, provider.updates[0].attempts)
	})

	t.Run("no-op on clean slate", func(t *testing.T) {
		acct := &AccountInfo{ID: "u1", Email: "a@b.c"}
		provider := newFakeProvider(acct)
		lockout := newTestLockout(provider, now)

		require.NoError(t, lockout.Reset(ctx, acct))
		assert.Empty(t, provider.updates, "clean account writes nothing")
	})
}

func TestLockoutRecordFailurePersistErrorSurfaces(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	acct := &AccountInfo{ID: "u1", Email: "a@b.c"}
	provider := newFakeProvider(acct)
	provider.updateErr = errors.New("connection reset")
	lockout := newTestLockout(provider, now)

	_, err := lockout.RecordFailure(context.Background(), acct)
	require.Error(t, err)
	assert.Zero(t, acct.LoginAttempts, "state must not advance on failed write")
}
