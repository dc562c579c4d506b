// AngelaMos | 2026
// lockout.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/cardfolio/internal/config"
)

// Lockout tracks consecutive failed logins per account and derives a
// temporary lock window once the threshold is reached. State lives on the
// account record; expiry is computed lazily at read time, no background
// job ever clears a lapsed lock.
//
// The read-increment-write sequence is not atomic across concurrent
// failures for the same account. Two simultaneous wrong-password requests
// may both observe N attempts and both persist N+1, under-counting by one.
type Lockout struct {
	provider    AccountProvider
	maxAttempts int
	duration    time.Duration
	now         func() time.Time
}

func NewLockout(provider AccountProvider, cfg config.LockoutConfig) *Lockout {
	return &Lockout{
		provider:    provider,
		maxAttempts: cfg.MaxAttempts,
		duration:    cfg.Duration,
		now:         time.Now,
	}
}

// Remaining returns how long the account stays locked, or zero when the
// account is open. A lapsed lock reads as open without mutating anything.
func (l *Lockout) Remaining(acct *AccountInfo) time.Duration {
	if acct.LockUntil == nil {
		return 0
	}

	remaining := acct.LockUntil.Sub(l.now())
	if remaining <= 0 {
		return 0
	}

	return remaining
}

// RecordFailure increments the account's failure counter and persists the
// new state before returning. A failure arriving after a lapsed lock
// starts a fresh cycle: the counter restarts at 1. Returns true when this
// attempt is the one that triggered the lock.
func (l *Lockout) RecordFailure(
	ctx context.Context,
	acct *AccountInfo,
) (bool, error) {
	attempts := acct.LoginAttempts + 1
	if acct.LockUntil != nil && !acct.LockUntil.After(l.now()) {
		attempts = 1
	}

	var lockUntil *time.Time
	if attempts >= l.maxAttempts {
		until := l.now().Add(l.duration)
		lockUntil = &until
	}

	err := l.provider.UpdateLockoutState(ctx, acct.ID, attempts, lockUntil)
	if err != nil {
		return false, fmt.Errorf("record failed login: %w", err)
	}

	acct.LoginAttempts = attempts
	acct.LockUntil = lockUntil

	return lockUntil != nil, nil
}

// Reset clears the counter and any lock after a successful login. No-op
// when the account already has a clean slate.
func (l *Lockout) Reset(ctx context.Context, acct *AccountInfo) error {
	if acct.LoginAttempts == 0 && acct.LockUntil == nil {
		return nil
	}

	if err := l.provider.UpdateLockoutState(ctx, acct.ID, 0, nil); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}

	acct.LoginAttempts = 0
	acct.LockUntil = nil

	return nil
}

// Duration exposes the configured lock window for error messages.
func (l *Lockout) Duration() time.Duration {
	return l.duration
}
