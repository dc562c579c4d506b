// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/carterperez-dev/cardfolio/internal/core"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

// AccountLockedError reports a login rejected by the lockout state
// machine. JustLocked distinguishes an attempt that triggered the lock
// from one rejected by a pre-existing lock.
type AccountLockedError struct {
	Remaining  time.Duration
	JustLocked bool
}

func (e *AccountLockedError) Error() string {
	minutes := int(math.Ceil(e.Remaining.Minutes()))
	if e.JustLocked {
		return fmt.Sprintf("account locked for %d minutes", minutes)
	}
	return fmt.Sprintf("account is locked, try again in %d minutes", minutes)
}

// AccountInfo is the auth-facing view of an account.
type AccountInfo struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	IsBusiness    bool
	IsAdmin       bool
	LoginAttempts int
	LockUntil     *time.Time
}

// AccountProvider is the credential store contract the login flow needs.
type AccountProvider interface {
	GetByEmail(ctx context.Context, email string) (*AccountInfo, error)
	GetByID(ctx context.Context, id string) (*AccountInfo, error)
	Create(
		ctx context.Context,
		req RegisterRequest,
		passwordHash string,
	) (*AccountInfo, error)
	UpdateLockoutState(
		ctx context.Context,
		id string,
		attempts int,
		lockUntil *time.Time,
	) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type Service struct {
	provider AccountProvider
	tokens   *TokenManager
	lockout  *Lockout
}

func NewService(
	provider AccountProvider,
	tokens *TokenManager,
	lockout *Lockout,
) *Service {
	return &Service{
		provider: provider,
		tokens:   tokens,
		lockout:  lockout,
	}
}

// Login runs the full credential flow. The ordering is load-bearing:
// the lock state is checked before the password is ever compared, and a
// failed compare persists the updated counter before the error returns.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	acct, err := s.provider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if remaining := s.lockout.Remaining(acct); remaining > 0 {
		return nil, &AccountLockedError{Remaining: remaining}
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&acct.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		justLocked, recordErr := s.lockout.RecordFailure(ctx, acct)
		if recordErr != nil {
			return nil, recordErr
		}
		if justLocked {
			return nil, &AccountLockedError{
				Remaining:  s.lockout.Duration(),
				JustLocked: true,
			}
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.lockout.Reset(ctx, acct); err != nil {
		return nil, err
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.provider.UpdatePassword(ctx, acct.ID, newHash)
	}

	return s.createAuthResponse(acct)
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct, err := s.provider.Create(ctx, req, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return s.createAuthResponse(acct)
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*AccountResponse, error) {
	acct, err := s.provider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toAccountResponse(acct)
	return &resp, nil
}

func (s *Service) createAuthResponse(acct *AccountInfo) (*AuthResponse, error) {
	accessToken, expiresAt, err := s.tokens.CreateAccessToken(acct)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthResponse{
		User: toAccountResponse(acct),
		Token: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int(time.Until(expiresAt) / time.Second),
			ExpiresAt:   expiresAt,
		},
	}, nil
}

func toAccountResponse(acct *AccountInfo) AccountResponse {
	return AccountResponse{
		ID:         acct.ID,
		Email:      acct.Email,
		Name:       acct.Name,
		IsBusiness: acct.IsBusiness,
		IsAdmin:    acct.IsAdmin,
	}
}
