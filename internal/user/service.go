// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cardfolio/internal/auth"
	"github.com/carterperez-dev/cardfolio/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.AccountInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toAccountInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.AccountInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toAccountInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	req auth.RegisterRequest,
	passwordHash string,
) (*auth.AccountInfo, error) {
	user := &User{
		ID:                 uuid.New().String(),
		Email:              strings.ToLower(req.Email),
		PasswordHash:       passwordHash,
		FirstName:          req.Name.First,
		MiddleName:         req.Name.Middle,
		LastName:           req.Name.Last,
		Phone:              req.Phone,
		ImageURL:           req.Image.URL,
		ImageAlt:           req.Image.Alt,
		AddressState:       req.Address.State,
		AddressCountry:     req.Address.Country,
		AddressCity:        req.Address.City,
		AddressStreet:      req.Address.Street,
		AddressHouseNumber: req.Address.HouseNumber,
		AddressZip:         req.Address.Zip,
		IsBusiness:         req.IsBusiness,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toAccountInfo(user), nil
}

func (s *Service) UpdateLockoutState(
	ctx context.Context,
	id string,
	attempts int,
	lockUntil *time.Time,
) error {
	return s.repo.UpdateLockoutState(ctx, id, attempts, lockUntil)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

// CanRead reports whether actor may view the target profile.
// Profiles are visible to their owner and to admins only.
func CanRead(actor core.Actor, targetID string) bool {
	return actor.CanActOn(targetID)
}

// CanModify reports whether actor may update or delete the target
// profile. Same rule as reads: owner or admin.
func CanModify(actor core.Actor, targetID string) bool {
	return actor.CanActOn(targetID)
}

func (s *Service) ListUsers(
	ctx context.Context,
	actor core.Actor,
	params ListUsersParams,
) ([]User, int, error) {
	if !actor.IsAdmin {
		return nil, 0, fmt.Errorf("list users: %w", core.ErrForbidden)
	}

	return s.repo.List(ctx, params)
}

func (s *Service) GetUser(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*User, error) {
	if !CanRead(actor, id) {
		return nil, fmt.Errorf("get user: %w", core.ErrForbidden)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	actor core.Actor,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	if !CanModify(actor, id) {
		return nil, fmt.Errorf("update user: %w", core.ErrForbidden)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(user, req)

	if req.Password != nil {
		hash, err := core.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) DeleteUser(
	ctx context.Context,
	actor core.Actor,
	id string,
) error {
	if !CanModify(actor, id) {
		return fmt.Errorf("delete user: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}

// SetBusinessStatus flips the business flag. The owner may change
// their own standing, and admins may change anyone's.
func (s *Service) SetBusinessStatus(
	ctx context.Context,
	actor core.Actor,
	id string,
	isBusiness bool,
) (*User, error) {
	if !CanModify(actor, id) {
		return nil, fmt.Errorf("set business status: %w", core.ErrForbidden)
	}

	if err := s.repo.SetBusinessStatus(ctx, id, isBusiness); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func applyUpdate(user *User, req UpdateUserRequest) {
	if req.Name != nil {
		if req.Name.First != nil {
			user.FirstName = *req.Name.First
		}
		if req.Name.Middle != nil {
			user.MiddleName = *req.Name.Middle
		}
		if req.Name.Last != nil {
			user.LastName = *req.Name.Last
		}
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}

	if req.Image != nil {
		if req.Image.URL != nil {
			user.ImageURL = *req.Image.URL
		}
		if req.Image.Alt != nil {
			user.ImageAlt = *req.Image.Alt
		}
	}

	if req.Address != nil {
		if req.Address.State != nil {
			user.AddressState = *req.Address.State
		}
		if req.Address.Country != nil {
			user.AddressCountry = *req.Address.Country
		}
		if req.Address.City != nil {
			user.AddressCity = *req.Address.City
		}
		if req.Address.Street != nil {
			user.AddressStreet = *req.Address.Street
		}
		if req.Address.HouseNumber != nil {
			user.AddressHouseNumber = *req.Address.HouseNumber
		}
		if req.Address.Zip != nil {
			user.AddressZip = *req.Address.Zip
		}
	}
}

func toAccountInfo(u *User) *auth.AccountInfo {
	return &auth.AccountInfo{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.FullName(),
		PasswordHash:  u.PasswordHash,
		IsBusiness:    u.IsBusiness,
		IsAdmin:       u.IsAdmin,
		LoginAttempts: u.LoginAttempts,
		LockUntil:     u.LockUntil,
	}
}

var _ auth.AccountProvider = (*Service)(nil)
