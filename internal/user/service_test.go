// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cardfolio/internal/auth"
	"github.com/carterperez-dev/cardfolio/internal/core"
)

type fakeRepository struct {
	users map[string]*User
}

func newFakeRepository(users ...*User) *fakeRepository {
	r := &fakeRepository{users: make(map[string]*User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepository) Create(_ context.Context, user *User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepository) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (r *fakeRepository) Update(_ context.Context, user *User) error {
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeRepository) UpdatePassword(
	_ context.Context,
	id, passwordHash string,
) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeRepository) UpdateLockoutState(
	_ context.Context,
	id string,
	attempts int,
	lockUntil *time.Time,
) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("update lockout state: %w", core.ErrNotFound)
	}
	u.LoginAttempts = attempts
	u.LockUntil = lockUntil
	return nil
}

func (r *fakeRepository) SetBusinessStatus(
	_ context.Context,
	id string,
	isBusiness bool,
) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("set business status: %w", core.ErrNotFound)
	}
	u.IsBusiness = isBusiness
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepository) List(
	_ context.Context,
	_ ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

var (
	selfActor  = core.Actor{ID: "u1"}
	otherActor = core.Actor{ID: "u2"}
	adminActor = core.Actor{ID: "u-admin", IsAdmin: true}
)

func seedUser() *User {
	return &User{
		ID:        "u1",
		Email:     "dana@example.com",
		FirstName: "Dana",
		LastName:  "Cohen",
	}
}

func TestProfileVisibility(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository(seedUser()))

	t.Run("owner reads own profile", func(t *testing.T) {
		u, err := svc.GetUser(ctx, selfActor, "u1")
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", u.Email)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		_, err := svc.GetUser(ctx, otherActor, "u1")
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin reads anyone", func(t *testing.T) {
		_, err := svc.GetUser(ctx, adminActor, "u1")
		assert.NoError(t, err)
	})
}

func TestListUsersAdminOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository(seedUser()))

	_, _, err := svc.ListUsers(ctx, selfActor, ListUsersParams{})
	assert.ErrorIs(t, err, core.ErrForbidden)

	users, total, err := svc.ListUsers(ctx, adminActor, ListUsersParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, users, 1)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	newFirst := "Daniela"
	newEmail := "Daniela@Example.COM"
	req := UpdateUserRequest{
		Name:  &UpdateNameRequest{First: &newFirst},
		Email: &newEmail,
	}

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		svc := NewService(newFakeRepository(seedUser()))

		u, err := svc.UpdateUser(ctx, selfActor, "u1", req)
		require.NoError(t, err)
		assert.Equal(t, "Daniela", u.FirstName)
		assert.Equal(t, "Cohen", u.LastName)
		assert.Equal(t, "daniela@example.com", u.Email, "email is lowercased")
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		svc := NewService(newFakeRepository(seedUser()))

		_, err := svc.UpdateUser(ctx, otherActor, "u1", req)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("password change is rehashed", func(t *testing.T) {
		svc := NewService(newFakeRepository(seedUser()))

		pwd := "NewPass!1"
		u, err := svc.UpdateUser(ctx, selfActor, "u1", UpdateUserRequest{
			Password: &pwd,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, u.PasswordHash)
		assert.NotEqual(t, pwd, u.PasswordHash)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes own account", func(t *testing.T) {
		repo := newFakeRepository(seedUser())
		svc := NewService(repo)

		require.NoError(t, svc.DeleteUser(ctx, selfActor, "u1"))
		assert.Empty(t, repo.users)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		svc := NewService(newFakeRepository(seedUser()))

		err := svc.DeleteUser(ctx, otherActor, "u1")
		assert.ErrorIs(t, err, core.ErrForbidden)
	})
}

func TestSetBusinessStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("owner flips own flag", func(t *testing.T) {
		svc := NewService(newFakeRepository(seedUser()))

		u, err := svc.SetBusinessStatus(ctx, selfActor, "u1", true)
		require.NoError(t, err)
		assert.True(t, u.IsBusiness)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		svc := NewService(newFakeRepository(seedUser()))

		_, err := svc.SetBusinessStatus(ctx, otherActor, "u1", true)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})
}

func TestAccountProviderMapping(t *testing.T) {
	ctx := context.Background()
	until := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

	u := seedUser()
	u.MiddleName = "R"
	u.PasswordHash = "hash"
	u.IsBusiness = true
	u.LoginAttempts = 2
	u.LockUntil = &until

	svc := NewService(newFakeRepository(u))

	acct, err := svc.GetByEmail(ctx, "DANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", acct.ID)
	assert.Equal(t, "Dana R Cohen", acct.Name)
	assert.Equal(t, "hash", acct.PasswordHash)
	assert.True(t, acct.IsBusiness)
	assert.Equal(t, 2, acct.LoginAttempts)
	require.NotNil(t, acct.LockUntil)
	assert.Equal(t, until, *acct.LockUntil)
}

func TestCreateFromRegistration(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository())

	req := auth.RegisterRequest{
		Name:  auth.NameInput{First: "Noa", Last: "Levi"},
		Phone: "050-123 4567",
		Email: "Noa@Example.com",
		Address: auth.AddressInput{
			Country:     "Israel",
			City:        "Haifa",
			Street:      "Herzl",
			HouseNumber: 7,
		},
		IsBusiness: true,
	}

	acct, err := svc.Create(ctx, req, "hashed")
	require.NoError(t, err)
	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, "noa@example.com", acct.Email, "email stored lowercased")
	assert.True(t, acct.IsBusiness)

	_, err = svc.Create(ctx, req, "hashed")
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}
