// AngelaMos | 2026
// service_test.go

package card

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cardfolio/internal/core"
)

type fakeRepository struct {
	cards      map[string]*Card
	likes      map[string]map[string]bool
	createErrs []error
	created    int
}

func newFakeRepository(cards ...*Card) *fakeRepository {
	r := &fakeRepository{
		cards: make(map[string]*Card),
		likes: make(map[string]map[string]bool),
	}
	for _, c := range cards {
		r.cards[c.ID] = c
	}
	return r
}

func (r *fakeRepository) Create(_ context.Context, card *Card) error {
	if r.created < len(r.createErrs) {
		err := r.createErrs[r.created]
		r.created++
		if err != nil {
			return err
		}
	} else {
		r.created++
	}
	r.cards[card.ID] = card
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Card, error) {
	c, ok := r.cards[id]
	if !ok {
		return nil, fmt.Errorf("get card: %w", core.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepository) List(
	_ context.Context,
	_ ListCardsParams,
) ([]Card, int, error) {
	var out []Card
	for _, c := range r.cards {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *fakeRepository) ListByUser(
	_ context.Context,
	userID string,
	_ ListCardsParams,
) ([]Card, int, error) {
	var out []Card
	for _, c := range r.cards {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(_ context.Context, card *Card) error {
	if _, ok := r.cards[card.ID]; !ok {
		return fmt.Errorf("update card: %w", core.ErrNotFound)
	}
	copied := *card
	r.cards[card.ID] = &copied
	return nil
}

func (r *fakeRepository) UpdateBizNumber(
	_ context.Context,
	id string,
	bizNumber int,
) error {
	c, ok := r.cards[id]
	if !ok {
		return fmt.Errorf("update biz number: %w", core.ErrNotFound)
	}
	for _, other := range r.cards {
		if other.ID != id && other.BizNumber == bizNumber {
			return fmt.Errorf("update biz number: %w", core.ErrDuplicateKey)
		}
	}
	c.BizNumber = bizNumber
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.cards[id]; !ok {
		return fmt.Errorf("delete card: %w", core.ErrNotFound)
	}
	delete(r.cards, id)
	return nil
}

func (r *fakeRepository) ToggleLike(
	_ context.Context,
	cardID, userID string,
) (bool, int, error) {
	if _, ok := r.cards[cardID]; !ok {
		return false, 0, fmt.Errorf("toggle like: %w", core.ErrNotFound)
	}
	if r.likes[cardID] == nil {
		r.likes[cardID] = make(map[string]bool)
	}
	if r.likes[cardID][userID] {
		delete(r.likes[cardID], userID)
		return false, len(r.likes[cardID]), nil
	}
	r.likes[cardID][userID] = true
	return true, len(r.likes[cardID]), nil
}

var (
	regular  = core.Actor{ID: "u-regular"}
	business = core.Actor{ID: "u-business", IsBusiness: true}
	admin    = core.Actor{ID: "u-admin", IsAdmin: true}
)

func TestAuthorizationPredicates(t *testing.T) {
	t.Run("create requires business or admin", func(t *testing.T) {
		assert.False(t, CanCreate(regular))
		assert.True(t, CanCreate(business))
		assert.True(t, CanCreate(admin))
	})

	t.Run("modify requires owner or admin", func(t *testing.T) {
		assert.True(t, CanModify(business, business.ID))
		assert.False(t, CanModify(business, "someone-else"))
		assert.True(t, CanModify(admin, "someone-else"))
	})

	t.Run("biz number is admin only, ownership does not grant it", func(t *testing.T) {
		assert.True(t, CanChangeBizNumber(admin))
		assert.False(t, CanChangeBizNumber(business))
		assert.False(t, CanChangeBizNumber(regular))
	})
}

func validCreateRequest() CreateCardRequest {
	return CreateCardRequest{
		Title:       "Mizrahi Plumbing",
		Subtitle:    "Emergency repairs",
		Description: "Licensed plumbing services.",
		Phone:       "052-765 4321",
		Email:       "contact@example.com",
		Address: AddressInput{
			Country:     "Israel",
			City:        "Tel Aviv",
			Street:      "Rothschild",
			HouseNumber: 10,
		},
	}
}

func TestCreateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("regular user forbidden", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.CreateCard(ctx, regular, validCreateRequest())
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("business user gets a seven digit biz number", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		card, err := svc.CreateCard(ctx, business, validCreateRequest())
		require.NoError(t, err)
		assert.Equal(t, business.ID, card.UserID)
		assert.GreaterOrEqual(t, card.BizNumber, 1_000_000)
		assert.LessOrEqual(t, card.BizNumber, 9_999_999)
	})

	t.Run("retries on biz number collision", func(t *testing.T) {
		repo := newFakeRepository()
		repo.createErrs = []error{core.ErrDuplicateKey, core.ErrDuplicateKey}
		svc := NewService(repo)

		card, err := svc.CreateCard(ctx, business, validCreateRequest())
		require.NoError(t, err)
		assert.NotZero(t, card.BizNumber)
		assert.Equal(t, 3, repo.created)
	})

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		repo := newFakeRepository()
		for i := 0; i < bizNumberAttempts; i++ {
			repo.createErrs = append(repo.createErrs, core.ErrDuplicateKey)
		}
		svc := NewService(repo)

		_, err := svc.CreateCard(ctx, business, validCreateRequest())
		assert.Error(t, err)
	})
}

func TestUpdateCardAuthorization(t *testing.T) {
	ctx := context.Background()
	owned := &Card{ID: "c1", Title: "Original", UserID: business.ID}

	newTitle := "Renamed"
	req := UpdateCardRequest{Title: &newTitle}

	t.Run("owner may update", func(t *testing.T) {
		svc := NewService(newFakeRepository(owned))

		card, err := svc.UpdateCard(ctx, business, "c1", req)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", card.Title)
	})

	t.Run("stranger forbidden even as business", func(t *testing.T) {
		other := core.Actor{ID: "u-other", IsBusiness: true}
		svc := NewService(newFakeRepository(owned))

		_, err := svc.UpdateCard(ctx, other, "c1", req)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin may update any card", func(t *testing.T) {
		svc := NewService(newFakeRepository(owned))

		_, err := svc.UpdateCard(ctx, admin, "c1", req)
		assert.NoError(t, err)
	})

	t.Run("missing card", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.UpdateCard(ctx, admin, "nope", req)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestDeleteCardAuthorization(t *testing.T) {
	ctx := context.Background()

	t.Run("stranger forbidden", func(t *testing.T) {
		svc := NewService(newFakeRepository(
			&Card{ID: "c1", UserID: business.ID},
		))

		err := svc.DeleteCard(ctx, regular, "c1")
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin may delete", func(t *testing.T) {
		repo := newFakeRepository(&Card{ID: "c1", UserID: business.ID})
		svc := NewService(repo)

		require.NoError(t, svc.DeleteCard(ctx, admin, "c1"))
		assert.Empty(t, repo.cards)
	})
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository(&Card{ID: "c1", UserID: business.ID})
	svc := NewService(repo)

	resp, err := svc.ToggleLike(ctx, regular, "c1")
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, 1, resp.Likes)

	// Toggling twice returns to the initial state.
	resp, err = svc.ToggleLike(ctx, regular, "c1")
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Zero(t, resp.Likes)

	_, err = svc.ToggleLike(ctx, regular, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateBizNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("owner forbidden", func(t *testing.T) {
		svc := NewService(newFakeRepository(
			&Card{ID: "c1", UserID: business.ID, BizNumber: 1000001},
		))

		_, err := svc.UpdateBizNumber(ctx, business, "c1", 2000002)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin reassigns", func(t *testing.T) {
		svc := NewService(newFakeRepository(
			&Card{ID: "c1", UserID: business.ID, BizNumber: 1000001},
		))

		card, err := svc.UpdateBizNumber(ctx, admin, "c1", 2000002)
		require.NoError(t, err)
		assert.Equal(t, 2000002, card.BizNumber)
	})

	t.Run("taken number conflicts", func(t *testing.T) {
		svc := NewService(newFakeRepository(
			&Card{ID: "c1", UserID: business.ID, BizNumber: 1000001},
			&Card{ID: "c2", UserID: business.ID, BizNumber: 2000002},
		))

		_, err := svc.UpdateBizNumber(ctx, admin, "c1", 2000002)
		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})
}
