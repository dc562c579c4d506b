// AngelaMos | 2026
// service.go

package card

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cardfolio/internal/core"
)

// bizNumberAttempts bounds the insert-retry loop when a freshly drawn
// business number collides with an existing card.
const bizNumberAttempts = 5

// CanCreate reports whether actor may publish a new card.
func CanCreate(actor core.Actor) bool {
	return actor.CanPublish()
}

// CanModify reports whether actor may edit or delete the card.
func CanModify(actor core.Actor, ownerID string) bool {
	return actor.CanActOn(ownerID)
}

// CanChangeBizNumber reports whether actor may reassign a card's
// business number. Admin only, ownership does not grant it.
func CanChangeBizNumber(actor core.Actor) bool {
	return actor.IsAdmin
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCards(
	ctx context.Context,
	params ListCardsParams,
) ([]Card, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) ListMyCards(
	ctx context.Context,
	actor core.Actor,
	params ListCardsParams,
) ([]Card, int, error) {
	return s.repo.ListByUser(ctx, actor.ID, params)
}

func (s *Service) GetCard(ctx context.Context, id string) (*Card, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) CreateCard(
	ctx context.Context,
	actor core.Actor,
	req CreateCardRequest,
) (*Card, error) {
	if !CanCreate(actor) {
		return nil, fmt.Errorf("create card: %w", core.ErrForbidden)
	}

	card := &Card{
		ID:                 uuid.New().String(),
		Title:              req.Title,
		Subtitle:           req.Subtitle,
		Description:        req.Description,
		Phone:              req.Phone,
		Email:              req.Email,
		Web:                req.Web,
		ImageURL:           req.Image.URL,
		ImageAlt:           req.Image.Alt,
		AddressState:       req.Address.State,
		AddressCountry:     req.Address.Country,
		AddressCity:        req.Address.City,
		AddressStreet:      req.Address.Street,
		AddressHouseNumber: req.Address.HouseNumber,
		AddressZip:         req.Address.Zip,
		UserID:             actor.ID,
		Likes:              []string{},
	}

	for attempt := 0; attempt < bizNumberAttempts; attempt++ {
		card.BizNumber = generateBizNumber()

		err := s.repo.Create(ctx, card)
		if err == nil {
			return card, nil
		}
		if !errors.Is(err, core.ErrDuplicateKey) {
			return nil, err
		}
	}

	return nil, fmt.Errorf(
		"create card: biz number collision after %d attempts",
		bizNumberAttempts,
	)
}

func (s *Service) UpdateCard(
	ctx context.Context,
	actor core.Actor,
	id string,
	req UpdateCardRequest,
) (*Card, error) {
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanModify(actor, card.UserID) {
		return nil, fmt.Errorf("update card: %w", core.ErrForbidden)
	}

	applyUpdate(card, req)

	if err := s.repo.Update(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

func (s *Service) DeleteCard(
	ctx context.Context,
	actor core.Actor,
	id string,
) error {
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !CanModify(actor, card.UserID) {
		return fmt.Errorf("delete card: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}

// ToggleLike flips the actor's like on the card. Any authenticated
// user may like any card, their own included.
func (s *Service) ToggleLike(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*LikeResponse, error) {
	liked, total, err := s.repo.ToggleLike(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	return &LikeResponse{
		CardID: id,
		Liked:  liked,
		Likes:  total,
	}, nil
}

func (s *Service) UpdateBizNumber(
	ctx context.Context,
	actor core.Actor,
	id string,
	bizNumber int,
) (*Card, error) {
	if !CanChangeBizNumber(actor) {
		return nil, fmt.Errorf("update biz number: %w", core.ErrForbidden)
	}

	if err := s.repo.UpdateBizNumber(ctx, id, bizNumber); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func applyUpdate(card *Card, req UpdateCardRequest) {
	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Subtitle != nil {
		card.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.Phone != nil {
		card.Phone = *req.Phone
	}
	if req.Email != nil {
		card.Email = *req.Email
	}
	if req.Web != nil {
		card.Web = *req.Web
	}
	if req.Image != nil {
		card.ImageURL = req.Image.URL
		card.ImageAlt = req.Image.Alt
	}
	if req.Address != nil {
		card.AddressState = req.Address.State
		card.AddressCountry = req.Address.Country
		card.AddressCity = req.Address.City
		card.AddressStreet = req.Address.Street
		card.AddressHouseNumber = req.Address.HouseNumber
		card.AddressZip = req.Address.Zip
	}
}

// generateBizNumber draws a random 7-digit business number.
func generateBizNumber() int {
	//nolint:gosec // G404: business numbers are identifiers, not secrets
	return 1_000_000 + rand.IntN(9_000_000)
}
