// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cardfolio/internal/card"
	"github.com/carterperez-dev/cardfolio/internal/config"
	"github.com/carterperez-dev/cardfolio/internal/core"
	"github.com/carterperez-dev/cardfolio/internal/user"
)

const seedPassword = "Password!1"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("seed error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // best-effort close

	userRepo := user.NewRepository(db.DB)
	cardRepo := card.NewRepository(db.DB)

	business, err := seedUsers(ctx, userRepo)
	if err != nil {
		return err
	}

	if err := seedCards(ctx, cardRepo, business); err != nil {
		return err
	}

	slog.Info("seed complete")
	return nil
}

// seedUsers inserts the three demo accounts, skipping any that already
// exist so repeated runs are safe. Returns the business account the
// demo cards hang off.
func seedUsers(ctx context.Context, repo user.Repository) (*user.User, error) {
	hash, err := core.HashPassword(seedPassword)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := []user.User{
		{
			ID:         uuid.New().String(),
			Email:      "regular@cardfolio.dev",
			FirstName:  "Noa",
			LastName:   "Levi",
			Phone:      "050-123 4567",
			IsBusiness: false,
		},
		{
			ID:         uuid.New().String(),
			Email:      "business@cardfolio.dev",
			FirstName:  "Avi",
			LastName:   "Mizrahi",
			Phone:      "052-765 4321",
			IsBusiness: true,
		},
		{
			ID:         uuid.New().String(),
			Email:      "admin@cardfolio.dev",
			FirstName:  "Dana",
			LastName:   "Cohen",
			Phone:      "053-111 2233",
			IsBusiness: true,
			IsAdmin:    true,
		},
	}

	var business *user.User
	for i := range users {
		u := &users[i]
		u.PasswordHash = hash
		u.AddressCountry = "Israel"
		u.AddressCity = "Tel Aviv"
		u.AddressStreet = "Rothschild Blvd"
		u.AddressHouseNumber = i + 1

		existing, err := repo.GetByEmail(ctx, u.Email)
		if err == nil {
			slog.Info("user exists, skipping", "email", u.Email)
			if existing.IsBusiness && !existing.IsAdmin {
				business = existing
			}
			continue
		}
		if !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}

		if err := repo.Create(ctx, u); err != nil {
			return nil, err
		}
		slog.Info("user created", "email", u.Email)

		if u.IsBusiness && !u.IsAdmin {
			business = u
		}
	}

	if business == nil {
		return nil, errors.New("seed: no business account available")
	}

	return business, nil
}

func seedCards(
	ctx context.Context,
	repo card.Repository,
	owner *user.User,
) error {
	existing, _, err := repo.ListByUser(ctx, owner.ID, card.ListCardsParams{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		slog.Info("cards exist, skipping", "owner", owner.Email)
		return nil
	}

	cards := []card.Card{
		{
			Title:       "Mizrahi Plumbing",
			Subtitle:    "Emergency repairs, day and night",
			Description: "Licensed plumbing services for homes and offices across the Tel Aviv area.",
			Phone:       "052-765 4321",
			Email:       "contact@mizrahi-plumbing.dev",
			BizNumber:   1000001,
		},
		{
			Title:       "Mizrahi Renovations",
			Subtitle:    "Kitchens, bathrooms, full remodels",
			Description: "Turnkey renovation projects with transparent pricing and fixed schedules.",
			Phone:       "052-765 4321",
			Email:       "projects@mizrahi-renovations.dev",
			BizNumber:   1000002,
		},
		{
			Title:       "Mizrahi Consulting",
			Subtitle:    "Small-business operations advice",
			Description: "Practical consulting for contractors who want to grow without drowning in paperwork.",
			Phone:       "052-765 4321",
			Email:       "hello@mizrahi-consulting.dev",
			BizNumber:   1000003,
		},
	}

	for i := range cards {
		c := &cards[i]
		c.ID = uuid.New().String()
		c.UserID = owner.ID
		c.AddressCountry = "Israel"
		c.AddressCity = "Tel Aviv"
		c.AddressStreet = "Rothschild Blvd"
		c.AddressHouseNumber = 10 + i

		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		slog.Info("card created", "title", c.Title)
	}

	return nil
}
