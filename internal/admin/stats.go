// AngelaMos | 2026
// stats.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/cardfolio/internal/core"
)

type StatsStore interface {
	CatalogStats(ctx context.Context) (*CatalogStats, error)
}

type CatalogStats struct {
	Users         int `json:"users" db:"users"`
	BusinessUsers int `json:"business_users" db:"business_users"`
	LockedUsers   int `json:"locked_users" db:"locked_users"`
	Cards         int `json:"cards" db:"cards"`
	Likes         int `json:"likes" db:"likes"`
}

type statsStore struct {
	db core.DBTX
}

func NewStatsStore(db core.DBTX) StatsStore {
	return &statsStore{db: db}
}

func (s *statsStore) CatalogStats(
	ctx context.Context,
) (*CatalogStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM users WHERE is_business) AS business_users,
			(SELECT COUNT(*) FROM users
			 WHERE lock_until IS NOT NULL AND lock_until > NOW()) AS locked_users,
			(SELECT COUNT(*) FROM cards) AS cards,
			(SELECT COUNT(*) FROM card_likes) AS likes`

	var stats CatalogStats
	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}

	return &stats, nil
}
