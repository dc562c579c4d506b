// AngelaMos | 2026
// repository.go

package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/cardfolio/internal/core"
)

type Repository interface {
	Create(ctx context.Context, card *Card) error
	GetByID(ctx context.Context, id string) (*Card, error)
	List(ctx context.Context, params ListCardsParams) ([]Card, int, error)
	ListByUser(
		ctx context.Context,
		userID string,
		params ListCardsParams,
	) ([]Card, int, error)
	Update(ctx context.Context, card *Card) error
	UpdateBizNumber(ctx context.Context, id string, bizNumber int) error
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, cardID, userID string) (bool, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const cardColumns = `id, title, subtitle, description, phone, email, web,
	       image_url, image_alt,
	       address_state, address_country, address_city, address_street,
	       address_house_number, address_zip,
	       biz_number, user_id, created_at, updated_at`

func (r *repository) Create(ctx context.Context, card *Card) error {
	query := `
		INSERT INTO cards (
			id, title, subtitle, description, phone, email, web,
			image_url, image_alt,
			address_state, address_country, address_city, address_street,
			address_house_number, address_zip,
			biz_number, user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
		        $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, card, query,
		card.ID,
		card.Title,
		card.Subtitle,
		card.Description,
		card.Phone,
		card.Email,
		card.Web,
		card.ImageURL,
		card.ImageAlt,
		card.AddressState,
		card.AddressCountry,
		card.AddressCity,
		card.AddressStreet,
		card.AddressHouseNumber,
		card.AddressZip,
		card.BizNumber,
		card.UserID,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create card: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create card: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Card, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM cards
		WHERE id = $1`, cardColumns)

	var card Card
	err := r.db.GetContext(ctx, &card, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get card: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	cards := []Card{card}
	if err := r.loadLikes(ctx, cards); err != nil {
		return nil, err
	}

	return &cards[0], nil
}

func (r *repository) List(
	ctx context.Context,
	params ListCardsParams,
) ([]Card, int, error) {
	return r.list(ctx, params, "")
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListCardsParams,
) ([]Card, int, error) {
	return r.list(ctx, params, userID)
}

func (r *repository) list(
	ctx context.Context,
	params ListCardsParams,
	ownerID string,
) ([]Card, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if ownerID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, ownerID)
		argIdx++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR subtitle ILIKE $%d OR description ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM cards WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count cards: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM cards
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		cardColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var cards []Card
	if err := r.db.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list cards: %w", err)
	}

	if err := r.loadLikes(ctx, cards); err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}

func (r *repository) Update(ctx context.Context, card *Card) error {
	query := `
		UPDATE cards
		SET title = $2, subtitle = $3, description = $4,
		    phone = $5, email = $6, web = $7,
		    image_url = $8, image_alt = $9,
		    address_state = $10, address_country = $11, address_city = $12,
		    address_street = $13, address_house_number = $14, address_zip = $15,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &card.UpdatedAt, query,
		card.ID,
		card.Title,
		card.Subtitle,
		card.Description,
		card.Phone,
		card.Email,
		card.Web,
		card.ImageURL,
		card.ImageAlt,
		card.AddressState,
		card.AddressCountry,
		card.AddressCity,
		card.AddressStreet,
		card.AddressHouseNumber,
		card.AddressZip,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update card: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}

	return nil
}

func (r *repository) UpdateBizNumber(
	ctx context.Context,
	id string,
	bizNumber int,
) error {
	query := `
		UPDATE cards
		SET biz_number = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, bizNumber)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update biz number: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update biz number: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update biz number: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update biz number: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM cards WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete card: %w", core.ErrNotFound)
	}

	return nil
}

// ToggleLike flips the like edge for (cardID, userID) inside a
// transaction and returns the new state plus the total like count.
func (r *repository) ToggleLike(
	ctx context.Context,
	cardID, userID string,
) (bool, int, error) {
	var liked bool
	var total int

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM cards WHERE id = $1)`, cardID)
		if err != nil {
			return fmt.Errorf("check card: %w", err)
		}
		if !exists {
			return fmt.Errorf("toggle like: %w", core.ErrNotFound)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM card_likes WHERE card_id = $1 AND user_id = $2`,
			cardID, userID)
		if err != nil {
			return fmt.Errorf("unlike card: %w", err)
		}

		removed, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("unlike card: %w", err)
		}

		if removed == 0 {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO card_likes (card_id, user_id) VALUES ($1, $2)`,
				cardID, userID)
			if err != nil {
				return fmt.Errorf("like card: %w", err)
			}
			liked = true
		}

		err = tx.GetContext(ctx, &total,
			`SELECT COUNT(*) FROM card_likes WHERE card_id = $1`, cardID)
		if err != nil {
			return fmt.Errorf("count likes: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return liked, total, nil
}

type likeRow struct {
	CardID string `db:"card_id"`
	UserID string `db:"user_id"`
}

func (r *repository) loadLikes(ctx context.Context, cards []Card) error {
	if len(cards) == 0 {
		return nil
	}

	ids := make([]string, 0, len(cards))
	for i := range cards {
		cards[i].Likes = []string{}
		ids = append(ids, cards[i].ID)
	}

	query, args, err := sqlx.In(
		`SELECT card_id, user_id FROM card_likes WHERE card_id IN (?)`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("load likes: %w", err)
	}

	var rows []likeRow
	query = r.db.Rebind(query)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("load likes: %w", err)
	}

	byCard := make(map[string][]string, len(cards))
	for _, row := range rows {
		byCard[row.CardID] = append(byCard[row.CardID], row.UserID)
	}

	for i := range cards {
		if likes, ok := byCard[cards[i].ID]; ok {
			cards[i].Likes = likes
		}
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
