// AngelaMos | 2026
// entity.go

package card

import (
	"slices"
	"time"
)

// Card is a published business listing. Likes holds the IDs of the
// users who liked it, loaded from the card_likes join table.
type Card struct {
	ID                 string    `db:"id"`
	Title              string    `db:"title"`
	Subtitle           string    `db:"subtitle"`
	Description        string    `db:"description"`
	Phone              string    `db:"phone"`
	Email              string    `db:"email"`
	Web                string    `db:"web"`
	ImageURL           string    `db:"image_url"`
	ImageAlt           string    `db:"image_alt"`
	AddressState       string    `db:"address_state"`
	AddressCountry     string    `db:"address_country"`
	AddressCity        string    `db:"address_city"`
	AddressStreet      string    `db:"address_street"`
	AddressHouseNumber int       `db:"address_house_number"`
	AddressZip         int       `db:"address_zip"`
	BizNumber          int       `db:"biz_number"`
	UserID             string    `db:"user_id"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`

	Likes []string `db:"-"`
}

func (c *Card) LikedBy(userID string) bool {
	return slices.Contains(c.Likes, userID)
}
