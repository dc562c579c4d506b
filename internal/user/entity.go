// AngelaMos | 2026
// entity.go

package user

import (
	"strings"
	"time"
)

type User struct {
	ID                 string     `db:"id"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	FirstName          string     `db:"first_name"`
	MiddleName         string     `db:"middle_name"`
	LastName           string     `db:"last_name"`
	Phone              string     `db:"phone"`
	ImageURL           string     `db:"image_url"`
	ImageAlt           string     `db:"image_alt"`
	AddressState       string     `db:"address_state"`
	AddressCountry     string     `db:"address_country"`
	AddressCity        string     `db:"address_city"`
	AddressStreet      string     `db:"address_street"`
	AddressHouseNumber int        `db:"address_house_number"`
	AddressZip         int        `db:"address_zip"`
	IsBusiness         bool       `db:"is_business"`
	IsAdmin            bool       `db:"is_admin"`
	LoginAttempts      int        `db:"login_attempts"`
	LockUntil          *time.Time `db:"lock_until"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

func (u *User) FullName() string {
	parts := []string{u.FirstName}
	if u.MiddleName != "" {
		parts = append(parts, u.MiddleName)
	}
	parts = append(parts, u.LastName)
	return strings.Join(parts, " ")
}

// Locked reports whether the account holds an unexpired lock.
func (u *User) Locked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}
