// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type NameInput struct {
	First  string `json:"first"            validate:"required,min=2,max=256"`
	Middle string `json:"middle,omitempty" validate:"omitempty,max=256"`
	Last   string `json:"last"             validate:"required,min=2,max=256"`
}

type ImageInput struct {
	URL string `json:"url,omitempty" validate:"omitempty,url"`
	Alt string `json:"alt,omitempty" validate:"omitempty,min=2,max=256"`
}

type AddressInput struct {
	State       string `json:"state,omitempty"`
	Country     string `json:"country"       validate:"required,min=2,max=256"`
	City        string `json:"city"          validate:"required,min=2,max=256"`
	Street      string `json:"street"        validate:"required,min=2,max=256"`
	HouseNumber int    `json:"houseNumber"   validate:"required"`
	Zip         int    `json:"zip,omitempty"`
}

type RegisterRequest struct {
	Name       NameInput    `json:"name"       validate:"required"`
	Phone      string       `json:"phone"      validate:"required,ilphone"`
	Email      string       `json:"email"      validate:"required,email,max=255"`
	Password   string       `json:"password"   validate:"required,strongpwd,max=128"`
	Image      ImageInput   `json:"image"`
	Address    AddressInput `json:"address"    validate:"required"`
	IsBusiness bool         `json:"isBusiness"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AccountResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsBusiness bool   `json:"isBusiness"`
	IsAdmin    bool   `json:"isAdmin"`
}

type AuthResponse struct {
	User  AccountResponse `json:"user"`
	Token TokenResponse   `json:"token"`
}
