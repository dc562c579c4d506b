// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type NamePayload struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

type ImagePayload struct {
	URL string `json:"url,omitempty"`
	Alt string `json:"alt,omitempty"`
}

type AddressPayload struct {
	State       string `json:"state,omitempty"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber int    `json:"houseNumber"`
	Zip         int    `json:"zip,omitempty"`
}

type UpdateNameRequest struct {
	First  *string `json:"first,omitempty"  validate:"omitempty,min=2,max=256"`
	Middle *string `json:"middle,omitempty" validate:"omitempty,max=256"`
	Last   *string `json:"last,omitempty"   validate:"omitempty,min=2,max=256"`
}

type UpdateImageRequest struct {
	URL *string `json:"url,omitempty" validate:"omitempty,url"`
	Alt *string `json:"alt,omitempty" validate:"omitempty,min=2,max=256"`
}

type UpdateAddressRequest struct {
	State       *string `json:"state,omitempty"`
	Country     *string `json:"country,omitempty"     validate:"omitempty,min=2,max=256"`
	City        *string `json:"city,omitempty"        validate:"omitempty,min=2,max=256"`
	Street      *string `json:"street,omitempty"      validate:"omitempty,min=2,max=256"`
	HouseNumber *int    `json:"houseNumber,omitempty"`
	Zip         *int    `json:"zip,omitempty"`
}

type UpdateUserRequest struct {
	Name     *UpdateNameRequest    `json:"name,omitempty"`
	Phone    *string               `json:"phone,omitempty"    validate:"omitempty,ilphone"`
	Email    *string               `json:"email,omitempty"    validate:"omitempty,email,max=255"`
	Password *string               `json:"password,omitempty" validate:"omitempty,strongpwd,max=128"`
	Image    *UpdateImageRequest   `json:"image,omitempty"`
	Address  *UpdateAddressRequest `json:"address,omitempty"`
}

type SetBusinessStatusRequest struct {
	IsBusiness *bool `json:"isBusiness" validate:"required"`
}

type UserResponse struct {
	ID         string         `json:"id"`
	Email      string         `json:"email"`
	Name       NamePayload    `json:"name"`
	Phone      string         `json:"phone"`
	Image      ImagePayload   `json:"image"`
	Address    AddressPayload `json:"address"`
	IsBusiness bool           `json:"isBusiness"`
	IsAdmin    bool           `json:"isAdmin"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name: NamePayload{
			First:  u.FirstName,
			Middle: u.MiddleName,
			Last:   u.LastName,
		},
		Phone: u.Phone,
		Image: ImagePayload{
			URL: u.ImageURL,
			Alt: u.ImageAlt,
		},
		Address: AddressPayload{
			State:       u.AddressState,
			Country:     u.AddressCountry,
			City:        u.AddressCity,
			Street:      u.AddressStreet,
			HouseNumber: u.AddressHouseNumber,
			Zip:         u.AddressZip,
		},
		IsBusiness: u.IsBusiness,
		IsAdmin:    u.IsAdmin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
