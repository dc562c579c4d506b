// AngelaMos | 2026
// dto.go

package card

import (
	"time"
)

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

type ImageInput struct {
	URL string `json:"url,omitempty" validate:"omitempty,url"`
	Alt string `json:"alt,omitempty" validate:"omitempty,min=2,max=256"`
}

type AddressInput struct {
	State       string `json:"state,omitempty"`
	Country     string `json:"country"     validate:"required,min=2,max=256"`
	City        string `json:"city"        validate:"required,min=2,max=256"`
	Street      string `json:"street"      validate:"required,min=2,max=256"`
	HouseNumber int    `json:"houseNumber" validate:"required"`
	Zip         int    `json:"zip,omitempty"`
}

type CreateCardRequest struct {
	Title       string       `json:"title"       validate:"required,min=2,max=256"`
	Subtitle    string       `json:"subtitle"    validate:"required,min=2,max=256"`
	Description string       `json:"description" validate:"required,min=2,max=1024"`
	Phone       string       `json:"phone"       validate:"required,ilphone"`
	Email       string       `json:"email"       validate:"required,email,max=255"`
	Web         string       `json:"web,omitempty" validate:"omitempty,url"`
	Image       ImageInput   `json:"image"`
	Address     AddressInput `json:"address"     validate:"required"`
}

type UpdateCardRequest struct {
	Title       *string       `json:"title,omitempty"       validate:"omitempty,min=2,max=256"`
	Subtitle    *string       `json:"subtitle,omitempty"    validate:"omitempty,min=2,max=256"`
	Description *string       `json:"description,omitempty" validate:"omitempty,min=2,max=1024"`
	Phone       *string       `json:"phone,omitempty"       validate:"omitempty,ilphone"`
	Email       *string       `json:"email,omitempty"       validate:"omitempty,email,max=255"`
	Web         *string       `json:"web,omitempty"         validate:"omitempty,url"`
	Image       *ImageInput   `json:"image,omitempty"`
	Address     *AddressInput `json:"address,omitempty"`
}

type UpdateBizNumberRequest struct {
	BizNumber int `json:"bizNumber" validate:"required,min=1000000,max=9999999"`
}

type CardResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Web         string         `json:"web,omitempty"`
	Image       ImagePayload   `json:"image"`
	Address     AddressPayload `json:"address"`
	BizNumber   int            `json:"bizNumber"`
	UserID      string         `json:"user_id"`
	Likes       []string       `json:"likes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type LikeResponse struct {
	CardID string `json:"card_id"`
	Liked  bool   `json:"liked"`
	Likes  int    `json:"likes"`
}

type ListCardsParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

func (p *ListCardsParams) Normalize() {
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

func (p *ListCardsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToCardResponse(c *Card) CardResponse {
	likes := c.Likes
	if likes == nil {
		likes = []string{}
	}
	return CardResponse{
		ID:          c.ID,
		Title:       c.Title,
		Subtitle:    c.Subtitle,
		Description: c.Description,
		Phone:       c.Phone,
		Email:       c.Email,
		Web:         c.Web,
		Image: ImagePayload{
			URL: c.ImageURL,
			Alt: c.ImageAlt,
		},
		Address: AddressPayload{
			State:       c.AddressState,
			Country:     c.AddressCountry,
			City:        c.AddressCity,
			Street:      c.AddressStreet,
			HouseNumber: c.AddressHouseNumber,
			Zip:         c.AddressZip,
		},
		BizNumber: c.BizNumber,
		UserID:    c.UserID,
		Likes:     likes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToCardResponseList(cards []Card) []CardResponse {
	responses := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		responses = append(responses, ToCardResponse(&c))
	}
	return responses
}
