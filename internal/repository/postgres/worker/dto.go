package worker

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	Role   *string
	Active *bool
}

type SignInRequest struct {
	NationalID string `json:"national_id" form:"national_id"`
	Password   string `json:"password" form:"password"`
}

type AuthClaims struct {
	ID         int
	NationalID string
	Role       string
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type GetListResponse struct {
	ID         int     `json:"id"`
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	NationalID *string `json:"national_id"`
	Role       *string `json:"role"`
	Active     bool    `json:"active"`
}

type GetDetailByIdResponse struct {
	ID         int     `json:"id"`
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	NationalID *string `json:"national_id"`
	Role       *string `json:"role"`
	Active     bool    `json:"active"`
}

type CreateRequest struct {
	FullName   *string `json:"full_name"   form:"full_name"`
	Phone      *string `json:"phone"       form:"phone"`
	NationalID *string `json:"national_id" form:"national_id"`
	Password   *string `json:"password"    form:"password"`
	Role       *string `json:"role"        form:"role"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:workers"`

	ID         int       `json:"id" bun:"-"`
	FullName   *string   `json:"full_name"   bun:"full_name"`
	Phone      *string   `json:"phone"       bun:"phone"`
	NationalID *string   `json:"national_id" bun:"national_id"`
	Password   *string   `json:"-"           bun:"password"`
	Role       *string   `json:"role"        bun:"role"`
	Active     bool      `json:"active"      bun:"active"`
	CreatedAt  time.Time `json:"-"           bun:"created_at"`
	CreatedBy  int       `json:"-"           bun:"created_by"`
}

type UpdateRequest struct {
	ID         int     `json:"id" form:"id"`
	FullName   *string `json:"full_name"   form:"full_name"`
	Phone      *string `json:"phone"       form:"phone"`
	NationalID *string `json:"national_id" form:"national_id"`
	Password   *string `json:"password"    form:"password"`
	Role       *string `json:"role"        form:"role"`
}
