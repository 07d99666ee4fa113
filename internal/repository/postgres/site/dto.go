package site

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	Active *bool
}

type GetListResponse struct {
	ID          int        `json:"id"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Address     *string    `json:"address"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Radius      int        `json:"radius"`
	Active      bool       `json:"active"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type CreateRequest struct {
	Name        *string    `json:"name"        form:"name"`
	Description *string    `json:"description" form:"description"`
	Address     *string    `json:"address"     form:"address"`
	Latitude    *float64   `json:"latitude"    form:"latitude"`
	Longitude   *float64   `json:"longitude"   form:"longitude"`
	Radius      *int       `json:"radius"      form:"radius"`
	StartDate   *time.Time `json:"start_date"  form:"start_date"`
	EndDate     *time.Time `json:"end_date"    form:"end_date"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:sites"`

	ID          int        `json:"id" bun:"-"`
	Name        *string    `json:"name"        bun:"name"`
	Description *string    `json:"description" bun:"description"`
	Address     *string    `json:"address"     bun:"address"`
	Latitude    float64    `json:"latitude"    bun:"latitude"`
	Longitude   float64    `json:"longitude"   bun:"longitude"`
	Radius      int        `json:"radius"      bun:"radius"`
	Active      bool       `json:"active"      bun:"active"`
	StartDate   *time.Time `json:"start_date,omitempty" bun:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"   bun:"end_date"`
	CreatedAt   time.Time  `json:"-" bun:"created_at"`
	CreatedBy   int        `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID          int        `json:"id" form:"id"`
	Name        *string    `json:"name"        form:"name"`
	Description *string    `json:"description" form:"description"`
	Address     *string    `json:"address"     form:"address"`
	Latitude    *float64   `json:"latitude"    form:"latitude"`
	Longitude   *float64   `json:"longitude"   form:"longitude"`
	Radius      *int       `json:"radius"      form:"radius"`
	StartDate   *time.Time `json:"start_date"  form:"start_date"`
	EndDate     *time.Time `json:"end_date"    form:"end_date"`
	Active      *bool      `json:"active"      form:"active"`
}
