package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type Site struct {
	bun.BaseModel `bun:"table:sites"`

	BasicEntity
	Name        *string    `json:"name"        bun:"name"`
	Description *string    `json:"description" bun:"description"`
	Address     *string    `json:"address"     bun:"address"`
	Latitude    float64    `json:"latitude"    bun:"latitude"`
	Longitude   float64    `json:"longitude"   bun:"longitude"`
	Radius      int        `json:"radius"      bun:"radius"`
	Active      bool       `json:"active"      bun:"active"`
	StartDate   *time.Time `json:"start_date,omitempty" bun:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"   bun:"end_date"`
}
