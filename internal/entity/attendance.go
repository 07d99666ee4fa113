package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance event types.
const (
	TypeCheckIn  = "check_in"
	TypeCheckOut = "check_out"
)

type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	SiteID     int        `json:"site_id"    bun:"site_id"`
	WorkerID   int        `json:"worker_id"  bun:"worker_id"`
	EventTime  time.Time  `json:"event_time" bun:"event_time"`
	Type       string     `json:"type"       bun:"type"`
	Latitude   float64    `json:"latitude"   bun:"latitude"`
	Longitude  float64    `json:"longitude"  bun:"longitude"`
	Phone      string     `json:"phone"      bun:"phone"`
	Approved   bool       `json:"approved"   bun:"approved"`
	Distance   *int       `json:"distance"   bun:"distance"`
	Notes      *string    `json:"notes,omitempty"       bun:"notes"`
	ApprovedBy *int       `json:"approved_by,omitempty" bun:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at,omitempty" bun:"approved_at"`
}
