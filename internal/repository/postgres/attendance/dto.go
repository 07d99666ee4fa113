package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit    *int
	Offset   *int
	Page     *int
	SiteID   *int
	WorkerID *int
	Approved *bool
	Type     *string
	From     *date.Date
	To       *date.Date
}

// ScanRequest is a decoded QR scan. ScannedAt and Hash travel only
// when the scanned payload was a generated, expiring one; printed
// static codes carry neither. Code may hold the scanned payload
// verbatim instead of the unpacked fields.
type ScanRequest struct {
	Code      string     `json:"code,omitempty" form:"code"`
	SiteID    int        `json:"site_id"   form:"site_id"`
	WorkerID  int        `json:"worker_id" form:"worker_id"`
	Phone     string     `json:"phone"     form:"phone"`
	Latitude  *float64   `json:"latitude"  form:"latitude"`
	Longitude *float64   `json:"longitude" form:"longitude"`
	Type      string     `json:"type"      form:"type"`
	ScannedAt *time.Time `json:"scanned_at,omitempty" form:"scanned_at"`
	Hash      string     `json:"hash,omitempty"       form:"hash"`
	Notes     *string    `json:"notes,omitempty"      form:"notes"`
}

type ScanResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID         int       `json:"id" bun:"-"`
	SiteID     int       `json:"site_id"    bun:"site_id"`
	WorkerID   int       `json:"worker_id"  bun:"worker_id"`
	EventTime  time.Time `json:"event_time" bun:"event_time"`
	Type       string    `json:"type"       bun:"type"`
	Latitude   float64   `json:"latitude"   bun:"latitude"`
	Longitude  float64   `json:"longitude"  bun:"longitude"`
	Phone      string    `json:"phone"      bun:"phone"`
	Approved   bool      `json:"approved"   bun:"approved"`
	Distance   int       `json:"distance"   bun:"distance"`
	Notes      *string   `json:"notes,omitempty" bun:"notes"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
	SiteName   *string   `json:"site,omitempty"   bun:"-"`
	WorkerName *string   `json:"worker,omitempty" bun:"-"`
}

type GetListResponse struct {
	ID         int        `json:"id"`
	SiteID     int        `json:"site_id"`
	SiteName   *string    `json:"site"`
	WorkerID   int        `json:"worker_id"`
	WorkerName *string    `json:"worker"`
	NationalID *string    `json:"national_id"`
	EventTime  time.Time  `json:"event_time"`
	Type       string     `json:"type"`
	Distance   *int       `json:"distance"`
	Phone      string     `json:"phone"`
	Approved   bool       `json:"approved"`
	ApprovedBy *int       `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

type GetDetailByIdResponse struct {
	ID         int        `json:"id"`
	SiteID     int        `json:"site_id"`
	SiteName   *string    `json:"site"`
	WorkerID   int        `json:"worker_id"`
	WorkerName *string    `json:"worker"`
	NationalID *string    `json:"national_id"`
	EventTime  time.Time  `json:"event_time"`
	Type       string     `json:"type"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Distance   *int       `json:"distance"`
	Phone      string     `json:"phone"`
	Notes      *string    `json:"notes,omitempty"`
	Approved   bool       `json:"approved"`
	ApprovedBy *int       `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

type ApproveResponse struct {
	ID         int        `json:"id"`
	SiteName   *string    `json:"site"`
	WorkerName *string    `json:"worker"`
	Type       string     `json:"type"`
	EventTime  time.Time  `json:"event_time"`
	Distance   *int       `json:"distance"`
	Approved   bool       `json:"approved"`
	ApprovedBy int        `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
}

type StatsFilter struct {
	From *date.Date
	To   *date.Date
}

type SiteCount struct {
	SiteID   int     `json:"site_id"`
	SiteName *string `json:"site"`
	Count    int     `json:"count"`
}

type GetStatsResponse struct {
	CheckIns  int         `json:"check_ins"`
	CheckOuts int         `json:"check_outs"`
	Approved  int         `json:"approved"`
	Pending   int         `json:"pending"`
	BySite    []SiteCount `json:"by_site,omitempty"`
}

type ExportRow struct {
	WorkerName *string
	NationalID *string
	SiteName   *string
	Type       string
	EventTime  time.Time
	Distance   *int
	Phone      string
	Approved   bool
}
