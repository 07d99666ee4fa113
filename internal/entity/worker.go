package entity

import (
	"github.com/uptrace/bun"
)

type Worker struct {
	bun.BaseModel `bun:"table:workers"`

	BasicEntity
	FullName   *string `json:"full_name"   bun:"full_name"`
	Phone      *string `json:"phone"       bun:"phone"`
	NationalID *string `json:"national_id" bun:"national_id"`
	Password   *string `json:"-"           bun:"password"`
	Role       *string `json:"role"        bun:"role"`
	Active     bool    `json:"active"      bun:"active"`
}
