package entity

import "time"

type BasicEntity struct {
	ID        int        `json:"id" bun:"id,pk,autoincrement"`
	CreatedAt time.Time  `json:"created_at" bun:"created_at"`
	CreatedBy *int       `json:"created_by,omitempty" bun:"created_by"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bun:"updated_at"`
	UpdatedBy *int       `json:"updated_by,omitempty" bun:"updated_by"`
}
