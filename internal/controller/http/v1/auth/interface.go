package auth

import (
	"context"

	"worksite/backend/internal/entity"
)

type Worker interface {
	GetByNationalID(ctx context.Context, nationalID string) (entity.Worker, error)
}
