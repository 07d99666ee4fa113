package worker

import (
	"context"

	"worksite/backend/internal/entity"
	"worksite/backend/internal/repository/postgres/worker"
)

type Worker interface {
	GetById(ctx context.Context, id int) (entity.Worker, error)
	GetList(ctx context.Context, filter worker.Filter) ([]worker.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (worker.GetDetailByIdResponse, error)
	Create(ctx context.Context, request worker.CreateRequest) (worker.CreateResponse, error)
	UpdateColumns(ctx context.Context, request worker.UpdateRequest) error
	Deactivate(ctx context.Context, id int) error
}
