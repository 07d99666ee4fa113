package site

import (
	"context"

	"worksite/backend/internal/entity"
	"worksite/backend/internal/repository/postgres/site"
)

type Site interface {
	GetById(ctx context.Context, id int) (entity.Site, error)
	GetList(ctx context.Context, filter site.Filter) ([]site.GetListResponse, int, error)
	GetActiveList(ctx context.Context) ([]entity.Site, error)
	Create(ctx context.Context, request site.CreateRequest) (site.CreateResponse, error)
	UpdateColumns(ctx context.Context, request site.UpdateRequest) error
	Deactivate(ctx context.Context, id int) error
}
