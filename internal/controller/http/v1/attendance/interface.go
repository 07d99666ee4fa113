package attendance

import (
	"context"

	"worksite/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	Scan(ctx context.Context, request attendance.ScanRequest) (attendance.ScanResponse, error)
	Approve(ctx context.Context, id int) (attendance.ApproveResponse, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (attendance.GetDetailByIdResponse, error)
	GetStats(ctx context.Context, filter attendance.StatsFilter) (attendance.GetStatsResponse, error)
	GetExportList(ctx context.Context, filter attendance.Filter) ([]attendance.ExportRow, error)
}
