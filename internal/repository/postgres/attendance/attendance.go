package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/entity"
	"worksite/backend/internal/pkg/repository/postgresql"
	"worksite/backend/internal/pkg/repository/redisdb"
	"worksite/backend/internal/repository/postgres"
)

type Repository struct {
	*postgresql.Database
	codes  *redisdb.Store
	window time.Duration
}

func NewRepository(database *postgresql.Database, codes *redisdb.Store, window time.Duration) *Repository {
	return &Repository{Database: database, codes: codes, window: window}
}

// Scan validates a QR scan and records the attendance event. The
// event timestamp is the server clock, never the client-reported scan
// time, so events cannot be backdated.
func (r Repository) Scan(ctx context.Context, request ScanRequest) (ScanResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return ScanResponse{}, err
	}

	if err := applyCode(&request); err != nil {
		return ScanResponse{}, err
	}

	if err := validateScan(request); err != nil {
		return ScanResponse{}, err
	}

	worker, err := r.fetchWorker(ctx, request.WorkerID)
	if err != nil {
		return ScanResponse{}, err
	}

	site, err := r.fetchSite(ctx, request.SiteID)
	if err != nil {
		return ScanResponse{}, err
	}

	var hashAlive *bool
	if request.ScannedAt != nil && request.Hash != "" && r.codes != nil {
		alive, err := r.codes.HashAlive(ctx, request.Hash)
		if err != nil {
			return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "checking qr hash"), http.StatusInternalServerError)
		}
		hashAlive = &alive
	}

	now := time.Now()

	distance, err := evaluateScan(claims, request, worker, site, now, r.window, hashAlive)
	if err != nil {
		return ScanResponse{}, err
	}

	var response ScanResponse
	response.SiteID = request.SiteID
	response.WorkerID = request.WorkerID
	response.EventTime = now
	response.Type = request.Type
	response.Latitude = *request.Latitude
	response.Longitude = *request.Longitude
	response.Phone = request.Phone
	response.Approved = false
	response.Distance = distance
	response.Notes = request.Notes
	response.CreatedAt = now
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusInternalServerError)
	}

	response.SiteName = site.Name
	response.WorkerName = worker.FullName

	return response, nil
}

// Approve marks a pending event approved. The check-and-set happens in
// a single conditional UPDATE so two concurrent approvals cannot both
// succeed.
func (r Repository) Approve(ctx context.Context, id int) (ApproveResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleSupervisor, auth.RoleAdmin)
	if err != nil {
		return ApproveResponse{}, err
	}

	now := time.Now()

	result, err := r.NewUpdate().Table("attendance").
		Where("id = ? AND approved = false", id).
		Set("approved = true").
		Set("approved_by = ?", claims.UserId).
		Set("approved_at = ?", now).
		Set("updated_at = ?", now).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return ApproveResponse{}, web.NewRequestError(errors.Wrap(err, "approving attendance"), http.StatusInternalServerError)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ApproveResponse{}, web.NewRequestError(errors.Wrap(err, "reading rows affected"), http.StatusInternalServerError)
	}

	if rows == 0 {
		exists := false
		if err := r.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM attendance WHERE id = $1)`, id).Scan(&exists); err != nil {
			return ApproveResponse{}, web.NewRequestError(errors.Wrap(err, "checking attendance"), http.StatusInternalServerError)
		}
		if !exists {
			return ApproveResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
		}
		return ApproveResponse{}, web.NewRequestError(postgres.ErrAlreadyApproved, http.StatusConflict)
	}

	var response ApproveResponse
	err = r.QueryRowContext(ctx, `
		SELECT
			a.id,
			s.name,
			w.full_name,
			a.type,
			a.event_time,
			a.distance,
			a.approved,
			a.approved_by,
			a.approved_at
		FROM attendance a
		LEFT JOIN sites s ON s.id = a.site_id
		LEFT JOIN workers w ON w.id = a.worker_id
		WHERE a.id = $1
	`, id).Scan(
		&response.ID,
		&response.SiteName,
		&response.WorkerName,
		&response.Type,
		&response.EventTime,
		&response.Distance,
		&response.Approved,
		&response.ApprovedBy,
		&response.ApprovedAt,
	)
	if err != nil {
		return ApproveResponse{}, web.NewRequestError(errors.Wrap(err, "selecting approved attendance"), http.StatusInternalServerError)
	}

	return response, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Workers only ever see their own records; the filter is narrowed,
	// not rejected.
	if !auth.Allowed(claims.Role, auth.ActionListAllAttendance, false) {
		filter.WorkerID = &claims.UserId
	}

	whereQuery := `WHERE 1=1`

	if filter.SiteID != nil {
		whereQuery += fmt.Sprintf(` AND a.site_id = %d`, *filter.SiteID)
	}
	if filter.WorkerID != nil {
		whereQuery += fmt.Sprintf(` AND a.worker_id = %d`, *filter.WorkerID)
	}
	if filter.Approved != nil {
		whereQuery += fmt.Sprintf(` AND a.approved = %t`, *filter.Approved)
	}
	if filter.Type != nil && (*filter.Type == entity.TypeCheckIn || *filter.Type == entity.TypeCheckOut) {
		whereQuery += fmt.Sprintf(` AND a.type = '%s'`, *filter.Type)
	}
	if filter.From != nil {
		whereQuery += fmt.Sprintf(` AND a.event_time::date >= '%s'`, filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		whereQuery += fmt.Sprintf(` AND a.event_time::date <= '%s'`, filter.To.Format("2006-01-02"))
	}

	orderQuery := "ORDER BY a.event_time desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery = fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.site_id,
			s.name,
			a.worker_id,
			w.full_name,
			w.national_id,
			a.event_time,
			a.type,
			a.distance,
			a.phone,
			a.approved,
			a.approved_by,
			a.approved_at
		FROM attendance a
		LEFT JOIN sites s ON s.id = a.site_id
		LEFT JOIN workers w ON w.id = a.worker_id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.SiteID,
			&detail.SiteName,
			&detail.WorkerID,
			&detail.WorkerName,
			&detail.NationalID,
			&detail.EventTime,
			&detail.Type,
			&detail.Distance,
			&detail.Phone,
			&detail.Approved,
			&detail.ApprovedBy,
			&detail.ApprovedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM attendance a
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, `
		SELECT
			a.id,
			a.site_id,
			s.name,
			a.worker_id,
			w.full_name,
			w.national_id,
			a.event_time,
			a.type,
			a.latitude,
			a.longitude,
			a.distance,
			a.phone,
			a.notes,
			a.approved,
			a.approved_by,
			a.approved_at
		FROM attendance a
		LEFT JOIN sites s ON s.id = a.site_id
		LEFT JOIN workers w ON w.id = a.worker_id
		WHERE a.id = $1
	`, id).Scan(
		&detail.ID,
		&detail.SiteID,
		&detail.SiteName,
		&detail.WorkerID,
		&detail.WorkerName,
		&detail.NationalID,
		&detail.EventTime,
		&detail.Type,
		&detail.Latitude,
		&detail.Longitude,
		&detail.Distance,
		&detail.Phone,
		&detail.Notes,
		&detail.Approved,
		&detail.ApprovedBy,
		&detail.ApprovedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance detail"), http.StatusInternalServerError)
	}

	if !auth.Allowed(claims.Role, auth.ActionListAllAttendance, false) && detail.WorkerID != claims.UserId {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrForbidden, http.StatusForbidden)
	}

	return detail, nil
}

// GetStats aggregates attendance counts by type and approval status
// and, for supervisors and admins, by site. Worker callers are scoped
// to their own records.
func (r Repository) GetStats(ctx context.Context, filter StatsFilter) (GetStatsResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetStatsResponse{}, err
	}

	whereQuery := `WHERE 1=1`
	if filter.From != nil {
		whereQuery += fmt.Sprintf(` AND a.event_time::date >= '%s'`, filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		whereQuery += fmt.Sprintf(` AND a.event_time::date <= '%s'`, filter.To.Format("2006-01-02"))
	}

	allStats := auth.Allowed(claims.Role, auth.ActionViewAllStats, false)
	if !allStats {
		whereQuery += fmt.Sprintf(` AND a.worker_id = %d`, claims.UserId)
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE a.type = 'check_in')  AS check_ins,
			COUNT(*) FILTER (WHERE a.type = 'check_out') AS check_outs,
			COUNT(*) FILTER (WHERE a.approved)           AS approved,
			COUNT(*) FILTER (WHERE NOT a.approved)       AS pending
		FROM attendance a
		%s
	`, whereQuery)

	var response GetStatsResponse
	if err := r.QueryRowContext(ctx, query).Scan(
		&response.CheckIns,
		&response.CheckOuts,
		&response.Approved,
		&response.Pending,
	); err != nil {
		return GetStatsResponse{}, web.NewRequestError(errors.Wrap(err, "scanning attendance stats"), http.StatusInternalServerError)
	}

	if !allStats {
		return response, nil
	}

	siteQuery := fmt.Sprintf(`
		SELECT
			s.id,
			s.name,
			count(a.id)
		FROM attendance a
		JOIN sites s ON s.id = a.site_id
		%s
		GROUP BY s.id, s.name
		ORDER BY s.name
	`, whereQuery)

	rows, err := r.QueryContext(ctx, siteQuery)
	if err != nil {
		return GetStatsResponse{}, web.NewRequestError(errors.Wrap(err, "selecting site stats"), http.StatusInternalServerError)
	}
	defer rows.Close()

	for rows.Next() {
		var sc SiteCount
		if err = rows.Scan(&sc.SiteID, &sc.SiteName, &sc.Count); err != nil {
			return GetStatsResponse{}, web.NewRequestError(errors.Wrap(err, "scanning site stats"), http.StatusInternalServerError)
		}
		response.BySite = append(response.BySite, sc)
	}

	return response, nil
}

// GetExportList returns the rows for the spreadsheet export.
func (r Repository) GetExportList(ctx context.Context, filter Filter) ([]ExportRow, error) {
	list, _, err := r.GetList(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(list))
	for _, item := range list {
		rows = append(rows, ExportRow{
			WorkerName: item.WorkerName,
			NationalID: item.NationalID,
			SiteName:   item.SiteName,
			Type:       item.Type,
			EventTime:  item.EventTime,
			Distance:   item.Distance,
			Phone:      item.Phone,
			Approved:   item.Approved,
		})
	}

	return rows, nil
}

func (r Repository) fetchWorker(ctx context.Context, id int) (*entity.Worker, error) {
	var worker entity.Worker

	err := r.NewSelect().Model(&worker).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting worker"), http.StatusInternalServerError)
	}

	return &worker, nil
}

func (r Repository) fetchSite(ctx context.Context, id int) (*entity.Site, error) {
	var site entity.Site

	err := r.NewSelect().Model(&site).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting site"), http.StatusInternalServerError)
	}

	return &site, nil
}
