package site

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/entity"
	"worksite/backend/internal/pkg/repository/postgresql"
	"worksite/backend/internal/repository/postgres"
)

// DefaultRadius is applied when a site is created without an explicit
// permitted radius, in meters.
const DefaultRadius = 100

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func validateCoordinates(lat, long float64) error {
	if lat < -90 || lat > 90 {
		return web.NewRequestError(errors.New("latitude must be between -90 and 90"), http.StatusBadRequest)
	}
	if long < -180 || long > 180 {
		return web.NewRequestError(errors.New("longitude must be between -180 and 180"), http.StatusBadRequest)
	}
	return nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Site, error) {
	var detail entity.Site

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Site{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Site{}, web.NewRequestError(errors.Wrap(err, "selecting site by id"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Active sites only unless explicitly asked otherwise.
	whereQuery := `WHERE s.active = true`
	if filter.Active != nil && !*filter.Active {
		whereQuery = `WHERE s.active = false`
	}

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND (s.name ilike '%s' OR s.address ilike '%s')`,
			"%"+search+"%", "%"+search+"%")
	}

	orderQuery := "ORDER BY s.name asc"

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
			s.id,
			s.name,
			s.description,
			s.address,
			s.latitude,
			s.longitude,
			s.radius,
			s.active,
			s.start_date,
			s.end_date
		FROM sites s
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting sites"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.Description,
			&detail.Address,
			&detail.Latitude,
			&detail.Longitude,
			&detail.Radius,
			&detail.Active,
			&detail.StartDate,
			&detail.EndDate); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning site list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(s.id)
		FROM sites s
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning site count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetActiveList returns every active site, used when building the
// printable QR sheet.
func (r Repository) GetActiveList(ctx context.Context) ([]entity.Site, error) {
	var list []entity.Site

	err := r.NewSelect().Model(&list).
		Where("active = true").
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting active sites"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "Latitude", "Longitude"); err != nil {
		return CreateResponse{}, err
	}

	if err := validateCoordinates(*request.Latitude, *request.Longitude); err != nil {
		return CreateResponse{}, err
	}

	radius := DefaultRadius
	if request.Radius != nil {
		if *request.Radius <= 0 {
			return CreateResponse{}, web.NewRequestError(errors.New("radius must be a positive number of meters"), http.StatusBadRequest)
		}
		radius = *request.Radius
	}

	var response CreateResponse
	response.Name = request.Name
	response.Description = request.Description
	response.Address = request.Address
	response.Latitude = *request.Latitude
	response.Longitude = *request.Longitude
	response.Radius = radius
	response.Active = true
	response.StartDate = request.StartDate
	response.EndDate = request.EndDate
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating site"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("sites").Where("id = ?", request.ID)

	if request.Latitude != nil || request.Longitude != nil {
		// Both coordinates move together to keep the geofence coherent.
		if request.Latitude == nil || request.Longitude == nil {
			return web.NewRequestError(errors.New("latitude and longitude must be updated together"), http.StatusBadRequest)
		}
		if err := validateCoordinates(*request.Latitude, *request.Longitude); err != nil {
			return err
		}
		q.Set("latitude = ?", request.Latitude)
		q.Set("longitude = ?", request.Longitude)
	}

	if request.Radius != nil {
		if *request.Radius <= 0 {
			return web.NewRequestError(errors.New("radius must be a positive number of meters"), http.StatusBadRequest)
		}
		q.Set("radius = ?", request.Radius)
	}

	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.Description != nil {
		q.Set("description = ?", request.Description)
	}
	if request.Address != nil {
		q.Set("address = ?", request.Address)
	}
	if request.StartDate != nil {
		q.Set("start_date = ?", request.StartDate)
	}
	if request.EndDate != nil {
		q.Set("end_date = ?", request.EndDate)
	}
	if request.Active != nil {
		q.Set("active = ?", request.Active)
	}

	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating site"), http.StatusBadRequest)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// Deactivate soft-deactivates the site; attendance rows keep their
// reference to it.
func (r Repository) Deactivate(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	return r.DeactivateRow(ctx, "sites", id, claims.UserId)
}
