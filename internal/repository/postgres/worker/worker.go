package worker

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/entity"
	"worksite/backend/internal/pkg/repository/postgresql"
	"worksite/backend/internal/repository/postgres"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetByNationalID is the credential-store lookup used by sign-in. It
// intentionally returns inactive workers too; the caller decides how
// to report inactivity.
func (r Repository) GetByNationalID(ctx context.Context, nationalID string) (entity.Worker, error) {
	var detail entity.Worker

	err := r.NewSelect().Model(&detail).Where("national_id = ?", nationalID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Worker{}, web.NewRequestError(postgres.ErrNotFound, http.StatusUnauthorized)
	}
	if err != nil {
		return entity.Worker{}, web.NewRequestError(errors.Wrap(err, "selecting worker by national id"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Worker, error) {
	var detail entity.Worker

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Worker{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Worker{}, web.NewRequestError(errors.Wrap(err, "selecting worker by id"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleSupervisor, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `WHERE w.active = true`

	if filter.Active != nil && !*filter.Active {
		whereQuery = `WHERE w.active = false`
	}
	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND (w.full_name ilike '%s' OR w.national_id ilike '%s')`,
			"%"+search+"%", "%"+search+"%")
	}
	if filter.Role != nil {
		role := strings.Replace(*filter.Role, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND w.role = '%s'`, role)
	}

	orderQuery := "ORDER BY w.full_name asc"

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
			w.id,
			w.full_name,
			w.phone,
			w.national_id,
			w.role,
			w.active
		FROM workers w
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting workers"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.FullName,
			&detail.Phone,
			&detail.NationalID,
			&detail.Role,
			&detail.Active); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning worker list"), http.StatusInternalServerError)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(w.id)
		FROM workers w
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning worker count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleSupervisor, auth.RoleAdmin)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, `
		SELECT
			w.id,
			w.full_name,
			w.phone,
			w.national_id,
			w.role,
			w.active
		FROM workers w
		WHERE w.id = $1
	`, id).Scan(
		&detail.ID,
		&detail.FullName,
		&detail.Phone,
		&detail.NationalID,
		&detail.Role,
		&detail.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting worker detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "FullName", "Phone", "NationalID", "Password", "Role"); err != nil {
		return CreateResponse{}, err
	}

	role := strings.ToLower(*request.Role)
	if role != auth.RoleWorker && role != auth.RoleSupervisor && role != auth.RoleAdmin {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect role. role should be worker, supervisor or admin"), http.StatusBadRequest)
	}

	// The national id is unique across active and inactive workers.
	taken := false
	if err := r.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM workers WHERE national_id = $1)`, *request.NationalID).Scan(&taken); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "national_id check"), http.StatusInternalServerError)
	}
	if taken {
		return CreateResponse{}, web.NewRequestError(errors.New("national_id is already registered"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashedPassword := string(hash)

	var response CreateResponse
	response.FullName = request.FullName
	response.Phone = request.Phone
	response.NationalID = request.NationalID
	response.Password = &hashedPassword
	response.Role = &role
	response.Active = true
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating worker"), http.StatusBadRequest)
	}

	response.Password = nil

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

	q := r.NewUpdate().Table("workers").Where("id = ?", request.ID)

	if request.NationalID != nil {
		taken := false
		if err := r.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM workers WHERE national_id = $1 AND id != $2)`,
			*request.NationalID, request.ID).Scan(&taken); err != nil {
			return web.NewRequestError(errors.Wrap(err, "national_id check"), http.StatusInternalServerError)
		}
		if taken {
			return web.NewRequestError(errors.New("national_id is already registered"), http.StatusBadRequest)
		}
		q.Set("national_id = ?", request.NationalID)
	}

	if request.Role != nil {
		role := strings.ToLower(*request.Role)
		if role != auth.RoleWorker && role != auth.RoleSupervisor && role != auth.RoleAdmin {
			return web.NewRequestError(errors.New("incorrect role. role should be worker, supervisor or admin"), http.StatusBadRequest)
		}
		q.Set("role = ?", role)
	}

	if request.FullName != nil {
		q.Set("full_name = ?", request.FullName)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}

	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating worker"), http.StatusBadRequest)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// Deactivate flips the active flag. Workers are never hard-deleted;
// attendance rows keep referencing them.
func (r Repository) Deactivate(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	return r.DeactivateRow(ctx, "workers", id, claims.UserId)
}
