// Package postgresql wraps the bun connection and the cross-cutting
// helpers every repository needs: claims lookup, request struct
// validation and soft deactivation.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
)

type Database struct {
	*bun.DB
}

type Config struct {
	Username   string
	Password   string
	Host       string
	Port       string
	Name       string
	DisableTLS bool
	Debug      bool
}

func NewDatabase(cfg Config) *Database {
	sslMode := "require"
	if cfg.DisableTLS {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Name, sslMode)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &Database{DB: db}
}

// CheckClaims retrieves the authenticated claims from ctx and, when
// roles are given, requires one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.Claims{}, err
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields of a request struct are
// set.
func (d Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	return web.CheckRequiredFields(s, requiredFields...)
}

// DeactivateRow soft-deactivates a row. Rows are never physically
// deleted; every visibility query filters on active.
func (d Database) DeactivateRow(ctx context.Context, table string, id, by int) error {
	q := d.NewUpdate().Table(table).
		Where("active = true AND id = ?", id).
		Set("active = false").
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", by)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deactivating %s row", table), http.StatusInternalServerError)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reading rows affected"), http.StatusInternalServerError)
	}
	if rows == 0 {
		return web.NewRequestError(errors.Errorf("%s row not found or already inactive", table), http.StatusNotFound)
	}

	return nil
}
