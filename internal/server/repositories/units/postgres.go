// Package units provides the PostgreSQL-backed unit catalog.
package units

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/server/models"
)

// PostgresRepository implements unit storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a unit with lowercased codes.
func (r *PostgresRepository) Create(ctx context.Context, u *models.Unit) error {
	query := `
		INSERT INTO units (id, course_code, unit_code, unit_title, unit_year)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		u.ID, strings.ToLower(u.CourseCode), strings.ToLower(u.UnitCode), u.UnitTitle, u.UnitYear); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByCode looks a unit up by its code (compared lowercased).
func (r *PostgresRepository) GetByCode(ctx context.Context, unitCode string) (*models.Unit, error) {
	query := `SELECT id, course_code, unit_code, unit_title, unit_year FROM units WHERE unit_code = $1`
	u := &models.Unit{}
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(unitCode)).Scan(
		&u.ID, &u.CourseCode, &u.UnitCode, &u.UnitTitle, &u.UnitYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// ListByCourse returns every unit under a course, ordered by code.
func (r *PostgresRepository) ListByCourse(ctx context.Context, courseCode string) ([]*models.Unit, error) {
	query := `SELECT id, course_code, unit_code, unit_title, unit_year FROM units WHERE course_code = $1 ORDER BY unit_code`
	rows, err := r.db.QueryContext(ctx, query, strings.ToLower(courseCode))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Unit
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan(&u.ID, &u.CourseCode, &u.UnitCode, &u.UnitTitle, &u.UnitYear); err != nil {
			return nil, err
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a unit by code.
func (r *PostgresRepository) Delete(ctx context.Context, unitCode string) error {
	query := `DELETE FROM units WHERE unit_code = $1`
	res, err := r.db.ExecContext(ctx, query, strings.ToLower(unitCode))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
