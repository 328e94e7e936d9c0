// Package courses provides the PostgreSQL-backed course catalog.
package courses

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

// PostgresRepository implements course storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a course with a lowercased code.
func (r *PostgresRepository) Create(ctx context.Context, c *models.Course) error {
	query := `
		INSERT INTO courses (id, course_code, course_title, course_level)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query,
		c.ID, strings.ToLower(c.CourseCode), c.CourseTitle, c.CourseLevel); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByCode looks a course up by its code (compared lowercased).
func (r *PostgresRepository) GetByCode(ctx context.Context, courseCode string) (*models.Course, error) {
	query := `SELECT id, course_code, course_title, course_level FROM courses WHERE course_code = $1`
	c := &models.Course{}
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(courseCode)).Scan(
		&c.ID, &c.CourseCode, &c.CourseTitle, &c.CourseLevel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// List returns every course, ordered by code.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Course, error) {
	query := `SELECT id, course_code, course_title, course_level FROM courses ORDER BY course_code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.CourseCode, &c.CourseTitle, &c.CourseLevel); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a course by code.
func (r *PostgresRepository) Delete(ctx context.Context, courseCode string) error {
	query := `DELETE FROM courses WHERE course_code = $1`
	res, err := r.db.ExecContext(ctx, query, strings.ToLower(courseCode))
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
