// Package users provides the PostgreSQL-backed account store.
package users

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

// PostgresRepository implements account storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, role, reg_no, national_id, full_names, password_hash, course_code, course_title, year, blocked, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Role, &u.RegNo, &u.NationalID, &u.FullNames,
		&u.PasswordHash, &u.CourseCode, &u.CourseTitle, &u.Year, &u.Blocked, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a user with a lowercased reg number.
func (r *PostgresRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, role, reg_no, national_id, full_names, password_hash, course_code, course_title, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := r.db.ExecContext(ctx, query,
		u.ID, u.Role, strings.ToLower(u.RegNo), u.NationalID, u.FullNames,
		u.PasswordHash, u.CourseCode, u.CourseTitle, u.Year); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByRegNo looks a user up by reg number (compared lowercased).
func (r *PostgresRepository) GetByRegNo(ctx context.Context, regNo string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reg_no = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, strings.ToLower(regNo)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// GetByID looks a user up by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// ListByCourse returns every user registered under a course code.
func (r *PostgresRepository) ListByCourse(ctx context.Context, courseCode string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE course_code = $1 ORDER BY reg_no`
	rows, err := r.db.QueryContext(ctx, query, courseCode)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetBlocked updates the blocked flag for one user.
func (r *PostgresRepository) SetBlocked(ctx context.Context, regNo string, blocked bool) error {
	query := `UPDATE users SET blocked = $2 WHERE reg_no = $1`
	res, err := r.db.ExecContext(ctx, query, strings.ToLower(regNo), blocked)
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

// Delete removes a user by reg number.
func (r *PostgresRepository) Delete(ctx context.Context, regNo string) error {
	query := `DELETE FROM users WHERE reg_no = $1`
	res, err := r.db.ExecContext(ctx, query, strings.ToLower(regNo))
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
