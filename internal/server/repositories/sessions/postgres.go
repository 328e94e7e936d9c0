// Package sessions provides the PostgreSQL-backed directory of scheduled
// class sessions.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/server/models"
)

// PostgresRepository implements session storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a session; the (unit_code, scheduled_date, scheduled_time)
// unique constraint turns duplicates into common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO schedules (id, course_code, unit_code, scheduled_date, scheduled_time)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		s.ID, s.CourseCode, s.UnitCode, s.ScheduledDate, s.ScheduledTime); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the session with the given identity tuple.
func (r *PostgresRepository) Find(ctx context.Context, key models.SessionKey) (*models.Session, error) {
	query := `
		SELECT id, course_code, unit_code, scheduled_date, scheduled_time, created_at
		FROM schedules
		WHERE unit_code = $1 AND scheduled_date = $2 AND scheduled_time = $3
	`
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, key.UnitCode, key.ScheduledDate, key.ScheduledTime).Scan(
		&s.ID, &s.CourseCode, &s.UnitCode, &s.ScheduledDate, &s.ScheduledTime, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// ListByCourse returns all sessions for a course, newest first.
func (r *PostgresRepository) ListByCourse(ctx context.Context, courseCode string) ([]*models.Session, error) {
	query := `
		SELECT id, course_code, unit_code, scheduled_date, scheduled_time, created_at
		FROM schedules
		WHERE course_code = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, courseCode)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.CourseCode, &s.UnitCode, &s.ScheduledDate, &s.ScheduledTime, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByUnit removes every session for the unit, returning the deleted
// identities. Attendance entries go with them via ON DELETE CASCADE.
func (r *PostgresRepository) DeleteByUnit(ctx context.Context, unitCode string) ([]models.SessionKey, error) {
	query := `
		DELETE FROM schedules
		WHERE unit_code = $1
		RETURNING unit_code, scheduled_date, scheduled_time
	`
	rows, err := r.db.QueryContext(ctx, query, unitCode)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var deleted []models.SessionKey
	for rows.Next() {
		var key models.SessionKey
		if err := rows.Scan(&key.UnitCode, &key.ScheduledDate, &key.ScheduledTime); err != nil {
			return nil, err
		}
		deleted = append(deleted, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deleted, nil
}
