// Package tokens provides the PostgreSQL-backed registry of live QR tokens,
// one per unit.
package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/server/models"
)

// PostgresRepository implements token storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert installs t as the unit's current token in a single statement.
// The ON CONFLICT clause is what closes the re-issuance race: there is no
// intermediate state with zero or two live tokens for the unit, and the
// previous raw string stops resolving the moment this commits.
func (r *PostgresRepository) Upsert(ctx context.Context, t *models.Token) error {
	query := `
		INSERT INTO qr_tokens (id, course_code, unit_code, lecturer, raw, scheduled_date, scheduled_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (unit_code)
		DO UPDATE SET
			id = EXCLUDED.id,
			course_code = EXCLUDED.course_code,
			lecturer = EXCLUDED.lecturer,
			raw = EXCLUDED.raw,
			scheduled_date = EXCLUDED.scheduled_date,
			scheduled_time = EXCLUDED.scheduled_time,
			issued_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query,
		t.ID, t.CourseCode, t.UnitCode, t.Lecturer, t.Raw, t.ScheduledDate, t.ScheduledTime); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Lookup returns the token matching raw, unit, and session identity exactly.
// A token issued for one (date, time) never matches another.
func (r *PostgresRepository) Lookup(ctx context.Context, raw, unitCode, scheduledDate, scheduledTime string) (*models.Token, error) {
	query := `
		SELECT id, course_code, unit_code, lecturer, raw, scheduled_date, scheduled_time, issued_at
		FROM qr_tokens
		WHERE raw = $1 AND unit_code = $2 AND scheduled_date = $3 AND scheduled_time = $4
	`
	t := &models.Token{}
	err := r.db.QueryRowContext(ctx, query, raw, unitCode, scheduledDate, scheduledTime).Scan(
		&t.ID, &t.CourseCode, &t.UnitCode, &t.Lecturer, &t.Raw, &t.ScheduledDate, &t.ScheduledTime, &t.IssuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// DeleteForSession removes any token bound to the session identity. Deleting
// zero rows is fine; revocation on session delete is defense in depth.
func (r *PostgresRepository) DeleteForSession(ctx context.Context, key models.SessionKey) error {
	query := `
		DELETE FROM qr_tokens
		WHERE unit_code = $1 AND scheduled_date = $2 AND scheduled_time = $3
	`
	if _, err := r.db.ExecContext(ctx, query, key.UnitCode, key.ScheduledDate, key.ScheduledTime); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
