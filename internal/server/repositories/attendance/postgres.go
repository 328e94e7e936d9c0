// Package attendance provides the PostgreSQL-backed attendance ledger:
// append-only rows, one per redeemed token per student per session.
package attendance

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/server/models"
)

// PostgresRepository implements ledger storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert appends the entry. reg_no is lowercased on write, so the
// (session_id, reg_no) unique constraint enforces case-insensitive
// once-per-student marking without a prior read.
func (r *PostgresRepository) Insert(ctx context.Context, e *models.AttendanceEntry) error {
	query := `
		INSERT INTO attendance_entries (id, session_id, token_raw, reg_no)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query,
		e.ID, e.SessionID, e.TokenRaw, strings.ToLower(e.RegNo)); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyMarked
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListBySession returns the ledger for one session, oldest entry first.
func (r *PostgresRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.AttendanceEntry, error) {
	query := `
		SELECT id, session_id, token_raw, reg_no, marked_at
		FROM attendance_entries
		WHERE session_id = $1
		ORDER BY marked_at
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AttendanceEntry
	for rows.Next() {
		var e models.AttendanceEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.TokenRaw, &e.RegNo, &e.MarkedAt); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
