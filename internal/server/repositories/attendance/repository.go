package attendance

import (
	"context"

	"github.com/dgitonga/qrollcall/internal/server/models"
)

type Repository interface {
	// Insert appends one ledger entry. A second entry for the same student
	// in the same session is common.ErrAlreadyMarked.
	Insert(ctx context.Context, e *models.AttendanceEntry) error

	// ListBySession returns a session's ledger in marking order.
	ListBySession(ctx context.Context, sessionID string) ([]*models.AttendanceEntry, error)
}
