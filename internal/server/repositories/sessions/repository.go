package sessions

import (
	"context"

	"github.com/dgitonga/qrollcall/internal/server/models"
)

type Repository interface {
	// Create inserts a new session. A session with the same identity tuple
	// already existing is common.ErrAlreadyExists.
	Create(ctx context.Context, s *models.Session) error

	// Find returns the session with the given identity, or common.ErrNotFound.
	Find(ctx context.Context, key models.SessionKey) (*models.Session, error)

	// ListByCourse returns all sessions scheduled for a course.
	ListByCourse(ctx context.Context, courseCode string) ([]*models.Session, error)

	// DeleteByUnit removes every session for the unit and returns the
	// identities of the deleted rows so callers can revoke bound tokens.
	DeleteByUnit(ctx context.Context, unitCode string) ([]models.SessionKey, error)
}
