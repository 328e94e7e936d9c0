package units

import (
	"context"

	"github.com/dgitonga/qrollcall/internal/server/models"
)

type Repository interface {
	// Create inserts a new unit; a taken unit code is common.ErrAlreadyExists.
	Create(ctx context.Context, u *models.Unit) error

	// GetByCode returns the unit with the given code, or common.ErrNotFound.
	GetByCode(ctx context.Context, unitCode string) (*models.Unit, error)

	// ListByCourse returns all units taught under a course.
	ListByCourse(ctx context.Context, courseCode string) ([]*models.Unit, error)

	// Delete removes a unit; unknown codes are common.ErrNotFound.
	Delete(ctx context.Context, unitCode string) error
}
