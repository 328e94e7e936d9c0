package courses

import (
	"context"

	"github.com/dgitonga/qrollcall/internal/server/models"
)

type Repository interface {
	// Create inserts a new course; a taken code is common.ErrAlreadyExists.
	Create(ctx context.Context, c *models.Course) error

	// GetByCode returns the course with the given code, or common.ErrNotFound.
	GetByCode(ctx context.Context, courseCode string) (*models.Course, error)

	// List returns all courses.
	List(ctx context.Context) ([]*models.Course, error)

	// Delete removes a course; unknown codes are common.ErrNotFound.
	Delete(ctx context.Context, courseCode string) error
}
