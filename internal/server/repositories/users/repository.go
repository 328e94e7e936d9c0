package users

import (
	"context"

	"github.com/dgitonga/qrollcall/internal/server/models"
)

type Repository interface {
	// Create inserts a new user; a taken reg number is common.ErrAlreadyExists.
	Create(ctx context.Context, u *models.User) error

	// GetByRegNo returns the user with the given (lowercased) reg number,
	// or common.ErrNotFound.
	GetByRegNo(ctx context.Context, regNo string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// ListByCourse returns users attached to a course.
	ListByCourse(ctx context.Context, courseCode string) ([]*models.User, error)

	// SetBlocked flips the blocked flag; unknown reg numbers are
	// common.ErrNotFound.
	SetBlocked(ctx context.Context, regNo string, blocked bool) error

	// Delete removes a user; unknown reg numbers are common.ErrNotFound.
	Delete(ctx context.Context, regNo string) error
}
