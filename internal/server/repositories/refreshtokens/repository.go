package refreshtokens

import (
	"context"
	"time"

	"github.com/dgitonga/qrollcall/internal/server/models"
)

type Repository interface {
	// Create inserts a refresh token expiring after validity.
	Create(ctx context.Context, userID, token string, validity time.Duration) error

	// Find returns the token row, or common.ErrNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token by its string.
	Delete(ctx context.Context, token string) error
}
