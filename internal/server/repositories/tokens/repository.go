package tokens

import (
	"context"

	"github.com/dgitonga/qrollcall/internal/server/models"
)

type Repository interface {
	// Upsert atomically replaces the unit's current token, if any, with t.
	Upsert(ctx context.Context, t *models.Token) error

	// Lookup resolves a token by its raw string, unit, and bound session
	// identity. All four must match exactly; a miss is common.ErrNotFound.
	Lookup(ctx context.Context, raw, unitCode, scheduledDate, scheduledTime string) (*models.Token, error)

	// DeleteForSession revokes any token bound to the given session identity.
	DeleteForSession(ctx context.Context, key models.SessionKey) error
}
