package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/server/models"
	"github.com/dgitonga/qrollcall/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ScheduleService owns the session lifecycle. Deleting a schedule also
// revokes any QR token bound to the deleted sessions, so an outstanding
// token cannot be redeemed against a re-created session.
type ScheduleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewScheduleService(db *sql.DB, rm repomanager.RepositoryManager) *ScheduleService {
	return &ScheduleService{db: db, repomanager: rm}
}

// Add schedules a new session. The unit must exist, and the identity tuple
// must be free.
func (s *ScheduleService) Add(ctx context.Context, courseCode, unitCode, scheduledDate, scheduledTime string) error {
	session := &models.Session{
		ID:            uuid.NewString(),
		CourseCode:    strings.ToLower(courseCode),
		UnitCode:      strings.ToLower(unitCode),
		ScheduledDate: scheduledDate,
		ScheduledTime: scheduledTime,
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Units(tx).GetByCode(ctx, session.UnitCode); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("unit %s: %w", session.UnitCode, common.ErrNotFound)
			}
			return err
		}
		return s.repomanager.Sessions(tx).Create(ctx, session)
	})
}

// ListByCourse returns the sessions scheduled for a course.
func (s *ScheduleService) ListByCourse(ctx context.Context, courseCode string) ([]*models.Session, error) {
	result, err := s.repomanager.Sessions(s.db).ListByCourse(ctx, strings.ToLower(courseCode))
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, common.ErrNotFound
	}
	return result, nil
}

// DeleteByUnit removes every session for the unit and revokes the tokens
// bound to them, in one transaction.
func (s *ScheduleService) DeleteByUnit(ctx context.Context, unitCode string) error {
	unitCode = strings.ToLower(unitCode)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		deleted, err := s.repomanager.Sessions(tx).DeleteByUnit(ctx, unitCode)
		if err != nil {
			return err
		}
		if len(deleted) == 0 {
			return common.ErrNotFound
		}
		for _, key := range deleted {
			if err := s.repomanager.Tokens(tx).DeleteForSession(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
