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

// CatalogService manages courses and the units taught under them.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCatalogService(db *sql.DB, rm repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: rm}
}

// AddCourse registers a new course under a unique code.
func (s *CatalogService) AddCourse(ctx context.Context, courseCode, courseTitle, courseLevel string) error {
	course := &models.Course{
		ID:          uuid.NewString(),
		CourseCode:  strings.ToLower(courseCode),
		CourseTitle: courseTitle,
		CourseLevel: courseLevel,
	}
	return s.repomanager.Courses(s.db).Create(ctx, course)
}

// ListCourses returns every registered course.
func (s *CatalogService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	result, err := s.repomanager.Courses(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, common.ErrNotFound
	}
	return result, nil
}

// DeleteCourse removes a course together with every unit taught under it.
// Each unit goes through the same cleanup as DeleteUnit, so the course's
// sessions and live tokens disappear in the same transaction.
func (s *CatalogService) DeleteCourse(ctx context.Context, courseCode string) error {
	courseCode = strings.ToLower(courseCode)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		units, err := s.repomanager.Units(tx).ListByCourse(ctx, courseCode)
		if err != nil {
			return err
		}
		for _, unit := range units {
			if err := s.deleteUnit(ctx, tx, unit.UnitCode); err != nil {
				return err
			}
		}
		return s.repomanager.Courses(tx).Delete(ctx, courseCode)
	})
}

// AddUnit registers a unit under an existing course.
func (s *CatalogService) AddUnit(ctx context.Context, courseCode, unitCode, unitTitle string, unitYear int) error {
	unit := &models.Unit{
		ID:         uuid.NewString(),
		CourseCode: strings.ToLower(courseCode),
		UnitCode:   strings.ToLower(unitCode),
		UnitTitle:  unitTitle,
		UnitYear:   unitYear,
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Courses(tx).GetByCode(ctx, unit.CourseCode); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("course %s: %w", unit.CourseCode, common.ErrNotFound)
			}
			return err
		}
		return s.repomanager.Units(tx).Create(ctx, unit)
	})
}

// ListUnits returns the units taught under a course.
func (s *CatalogService) ListUnits(ctx context.Context, courseCode string) ([]*models.Unit, error) {
	result, err := s.repomanager.Units(s.db).ListByCourse(ctx, strings.ToLower(courseCode))
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, common.ErrNotFound
	}
	return result, nil
}

// DeleteUnit removes a unit along with its sessions and any live token. The
// attendance ledger rows go with the sessions via the storage cascade.
func (s *CatalogService) DeleteUnit(ctx context.Context, unitCode string) error {
	unitCode = strings.ToLower(unitCode)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.deleteUnit(ctx, tx, unitCode)
	})
}

func (s *CatalogService) deleteUnit(ctx context.Context, tx dbx.DBTX, unitCode string) error {
	deleted, err := s.repomanager.Sessions(tx).DeleteByUnit(ctx, unitCode)
	if err != nil {
		return err
	}
	for _, key := range deleted {
		if err := s.repomanager.Tokens(tx).DeleteForSession(ctx, key); err != nil {
			return err
		}
	}
	return s.repomanager.Units(tx).Delete(ctx, unitCode)
}
