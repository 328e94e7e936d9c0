package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/server/models"
	"github.com/dgitonga/qrollcall/internal/server/repositories/repomanager"
)

// UserService is the admin view over accounts: listing per course,
// blocking, and removal.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: rm}
}

// ListByCourse returns the accounts attached to a course.
func (s *UserService) ListByCourse(ctx context.Context, courseCode string) ([]*models.User, error) {
	result, err := s.repomanager.Users(s.db).ListByCourse(ctx, strings.ToLower(courseCode))
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, common.ErrNotFound
	}
	return result, nil
}

// SetBlocked flips the blocked flag on an account. Blocked accounts cannot
// log in; tokens they already hold expire on their own.
func (s *UserService) SetBlocked(ctx context.Context, regNo string, blocked bool) error {
	return s.repomanager.Users(s.db).SetBlocked(ctx, strings.ToLower(regNo), blocked)
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, regNo string) error {
	return s.repomanager.Users(s.db).Delete(ctx, strings.ToLower(regNo))
}
