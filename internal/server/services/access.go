package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/server/auth"
	"github.com/dgitonga/qrollcall/internal/server/config"
	"github.com/dgitonga/qrollcall/internal/server/models"
	"github.com/dgitonga/qrollcall/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterParams carries a validated registration record.
type RegisterParams struct {
	Role       string
	RegNo      string
	NationalID string
	FullNames  string
	Password   string
	CourseCode string
	Year       string
}

// AccessService handles registration, login, and refresh-token rotation.
type AccessService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewAccessService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *AccessService {
	return &AccessService{db: db, repomanager: rm, config: cfg}
}

// Register creates a new account. Lecturers and students must name an
// existing course; its title is denormalized onto the user row.
func (s *AccessService) Register(ctx context.Context, p RegisterParams) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Role:         strings.ToLower(p.Role),
		RegNo:        strings.ToLower(p.RegNo),
		NationalID:   p.NationalID,
		FullNames:    p.FullNames,
		PasswordHash: string(hash),
		Year:         p.Year,
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if user.Role != models.RoleAdmin {
			code := strings.ToLower(strings.TrimSpace(p.CourseCode))
			course, err := s.repomanager.Courses(tx).GetByCode(ctx, code)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return fmt.Errorf("course %s: %w", code, common.ErrNotFound)
				}
				return err
			}
			user.CourseCode = course.CourseCode
			user.CourseTitle = course.CourseTitle
		}
		return s.repomanager.Users(tx).Create(ctx, user)
	})
}

// Login verifies the credentials and returns the account with a fresh token
// pair. The role claimed at login must match the stored one, and blocked
// accounts are rejected before the password is even compared.
func (s *AccessService) Login(ctx context.Context, role, regNo, password string) (*models.User, *TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByRegNo(ctx, regNo)
	if err != nil {
		return nil, nil, err
	}

	if !strings.EqualFold(role, user.Role) {
		return nil, nil, fmt.Errorf("role mismatch: %w", common.ErrUnauthorized)
	}
	if user.Blocked {
		return nil, nil, fmt.Errorf("account blocked: %w", common.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("bad credentials: %w", common.ErrUnauthorized)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a
// new pair is issued. Expired tokens are deleted and rejected.
func (s *AccessService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	if time.Now().After(stored.Expires) {
		_ = s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return err
		}
		u, err := s.repomanager.Users(tx).GetByID(ctx, stored.UserID)
		if err != nil {
			// The account may have been deleted since the token was issued.
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrUnauthorized
			}
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, user)
}

// EnsureAdmin creates the default admin account on first startup.
func (s *AccessService) EnsureAdmin(ctx context.Context) error {
	_, err := s.repomanager.Users(s.db).GetByRegNo(ctx, "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	return s.Register(ctx, RegisterParams{
		Role:       models.RoleAdmin,
		RegNo:      "admin",
		NationalID: "00000000",
		FullNames:  "System Admin",
		Password:   "admin",
	})
}

func (s *AccessService) issueTokenPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(user.ID, user.RegNo, user.Role,
		[]byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.RefreshTokens(s.db).Create(ctx, user.ID, refreshToken,
		s.config.RefreshTokenValidityDuration); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
