package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/sealx"
	"github.com/dgitonga/qrollcall/internal/server/models"
	"github.com/dgitonga/qrollcall/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenClaims is the plaintext of a QR token. The sealed form of this
// struct is the raw token string clients scan and submit back.
type TokenClaims struct {
	CourseCode string `json:"courseCode"`
	UnitCode   string `json:"unitCode"`
	Lecturer   string `json:"lecturer"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	// Nonce makes every issued raw string globally unique, independent of
	// the cipher's own nonce, so a retired token can never coincide with a
	// future one.
	Nonce string `json:"nonce"`
}

// IssueParams identifies the session a lecturer opens for attendance.
type IssueParams struct {
	CourseCode string
	UnitCode   string
	Lecturer   string
	Date       string
	Time       string
}

// AttendanceService issues QR tokens and redeems them into the attendance
// ledger. It holds no cross-request state; every operation runs inside its
// own transaction.
type AttendanceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	box         *sealx.Box
}

func NewAttendanceService(db *sql.DB, rm repomanager.RepositoryManager, box *sealx.Box) *AttendanceService {
	return &AttendanceService{db: db, repomanager: rm, box: box}
}

// IssueToken mints a fresh token for the unit and installs it as the only
// live one. Any previously issued token for the unit stops resolving the
// moment the transaction commits, even if a client still displays it.
func (s *AttendanceService) IssueToken(ctx context.Context, p IssueParams) (string, error) {
	claims := TokenClaims{
		CourseCode: strings.ToLower(p.CourseCode),
		UnitCode:   strings.ToLower(p.UnitCode),
		Lecturer:   p.Lecturer,
		Date:       p.Date,
		Time:       p.Time,
		Nonce:      uuid.NewString(),
	}

	raw, err := s.box.Seal(claims)
	if err != nil {
		return "", err
	}

	token := &models.Token{
		ID:            uuid.NewString(),
		CourseCode:    claims.CourseCode,
		UnitCode:      claims.UnitCode,
		Lecturer:      claims.Lecturer,
		Raw:           raw,
		ScheduledDate: claims.Date,
		ScheduledTime: claims.Time,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Tokens(tx).Upsert(ctx, token)
	})
	if err != nil {
		return "", err
	}

	return raw, nil
}

// Redeem marks the student present for the session a scanned token is bound
// to. The gates run in order inside one transaction; the first failing gate
// rolls everything back:
//
//	decode token      -> common.ErrDecryption
//	registry lookup   -> common.ErrTokenInvalid
//	session lookup    -> common.ErrSessionInvalid
//	ledger insert     -> common.ErrAlreadyMarked
func (s *AttendanceService) Redeem(ctx context.Context, rawToken, regNo string) error {
	var claims TokenClaims
	if err := s.box.Open(rawToken, &claims); err != nil {
		return err
	}

	key := models.SessionKey{
		UnitCode:      claims.UnitCode,
		ScheduledDate: claims.Date,
		ScheduledTime: claims.Time,
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repomanager.Tokens(tx).Lookup(ctx, rawToken, key.UnitCode, key.ScheduledDate, key.ScheduledTime)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrTokenInvalid
			}
			return err
		}

		// The registry row alone is not enough: the session may have been
		// deleted after issuance, leaving a dangling token.
		session, err := s.repomanager.Sessions(tx).Find(ctx, key)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrSessionInvalid
			}
			return err
		}

		entry := &models.AttendanceEntry{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			TokenRaw:  token.Raw,
			RegNo:     regNo,
		}
		return s.repomanager.Attendance(tx).Insert(ctx, entry)
	})
}

// Ledger returns the attendance entries recorded for one session.
func (s *AttendanceService) Ledger(ctx context.Context, key models.SessionKey) ([]*models.AttendanceEntry, error) {
	key.UnitCode = strings.ToLower(key.UnitCode)
	session, err := s.repomanager.Sessions(s.db).Find(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrSessionInvalid
		}
		return nil, err
	}
	return s.repomanager.Attendance(s.db).ListBySession(ctx, session.ID)
}
