package tokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestUpsert_ReplacesCurrentToken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO qr_tokens .* ON CONFLICT \(unit_code\) DO UPDATE SET`).
		WithArgs("t1", "bsc-cs", "cs101", "lec1", "sealed-raw", "2024-05-01", "09:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &models.Token{
		ID:            "t1",
		CourseCode:    "bsc-cs",
		UnitCode:      "cs101",
		Lecturer:      "lec1",
		Raw:           "sealed-raw",
		ScheduledDate: "2024-05-01",
		ScheduledTime: "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO qr_tokens`).
		WillReturnError(errors.New("db is down"))

	err := repo.Upsert(context.Background(), &models.Token{ID: "t1", UnitCode: "cs101"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLookup_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "course_code", "unit_code", "lecturer", "raw", "scheduled_date", "scheduled_time", "issued_at",
	}).AddRow("t1", "bsc-cs", "cs101", "lec1", "sealed-raw", "2024-05-01", "09:00", time.Now())

	mock.ExpectQuery(`SELECT .* FROM qr_tokens WHERE raw = \$1 AND unit_code = \$2`).
		WithArgs("sealed-raw", "cs101", "2024-05-01", "09:00").
		WillReturnRows(rows)

	got, err := repo.Lookup(context.Background(), "sealed-raw", "cs101", "2024-05-01", "09:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Lecturer != "lec1" || got.UnitCode != "cs101" {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestLookup_MissIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM qr_tokens`).
		WithArgs("stale-raw", "cs101", "2024-05-01", "09:00").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Lookup(context.Background(), "stale-raw", "cs101", "2024-05-01", "09:00")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteForSession(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM qr_tokens WHERE unit_code = \$1 AND scheduled_date = \$2`).
		WithArgs("cs101", "2024-05-01", "09:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteForSession(context.Background(), models.SessionKey{
		UnitCode:      "cs101",
		ScheduledDate: "2024-05-01",
		ScheduledTime: "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
