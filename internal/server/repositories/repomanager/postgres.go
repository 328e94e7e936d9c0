// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/server/migrations"
	"github.com/dgitonga/qrollcall/internal/server/repositories/attendance"
	"github.com/dgitonga/qrollcall/internal/server/repositories/courses"
	"github.com/dgitonga/qrollcall/internal/server/repositories/refreshtokens"
	"github.com/dgitonga/qrollcall/internal/server/repositories/sessions"
	"github.com/dgitonga/qrollcall/internal/server/repositories/tokens"
	"github.com/dgitonga/qrollcall/internal/server/repositories/units"
	"github.com/dgitonga/qrollcall/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Courses(db dbx.DBTX) courses.Repository {
	return courses.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Units(db dbx.DBTX) units.Repository {
	return units.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tokens(db dbx.DBTX) tokens.Repository {
	return tokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Attendance(db dbx.DBTX) attendance.Repository {
	return attendance.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
