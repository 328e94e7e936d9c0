package repomanager

import (
	"context"
	"database/sql"

	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/server/repositories/attendance"
	"github.com/dgitonga/qrollcall/internal/server/repositories/courses"
	"github.com/dgitonga/qrollcall/internal/server/repositories/refreshtokens"
	"github.com/dgitonga/qrollcall/internal/server/repositories/sessions"
	"github.com/dgitonga/qrollcall/internal/server/repositories/tokens"
	"github.com/dgitonga/qrollcall/internal/server/repositories/units"
	"github.com/dgitonga/qrollcall/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can run
// several repos against one transaction handle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Courses(db dbx.DBTX) courses.Repository
	Units(db dbx.DBTX) units.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Attendance(db dbx.DBTX) attendance.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
