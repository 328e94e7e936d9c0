package services

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/dbx"
	"github.com/dgitonga/qrollcall/internal/server/models"
	attendancerepo "github.com/dgitonga/qrollcall/internal/server/repositories/attendance"
	coursesrepo "github.com/dgitonga/qrollcall/internal/server/repositories/courses"
	refreshtokensrepo "github.com/dgitonga/qrollcall/internal/server/repositories/refreshtokens"
	"github.com/dgitonga/qrollcall/internal/server/repositories/repomanager"
	sessionsrepo "github.com/dgitonga/qrollcall/internal/server/repositories/sessions"
	tokensrepo "github.com/dgitonga/qrollcall/internal/server/repositories/tokens"
	unitsrepo "github.com/dgitonga/qrollcall/internal/server/repositories/units"
	usersrepo "github.com/dgitonga/qrollcall/internal/server/repositories/users"
)

// In-memory fakes mirroring the storage constraints the Postgres
// implementations enforce, so service behavior around uniqueness and
// missing rows is testable without a database.

type fakeTokensRepo struct {
	mu     sync.Mutex
	byUnit map[string]*models.Token

	upsertErr error
	lookupErr error
}

func (f *fakeTokensRepo) Upsert(ctx context.Context, t *models.Token) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUnit[t.UnitCode] = t
	return nil
}

func (f *fakeTokensRepo) Lookup(ctx context.Context, raw, unitCode, scheduledDate, scheduledTime string) (*models.Token, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byUnit[unitCode]
	if !ok || t.Raw != raw || t.ScheduledDate != scheduledDate || t.ScheduledTime != scheduledTime {
		return nil, common.ErrNotFound
	}
	return t, nil
}

func (f *fakeTokensRepo) DeleteForSession(ctx context.Context, key models.SessionKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.byUnit[key.UnitCode]; ok && t.SessionKey() == key {
		delete(f.byUnit, key.UnitCode)
	}
	return nil
}

type fakeSessionsRepo struct {
	mu    sync.Mutex
	byKey map[models.SessionKey]*models.Session

	createErr error
	findErr   error
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byKey[s.Key()]; ok {
		return common.ErrAlreadyExists
	}
	f.byKey[s.Key()] = s
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, key models.SessionKey) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byKey[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionsRepo) ListByCourse(ctx context.Context, courseCode string) ([]*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Session
	for _, s := range f.byKey {
		if s.CourseCode == courseCode {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionsRepo) DeleteByUnit(ctx context.Context, unitCode string) ([]models.SessionKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted []models.SessionKey
	for key := range f.byKey {
		if key.UnitCode == unitCode {
			delete(f.byKey, key)
			deleted = append(deleted, key)
		}
	}
	return deleted, nil
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	entries []*models.AttendanceEntry

	insertErr error
}

func (f *fakeAttendanceRepo) Insert(ctx context.Context, e *models.AttendanceEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	regNo := strings.ToLower(e.RegNo)
	for _, existing := range f.entries {
		if existing.SessionID == e.SessionID && existing.RegNo == regNo {
			return common.ErrAlreadyMarked
		}
	}
	clone := *e
	clone.RegNo = regNo
	f.entries = append(f.entries, &clone)
	return nil
}

func (f *fakeAttendanceRepo) ListBySession(ctx context.Context, sessionID string) ([]*models.AttendanceEntry, error) {
	return f.bySession(sessionID), nil
}

func (f *fakeAttendanceRepo) bySession(sessionID string) []*models.AttendanceEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.AttendanceEntry
	for _, e := range f.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out
}

type fakeUsersRepo struct {
	mu      sync.Mutex
	byRegNo map[string]*models.User

	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byRegNo[u.RegNo]; ok {
		return common.ErrAlreadyExists
	}
	f.byRegNo[u.RegNo] = u
	return nil
}

func (f *fakeUsersRepo) GetByRegNo(ctx context.Context, regNo string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byRegNo[strings.ToLower(regNo)]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byRegNo {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) ListByCourse(ctx context.Context, courseCode string) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.User
	for _, u := range f.byRegNo {
		if u.CourseCode == courseCode {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsersRepo) SetBlocked(ctx context.Context, regNo string, blocked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byRegNo[regNo]
	if !ok {
		return common.ErrNotFound
	}
	u.Blocked = blocked
	return nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, regNo string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byRegNo[regNo]; !ok {
		return common.ErrNotFound
	}
	delete(f.byRegNo, regNo)
	return nil
}

type fakeCoursesRepo struct {
	mu     sync.Mutex
	byCode map[string]*models.Course

	createErr error
}

func (f *fakeCoursesRepo) Create(ctx context.Context, c *models.Course) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byCode[c.CourseCode]; ok {
		return common.ErrAlreadyExists
	}
	f.byCode[c.CourseCode] = c
	return nil
}

func (f *fakeCoursesRepo) GetByCode(ctx context.Context, courseCode string) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byCode[courseCode]
	if !ok {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (f *fakeCoursesRepo) List(ctx context.Context) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Course
	for _, c := range f.byCode {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCoursesRepo) Delete(ctx context.Context, courseCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byCode[courseCode]; !ok {
		return common.ErrNotFound
	}
	delete(f.byCode, courseCode)
	return nil
}

type fakeUnitsRepo struct {
	mu     sync.Mutex
	byCode map[string]*models.Unit

	createErr error
}

func (f *fakeUnitsRepo) Create(ctx context.Context, u *models.Unit) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byCode[u.UnitCode]; ok {
		return common.ErrAlreadyExists
	}
	f.byCode[u.UnitCode] = u
	return nil
}

func (f *fakeUnitsRepo) GetByCode(ctx context.Context, unitCode string) (*models.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byCode[unitCode]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUnitsRepo) ListByCourse(ctx context.Context, courseCode string) ([]*models.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Unit
	for _, u := range f.byCode {
		if u.CourseCode == courseCode {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUnitsRepo) Delete(ctx context.Context, unitCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byCode[unitCode]; !ok {
		return common.ErrNotFound
	}
	delete(f.byCode, unitCode)
	return nil
}

type fakeRefreshRepo struct {
	mu      sync.Mutex
	byToken map[string]*models.RefreshToken

	createErr error
	findErr   error
	deleteErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byToken[token] = &models.RefreshToken{
		Token:   token,
		UserID:  userID,
		Expires: time.Now().Add(validity),
	}
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rt, ok := f.byToken[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	return rt, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byToken, token)
	return nil
}

type fakeRepoManager struct {
	users      *fakeUsersRepo
	courses    *fakeCoursesRepo
	units      *fakeUnitsRepo
	sessions   *fakeSessionsRepo
	tokens     *fakeTokensRepo
	attendance *fakeAttendanceRepo
	refresh    *fakeRefreshRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:      &fakeUsersRepo{byRegNo: map[string]*models.User{}},
		courses:    &fakeCoursesRepo{byCode: map[string]*models.Course{}},
		units:      &fakeUnitsRepo{byCode: map[string]*models.Unit{}},
		sessions:   &fakeSessionsRepo{byKey: map[models.SessionKey]*models.Session{}},
		tokens:     &fakeTokensRepo{byUnit: map[string]*models.Token{}},
		attendance: &fakeAttendanceRepo{},
		refresh:    &fakeRefreshRepo{byToken: map[string]*models.RefreshToken{}},
	}
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.users }
func (m *fakeRepoManager) Courses(db dbx.DBTX) coursesrepo.Repository             { return m.courses }
func (m *fakeRepoManager) Units(db dbx.DBTX) unitsrepo.Repository                 { return m.units }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository           { return m.sessions }
func (m *fakeRepoManager) Tokens(db dbx.DBTX) tokensrepo.Repository               { return m.tokens }
func (m *fakeRepoManager) Attendance(db dbx.DBTX) attendancerepo.Repository       { return m.attendance }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.refresh }
