package models

import "time"

// SessionKey is the identity of one scheduled class occurrence. Dates and
// times are kept as the client-supplied strings; equality is exact.
type SessionKey struct {
	UnitCode      string
	ScheduledDate string
	ScheduledTime string
}

// Session is a scheduled class occurrence. At most one session exists per
// SessionKey. Attendance for a session lives in attendance_entries rows,
// never inside the session record itself.
type Session struct {
	ID            string
	CourseCode    string
	UnitCode      string
	ScheduledDate string
	ScheduledTime string
	CreatedAt     time.Time
}

// Key returns the session's identity tuple.
func (s *Session) Key() SessionKey {
	return SessionKey{
		UnitCode:      s.UnitCode,
		ScheduledDate: s.ScheduledDate,
		ScheduledTime: s.ScheduledTime,
	}
}
