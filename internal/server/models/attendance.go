package models

import "time"

// AttendanceEntry is one redemption: a student marked present in a session.
// Rows are append-only; (SessionID, RegNo) is unique with RegNo stored
// lowercased, which makes duplicate marking a constraint violation instead
// of an application-level check.
type AttendanceEntry struct {
	ID        string
	SessionID string
	TokenRaw  string
	RegNo     string
	MarkedAt  time.Time
}
