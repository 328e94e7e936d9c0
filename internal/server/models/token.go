package models

import "time"

// Token is the single currently-valid QR token for a unit. Raw is the sealed
// claims string handed to clients; it is unique across all tokens ever
// issued. Issuing a new token for the unit replaces the row, so a superseded
// Raw never resolves again.
type Token struct {
	ID            string
	CourseCode    string
	UnitCode      string
	Lecturer      string
	Raw           string
	ScheduledDate string
	ScheduledTime string
	IssuedAt      time.Time
}

// SessionKey returns the session identity the token is bound to.
func (t *Token) SessionKey() SessionKey {
	return SessionKey{
		UnitCode:      t.UnitCode,
		ScheduledDate: t.ScheduledDate,
		ScheduledTime: t.ScheduledTime,
	}
}
