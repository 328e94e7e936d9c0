package models

import "time"

// RefreshToken is a durable login continuation token.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
