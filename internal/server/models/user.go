// Package models holds the persistent entities of the attendance service.
package models

import "time"

// Roles accepted at registration and login.
const (
	RoleAdmin    = "admin"
	RoleLecturer = "lecturer"
	RoleStudent  = "student"
)

// User is a registered account: an admin, a lecturer, or a student.
// RegNo is stored lowercased and is unique.
type User struct {
	ID           string
	Role         string
	RegNo        string
	NationalID   string
	FullNames    string
	PasswordHash string
	CourseCode   string
	CourseTitle  string
	Year         string
	Blocked      bool
	CreatedAt    time.Time
}
