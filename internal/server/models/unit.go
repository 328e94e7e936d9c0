package models

// Unit is a teachable unit within a course.
type Unit struct {
	ID         string
	CourseCode string
	UnitCode   string
	UnitTitle  string
	UnitYear   int
}
