package models

// Course groups units and the students enrolled in them. CourseCode is
// stored lowercased and is unique.
type Course struct {
	ID          string
	CourseCode  string
	CourseTitle string
	CourseLevel string
}
