package model

import "time"

// Enrollment links one student to one group, stamped at creation time.
type Enrollment struct {
	ID         int       `json:"id"`
	StudentID  int       `json:"student_id"`
	GroupID    int       `json:"group_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// EnrollmentDetail enriches Enrollment with course and student context for
// roster and self-service views.
type EnrollmentDetail struct {
	Enrollment
	CourseID         int    `json:"course_id"`
	CourseCode       string `json:"course_code"`
	CourseName       string `json:"course_name"`
	GroupNumber      int    `json:"group_number"`
	StudentName      string `json:"student_name"`
	StudentIndexInfo string `json:"student_index_number"`
}
