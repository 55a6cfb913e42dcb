package model

import "time"

// Grade is a teacher-issued evaluation of a student within a course.
type Grade struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	CourseID  int       `json:"course_id"`
	TeacherID int       `json:"teacher_id"`
	Value     string    `json:"value"`
	Comment   *string   `json:"comment,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddGradeRequest is the payload for issuing a grade.
type AddGradeRequest struct {
	StudentID int     `json:"student_id" binding:"required,min=1"`
	CourseID  int     `json:"course_id" binding:"required,min=1"`
	Value     string  `json:"value" binding:"required,min=1,max=10"`
	Comment   *string `json:"comment" binding:"omitempty,max=500"`
}

// UpdateGradeRequest is the payload for overwriting a grade's value/comment.
type UpdateGradeRequest struct {
	Value   string  `json:"value" binding:"required,min=1,max=10"`
	Comment *string `json:"comment" binding:"omitempty,max=500"`
}
