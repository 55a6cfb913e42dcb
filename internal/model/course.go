package model

import "time"

// Course represents a university course.
type Course struct {
	ID          int       `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Credits     int       `json:"credits"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating or updating a course.
type CreateCourseRequest struct {
	Code        string  `json:"code" binding:"required,min=2,max=20"`
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Credits     int     `json:"credits" binding:"required,min=1,max=30"`
}

// CourseFilter narrows course listings. Zero values mean "no filter".
type CourseFilter struct {
	Code string
	Name string
}
