package model

import "time"

// Group represents a teaching section of a course. The group number is
// unique within its course; the teacher assignment is optional.
type Group struct {
	ID          int       `json:"id"`
	CourseID    int       `json:"course_id"`
	GroupNumber int       `json:"group_number"`
	MaxCapacity int       `json:"max_capacity"`
	TeacherID   *int      `json:"teacher_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupWithOccupancy enriches Group with its live enrollment count.
type GroupWithOccupancy struct {
	Group
	Occupancy int `json:"occupancy"`
}

// CreateGroupRequest is the payload for creating a group under a course.
type CreateGroupRequest struct {
	GroupNumber int  `json:"group_number" binding:"required,min=1"`
	MaxCapacity int  `json:"max_capacity" binding:"required,min=1"`
	TeacherID   *int `json:"teacher_id" binding:"omitempty,min=1"`
}

// UpdateGroupRequest is the payload for updating a group.
type UpdateGroupRequest struct {
	GroupNumber int  `json:"group_number" binding:"required,min=1"`
	MaxCapacity int  `json:"max_capacity" binding:"required,min=1"`
	TeacherID   *int `json:"teacher_id" binding:"omitempty,min=1"`
}
