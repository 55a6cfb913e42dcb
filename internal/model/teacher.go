package model

import "time"

// Teacher represents a teaching staff profile.
type Teacher struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TeacherLoginRequest is the payload for teacher authentication.
type TeacherLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// TeacherLoginResponse is returned after successful teacher login.
type TeacherLoginResponse struct {
	Token   string  `json:"token"`
	Teacher Teacher `json:"teacher"`
}

// CreateTeacherRequest is the payload for creating a teacher account.
type CreateTeacherRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Title    string `json:"title" binding:"omitempty,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateTeacherRequest is the payload for updating an existing teacher.
type UpdateTeacherRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Title    string `json:"title" binding:"omitempty,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
}
