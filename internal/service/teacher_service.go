package service

import (
	"context"
	"fmt"

	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// TeacherService handles teacher profile management.
type TeacherService struct {
	teachers TeacherStore
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(teachers TeacherStore) *TeacherService {
	return &TeacherService{teachers: teachers}
}

// GetByID retrieves a teacher by ID.
func (s *TeacherService) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return s.teachers.GetByID(ctx, id)
}

// GetByEmail retrieves a teacher by email.
func (s *TeacherService) GetByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	return s.teachers.GetByEmail(ctx, email)
}

// List retrieves all teachers.
func (s *TeacherService) List(ctx context.Context) ([]model.Teacher, error) {
	return s.teachers.List(ctx)
}

// Create adds a teacher account with a hashed password.
func (s *TeacherService) Create(ctx context.Context, req model.CreateTeacherRequest) (*model.Teacher, error) {
	taken, err := s.teachers.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		Name:         req.Name,
		Title:        req.Title,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, conflictFromUnique(err, "email already registered")
	}
	return teacher, nil
}

// Update modifies a teacher's details, replacing the password if provided.
func (s *TeacherService) Update(ctx context.Context, id int, req model.UpdateTeacherRequest) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher.Name = req.Name
	teacher.Title = req.Title
	teacher.Email = req.Email
	if err := s.teachers.Update(ctx, teacher); err != nil {
		return nil, conflictFromUnique(err, "email already registered")
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if err := s.teachers.UpdatePassword(ctx, id, string(hashed)); err != nil {
			return nil, err
		}
	}
	return teacher, nil
}

// Delete removes a teacher. Assigned groups lose their teacher; recorded
// grades and attendance keep their issuer reference, so deletion is blocked
// by the storage layer while such records exist.
func (s *TeacherService) Delete(ctx context.Context, id int) error {
	return s.teachers.Delete(ctx, id)
}
