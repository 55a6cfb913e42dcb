package service

import (
	"context"

	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// DirectoryService resolves an authenticated principal to a concrete student
// or teacher profile. It is the leaf dependency of every authorization check.
type DirectoryService struct {
	students StudentStore
	teachers TeacherStore
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(students StudentStore, teachers TeacherStore) *DirectoryService {
	return &DirectoryService{students: students, teachers: teachers}
}

// ResolveStudent returns the student profile behind the principal, or
// NotFound when the caller is not a student or the profile row is gone.
func (s *DirectoryService) ResolveStudent(ctx context.Context, p Principal) (*model.Student, error) {
	if p.Role != RoleStudent {
		return nil, apperr.NotFound("student profile")
	}
	return s.students.GetByID(ctx, p.AccountID)
}

// ResolveTeacher returns the teacher profile behind the principal, or
// NotFound when the caller is not a teacher or the profile row is gone.
func (s *DirectoryService) ResolveTeacher(ctx context.Context, p Principal) (*model.Teacher, error) {
	if p.Role != RoleTeacher {
		return nil, apperr.NotFound("teacher profile")
	}
	return s.teachers.GetByID(ctx, p.AccountID)
}
