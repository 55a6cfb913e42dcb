package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
	"github.com/unirecords/registrar-backend/internal/response"
	"golang.org/x/crypto/bcrypt"
)

// indexNumberAttempts bounds the collision-retry loop when generating a
// fresh index number.
const indexNumberAttempts = 20

// StudentService handles student profile management. Index numbers are
// system-generated six-digit strings, collision-checked against the store.
type StudentService struct {
	students    StudentStore
	enrollments EnrollmentStore
	grades      GradeStore
	attendance  AttendanceStore
	atomic      Atomic
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	students StudentStore,
	enrollments EnrollmentStore,
	grades GradeStore,
	attendance AttendanceStore,
	atomic Atomic,
	log zerolog.Logger,
) *StudentService {
	return &StudentService{
		students:    students,
		enrollments: enrollments,
		grades:      grades,
		attendance:  attendance,
		atomic:      atomic,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.students.GetByID(ctx, id)
}

// GetByIndexNumber retrieves a student by their index number.
func (s *StudentService) GetByIndexNumber(ctx context.Context, indexNumber string) (*model.Student, error) {
	return s.students.GetByIndexNumber(ctx, indexNumber)
}

// ListStudents retrieves students matching the filter with pagination.
func (s *StudentService) ListStudents(ctx context.Context, filter model.StudentFilter, page, perPage int) ([]model.Student, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	students, total, err := s.students.ListPaginated(ctx, filter, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Student{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return students, pagination, nil
}

// Create registers a student with a hashed password and a generated index
// number.
func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	taken, err := s.students.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("email already registered")
	}

	indexNumber, err := s.generateIndexNumber(ctx)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		IndexNumber:  indexNumber,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, conflictFromUnique(err, "index number or email already registered")
	}

	s.log.Info().
		Int("student_id", student.ID).
		Str("index_number", student.IndexNumber).
		Msg("Student registered")

	return student, nil
}

// generateIndexNumber draws random six-digit numbers until one is free.
func (s *StudentService) generateIndexNumber(ctx context.Context) (string, error) {
	for i := 0; i < indexNumberAttempts; i++ {
		candidate := fmt.Sprintf("%06d", 100000+rand.IntN(900000))
		taken, err := s.students.ExistsByIndexNumber(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check index number: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a free index number after %d attempts", indexNumberAttempts)
}

// Update modifies a student's details, replacing the password if provided.
func (s *StudentService) Update(ctx context.Context, id int, req model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Name = req.Name
	student.Email = req.Email
	if err := s.students.Update(ctx, student); err != nil {
		return nil, conflictFromUnique(err, "email already registered")
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if err := s.students.UpdatePassword(ctx, id, string(hashed)); err != nil {
			return nil, err
		}
	}
	return student, nil
}

// Delete removes a student and all dependent records in one transaction:
// attendance, then grades, then enrollments, then the profile.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	err := s.atomic.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.students.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.attendance.DeleteByStudent(ctx, id); err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if err := s.grades.DeleteByStudent(ctx, id); err != nil {
			return fmt.Errorf("delete grades: %w", err)
		}
		if err := s.enrollments.DeleteByStudent(ctx, id); err != nil {
			return fmt.Errorf("delete enrollments: %w", err)
		}
		return s.students.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("student_id", id).Msg("Student deleted with dependents")
	return nil
}
