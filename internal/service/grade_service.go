package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// GradeService issues, updates and deletes grade records. Issuer-or-admin
// mutation is enforced upstream by the authorization predicates; issuing
// itself requires a teaching relationship checked here.
type GradeService struct {
	students      StudentStore
	courses       CourseStore
	relationships RelationshipStore
	grades        GradeStore
	log           zerolog.Logger
}

// NewGradeService creates a new GradeService.
func NewGradeService(
	students StudentStore,
	courses CourseStore,
	relationships RelationshipStore,
	grades GradeStore,
	log zerolog.Logger,
) *GradeService {
	return &GradeService{
		students:      students,
		courses:       courses,
		relationships: relationships,
		grades:        grades,
		log:           log.With().Str("component", "grade_service").Logger(),
	}
}

// AddGrade issues a grade for a student in a course. The issuing teacher
// must teach at least one group of the course, or teach the student within
// that course through an enrollment.
func (s *GradeService) AddGrade(ctx context.Context, teacherID, studentID, courseID int, value string, comment *string) (*model.Grade, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	teachesCourse, err := s.relationships.TeacherTeachesCourse(ctx, teacherID, courseID)
	if err != nil {
		return nil, fmt.Errorf("check course relationship: %w", err)
	}
	if !teachesCourse {
		teachesStudent, err := s.relationships.TeacherTeachesStudentInCourse(ctx, teacherID, studentID, courseID)
		if err != nil {
			return nil, fmt.Errorf("check student relationship: %w", err)
		}
		if !teachesStudent {
			return nil, apperr.InvalidOperation("not authorized to grade this student in this course")
		}
	}

	grade := &model.Grade{
		StudentID: studentID,
		CourseID:  courseID,
		TeacherID: teacherID,
		Value:     value,
		Comment:   comment,
		IssuedAt:  time.Now(),
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("grade_id", grade.ID).
		Int("student_id", studentID).
		Int("course_id", courseID).
		Int("teacher_id", teacherID).
		Msg("Grade issued")

	return grade, nil
}

// UpdateGrade overwrites a grade's value and comment unconditionally once
// located. Ownership is enforced upstream.
func (s *GradeService) UpdateGrade(ctx context.Context, gradeID int, value string, comment *string) (*model.Grade, error) {
	if err := s.grades.Update(ctx, gradeID, value, comment); err != nil {
		return nil, err
	}
	return s.grades.GetByID(ctx, gradeID)
}

// DeleteGrade removes a grade. Ownership is enforced upstream.
func (s *GradeService) DeleteGrade(ctx context.Context, gradeID int) error {
	return s.grades.Delete(ctx, gradeID)
}

// GetByID retrieves a single grade.
func (s *GradeService) GetByID(ctx context.Context, gradeID int) (*model.Grade, error) {
	return s.grades.GetByID(ctx, gradeID)
}

// ListByStudent retrieves a student's grades.
func (s *GradeService) ListByStudent(ctx context.Context, studentID int) ([]model.Grade, error) {
	return s.grades.ListByStudent(ctx, studentID)
}

// ListByTeacher retrieves grades issued by a teacher.
func (s *GradeService) ListByTeacher(ctx context.Context, teacherID int) ([]model.Grade, error) {
	return s.grades.ListByTeacher(ctx, teacherID)
}
