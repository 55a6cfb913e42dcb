package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// EnrollmentService is the capacity- and uniqueness-constrained state machine
// for the student-group relationship.
type EnrollmentService struct {
	groups      GroupStore
	enrollments EnrollmentStore
	atomic      Atomic
	log         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(groups GroupStore, enrollments EnrollmentStore, atomic Atomic, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		groups:      groups,
		enrollments: enrollments,
		atomic:      atomic,
		log:         log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll adds a student to a group.
//
// The cross-group-same-course exclusivity check runs before the capacity
// check, so "already enrolled" wins over "capacity full" when both apply.
// The capacity boundary is inclusive: occupancy equal to max capacity means
// full. adminOverride lets administrative callers push occupancy past
// capacity; the override is logged, never rejected. Self-service callers
// must pass adminOverride false.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, groupID int, adminOverride bool) (*model.Enrollment, error) {
	var enrollment *model.Enrollment

	err := s.atomic.InTx(ctx, func(ctx context.Context) error {
		group, err := s.groups.GetByID(ctx, groupID)
		if err != nil {
			return err
		}

		already, err := s.enrollments.ExistsForStudentInCourse(ctx, studentID, group.CourseID)
		if err != nil {
			return fmt.Errorf("check course enrollment: %w", err)
		}
		if already {
			return apperr.Conflict("already enrolled in a group for this course")
		}

		occupancy, err := s.enrollments.CountByGroup(ctx, groupID)
		if err != nil {
			return fmt.Errorf("count occupancy: %w", err)
		}
		if occupancy >= group.MaxCapacity {
			if !adminOverride {
				return apperr.CapacityFull(occupancy, group.MaxCapacity)
			}
			s.log.Warn().
				Int("student_id", studentID).
				Int("group_id", groupID).
				Int("occupancy", occupancy).
				Int("max_capacity", group.MaxCapacity).
				Msg("Capacity override enrollment")
		}

		e := &model.Enrollment{
			StudentID:  studentID,
			GroupID:    groupID,
			EnrolledAt: time.Now(),
		}
		if err := s.enrollments.Create(ctx, e); err != nil {
			return conflictFromUnique(err, "already enrolled in this group")
		}
		enrollment = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("student_id", studentID).
		Int("group_id", groupID).
		Bool("admin_override", adminOverride).
		Msg("Student enrolled")

	return enrollment, nil
}

// Unenroll removes the unique enrollment of a student in a group. Fails with
// NotFound when no such enrollment exists.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, groupID int) error {
	return s.atomic.InTx(ctx, func(ctx context.Context) error {
		enrollment, err := s.enrollments.GetByStudentAndGroup(ctx, studentID, groupID)
		if err != nil {
			return err
		}
		return s.enrollments.Delete(ctx, enrollment.ID)
	})
}

// ListByStudent retrieves a student's enrollments with course context.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int) ([]model.EnrollmentDetail, error) {
	return s.enrollments.ListByStudent(ctx, studentID)
}

// Roster retrieves a group's enrollments with student context.
func (s *EnrollmentService) Roster(ctx context.Context, groupID int) ([]model.EnrollmentDetail, error) {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.enrollments.ListByGroup(ctx, groupID)
}
