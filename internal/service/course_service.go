package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// CourseService manages courses and guards course deletion against
// dependent-bearing groups.
type CourseService struct {
	courses     CourseStore
	groups      GroupStore
	enrollments EnrollmentStore
	meetings    MeetingStore
	grades      GradeStore
	atomic      Atomic
	log         zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	courses CourseStore,
	groups GroupStore,
	enrollments EnrollmentStore,
	meetings MeetingStore,
	grades GradeStore,
	atomic Atomic,
	log zerolog.Logger,
) *CourseService {
	return &CourseService{
		courses:     courses,
		groups:      groups,
		enrollments: enrollments,
		meetings:    meetings,
		grades:      grades,
		atomic:      atomic,
		log:         log.With().Str("component", "course_service").Logger(),
	}
}

// GetByID retrieves a course.
func (s *CourseService) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// List retrieves courses matching the filter.
func (s *CourseService) List(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	return s.courses.List(ctx, filter)
}

// Create adds a course with a unique code.
func (s *CourseService) Create(ctx context.Context, req model.CreateCourseRequest) (*model.Course, error) {
	exists, err := s.courses.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("check course code: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("course code already exists")
	}

	course := &model.Course{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Credits:     req.Credits,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, conflictFromUnique(err, "course code already exists")
	}
	return course, nil
}

// Update modifies an existing course.
func (s *CourseService) Update(ctx context.Context, id int, req model.CreateCourseRequest) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Code = req.Code
	course.Name = req.Name
	course.Description = req.Description
	course.Credits = req.Credits
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, conflictFromUnique(err, "course code already exists")
	}
	return course, nil
}

// Delete removes a course and its groups. A course whose groups still carry
// enrollments or meetings, or that has issued grades, is not deleted
// partially: the delete is blocked outright.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	err := s.atomic.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.courses.GetByID(ctx, id); err != nil {
			return err
		}

		enrolled, err := s.enrollments.CountByCourse(ctx, id)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		if enrolled > 0 {
			return apperr.DeletionBlocked("course", "groups still have enrollments")
		}

		meetings, err := s.meetings.CountByCourse(ctx, id)
		if err != nil {
			return fmt.Errorf("count meetings: %w", err)
		}
		if meetings > 0 {
			return apperr.DeletionBlocked("course", "groups still have meetings")
		}

		graded, err := s.grades.CountByCourse(ctx, id)
		if err != nil {
			return fmt.Errorf("count grades: %w", err)
		}
		if graded > 0 {
			return apperr.DeletionBlocked("course", "grades have been issued for it")
		}

		groups, err := s.groups.ListByCourse(ctx, id)
		if err != nil {
			return fmt.Errorf("list groups: %w", err)
		}
		for _, g := range groups {
			if err := s.groups.Delete(ctx, g.ID); err != nil {
				return fmt.Errorf("delete group %d: %w", g.ID, err)
			}
		}
		return s.courses.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("course_id", id).Msg("Course deleted")
	return nil
}
