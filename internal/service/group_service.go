package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// GroupService manages teaching groups: creation, capacity changes under the
// shrink rule, teacher assignment, and the explicit ordered cascade delete.
type GroupService struct {
	courses     CourseStore
	groups      GroupStore
	teachers    TeacherStore
	enrollments EnrollmentStore
	meetings    MeetingStore
	attendance  AttendanceStore
	atomic      Atomic
	log         zerolog.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(
	courses CourseStore,
	groups GroupStore,
	teachers TeacherStore,
	enrollments EnrollmentStore,
	meetings MeetingStore,
	attendance AttendanceStore,
	atomic Atomic,
	log zerolog.Logger,
) *GroupService {
	return &GroupService{
		courses:     courses,
		groups:      groups,
		teachers:    teachers,
		enrollments: enrollments,
		meetings:    meetings,
		attendance:  attendance,
		atomic:      atomic,
		log:         log.With().Str("component", "group_service").Logger(),
	}
}

// GetByID retrieves a group.
func (s *GroupService) GetByID(ctx context.Context, id int) (*model.Group, error) {
	return s.groups.GetByID(ctx, id)
}

// ListByCourse retrieves a course's groups with live occupancy.
func (s *GroupService) ListByCourse(ctx context.Context, courseID int) ([]model.GroupWithOccupancy, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.groups.ListByCourse(ctx, courseID)
}

// ListByTeacher retrieves a teacher's assigned groups with live occupancy.
func (s *GroupService) ListByTeacher(ctx context.Context, teacherID int) ([]model.GroupWithOccupancy, error) {
	return s.groups.ListByTeacher(ctx, teacherID)
}

// Create adds a group to a course. The group number must be unique within
// the course; an assigned teacher must exist.
func (s *GroupService) Create(ctx context.Context, courseID int, req model.CreateGroupRequest) (*model.Group, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	if req.TeacherID != nil {
		if _, err := s.teachers.GetByID(ctx, *req.TeacherID); err != nil {
			return nil, err
		}
	}

	group := &model.Group{
		CourseID:    courseID,
		GroupNumber: req.GroupNumber,
		MaxCapacity: req.MaxCapacity,
		TeacherID:   req.TeacherID,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, conflictFromUnique(err, "group number already used in this course")
	}
	return group, nil
}

// Update modifies a group. Shrinking max capacity below the group's current
// occupancy is rejected.
func (s *GroupService) Update(ctx context.Context, groupID int, req model.UpdateGroupRequest) (*model.Group, error) {
	var updated *model.Group

	err := s.atomic.InTx(ctx, func(ctx context.Context) error {
		group, err := s.groups.GetByID(ctx, groupID)
		if err != nil {
			return err
		}
		if req.TeacherID != nil {
			if _, err := s.teachers.GetByID(ctx, *req.TeacherID); err != nil {
				return err
			}
		}

		occupancy, err := s.enrollments.CountByGroup(ctx, groupID)
		if err != nil {
			return fmt.Errorf("count occupancy: %w", err)
		}
		if req.MaxCapacity < occupancy {
			return &apperr.Error{
				Kind:      apperr.KindConflict,
				Reason:    "max capacity below current occupancy",
				Occupancy: occupancy,
				Capacity:  req.MaxCapacity,
			}
		}

		group.GroupNumber = req.GroupNumber
		group.MaxCapacity = req.MaxCapacity
		group.TeacherID = req.TeacherID
		if err := s.groups.Update(ctx, group); err != nil {
			return conflictFromUnique(err, "group number already used in this course")
		}
		updated = group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a group and all of its dependents in one transaction. The
// cascade order is fixed: attendance, then meetings, then enrollments, then
// the group itself, so no orphaned child rows can survive a partial failure.
func (s *GroupService) Delete(ctx context.Context, groupID int) error {
	err := s.atomic.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.groups.GetByID(ctx, groupID); err != nil {
			return err
		}
		if err := s.attendance.DeleteByGroup(ctx, groupID); err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if err := s.meetings.DeleteByGroup(ctx, groupID); err != nil {
			return fmt.Errorf("delete meetings: %w", err)
		}
		if err := s.enrollments.DeleteByGroup(ctx, groupID); err != nil {
			return fmt.Errorf("delete enrollments: %w", err)
		}
		return s.groups.Delete(ctx, groupID)
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("group_id", groupID).Msg("Group deleted with dependents")
	return nil
}
