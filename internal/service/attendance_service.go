package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// AttendancePublisher fans freshly recorded attendance out to live meeting
// streams. A nil publisher disables fan-out.
type AttendancePublisher interface {
	PublishAttendance(ctx context.Context, a model.Attendance)
}

// AttendanceService binds one attendance status per (meeting, student) pair.
// Recorder-only mutation is enforced upstream by the authorization
// predicates; the engine applies the change once the caller is cleared.
type AttendanceService struct {
	meetings   MeetingStore
	students   StudentStore
	attendance AttendanceStore
	atomic     Atomic
	publisher  AttendancePublisher
	log        zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(
	meetings MeetingStore,
	students StudentStore,
	attendance AttendanceStore,
	atomic Atomic,
	publisher AttendancePublisher,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		meetings:   meetings,
		students:   students,
		attendance: attendance,
		atomic:     atomic,
		publisher:  publisher,
		log:        log.With().Str("component", "attendance_service").Logger(),
	}
}

// Record creates one attendance record per entry for a meeting, stamped with
// the recording teacher. Records are create-only: a second submission for the
// same (meeting, student) pair is rejected as a conflict, never overwritten.
func (s *AttendanceService) Record(ctx context.Context, meetingID int, entries []model.AttendanceEntry, recordingTeacherID int) ([]model.Attendance, error) {
	var created []model.Attendance

	err := s.atomic.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.meetings.GetByID(ctx, meetingID); err != nil {
			return err
		}

		created = make([]model.Attendance, 0, len(entries))
		for _, entry := range entries {
			if _, err := s.students.GetByID(ctx, entry.StudentID); err != nil {
				return err
			}

			a := &model.Attendance{
				MeetingID:    meetingID,
				StudentID:    entry.StudentID,
				Status:       entry.Status,
				RecordedByID: recordingTeacherID,
			}
			if err := s.attendance.Create(ctx, a); err != nil {
				return conflictFromUnique(err,
					fmt.Sprintf("attendance already recorded for student %d", entry.StudentID))
			}
			created = append(created, *a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		for _, a := range created {
			s.publisher.PublishAttendance(ctx, a)
		}
	}

	s.log.Info().
		Int("meeting_id", meetingID).
		Int("teacher_id", recordingTeacherID).
		Int("count", len(created)).
		Msg("Attendance recorded")

	return created, nil
}

// UpdateStatus changes the status of an attendance record and returns the
// updated record.
func (s *AttendanceService) UpdateStatus(ctx context.Context, attendanceID int, status model.AttendanceStatus) (*model.Attendance, error) {
	if err := s.attendance.UpdateStatus(ctx, attendanceID, status); err != nil {
		return nil, err
	}
	record, err := s.attendance.GetByID(ctx, attendanceID)
	if err != nil {
		if apperr.IsNotFound(err) {
			s.log.Error().Int("attendance_id", attendanceID).Msg("Attendance record missing after update")
			return nil, apperr.IllegalState("attendance record missing after update")
		}
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishAttendance(ctx, *record)
	}
	return record, nil
}

// ListByMeeting retrieves all attendance records of a meeting.
func (s *AttendanceService) ListByMeeting(ctx context.Context, meetingID int) ([]model.Attendance, error) {
	if _, err := s.meetings.GetByID(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.attendance.ListByMeeting(ctx, meetingID)
}

// ListByStudent retrieves a student's attendance records.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID int) ([]model.Attendance, error) {
	return s.attendance.ListByStudent(ctx, studentID)
}
