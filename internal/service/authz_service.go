package service

import (
	"context"
)

// AuthzService holds the relationship-based authorization predicates the
// transport layer composes in front of the rule engines. Every predicate
// resolves the caller's profile first; a caller without the expected profile
// type yields false rather than an error, so authorization failures degrade
// to "access denied" for every role.
type AuthzService struct {
	directory     *DirectoryService
	relationships RelationshipStore
	meetings      MeetingStore
	grades        GradeStore
	attendance    AttendanceStore
}

// NewAuthzService creates a new AuthzService.
func NewAuthzService(
	directory *DirectoryService,
	relationships RelationshipStore,
	meetings MeetingStore,
	grades GradeStore,
	attendance AttendanceStore,
) *AuthzService {
	return &AuthzService{
		directory:     directory,
		relationships: relationships,
		meetings:      meetings,
		grades:        grades,
		attendance:    attendance,
	}
}

// callerTeacherID resolves the caller as a teacher, returning (0, false)
// when the caller has no teacher profile.
func (s *AuthzService) callerTeacherID(ctx context.Context, p Principal) (int, bool) {
	teacher, err := s.directory.ResolveTeacher(ctx, p)
	if err != nil {
		return 0, false
	}
	return teacher.ID, true
}

// IsTeacherOfGroup reports whether the group's assigned teacher is the caller.
func (s *AuthzService) IsTeacherOfGroup(ctx context.Context, p Principal, groupID int) bool {
	teacherID, ok := s.callerTeacherID(ctx, p)
	if !ok {
		return false
	}
	teaches, err := s.relationships.TeacherTeachesGroup(ctx, teacherID, groupID)
	return err == nil && teaches
}

// IsStudentEnrolledInGroup reports whether the caller holds an enrollment in
// the group.
func (s *AuthzService) IsStudentEnrolledInGroup(ctx context.Context, p Principal, groupID int) bool {
	student, err := s.directory.ResolveStudent(ctx, p)
	if err != nil {
		return false
	}
	enrolled, err := s.relationships.StudentEnrolledInGroup(ctx, student.ID, groupID)
	return err == nil && enrolled
}

// IsTeacherForMeeting reports whether the caller teaches the meeting's group.
func (s *AuthzService) IsTeacherForMeeting(ctx context.Context, p Principal, meetingID int) bool {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return false
	}
	return s.IsTeacherOfGroup(ctx, p, meeting.GroupID)
}

// IsTeacherIssuerOfGrade reports whether the caller issued the grade.
func (s *AuthzService) IsTeacherIssuerOfGrade(ctx context.Context, p Principal, gradeID int) bool {
	teacherID, ok := s.callerTeacherID(ctx, p)
	if !ok {
		return false
	}
	grade, err := s.grades.GetByID(ctx, gradeID)
	return err == nil && grade.TeacherID == teacherID
}

// CanTeacherUpdateAttendance reports whether the caller originally recorded
// the attendance record.
func (s *AuthzService) CanTeacherUpdateAttendance(ctx context.Context, p Principal, attendanceID int) bool {
	teacherID, ok := s.callerTeacherID(ctx, p)
	if !ok {
		return false
	}
	record, err := s.attendance.GetByID(ctx, attendanceID)
	return err == nil && record.RecordedByID == teacherID
}

// IsTeacherAllowedToViewStudent reports whether the caller teaches at least
// one group the student is enrolled in.
func (s *AuthzService) IsTeacherAllowedToViewStudent(ctx context.Context, p Principal, studentID int) bool {
	teacherID, ok := s.callerTeacherID(ctx, p)
	if !ok {
		return false
	}
	teaches, err := s.relationships.TeacherTeachesStudent(ctx, teacherID, studentID)
	return err == nil && teaches
}
