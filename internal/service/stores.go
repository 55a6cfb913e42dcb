package service

import (
	"context"

	"github.com/unirecords/registrar-backend/internal/model"
)

// The rule engines consume narrow store interfaces rather than concrete
// repositories so the invariant checks can be exercised against in-memory
// stores in tests. The pgx repositories in internal/repository satisfy them.

// Atomic executes a function inside one storage transaction, so the
// read-then-write sequences in capacity and uniqueness checks are not
// subject to lost updates from concurrent callers.
type Atomic interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// StudentStore is the persistence surface for student profiles.
type StudentStore interface {
	GetByID(ctx context.Context, id int) (*model.Student, error)
	GetByIndexNumber(ctx context.Context, indexNumber string) (*model.Student, error)
	ExistsByIndexNumber(ctx context.Context, indexNumber string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListPaginated(ctx context.Context, filter model.StudentFilter, limit, offset int) ([]model.Student, int, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, s *model.Student) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	Delete(ctx context.Context, id int) error
}

// TeacherStore is the persistence surface for teacher profiles.
type TeacherStore interface {
	GetByID(ctx context.Context, id int) (*model.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*model.Teacher, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]model.Teacher, error)
	Create(ctx context.Context, t *model.Teacher) error
	Update(ctx context.Context, t *model.Teacher) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	Delete(ctx context.Context, id int) error
}

// StaffStore is the persistence surface for deanery staff accounts.
type StaffStore interface {
	GetByID(ctx context.Context, id int) (*model.Staff, error)
	GetByEmail(ctx context.Context, email string) (*model.Staff, error)
}

// CourseStore is the persistence surface for courses.
type CourseStore interface {
	GetByID(ctx context.Context, id int) (*model.Course, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter model.CourseFilter) ([]model.Course, error)
	Create(ctx context.Context, c *model.Course) error
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id int) error
}

// GroupStore is the persistence surface for teaching groups.
type GroupStore interface {
	GetByID(ctx context.Context, id int) (*model.Group, error)
	ListByCourse(ctx context.Context, courseID int) ([]model.GroupWithOccupancy, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]model.GroupWithOccupancy, error)
	Create(ctx context.Context, g *model.Group) error
	Update(ctx context.Context, g *model.Group) error
	Delete(ctx context.Context, id int) error
}

// EnrollmentStore is the persistence surface for enrollments.
type EnrollmentStore interface {
	GetByStudentAndGroup(ctx context.Context, studentID, groupID int) (*model.Enrollment, error)
	ExistsForStudentInCourse(ctx context.Context, studentID, courseID int) (bool, error)
	CountByGroup(ctx context.Context, groupID int) (int, error)
	CountByCourse(ctx context.Context, courseID int) (int, error)
	Create(ctx context.Context, e *model.Enrollment) error
	Delete(ctx context.Context, id int) error
	DeleteByGroup(ctx context.Context, groupID int) error
	DeleteByStudent(ctx context.Context, studentID int) error
	ListByStudent(ctx context.Context, studentID int) ([]model.EnrollmentDetail, error)
	ListByGroup(ctx context.Context, groupID int) ([]model.EnrollmentDetail, error)
}

// MeetingStore is the persistence surface for meetings.
type MeetingStore interface {
	GetByID(ctx context.Context, id int) (*model.Meeting, error)
	MaxNumberByGroup(ctx context.Context, groupID int) (int, error)
	CreateBatch(ctx context.Context, meetings []*model.Meeting) error
	ListByGroup(ctx context.Context, groupID int) ([]model.Meeting, error)
	CountByCourse(ctx context.Context, courseID int) (int, error)
	DeleteByGroup(ctx context.Context, groupID int) error
}

// AttendanceStore is the persistence surface for attendance records.
type AttendanceStore interface {
	GetByID(ctx context.Context, id int) (*model.Attendance, error)
	Create(ctx context.Context, a *model.Attendance) error
	UpdateStatus(ctx context.Context, id int, status model.AttendanceStatus) error
	ListByMeeting(ctx context.Context, meetingID int) ([]model.Attendance, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Attendance, error)
	DeleteByGroup(ctx context.Context, groupID int) error
	DeleteByStudent(ctx context.Context, studentID int) error
}

// GradeStore is the persistence surface for grades.
type GradeStore interface {
	GetByID(ctx context.Context, id int) (*model.Grade, error)
	Create(ctx context.Context, g *model.Grade) error
	Update(ctx context.Context, id int, value string, comment *string) error
	Delete(ctx context.Context, id int) error
	ListByStudent(ctx context.Context, studentID int) ([]model.Grade, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]model.Grade, error)
	CountByCourse(ctx context.Context, courseID int) (int, error)
	DeleteByStudent(ctx context.Context, studentID int) error
}

// RelationshipStore answers the membership and ownership questions the
// authorization predicates compose.
type RelationshipStore interface {
	TeacherTeachesGroup(ctx context.Context, teacherID, groupID int) (bool, error)
	TeacherTeachesCourse(ctx context.Context, teacherID, courseID int) (bool, error)
	StudentEnrolledInGroup(ctx context.Context, studentID, groupID int) (bool, error)
	TeacherTeachesStudent(ctx context.Context, teacherID, studentID int) (bool, error)
	TeacherTeachesStudentInCourse(ctx context.Context, teacherID, studentID, courseID int) (bool, error)
}
