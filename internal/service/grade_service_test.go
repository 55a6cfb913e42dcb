package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
)

func newGradeService(db *memDB) *GradeService {
	return NewGradeService(&fakeStudents{db}, &fakeCourses{db}, &fakeRelationships{db}, &fakeGrades{db}, zerolog.Nop())
}

func TestAddGradeByCourseTeacher(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	teacher := seedTeacher(db, "turing")
	seedGroup(db, course.ID, 1, 30, &teacher.ID)
	alice := seedStudent(db, "alice", "100001")

	svc := newGradeService(db)

	// The teacher teaches a group of the course; the student need not be in
	// that group.
	grade, err := svc.AddGrade(context.Background(), teacher.ID, alice.ID, course.ID, "5.0", nil)
	if err != nil {
		t.Fatalf("add grade: %v", err)
	}
	if grade.TeacherID != teacher.ID || grade.StudentID != alice.ID || grade.CourseID != course.ID {
		t.Fatalf("unexpected grade %+v", grade)
	}
	if grade.IssuedAt.IsZero() {
		t.Error("IssuedAt not stamped")
	}
}

func TestAddGradeByEnrollmentTeacher(t *testing.T) {
	db := newMemDB()
	courseA := seedCourse(db, "CS101", "Intro to Computing")
	courseB := seedCourse(db, "MA201", "Linear Algebra")
	teacher := seedTeacher(db, "turing")
	groupB := seedGroup(db, courseB.ID, 1, 30, &teacher.ID)
	alice := seedStudent(db, "alice", "100001")
	seedEnrollment(db, alice.ID, groupB.ID)

	svc := newGradeService(db)
	ctx := context.Background()

	// Teaches alice within course B through her enrollment.
	if _, err := svc.AddGrade(ctx, teacher.ID, alice.ID, courseB.ID, "4.5", nil); err != nil {
		t.Fatalf("add grade in taught course: %v", err)
	}

	// No relationship to course A at all.
	_, err := svc.AddGrade(ctx, teacher.ID, alice.ID, courseA.ID, "4.5", nil)
	appErr := apperr.As(err)
	if appErr == nil || appErr.Kind != apperr.KindInvalidOperation {
		t.Fatalf("expected invalid operation, got %v", err)
	}
}

func TestAddGradeUnknownStudentOrCourse(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	teacher := seedTeacher(db, "turing")
	seedGroup(db, course.ID, 1, 30, &teacher.ID)
	alice := seedStudent(db, "alice", "100001")

	svc := newGradeService(db)
	ctx := context.Background()

	if _, err := svc.AddGrade(ctx, teacher.ID, 999, course.ID, "5.0", nil); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown student, got %v", err)
	}
	if _, err := svc.AddGrade(ctx, teacher.ID, alice.ID, 999, "5.0", nil); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown course, got %v", err)
	}
}

func TestUpdateAndDeleteGrade(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	teacher := seedTeacher(db, "turing")
	seedGroup(db, course.ID, 1, 30, &teacher.ID)
	alice := seedStudent(db, "alice", "100001")

	svc := newGradeService(db)
	ctx := context.Background()

	grade, err := svc.AddGrade(ctx, teacher.ID, alice.ID, course.ID, "3.0", nil)
	if err != nil {
		t.Fatalf("add grade: %v", err)
	}

	comment := "resit passed"
	updated, err := svc.UpdateGrade(ctx, grade.ID, "4.0", &comment)
	if err != nil {
		t.Fatalf("update grade: %v", err)
	}
	if updated.Value != "4.0" || updated.Comment == nil || *updated.Comment != comment {
		t.Fatalf("unexpected updated grade %+v", updated)
	}

	if err := svc.DeleteGrade(ctx, grade.ID); err != nil {
		t.Fatalf("delete grade: %v", err)
	}
	if _, err := svc.GetByID(ctx, grade.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.DeleteGrade(ctx, grade.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for double delete, got %v", err)
	}
}
