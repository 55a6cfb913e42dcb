package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

func newCourseService(db *memDB) *CourseService {
	return NewCourseService(
		&fakeCourses{db}, &fakeGroups{db}, &fakeEnrollments{db},
		&fakeMeetings{db}, &fakeGrades{db}, fakeAtomic{}, zerolog.Nop(),
	)
}

func TestCreateCourseUniqueCode(t *testing.T) {
	db := newMemDB()
	svc := newCourseService(db)
	ctx := context.Background()

	req := model.CreateCourseRequest{Code: "CS101", Name: "Intro to Computing", Credits: 5}
	course, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if course.ID == 0 {
		t.Error("course not assigned an ID")
	}

	if _, err := svc.Create(ctx, req); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate code, got %v", err)
	}
}

func TestUpdateCourse(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")

	svc := newCourseService(db)
	desc := "Foundations of computing"
	req := model.CreateCourseRequest{Code: "CS101", Name: "Computing I", Description: &desc, Credits: 6}
	updated, err := svc.Update(context.Background(), course.ID, req)
	if err != nil {
		t.Fatalf("update course: %v", err)
	}
	if updated.Name != "Computing I" || updated.Credits != 6 {
		t.Fatalf("unexpected course %+v", updated)
	}
}

func TestDeleteCourseBlockedByDependents(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	teacher := seedTeacher(db, "turing")
	group := seedGroup(db, course.ID, 1, 30, &teacher.ID)
	alice := seedStudent(db, "alice", "100001")

	svc := newCourseService(db)
	ctx := context.Background()

	// Enrollment blocks the delete.
	enrollment := seedEnrollment(db, alice.ID, group.ID)
	err := svc.Delete(ctx, course.ID)
	if apperr.KindOf(err) != apperr.KindDeletionBlocked {
		t.Fatalf("expected deletion blocked by enrollments, got %v", err)
	}
	delete(db.enrollments, enrollment.ID)

	// Meetings block the delete.
	meeting := seedMeeting(db, group.ID, 1)
	err = svc.Delete(ctx, course.ID)
	if apperr.KindOf(err) != apperr.KindDeletionBlocked {
		t.Fatalf("expected deletion blocked by meetings, got %v", err)
	}
	delete(db.meetings, meeting.ID)

	// Issued grades block the delete.
	grade := model.Grade{StudentID: alice.ID, CourseID: course.ID, TeacherID: teacher.ID, Value: "5.0"}
	if err := (&fakeGrades{db}).Create(ctx, &grade); err != nil {
		t.Fatal(err)
	}
	err = svc.Delete(ctx, course.ID)
	if apperr.KindOf(err) != apperr.KindDeletionBlocked {
		t.Fatalf("expected deletion blocked by grades, got %v", err)
	}
	delete(db.grades, grade.ID)

	// Empty groups do not block; they go down with the course.
	if err := svc.Delete(ctx, course.ID); err != nil {
		t.Fatalf("delete course: %v", err)
	}
	if _, ok := db.courses[course.ID]; ok {
		t.Error("course survived delete")
	}
	if _, ok := db.groups[group.ID]; ok {
		t.Error("group survived course delete")
	}
}

func TestDeleteCourseUnknown(t *testing.T) {
	db := newMemDB()
	svc := newCourseService(db)
	if err := svc.Delete(context.Background(), 42); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
