package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

func newStudentService(db *memDB) *StudentService {
	return NewStudentService(
		&fakeStudents{db}, &fakeEnrollments{db}, &fakeGrades{db},
		&fakeAttendance{db}, fakeAtomic{}, zerolog.Nop(),
	)
}

func TestCreateStudentGeneratesIndexNumber(t *testing.T) {
	db := newMemDB()
	svc := newStudentService(db)
	ctx := context.Background()

	alice, err := svc.Create(ctx, model.CreateStudentRequest{
		Name: "Alice Kowalska", Email: "alice@uni.test", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	if len(alice.IndexNumber) != 6 {
		t.Fatalf("expected six-digit index number, got %q", alice.IndexNumber)
	}
	for _, r := range alice.IndexNumber {
		if r < '0' || r > '9' {
			t.Fatalf("index number not numeric: %q", alice.IndexNumber)
		}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(alice.PasswordHash), []byte("secret123")); err != nil {
		t.Error("password hash does not verify")
	}

	bob, err := svc.Create(ctx, model.CreateStudentRequest{
		Name: "Bob Nowak", Email: "bob@uni.test", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("create second student: %v", err)
	}
	if bob.IndexNumber == alice.IndexNumber {
		t.Error("index numbers collide")
	}
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	db := newMemDB()
	svc := newStudentService(db)
	ctx := context.Background()

	req := model.CreateStudentRequest{Name: "Alice", Email: "alice@uni.test", Password: "secret123"}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("create student: %v", err)
	}
	if _, err := svc.Create(ctx, req); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestUpdateStudentKeepsPasswordWhenOmitted(t *testing.T) {
	db := newMemDB()
	svc := newStudentService(db)
	ctx := context.Background()

	alice, err := svc.Create(ctx, model.CreateStudentRequest{
		Name: "Alice", Email: "alice@uni.test", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}

	updated, err := svc.Update(ctx, alice.ID, model.UpdateStudentRequest{
		Name: "Alicja", Email: "alicja@uni.test",
	})
	if err != nil {
		t.Fatalf("update student: %v", err)
	}
	if updated.Name != "Alicja" || updated.Email != "alicja@uni.test" {
		t.Fatalf("unexpected student %+v", updated)
	}
	if updated.IndexNumber != alice.IndexNumber {
		t.Error("index number changed on update")
	}

	stored := db.students[alice.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")); err != nil {
		t.Error("password changed despite being omitted")
	}
}

func TestDeleteStudentCascades(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	teacher := seedTeacher(db, "turing")
	group := seedGroup(db, course.ID, 1, 30, &teacher.ID)
	alice := seedStudent(db, "alice", "100001")
	bob := seedStudent(db, "bob", "100002")
	seedEnrollment(db, alice.ID, group.ID)
	seedEnrollment(db, bob.ID, group.ID)
	meeting := seedMeeting(db, group.ID, 1)
	ctx := context.Background()
	for _, id := range []int{alice.ID, bob.ID} {
		a := model.Attendance{MeetingID: meeting.ID, StudentID: id, Status: model.AttendancePresent, RecordedByID: teacher.ID}
		if err := (&fakeAttendance{db}).Create(ctx, &a); err != nil {
			t.Fatal(err)
		}
		g := model.Grade{StudentID: id, CourseID: course.ID, TeacherID: teacher.ID, Value: "4.0"}
		if err := (&fakeGrades{db}).Create(ctx, &g); err != nil {
			t.Fatal(err)
		}
	}

	svc := newStudentService(db)
	if err := svc.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("delete student: %v", err)
	}

	if _, ok := db.students[alice.ID]; ok {
		t.Error("student survived delete")
	}
	for _, e := range db.enrollments {
		if e.StudentID == alice.ID {
			t.Error("enrollment survived cascade")
		}
	}
	for _, a := range db.attendance {
		if a.StudentID == alice.ID {
			t.Error("attendance survived cascade")
		}
	}
	for _, g := range db.grades {
		if g.StudentID == alice.ID {
			t.Error("grade survived cascade")
		}
	}

	// Bob's records are untouched.
	if len(db.enrollments) != 1 || len(db.attendance) != 1 || len(db.grades) != 1 {
		t.Errorf("sibling data lost: %d enrollments, %d attendance, %d grades",
			len(db.enrollments), len(db.attendance), len(db.grades))
	}
}

func TestListStudentsPagination(t *testing.T) {
	db := newMemDB()
	for i := 0; i < 25; i++ {
		seedStudent(db, "student", strconv.Itoa(100001+i))
	}

	svc := newStudentService(db)
	ctx := context.Background()

	students, pagination, err := svc.ListStudents(ctx, model.StudentFilter{}, 2, 10)
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	if len(students) != 10 {
		t.Fatalf("expected 10 students on page 2, got %d", len(students))
	}
	if pagination.TotalItems != 25 || pagination.TotalPages != 3 {
		t.Errorf("unexpected pagination %+v", pagination)
	}

	// Out-of-range values are clamped.
	students, pagination, err = svc.ListStudents(ctx, model.StudentFilter{}, 0, 1000)
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	if pagination.Page != 1 || pagination.PerPage != 100 {
		t.Errorf("expected clamped pagination, got %+v", pagination)
	}
	if len(students) != 25 {
		t.Errorf("expected all 25 students, got %d", len(students))
	}
}
