package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

type capturePublisher struct {
	published []model.Attendance
}

func (p *capturePublisher) PublishAttendance(_ context.Context, a model.Attendance) {
	p.published = append(p.published, a)
}

func newAttendanceService(db *memDB, pub AttendancePublisher) *AttendanceService {
	return NewAttendanceService(&fakeMeetings{db}, &fakeStudents{db}, &fakeAttendance{db}, fakeAtomic{}, pub, zerolog.Nop())
}

func TestRecordAttendanceStampsRecorder(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	teacher := seedTeacher(db, "turing")
	group := seedGroup(db, course.ID, 1, 30, &teacher.ID)
	meeting := seedMeeting(db, group.ID, 1)
	alice := seedStudent(db, "alice", "100001")
	bob := seedStudent(db, "bob", "100002")

	pub := &capturePublisher{}
	svc := newAttendanceService(db, pub)

	entries := []model.AttendanceEntry{
		{StudentID: alice.ID, Status: model.AttendancePresent},
		{StudentID: bob.ID, Status: model.AttendanceAbsent},
	}
	created, err := svc.Record(context.Background(), meeting.ID, entries, teacher.ID)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 records, got %d", len(created))
	}
	for _, a := range created {
		if a.RecordedByID != teacher.ID {
			t.Errorf("record %d not stamped with recorder, got %d", a.ID, a.RecordedByID)
		}
	}
	if len(pub.published) != 2 {
		t.Errorf("expected 2 published records, got %d", len(pub.published))
	}
}

func TestRecordAttendanceIsCreateOnly(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	teacher := seedTeacher(db, "turing")
	group := seedGroup(db, course.ID, 1, 30, &teacher.ID)
	meeting := seedMeeting(db, group.ID, 1)
	alice := seedStudent(db, "alice", "100001")

	svc := newAttendanceService(db, nil)
	ctx := context.Background()

	entries := []model.AttendanceEntry{{StudentID: alice.ID, Status: model.AttendancePresent}}
	if _, err := svc.Record(ctx, meeting.ID, entries, teacher.ID); err != nil {
		t.Fatalf("first record: %v", err)
	}

	// A second submission for the same pair is a conflict, even with a
	// different status.
	entries[0].Status = model.AttendanceAbsent
	_, err := svc.Record(ctx, meeting.ID, entries, teacher.ID)
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate record, got %v", err)
	}

	// The stored record keeps its original status.
	records, _ := svc.ListByMeeting(ctx, meeting.ID)
	if len(records) != 1 || records[0].Status != model.AttendancePresent {
		t.Fatalf("original record mutated: %+v", records)
	}
}

func TestRecordAttendanceUnknownMeeting(t *testing.T) {
	db := newMemDB()
	alice := seedStudent(db, "alice", "100001")

	svc := newAttendanceService(db, nil)
	entries := []model.AttendanceEntry{{StudentID: alice.ID, Status: model.AttendancePresent}}
	_, err := svc.Record(context.Background(), 42, entries, 1)
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateAttendanceStatus(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	teacher := seedTeacher(db, "turing")
	group := seedGroup(db, course.ID, 1, 30, &teacher.ID)
	meeting := seedMeeting(db, group.ID, 1)
	alice := seedStudent(db, "alice", "100001")

	pub := &capturePublisher{}
	svc := newAttendanceService(db, pub)
	ctx := context.Background()

	entries := []model.AttendanceEntry{{StudentID: alice.ID, Status: model.AttendanceAbsent}}
	created, err := svc.Record(ctx, meeting.ID, entries, teacher.ID)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, created[0].ID, model.AttendanceExcused)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.AttendanceExcused {
		t.Errorf("expected EXCUSED, got %s", updated.Status)
	}
	if updated.RecordedByID != teacher.ID {
		t.Errorf("recorder changed on update: %d", updated.RecordedByID)
	}
	if len(pub.published) != 2 {
		t.Errorf("expected update to be published, got %d events", len(pub.published))
	}
}
