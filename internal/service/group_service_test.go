package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

func newGroupService(db *memDB) *GroupService {
	return NewGroupService(
		&fakeCourses{db}, &fakeGroups{db}, &fakeTeachers{db},
		&fakeEnrollments{db}, &fakeMeetings{db}, &fakeAttendance{db},
		fakeAtomic{}, zerolog.Nop(),
	)
}

func TestCreateGroupUniqueNumberPerCourse(t *testing.T) {
	db := newMemDB()
	courseA := seedCourse(db, "CS101", "Intro to Computing")
	courseB := seedCourse(db, "MA201", "Linear Algebra")

	svc := newGroupService(db)
	ctx := context.Background()

	req := model.CreateGroupRequest{GroupNumber: 1, MaxCapacity: 30}
	if _, err := svc.Create(ctx, courseA.ID, req); err != nil {
		t.Fatalf("create group: %v", err)
	}
	if _, err := svc.Create(ctx, courseA.ID, req); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate number, got %v", err)
	}
	// Same number under a different course is fine.
	if _, err := svc.Create(ctx, courseB.ID, req); err != nil {
		t.Fatalf("create group in other course: %v", err)
	}
}

func TestCreateGroupValidatesTeacher(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")

	svc := newGroupService(db)
	missing := 999
	req := model.CreateGroupRequest{GroupNumber: 1, MaxCapacity: 30, TeacherID: &missing}
	if _, err := svc.Create(context.Background(), course.ID, req); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown teacher, got %v", err)
	}
}

func TestUpdateGroupRejectsShrinkBelowOccupancy(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	group := seedGroup(db, course.ID, 1, 30, nil)
	for i := 0; i < 3; i++ {
		s := seedStudent(db, "student", "10000"+string(rune('1'+i)))
		seedEnrollment(db, s.ID, group.ID)
	}

	svc := newGroupService(db)
	ctx := context.Background()

	req := model.UpdateGroupRequest{GroupNumber: 1, MaxCapacity: 2}
	_, err := svc.Update(ctx, group.ID, req)
	appErr := apperr.As(err)
	if appErr == nil || appErr.Kind != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if appErr.Occupancy != 3 || appErr.Capacity != 2 {
		t.Errorf("expected 3/2 in conflict payload, got %d/%d", appErr.Occupancy, appErr.Capacity)
	}

	// Shrinking to exactly the occupancy is allowed.
	req.MaxCapacity = 3
	updated, err := svc.Update(ctx, group.ID, req)
	if err != nil {
		t.Fatalf("shrink to occupancy: %v", err)
	}
	if updated.MaxCapacity != 3 {
		t.Errorf("expected capacity 3, got %d", updated.MaxCapacity)
	}
}

func TestUpdateGroupReassignsTeacher(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	turing := seedTeacher(db, "turing")
	lovelace := seedTeacher(db, "lovelace")
	group := seedGroup(db, course.ID, 1, 30, &turing.ID)

	svc := newGroupService(db)
	req := model.UpdateGroupRequest{GroupNumber: 1, MaxCapacity: 30, TeacherID: &lovelace.ID}
	updated, err := svc.Update(context.Background(), group.ID, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TeacherID == nil || *updated.TeacherID != lovelace.ID {
		t.Errorf("expected teacher %d, got %v", lovelace.ID, updated.TeacherID)
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	db := newMemDB()
	course := seedCourse(db, "CS101", "Intro to Computing")
	teacher := seedTeacher(db, "turing")
	group := seedGroup(db, course.ID, 1, 30, &teacher.ID)
	other := seedGroup(db, course.ID, 2, 30, &teacher.ID)
	alice := seedStudent(db, "alice", "100001")
	bob := seedStudent(db, "bob", "100002")
	seedEnrollment(db, alice.ID, group.ID)
	seedEnrollment(db, bob.ID, other.ID)
	meeting := seedMeeting(db, group.ID, 1)
	otherMeeting := seedMeeting(db, other.ID, 1)
	db.attendance[db.nextID()] = model.Attendance{
		ID: db.lastID, MeetingID: meeting.ID, StudentID: alice.ID,
		Status: model.AttendancePresent, RecordedByID: teacher.ID,
	}
	db.attendance[db.nextID()] = model.Attendance{
		ID: db.lastID, MeetingID: otherMeeting.ID, StudentID: bob.ID,
		Status: model.AttendancePresent, RecordedByID: teacher.ID,
	}

	svc := newGroupService(db)
	if err := svc.Delete(context.Background(), group.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}

	if _, ok := db.groups[group.ID]; ok {
		t.Error("group survived delete")
	}
	for _, e := range db.enrollments {
		if e.GroupID == group.ID {
			t.Error("enrollment survived cascade")
		}
	}
	for _, m := range db.meetings {
		if m.GroupID == group.ID {
			t.Error("meeting survived cascade")
		}
	}
	for _, a := range db.attendance {
		if a.MeetingID == meeting.ID {
			t.Error("attendance survived cascade")
		}
	}

	// The sibling group is untouched.
	if _, ok := db.groups[other.ID]; !ok {
		t.Error("sibling group deleted")
	}
	if len(db.enrollments) != 1 || len(db.meetings) != 1 || len(db.attendance) != 1 {
		t.Errorf("sibling data lost: %d enrollments, %d meetings, %d attendance",
			len(db.enrollments), len(db.meetings), len(db.attendance))
	}
}

func TestDeleteGroupUnknown(t *testing.T) {
	db := newMemDB()
	svc := newGroupService(db)
	if err := svc.Delete(context.Background(), 42); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
