package service

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// memDB is the shared in-memory backing store for the fake stores below.
// The fakes mirror the behavior of the pgx repositories, including the
// unique-constraint backstops, which they simulate with pgconn errors.
type memDB struct {
	students    map[int]model.Student
	teachers    map[int]model.Teacher
	staff       map[int]model.Staff
	courses     map[int]model.Course
	groups      map[int]model.Group
	enrollments map[int]model.Enrollment
	meetings    map[int]model.Meeting
	attendance  map[int]model.Attendance
	grades      map[int]model.Grade
	lastID      int
}

func newMemDB() *memDB {
	return &memDB{
		students:    map[int]model.Student{},
		teachers:    map[int]model.Teacher{},
		staff:       map[int]model.Staff{},
		courses:     map[int]model.Course{},
		groups:      map[int]model.Group{},
		enrollments: map[int]model.Enrollment{},
		meetings:    map[int]model.Meeting{},
		attendance:  map[int]model.Attendance{},
		grades:      map[int]model.Grade{},
	}
}

func (d *memDB) nextID() int {
	d.lastID++
	return d.lastID
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// fakeAtomic runs the callback directly; the in-memory stores need no
// transaction scope.
type fakeAtomic struct{}

func (fakeAtomic) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStudents struct{ db *memDB }

func (f *fakeStudents) GetByID(_ context.Context, id int) (*model.Student, error) {
	s, ok := f.db.students[id]
	if !ok {
		return nil, apperr.NotFound("student")
	}
	return &s, nil
}

func (f *fakeStudents) GetByIndexNumber(_ context.Context, indexNumber string) (*model.Student, error) {
	for _, s := range f.db.students {
		if s.IndexNumber == indexNumber {
			return &s, nil
		}
	}
	return nil, apperr.NotFound("student")
}

func (f *fakeStudents) ExistsByIndexNumber(_ context.Context, indexNumber string) (bool, error) {
	for _, s := range f.db.students {
		if s.IndexNumber == indexNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudents) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, s := range f.db.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudents) ListPaginated(_ context.Context, filter model.StudentFilter, limit, offset int) ([]model.Student, int, error) {
	var all []model.Student
	for _, s := range f.db.students {
		if filter.IndexNumber != "" && s.IndexNumber != filter.IndexNumber {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (f *fakeStudents) Create(_ context.Context, s *model.Student) error {
	for _, existing := range f.db.students {
		if existing.IndexNumber == s.IndexNumber {
			return uniqueViolation("students_index_number_key")
		}
		if existing.Email == s.Email {
			return uniqueViolation("students_email_key")
		}
	}
	s.ID = f.db.nextID()
	f.db.students[s.ID] = *s
	return nil
}

func (f *fakeStudents) Update(_ context.Context, s *model.Student) error {
	if _, ok := f.db.students[s.ID]; !ok {
		return apperr.NotFound("student")
	}
	f.db.students[s.ID] = *s
	return nil
}

func (f *fakeStudents) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	s, ok := f.db.students[id]
	if !ok {
		return apperr.NotFound("student")
	}
	s.PasswordHash = passwordHash
	f.db.students[id] = s
	return nil
}

func (f *fakeStudents) Delete(_ context.Context, id int) error {
	if _, ok := f.db.students[id]; !ok {
		return apperr.NotFound("student")
	}
	delete(f.db.students, id)
	return nil
}

type fakeTeachers struct{ db *memDB }

func (f *fakeTeachers) GetByID(_ context.Context, id int) (*model.Teacher, error) {
	t, ok := f.db.teachers[id]
	if !ok {
		return nil, apperr.NotFound("teacher")
	}
	return &t, nil
}

func (f *fakeTeachers) GetByEmail(_ context.Context, email string) (*model.Teacher, error) {
	for _, t := range f.db.teachers {
		if t.Email == email {
			return &t, nil
		}
	}
	return nil, apperr.NotFound("teacher")
}

func (f *fakeTeachers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, t := range f.db.teachers {
		if t.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeachers) List(_ context.Context) ([]model.Teacher, error) {
	var all []model.Teacher
	for _, t := range f.db.teachers {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (f *fakeTeachers) Create(_ context.Context, t *model.Teacher) error {
	t.ID = f.db.nextID()
	f.db.teachers[t.ID] = *t
	return nil
}

func (f *fakeTeachers) Update(_ context.Context, t *model.Teacher) error {
	if _, ok := f.db.teachers[t.ID]; !ok {
		return apperr.NotFound("teacher")
	}
	f.db.teachers[t.ID] = *t
	return nil
}

func (f *fakeTeachers) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	t, ok := f.db.teachers[id]
	if !ok {
		return apperr.NotFound("teacher")
	}
	t.PasswordHash = passwordHash
	f.db.teachers[id] = t
	return nil
}

func (f *fakeTeachers) Delete(_ context.Context, id int) error {
	if _, ok := f.db.teachers[id]; !ok {
		return apperr.NotFound("teacher")
	}
	delete(f.db.teachers, id)
	return nil
}

type fakeCourses struct{ db *memDB }

func (f *fakeCourses) GetByID(_ context.Context, id int) (*model.Course, error) {
	c, ok := f.db.courses[id]
	if !ok {
		return nil, apperr.NotFound("course")
	}
	return &c, nil
}

func (f *fakeCourses) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, c := range f.db.courses {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourses) List(_ context.Context, _ model.CourseFilter) ([]model.Course, error) {
	var all []model.Course
	for _, c := range f.db.courses {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (f *fakeCourses) Create(_ context.Context, c *model.Course) error {
	c.ID = f.db.nextID()
	f.db.courses[c.ID] = *c
	return nil
}

func (f *fakeCourses) Update(_ context.Context, c *model.Course) error {
	if _, ok := f.db.courses[c.ID]; !ok {
		return apperr.NotFound("course")
	}
	f.db.courses[c.ID] = *c
	return nil
}

func (f *fakeCourses) Delete(_ context.Context, id int) error {
	if _, ok := f.db.courses[id]; !ok {
		return apperr.NotFound("course")
	}
	delete(f.db.courses, id)
	return nil
}

type fakeGroups struct{ db *memDB }

func (f *fakeGroups) GetByID(_ context.Context, id int) (*model.Group, error) {
	g, ok := f.db.groups[id]
	if !ok {
		return nil, apperr.NotFound("group")
	}
	return &g, nil
}

func (f *fakeGroups) occupancy(groupID int) int {
	n := 0
	for _, e := range f.db.enrollments {
		if e.GroupID == groupID {
			n++
		}
	}
	return n
}

func (f *fakeGroups) ListByCourse(_ context.Context, courseID int) ([]model.GroupWithOccupancy, error) {
	var all []model.GroupWithOccupancy
	for _, g := range f.db.groups {
		if g.CourseID == courseID {
			all = append(all, model.GroupWithOccupancy{Group: g, Occupancy: f.occupancy(g.ID)})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].GroupNumber < all[j].GroupNumber })
	return all, nil
}

func (f *fakeGroups) ListByTeacher(_ context.Context, teacherID int) ([]model.GroupWithOccupancy, error) {
	var all []model.GroupWithOccupancy
	for _, g := range f.db.groups {
		if g.TeacherID != nil && *g.TeacherID == teacherID {
			all = append(all, model.GroupWithOccupancy{Group: g, Occupancy: f.occupancy(g.ID)})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (f *fakeGroups) Create(_ context.Context, g *model.Group) error {
	for _, existing := range f.db.groups {
		if existing.CourseID == g.CourseID && existing.GroupNumber == g.GroupNumber {
			return uniqueViolation("groups_course_id_group_number_key")
		}
	}
	g.ID = f.db.nextID()
	f.db.groups[g.ID] = *g
	return nil
}

func (f *fakeGroups) Update(_ context.Context, g *model.Group) error {
	if _, ok := f.db.groups[g.ID]; !ok {
		return apperr.NotFound("group")
	}
	for _, existing := range f.db.groups {
		if existing.ID != g.ID && existing.CourseID == g.CourseID && existing.GroupNumber == g.GroupNumber {
			return uniqueViolation("groups_course_id_group_number_key")
		}
	}
	f.db.groups[g.ID] = *g
	return nil
}

func (f *fakeGroups) Delete(_ context.Context, id int) error {
	if _, ok := f.db.groups[id]; !ok {
		return apperr.NotFound("group")
	}
	delete(f.db.groups, id)
	return nil
}

type fakeEnrollments struct{ db *memDB }

func (f *fakeEnrollments) GetByStudentAndGroup(_ context.Context, studentID, groupID int) (*model.Enrollment, error) {
	for _, e := range f.db.enrollments {
		if e.StudentID == studentID && e.GroupID == groupID {
			return &e, nil
		}
	}
	return nil, apperr.NotFound("enrollment")
}

func (f *fakeEnrollments) ExistsForStudentInCourse(_ context.Context, studentID, courseID int) (bool, error) {
	for _, e := range f.db.enrollments {
		if e.StudentID != studentID {
			continue
		}
		if g, ok := f.db.groups[e.GroupID]; ok && g.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollments) CountByGroup(_ context.Context, groupID int) (int, error) {
	n := 0
	for _, e := range f.db.enrollments {
		if e.GroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEnrollments) CountByCourse(_ context.Context, courseID int) (int, error) {
	n := 0
	for _, e := range f.db.enrollments {
		if g, ok := f.db.groups[e.GroupID]; ok && g.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEnrollments) Create(_ context.Context, e *model.Enrollment) error {
	for _, existing := range f.db.enrollments {
		if existing.StudentID == e.StudentID && existing.GroupID == e.GroupID {
			return uniqueViolation("enrollments_group_id_student_id_key")
		}
	}
	e.ID = f.db.nextID()
	f.db.enrollments[e.ID] = *e
	return nil
}

func (f *fakeEnrollments) Delete(_ context.Context, id int) error {
	if _, ok := f.db.enrollments[id]; !ok {
		return apperr.NotFound("enrollment")
	}
	delete(f.db.enrollments, id)
	return nil
}

func (f *fakeEnrollments) DeleteByGroup(_ context.Context, groupID int) error {
	for id, e := range f.db.enrollments {
		if e.GroupID == groupID {
			delete(f.db.enrollments, id)
		}
	}
	return nil
}

func (f *fakeEnrollments) DeleteByStudent(_ context.Context, studentID int) error {
	for id, e := range f.db.enrollments {
		if e.StudentID == studentID {
			delete(f.db.enrollments, id)
		}
	}
	return nil
}

func (f *fakeEnrollments) detail(e model.Enrollment) model.EnrollmentDetail {
	d := model.EnrollmentDetail{Enrollment: e}
	if g, ok := f.db.groups[e.GroupID]; ok {
		d.GroupNumber = g.GroupNumber
		d.CourseID = g.CourseID
		if c, ok := f.db.courses[g.CourseID]; ok {
			d.CourseCode = c.Code
			d.CourseName = c.Name
		}
	}
	if s, ok := f.db.students[e.StudentID]; ok {
		d.StudentName = s.Name
		d.StudentIndexInfo = s.IndexNumber
	}
	return d
}

func (f *fakeEnrollments) ListByStudent(_ context.Context, studentID int) ([]model.EnrollmentDetail, error) {
	var all []model.EnrollmentDetail
	for _, e := range f.db.enrollments {
		if e.StudentID == studentID {
			all = append(all, f.detail(e))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (f *fakeEnrollments) ListByGroup(_ context.Context, groupID int) ([]model.EnrollmentDetail, error) {
	var all []model.EnrollmentDetail
	for _, e := range f.db.enrollments {
		if e.GroupID == groupID {
			all = append(all, f.detail(e))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

type fakeMeetings struct{ db *memDB }

func (f *fakeMeetings) GetByID(_ context.Context, id int) (*model.Meeting, error) {
	m, ok := f.db.meetings[id]
	if !ok {
		return nil, apperr.NotFound("meeting")
	}
	return &m, nil
}

func (f *fakeMeetings) MaxNumberByGroup(_ context.Context, groupID int) (int, error) {
	max := 0
	for _, m := range f.db.meetings {
		if m.GroupID == groupID && m.MeetingNumber > max {
			max = m.MeetingNumber
		}
	}
	return max, nil
}

func (f *fakeMeetings) CreateBatch(_ context.Context, meetings []*model.Meeting) error {
	for _, m := range meetings {
		for _, existing := range f.db.meetings {
			if existing.GroupID == m.GroupID && existing.MeetingNumber == m.MeetingNumber {
				return uniqueViolation("meetings_group_id_meeting_number_key")
			}
		}
		m.ID = f.db.nextID()
		f.db.meetings[m.ID] = *m
	}
	return nil
}

func (f *fakeMeetings) ListByGroup(_ context.Context, groupID int) ([]model.Meeting, error) {
	var all []model.Meeting
	for _, m := range f.db.meetings {
		if m.GroupID == groupID {
			all = append(all, m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].MeetingNumber < all[j].MeetingNumber })
	return all, nil
}

func (f *fakeMeetings) CountByCourse(_ context.Context, courseID int) (int, error) {
	n := 0
	for _, m := range f.db.meetings {
		if g, ok := f.db.groups[m.GroupID]; ok && g.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMeetings) DeleteByGroup(_ context.Context, groupID int) error {
	for id, m := range f.db.meetings {
		if m.GroupID == groupID {
			delete(f.db.meetings, id)
		}
	}
	return nil
}

type fakeAttendance struct{ db *memDB }

func (f *fakeAttendance) GetByID(_ context.Context, id int) (*model.Attendance, error) {
	a, ok := f.db.attendance[id]
	if !ok {
		return nil, apperr.NotFound("attendance record")
	}
	return &a, nil
}

func (f *fakeAttendance) Create(_ context.Context, a *model.Attendance) error {
	for _, existing := range f.db.attendance {
		if existing.MeetingID == a.MeetingID && existing.StudentID == a.StudentID {
			return uniqueViolation("attendance_meeting_id_student_id_key")
		}
	}
	a.ID = f.db.nextID()
	f.db.attendance[a.ID] = *a
	return nil
}

func (f *fakeAttendance) UpdateStatus(_ context.Context, id int, status model.AttendanceStatus) error {
	a, ok := f.db.attendance[id]
	if !ok {
		return apperr.NotFound("attendance record")
	}
	a.Status = status
	f.db.attendance[id] = a
	return nil
}

func (f *fakeAttendance) ListByMeeting(_ context.Context, meetingID int) ([]model.Attendance, error) {
	var all []model.Attendance
	for _, a := range f.db.attendance {
		if a.MeetingID == meetingID {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (f *fakeAttendance) ListByStudent(_ context.Context, studentID int) ([]model.Attendance, error) {
	var all []model.Attendance
	for _, a := range f.db.attendance {
		if a.StudentID == studentID {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (f *fakeAttendance) DeleteByGroup(_ context.Context, groupID int) error {
	for id, a := range f.db.attendance {
		if m, ok := f.db.meetings[a.MeetingID]; ok && m.GroupID == groupID {
			delete(f.db.attendance, id)
		}
	}
	return nil
}

func (f *fakeAttendance) DeleteByStudent(_ context.Context, studentID int) error {
	for id, a := range f.db.attendance {
		if a.StudentID == studentID {
			delete(f.db.attendance, id)
		}
	}
	return nil
}

type fakeGrades struct{ db *memDB }

func (f *fakeGrades) GetByID(_ context.Context, id int) (*model.Grade, error) {
	g, ok := f.db.grades[id]
	if !ok {
		return nil, apperr.NotFound("grade")
	}
	return &g, nil
}

func (f *fakeGrades) Create(_ context.Context, g *model.Grade) error {
	g.ID = f.db.nextID()
	f.db.grades[g.ID] = *g
	return nil
}

func (f *fakeGrades) Update(_ context.Context, id int, value string, comment *string) error {
	g, ok := f.db.grades[id]
	if !ok {
		return apperr.NotFound("grade")
	}
	g.Value = value
	g.Comment = comment
	f.db.grades[id] = g
	return nil
}

func (f *fakeGrades) Delete(_ context.Context, id int) error {
	if _, ok := f.db.grades[id]; !ok {
		return apperr.NotFound("grade")
	}
	delete(f.db.grades, id)
	return nil
}

func (f *fakeGrades) ListByStudent(_ context.Context, studentID int) ([]model.Grade, error) {
	var all []model.Grade
	for _, g := range f.db.grades {
		if g.StudentID == studentID {
			all = append(all, g)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (f *fakeGrades) ListByTeacher(_ context.Context, teacherID int) ([]model.Grade, error) {
	var all []model.Grade
	for _, g := range f.db.grades {
		if g.TeacherID == teacherID {
			all = append(all, g)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (f *fakeGrades) CountByCourse(_ context.Context, courseID int) (int, error) {
	n := 0
	for _, g := range f.db.grades {
		if g.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (f *fakeGrades) DeleteByStudent(_ context.Context, studentID int) error {
	for id, g := range f.db.grades {
		if g.StudentID == studentID {
			delete(f.db.grades, id)
		}
	}
	return nil
}

// fakeRelationships derives the membership answers from the same backing
// data the other fakes mutate.
type fakeRelationships struct{ db *memDB }

func (f *fakeRelationships) TeacherTeachesGroup(_ context.Context, teacherID, groupID int) (bool, error) {
	g, ok := f.db.groups[groupID]
	return ok && g.TeacherID != nil && *g.TeacherID == teacherID, nil
}

func (f *fakeRelationships) TeacherTeachesCourse(_ context.Context, teacherID, courseID int) (bool, error) {
	for _, g := range f.db.groups {
		if g.CourseID == courseID && g.TeacherID != nil && *g.TeacherID == teacherID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRelationships) StudentEnrolledInGroup(_ context.Context, studentID, groupID int) (bool, error) {
	for _, e := range f.db.enrollments {
		if e.StudentID == studentID && e.GroupID == groupID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRelationships) TeacherTeachesStudent(_ context.Context, teacherID, studentID int) (bool, error) {
	for _, e := range f.db.enrollments {
		if e.StudentID != studentID {
			continue
		}
		if g, ok := f.db.groups[e.GroupID]; ok && g.TeacherID != nil && *g.TeacherID == teacherID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRelationships) TeacherTeachesStudentInCourse(_ context.Context, teacherID, studentID, courseID int) (bool, error) {
	for _, e := range f.db.enrollments {
		if e.StudentID != studentID {
			continue
		}
		g, ok := f.db.groups[e.GroupID]
		if ok && g.CourseID == courseID && g.TeacherID != nil && *g.TeacherID == teacherID {
			return true, nil
		}
	}
	return false, nil
}

// seed helpers

func seedStudent(db *memDB, name, indexNumber string) model.Student {
	s := model.Student{ID: db.nextID(), IndexNumber: indexNumber, Name: name, Email: name + "@uni.test"}
	db.students[s.ID] = s
	return s
}

func seedTeacher(db *memDB, name string) model.Teacher {
	t := model.Teacher{ID: db.nextID(), Name: name, Email: name + "@uni.test"}
	db.teachers[t.ID] = t
	return t
}

func seedCourse(db *memDB, code, name string) model.Course {
	c := model.Course{ID: db.nextID(), Code: code, Name: name, Credits: 5}
	db.courses[c.ID] = c
	return c
}

func seedGroup(db *memDB, courseID, number, capacity int, teacherID *int) model.Group {
	g := model.Group{ID: db.nextID(), CourseID: courseID, GroupNumber: number, MaxCapacity: capacity, TeacherID: teacherID}
	db.groups[g.ID] = g
	return g
}

func seedEnrollment(db *memDB, studentID, groupID int) model.Enrollment {
	e := model.Enrollment{ID: db.nextID(), StudentID: studentID, GroupID: groupID}
	db.enrollments[e.ID] = e
	return e
}

func seedMeeting(db *memDB, groupID, number int) model.Meeting {
	m := model.Meeting{ID: db.nextID(), GroupID: groupID, MeetingNumber: number}
	db.meetings[m.ID] = m
	return m
}
