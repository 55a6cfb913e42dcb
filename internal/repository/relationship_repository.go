package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RelationshipRepository answers the membership and ownership questions the
// authorization predicates are built from.
type RelationshipRepository struct {
	pool *pgxpool.Pool
}

// NewRelationshipRepository creates a new RelationshipRepository.
func NewRelationshipRepository(pool *pgxpool.Pool) *RelationshipRepository {
	return &RelationshipRepository{pool: pool}
}

// TeacherTeachesGroup reports whether the group is assigned to the teacher.
func (r *RelationshipRepository) TeacherTeachesGroup(ctx context.Context, teacherID, groupID int) (bool, error) {
	var ok bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1 AND teacher_id = $2)`,
		groupID, teacherID).Scan(&ok)
	return ok, err
}

// TeacherTeachesCourse reports whether the teacher is assigned to at least
// one group of the course.
func (r *RelationshipRepository) TeacherTeachesCourse(ctx context.Context, teacherID, courseID int) (bool, error) {
	var ok bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM groups WHERE course_id = $1 AND teacher_id = $2)`,
		courseID, teacherID).Scan(&ok)
	return ok, err
}

// StudentEnrolledInGroup reports whether the student holds an enrollment in
// the group.
func (r *RelationshipRepository) StudentEnrolledInGroup(ctx context.Context, studentID, groupID int) (bool, error) {
	var ok bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND group_id = $2)`,
		studentID, groupID).Scan(&ok)
	return ok, err
}

// TeacherTeachesStudent reports whether the student holds an enrollment in
// any group assigned to the teacher.
func (r *RelationshipRepository) TeacherTeachesStudent(ctx context.Context, teacherID, studentID int) (bool, error) {
	var ok bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM enrollments e
			JOIN groups g ON g.id = e.group_id
			WHERE e.student_id = $1 AND g.teacher_id = $2
		)`, studentID, teacherID).Scan(&ok)
	return ok, err
}

// TeacherTeachesStudentInCourse reports whether the student holds an
// enrollment in a group of the course assigned to the teacher.
func (r *RelationshipRepository) TeacherTeachesStudentInCourse(ctx context.Context, teacherID, studentID, courseID int) (bool, error) {
	var ok bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM enrollments e
			JOIN groups g ON g.id = e.group_id
			WHERE e.student_id = $1 AND g.teacher_id = $2 AND g.course_id = $3
		)`, studentID, teacherID, courseID).Scan(&ok)
	return ok, err
}
