package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// GetByStudentAndGroup retrieves the unique enrollment of a student in a group.
func (r *EnrollmentRepository) GetByStudentAndGroup(ctx context.Context, studentID, groupID int) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT id, student_id, group_id, enrolled_at
		 FROM enrollments WHERE student_id = $1 AND group_id = $2`,
		studentID, groupID,
	).Scan(&e.ID, &e.StudentID, &e.GroupID, &e.EnrolledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("enrollment")
		}
		return nil, err
	}
	return e, nil
}

// ExistsForStudentInCourse reports whether the student already holds an
// enrollment in any group of the course.
func (r *EnrollmentRepository) ExistsForStudentInCourse(ctx context.Context, studentID, courseID int) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM enrollments e
			JOIN groups g ON g.id = e.group_id
			WHERE e.student_id = $1 AND g.course_id = $2
		)`, studentID, courseID).Scan(&exists)
	return exists, err
}

// CountByGroup returns the live occupancy of a group.
func (r *EnrollmentRepository) CountByGroup(ctx context.Context, groupID int) (int, error) {
	var count int
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE group_id = $1`, groupID).Scan(&count)
	return count, err
}

// CountByCourse returns the number of enrollments across all groups of a course.
func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	var count int
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments e
		 JOIN groups g ON g.id = e.group_id
		 WHERE g.course_id = $1`, courseID).Scan(&count)
	return count, err
}

// Create inserts a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	return querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO enrollments (student_id, group_id, enrolled_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		e.StudentID, e.GroupID, e.EnrolledAt,
	).Scan(&e.ID)
}

// Delete removes an enrollment by ID.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int) error {
	tag, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("enrollment")
	}
	return nil
}

// DeleteByGroup removes all enrollments of a group. Used by cascade deletes.
func (r *EnrollmentRepository) DeleteByGroup(ctx context.Context, groupID int) error {
	_, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM enrollments WHERE group_id = $1`, groupID)
	return err
}

// DeleteByStudent removes all enrollments of a student. Used by cascade deletes.
func (r *EnrollmentRepository) DeleteByStudent(ctx context.Context, studentID int) error {
	_, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM enrollments WHERE student_id = $1`, studentID)
	return err
}

const enrollmentDetailQuery = `
	SELECT e.id, e.student_id, e.group_id, e.enrolled_at,
	       c.id, c.code, c.name, g.group_number, s.name, s.index_number
	FROM enrollments e
	JOIN groups g ON g.id = e.group_id
	JOIN courses c ON c.id = g.course_id
	JOIN students s ON s.id = e.student_id`

func collectEnrollmentDetails(rows pgx.Rows) ([]model.EnrollmentDetail, error) {
	defer rows.Close()

	var details []model.EnrollmentDetail
	for rows.Next() {
		var d model.EnrollmentDetail
		if err := rows.Scan(&d.ID, &d.StudentID, &d.GroupID, &d.EnrolledAt,
			&d.CourseID, &d.CourseCode, &d.CourseName, &d.GroupNumber,
			&d.StudentName, &d.StudentIndexInfo); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListByStudent retrieves a student's enrollments with course context.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.EnrollmentDetail, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		enrollmentDetailQuery+` WHERE e.student_id = $1 ORDER BY c.code, g.group_number`, studentID)
	if err != nil {
		return nil, err
	}
	return collectEnrollmentDetails(rows)
}

// ListByGroup retrieves a group's roster with student context.
func (r *EnrollmentRepository) ListByGroup(ctx context.Context, groupID int) ([]model.EnrollmentDetail, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		enrollmentDetailQuery+` WHERE e.group_id = $1 ORDER BY s.name`, groupID)
	if err != nil {
		return nil, err
	}
	return collectEnrollmentDetails(rows)
}
