package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// GradeRepository handles grade data access.
type GradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

const gradeColumns = `id, student_id, course_id, teacher_id, value, comment, issued_at, updated_at`

// GetByID retrieves a grade by ID.
func (r *GradeRepository) GetByID(ctx context.Context, id int) (*model.Grade, error) {
	g := &model.Grade{}
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+gradeColumns+` FROM grades WHERE id = $1`, id,
	).Scan(&g.ID, &g.StudentID, &g.CourseID, &g.TeacherID, &g.Value, &g.Comment, &g.IssuedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("grade")
		}
		return nil, err
	}
	return g, nil
}

// Create inserts a new grade.
func (r *GradeRepository) Create(ctx context.Context, g *model.Grade) error {
	return querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO grades (student_id, course_id, teacher_id, value, comment, issued_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, updated_at`,
		g.StudentID, g.CourseID, g.TeacherID, g.Value, g.Comment, g.IssuedAt,
	).Scan(&g.ID, &g.UpdatedAt)
}

// Update overwrites a grade's value and comment.
func (r *GradeRepository) Update(ctx context.Context, id int, value string, comment *string) error {
	tag, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE grades SET value = $1, comment = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		value, comment, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("grade")
	}
	return nil
}

// Delete removes a grade by ID.
func (r *GradeRepository) Delete(ctx context.Context, id int) error {
	tag, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("grade")
	}
	return nil
}

// ListByStudent retrieves a student's grades, newest first.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Grade, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT `+gradeColumns+` FROM grades WHERE student_id = $1 ORDER BY issued_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	return collectGrades(rows)
}

// ListByTeacher retrieves grades issued by a teacher, newest first.
func (r *GradeRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Grade, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT `+gradeColumns+` FROM grades WHERE teacher_id = $1 ORDER BY issued_at DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	return collectGrades(rows)
}

func collectGrades(rows pgx.Rows) ([]model.Grade, error) {
	defer rows.Close()

	var grades []model.Grade
	for rows.Next() {
		var g model.Grade
		if err := rows.Scan(&g.ID, &g.StudentID, &g.CourseID, &g.TeacherID, &g.Value, &g.Comment, &g.IssuedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// CountByCourse returns the number of grades issued for a course.
func (r *GradeRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	var count int
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM grades WHERE course_id = $1`, courseID).Scan(&count)
	return count, err
}

// DeleteByStudent removes all grades of a student. Used by cascade deletes.
func (r *GradeRepository) DeleteByStudent(ctx context.Context, studentID int) error {
	_, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM grades WHERE student_id = $1`, studentID)
	return err
}
