package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, code, name, description, credits, created_at, updated_at`

func scanCourse(row pgx.Row) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.Credits, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("course")
		}
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return scanCourse(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

// ExistsByCode reports whether a course with the code exists.
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`, code).Scan(&exists)
	return exists, err
}

// List retrieves courses matching the filter ordered by code.
func (r *CourseRepository) List(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE 1=1`
	args := []any{}

	if filter.Code != "" {
		args = append(args, filter.Code)
		query += ` AND code = $` + itoa(len(args))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += ` AND name ILIKE $` + itoa(len(args))
	}
	query += ` ORDER BY code`

	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.Credits, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO courses (code, name, description, credits)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.Code, c.Name, c.Description, c.Credits,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	tag, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE courses SET code = $1, name = $2, description = $3, credits = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		c.Code, c.Name, c.Description, c.Credits, c.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("course")
	}
	return nil
}

// Delete removes a course row. Callers clear dependents first.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	tag, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("course")
	}
	return nil
}
