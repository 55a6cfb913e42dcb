package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, index_number, name, email, password_hash, created_at, updated_at`

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.IndexNumber, &s.Name, &s.Email, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("student")
		}
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return scanStudent(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

// GetByIndexNumber retrieves a student by their unique index number.
func (r *StudentRepository) GetByIndexNumber(ctx context.Context, indexNumber string) (*model.Student, error) {
	return scanStudent(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE index_number = $1`, indexNumber))
}

// ExistsByIndexNumber reports whether the index number is already taken.
func (r *StudentRepository) ExistsByIndexNumber(ctx context.Context, indexNumber string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE index_number = $1)`, indexNumber).Scan(&exists)
	return exists, err
}

// ExistsByEmail reports whether a student account uses the email.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// ListPaginated retrieves students matching the filter, newest first.
func (r *StudentRepository) ListPaginated(ctx context.Context, filter model.StudentFilter, limit, offset int) ([]model.Student, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if filter.IndexNumber != "" {
		args = append(args, filter.IndexNumber)
		where += ` AND index_number = $` + itoa(len(args))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where += ` AND name ILIKE $` + itoa(len(args))
	}
	if filter.GroupID > 0 {
		args = append(args, filter.GroupID)
		where += ` AND id IN (SELECT student_id FROM enrollments WHERE group_id = $` + itoa(len(args)) + `)`
	}

	var total int
	if err := querier(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM students`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := `SELECT ` + studentColumns + ` FROM students` + where +
		` ORDER BY created_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.IndexNumber, &s.Name, &s.Email, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	return querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO students (index_number, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.IndexNumber, s.Name, s.Email, s.PasswordHash,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies a student's profile fields.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	tag, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE students SET name = $1, email = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		s.Name, s.Email, s.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("student")
	}
	return nil
}

// UpdatePassword replaces a student's password hash.
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE students SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// Delete removes a student row.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	tag, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("student")
	}
	return nil
}
