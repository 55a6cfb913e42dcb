package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// TeacherRepository handles teacher data access.
type TeacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

const teacherColumns = `id, name, title, email, password_hash, created_at, updated_at`

func scanTeacher(row pgx.Row) (*model.Teacher, error) {
	t := &model.Teacher{}
	err := row.Scan(&t.ID, &t.Name, &t.Title, &t.Email, &t.PasswordHash, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("teacher")
		}
		return nil, err
	}
	return t, nil
}

// GetByID retrieves a teacher by ID.
func (r *TeacherRepository) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return scanTeacher(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id))
}

// GetByEmail retrieves a teacher by email.
func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	return scanTeacher(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE email = $1`, email))
}

// ExistsByEmail reports whether a teacher account uses the email.
func (r *TeacherRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teachers WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// List retrieves all teachers ordered by name.
func (r *TeacherRepository) List(ctx context.Context) ([]model.Teacher, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT `+teacherColumns+` FROM teachers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []model.Teacher
	for rows.Next() {
		var t model.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Title, &t.Email, &t.PasswordHash, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// Create inserts a new teacher.
func (r *TeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	return querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO teachers (name, title, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		t.Name, t.Title, t.Email, t.PasswordHash,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update modifies a teacher's profile fields.
func (r *TeacherRepository) Update(ctx context.Context, t *model.Teacher) error {
	tag, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE teachers SET name = $1, title = $2, email = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		t.Name, t.Title, t.Email, t.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("teacher")
	}
	return nil
}

// UpdatePassword replaces a teacher's password hash.
func (r *TeacherRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE teachers SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// Delete removes a teacher row.
func (r *TeacherRepository) Delete(ctx context.Context, id int) error {
	tag, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("teacher")
	}
	return nil
}
