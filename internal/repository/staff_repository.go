package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// StaffRepository handles deanery staff data access.
type StaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

func scanStaff(row pgx.Row) (*model.Staff, error) {
	st := &model.Staff{}
	err := row.Scan(&st.ID, &st.Name, &st.Email, &st.PasswordHash, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("staff")
		}
		return nil, err
	}
	return st, nil
}

// GetByID retrieves a staff account by ID.
func (r *StaffRepository) GetByID(ctx context.Context, id int) (*model.Staff, error) {
	return scanStaff(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM staff WHERE id = $1`, id))
}

// GetByEmail retrieves a staff account by email.
func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	return scanStaff(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM staff WHERE email = $1`, email))
}

// Create inserts a new staff account.
func (r *StaffRepository) Create(ctx context.Context, st *model.Staff) error {
	return querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO staff (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		st.Name, st.Email, st.PasswordHash,
	).Scan(&st.ID, &st.CreatedAt, &st.UpdatedAt)
}
