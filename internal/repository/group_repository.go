package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// GroupRepository handles teaching group data access.
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

const groupColumns = `id, course_id, group_number, max_capacity, teacher_id, created_at, updated_at`

func scanGroup(row pgx.Row) (*model.Group, error) {
	g := &model.Group{}
	err := row.Scan(&g.ID, &g.CourseID, &g.GroupNumber, &g.MaxCapacity, &g.TeacherID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("group")
		}
		return nil, err
	}
	return g, nil
}

// GetByID retrieves a group by ID.
func (r *GroupRepository) GetByID(ctx context.Context, id int) (*model.Group, error) {
	return scanGroup(querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = $1`, id))
}

const groupOccupancyQuery = `
	SELECT g.id, g.course_id, g.group_number, g.max_capacity, g.teacher_id, g.created_at, g.updated_at,
	       (SELECT COUNT(*) FROM enrollments e WHERE e.group_id = g.id) AS occupancy
	FROM groups g`

func collectGroupsWithOccupancy(rows pgx.Rows) ([]model.GroupWithOccupancy, error) {
	defer rows.Close()

	var groups []model.GroupWithOccupancy
	for rows.Next() {
		var g model.GroupWithOccupancy
		if err := rows.Scan(&g.ID, &g.CourseID, &g.GroupNumber, &g.MaxCapacity, &g.TeacherID,
			&g.CreatedAt, &g.UpdatedAt, &g.Occupancy); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ListByCourse retrieves all groups of a course with live occupancy,
// ordered by group number.
func (r *GroupRepository) ListByCourse(ctx context.Context, courseID int) ([]model.GroupWithOccupancy, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		groupOccupancyQuery+` WHERE g.course_id = $1 ORDER BY g.group_number`, courseID)
	if err != nil {
		return nil, err
	}
	return collectGroupsWithOccupancy(rows)
}

// ListByTeacher retrieves all groups assigned to a teacher with live
// occupancy, ordered by course and group number.
func (r *GroupRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.GroupWithOccupancy, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		groupOccupancyQuery+` WHERE g.teacher_id = $1 ORDER BY g.course_id, g.group_number`, teacherID)
	if err != nil {
		return nil, err
	}
	return collectGroupsWithOccupancy(rows)
}

// Create inserts a new group.
func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	return querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO groups (course_id, group_number, max_capacity, teacher_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		g.CourseID, g.GroupNumber, g.MaxCapacity, g.TeacherID,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

// Update modifies an existing group.
func (r *GroupRepository) Update(ctx context.Context, g *model.Group) error {
	tag, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE groups SET group_number = $1, max_capacity = $2, teacher_id = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		g.GroupNumber, g.MaxCapacity, g.TeacherID, g.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("group")
	}
	return nil
}

// Delete removes a group row. Callers clear dependents first.
func (r *GroupRepository) Delete(ctx context.Context, id int) error {
	tag, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("group")
	}
	return nil
}
