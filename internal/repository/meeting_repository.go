package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// MeetingRepository handles meeting data access.
type MeetingRepository struct {
	pool *pgxpool.Pool
}

// NewMeetingRepository creates a new MeetingRepository.
func NewMeetingRepository(pool *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{pool: pool}
}

// GetByID retrieves a meeting by ID.
func (r *MeetingRepository) GetByID(ctx context.Context, id int) (*model.Meeting, error) {
	m := &model.Meeting{}
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT id, group_id, meeting_number, starts_at, topic, created_at
		 FROM meetings WHERE id = $1`, id,
	).Scan(&m.ID, &m.GroupID, &m.MeetingNumber, &m.StartsAt, &m.Topic, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("meeting")
		}
		return nil, err
	}
	return m, nil
}

// MaxNumberByGroup returns the highest meeting number in a group, 0 if the
// group has no meetings.
func (r *MeetingRepository) MaxNumberByGroup(ctx context.Context, groupID int) (int, error) {
	var max int
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT COALESCE(MAX(meeting_number), 0) FROM meetings WHERE group_id = $1`, groupID).Scan(&max)
	return max, err
}

// CreateBatch inserts meetings in order, filling in generated IDs.
func (r *MeetingRepository) CreateBatch(ctx context.Context, meetings []*model.Meeting) error {
	q := querier(ctx, r.pool)
	for _, m := range meetings {
		err := q.QueryRow(ctx,
			`INSERT INTO meetings (group_id, meeting_number, starts_at, topic)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at`,
			m.GroupID, m.MeetingNumber, m.StartsAt, m.Topic,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListByGroup retrieves all meetings of a group ordered by meeting number.
func (r *MeetingRepository) ListByGroup(ctx context.Context, groupID int) ([]model.Meeting, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT id, group_id, meeting_number, starts_at, topic, created_at
		 FROM meetings WHERE group_id = $1 ORDER BY meeting_number`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []model.Meeting
	for rows.Next() {
		var m model.Meeting
		if err := rows.Scan(&m.ID, &m.GroupID, &m.MeetingNumber, &m.StartsAt, &m.Topic, &m.CreatedAt); err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

// CountByCourse returns the number of meetings across all groups of a course.
func (r *MeetingRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	var count int
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM meetings m
		 JOIN groups g ON g.id = m.group_id
		 WHERE g.course_id = $1`, courseID).Scan(&count)
	return count, err
}

// DeleteByGroup removes all meetings of a group. Used by cascade deletes.
func (r *MeetingRepository) DeleteByGroup(ctx context.Context, groupID int) error {
	_, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM meetings WHERE group_id = $1`, groupID)
	return err
}
