package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unirecords/registrar-backend/internal/apperr"
	"github.com/unirecords/registrar-backend/internal/model"
)

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

const attendanceColumns = `id, meeting_id, student_id, status, recorded_by_id, created_at, updated_at`

// GetByID retrieves an attendance record by ID.
func (r *AttendanceRepository) GetByID(ctx context.Context, id int) (*model.Attendance, error) {
	a := &model.Attendance{}
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE id = $1`, id,
	).Scan(&a.ID, &a.MeetingID, &a.StudentID, &a.Status, &a.RecordedByID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("attendance record")
		}
		return nil, err
	}
	return a, nil
}

// Create inserts a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, a *model.Attendance) error {
	return querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO attendance (meeting_id, student_id, status, recorded_by_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		a.MeetingID, a.StudentID, a.Status, a.RecordedByID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// UpdateStatus changes the status of an attendance record.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id int, status model.AttendanceStatus) error {
	tag, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE attendance SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("attendance record")
	}
	return nil
}

// ListByMeeting retrieves all attendance records of a meeting ordered by student.
func (r *AttendanceRepository) ListByMeeting(ctx context.Context, meetingID int) ([]model.Attendance, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE meeting_id = $1 ORDER BY student_id`, meetingID)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

// ListByStudent retrieves a student's attendance records, newest meeting first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Attendance, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT a.id, a.meeting_id, a.student_id, a.status, a.recorded_by_id, a.created_at, a.updated_at
		 FROM attendance a
		 JOIN meetings m ON m.id = a.meeting_id
		 WHERE a.student_id = $1
		 ORDER BY m.starts_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]model.Attendance, error) {
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.MeetingID, &a.StudentID, &a.Status, &a.RecordedByID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// DeleteByGroup removes all attendance records of a group's meetings.
// Used by cascade deletes.
func (r *AttendanceRepository) DeleteByGroup(ctx context.Context, groupID int) error {
	_, err := querier(ctx, r.pool).Exec(ctx,
		`DELETE FROM attendance WHERE meeting_id IN (SELECT id FROM meetings WHERE group_id = $1)`, groupID)
	return err
}

// DeleteByStudent removes all attendance records of a student. Used by
// cascade deletes.
func (r *AttendanceRepository) DeleteByStudent(ctx context.Context, studentID int) error {
	_, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM attendance WHERE student_id = $1`, studentID)
	return err
}
