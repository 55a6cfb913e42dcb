package model

import "time"

// AttendanceStatus enumerates the possible presence states.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Attendance binds one status to a (meeting, student) pair and records the
// teacher who took it. At most one record exists per pair.
type Attendance struct {
	ID           int              `json:"id"`
	MeetingID    int              `json:"meeting_id"`
	StudentID    int              `json:"student_id"`
	Status       AttendanceStatus `json:"status"`
	RecordedByID int              `json:"recorded_by_id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// AttendanceEntry is one (student, status) pair in a recording request.
type AttendanceEntry struct {
	StudentID int              `json:"student_id" binding:"required,min=1"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT EXCUSED"`
}

// RecordAttendanceRequest is the payload for recording attendance for a meeting.
type RecordAttendanceRequest struct {
	Entries []AttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}

// UpdateAttendanceRequest is the payload for changing a recorded status.
type UpdateAttendanceRequest struct {
	Status AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT EXCUSED"`
}
