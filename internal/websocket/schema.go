package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError      Event = "error"
	EventAttendance Event = "attendance"
	EventPong       Event = "pong"
)

// AttendanceEvent is pushed to subscribed clients whenever an attendance
// record for the watched meeting is created or changed.
type AttendanceEvent struct {
	Event        Event  `json:"event"`
	AttendanceID int    `json:"attendance_id"`
	MeetingID    int    `json:"meeting_id"`
	StudentID    int    `json:"student_id"`
	Status       string `json:"status"`
	RecordedByID int    `json:"recorded_by_id"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
