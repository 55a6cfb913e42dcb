package websocket

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/config"
	"github.com/unirecords/registrar-backend/internal/model"
)

// Publisher fans attendance changes out over Redis pub/sub so every server
// instance can stream them to its connected meeting watchers.
type Publisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(rdb *redis.Client, log zerolog.Logger) *Publisher {
	return &Publisher{
		rdb: rdb,
		log: log.With().Str("component", "ws_publisher").Logger(),
	}
}

// PublishAttendance publishes one attendance change to the meeting's channel.
// Publish failures are logged and swallowed; the write already committed.
func (p *Publisher) PublishAttendance(ctx context.Context, a model.Attendance) {
	event := AttendanceEvent{
		Event:        EventAttendance,
		AttendanceID: a.ID,
		MeetingID:    a.MeetingID,
		StudentID:    a.StudentID,
		Status:       string(a.Status),
		RecordedByID: a.RecordedByID,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Msg("Marshal attendance event failed")
		return
	}

	channel := config.CacheKey.MeetingAttendanceChannel(a.MeetingID)
	if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		p.log.Error().Err(err).Str("channel", channel).Msg("Publish attendance event failed")
	}
}
