package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/unirecords/registrar-backend/internal/config"
	"github.com/unirecords/registrar-backend/internal/middleware"
	"github.com/unirecords/registrar-backend/internal/response"
	"github.com/unirecords/registrar-backend/internal/service"
	ws "github.com/unirecords/registrar-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live attendance changes for a meeting to its teacher.
type WSHandler struct {
	rdb      *redis.Client
	authz    *service.AuthzService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, authz *service.AuthzService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		authz:    authz,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// MeetingAttendanceStream godoc
// WS /ws/v1/teacher/meetings/:id/attendance
// Upgrades to WebSocket and forwards every attendance change of the meeting
// as it is recorded or corrected. Only the meeting's teacher may subscribe.
func (h *WSHandler) MeetingAttendanceStream(c *gin.Context) {
	meetingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authz.IsTeacherForMeeting(c.Request.Context(), middleware.GetPrincipal(c), meetingID) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("meeting_id", meetingID).Logger()
	wsLog.Info().Msg("Teacher subscribed to attendance stream")

	channel := config.CacheKey.MeetingAttendanceChannel(meetingID)
	sub := h.rdb.Subscribe(c.Request.Context(), channel)
	defer sub.Close()

	h.stream(conn, sub.Channel(), wsLog)
}

// stream pumps subscription payloads and ping replies to the client.
// gorilla/websocket permits at most one concurrent writer per connection,
// so all writes happen in this select loop; the reader goroutine only
// reads, handing ping actions over a channel.
func (h *WSHandler) stream(conn *websocket.Conn, events <-chan *redis.Message, wsLog zerolog.Logger) {
	done := make(chan struct{})
	pings := make(chan struct{}, 1)

	// Reader goroutine: collect pings and detect the client going away.
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				select {
				case pings <- struct{}{}:
				default: // a pong is already pending
				}
			}
		}
	}()

	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Connection closed")
			return
		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				wsLog.Debug().Err(err).Msg("Pong write failed, dropping subscriber")
				return
			}
		case m, open := <-events:
			if !open {
				wsLog.Warn().Msg("Subscription channel closed")
				ws.WriteError(conn, "stream closed")
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(m.Payload)); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping subscriber")
				return
			}
		}
	}
}
