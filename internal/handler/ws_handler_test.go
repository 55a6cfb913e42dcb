package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// startStreamServer runs the attendance pump against a test-controlled
// message channel and returns a connected client.
func startStreamServer(t *testing.T, events chan *redis.Message) *websocket.Conn {
	t.Helper()

	upgrader := buildUpgrader(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		h := &WSHandler{log: zerolog.Nop()}
		h.stream(conn, events, zerolog.Nop())
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func readEvent(t *testing.T, client *websocket.Conn) map[string]interface{} {
	t.Helper()
	client.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg map[string]interface{}
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("decode %q: %v", payload, err)
	}
	return msg
}

func TestStreamForwardsEventsAndAnswersPings(t *testing.T) {
	events := make(chan *redis.Message)
	client := startStreamServer(t, events)

	// A ping is answered through the same writer that forwards events.
	if err := client.WriteJSON(map[string]string{"action": "ping"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	if msg := readEvent(t, client); msg["event"] != "pong" {
		t.Fatalf("expected pong, got %v", msg)
	}

	go func() {
		events <- &redis.Message{Payload: `{"event":"attendance","attendance_id":7,"meeting_id":3,"student_id":5,"status":"PRESENT","recorded_by_id":2}`}
	}()
	msg := readEvent(t, client)
	if msg["event"] != "attendance" || msg["attendance_id"] != float64(7) {
		t.Fatalf("unexpected forwarded event %v", msg)
	}
}

func TestStreamSingleWriterUnderInterleavedPings(t *testing.T) {
	events := make(chan *redis.Message)
	client := startStreamServer(t, events)

	// Interleave pings with event forwarding without draining in between;
	// both reply kinds must arrive intact over the one writer.
	if err := client.WriteJSON(map[string]string{"action": "ping"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	go func() {
		for i := 0; i < 3; i++ {
			events <- &redis.Message{Payload: `{"event":"attendance","attendance_id":1,"meeting_id":1,"student_id":1,"status":"ABSENT","recorded_by_id":1}`}
		}
	}()

	pongs, forwarded := 0, 0
	for pongs+forwarded < 4 {
		switch msg := readEvent(t, client); msg["event"] {
		case "pong":
			pongs++
		case "attendance":
			forwarded++
		default:
			t.Fatalf("unexpected event %v", msg)
		}
	}
	if pongs != 1 || forwarded != 3 {
		t.Fatalf("expected 1 pong and 3 events, got %d and %d", pongs, forwarded)
	}
}

func TestStreamReportsClosedSubscription(t *testing.T) {
	events := make(chan *redis.Message)
	client := startStreamServer(t, events)

	close(events)

	msg := readEvent(t, client)
	if msg["event"] != "error" || msg["error"] != "stream closed" {
		t.Fatalf("expected stream closed error event, got %v", msg)
	}

	// The server tears the connection down after reporting.
	client.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := client.ReadMessage(); err == nil {
		t.Fatal("expected connection to be closed")
	}
}
