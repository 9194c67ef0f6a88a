package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"white-elephant/internal/config"
	"white-elephant/internal/stream"

	"github.com/gorilla/websocket"
)

func dialEvents(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial events: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) stream.Event {
	t.Helper()
	var event stream.Event
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return event
}

func TestEventStreamDeliversInOrder(t *testing.T) {
	ts, hub := newTestServer(t)
	conn := dialEvents(t, ts)

	// Let the subscription register before publishing.
	time.Sleep(50 * time.Millisecond)
	for i := int64(1); i <= 3; i++ {
		hub.Publish(stream.Event{ID: i, PlayerID: i})
	}
	for i := int64(1); i <= 3; i++ {
		event := readEvent(t, conn)
		if event.ID != i {
			t.Fatalf("expected event %d, got %d", i, event.ID)
		}
	}
}

func TestEventStreamNoReplayForLateSubscriber(t *testing.T) {
	ts, hub := newTestServer(t)

	hub.Publish(stream.Event{ID: 1, PlayerID: 1})
	conn := dialEvents(t, ts)
	time.Sleep(50 * time.Millisecond)
	hub.Publish(stream.Event{ID: 2, PlayerID: 2})

	event := readEvent(t, conn)
	if event.ID != 2 {
		t.Fatalf("late subscriber got replayed event %d", event.ID)
	}
}

func TestEventStreamReleasesSubscriptionOnDisconnect(t *testing.T) {
	ts, hub := newTestServer(t)
	conn := dialEvents(t, ts)
	time.Sleep(50 * time.Millisecond)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if hub.Publish(stream.Event{ID: 9}) == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("subscription not released after disconnect")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestEventStreamSurvivesZeroHeartbeatConfig(t *testing.T) {
	hub := stream.NewHub(4)
	cfg := config.Default()
	cfg.HeartbeatSeconds = 0
	srv := New(nil, cfg, hub)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	conn := dialEvents(t, ts)
	time.Sleep(50 * time.Millisecond)
	hub.Publish(stream.Event{ID: 1, PlayerID: 1})

	event := readEvent(t, conn)
	if event.ID != 1 {
		t.Fatalf("expected event 1, got %d", event.ID)
	}
}

func TestEventStreamHeartbeat(t *testing.T) {
	hub := stream.NewHub(4)
	cfg := config.Default()
	cfg.HeartbeatSeconds = 1
	srv := New(nil, cfg, hub)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	conn := dialEvents(t, ts)
	pings := make(chan struct{}, 1)
	conn.SetPingHandler(func(string) error {
		select {
		case pings <- struct{}{}:
		default:
		}
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Control frames are only processed while reading.
		_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-pings:
	case <-time.After(3 * time.Second):
		t.Fatal("no heartbeat ping within 3s")
	}
	conn.Close()
	<-done
}
