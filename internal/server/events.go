package server

import (
	"net/http"
	"time"

	"white-elephant/internal/stream"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait        = 10 * time.Second
	defaultHeartbeat = 15 * time.Second
)

// handleEvents is the live stream adapter: one hub subscription per
// connection, every play event framed as a JSON text message, plus ping
// frames at the heartbeat interval to defeat idle-connection timeouts.
// There is no replay of events published before the subscription began.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	logrus.WithField("remote", r.RemoteAddr).Info("event stream connected")

	sub := s.hub.Subscribe()
	done := make(chan struct{})
	go s.readEvents(conn, r.RemoteAddr, done)
	go s.writeEvents(conn, sub, done)
}

// readEvents exists solely to detect the client going away.
func (s *Server) readEvents(conn *websocket.Conn, remote string, done chan struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			logrus.WithFields(logrus.Fields{"remote": remote, "error": err}).Info("event stream disconnected")
			return
		}
	}
}

func (s *Server) writeEvents(conn *websocket.Conn, sub *stream.Subscription, done <-chan struct{}) {
	defer sub.Close()
	defer conn.Close()

	heartbeat := time.Duration(s.cfg.HeartbeatSeconds) * time.Second
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
