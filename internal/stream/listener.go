package stream

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

// Channel is the Postgres notification channel fired by the play_events
// insert trigger; every process sharing the store listens on it.
const Channel = "play"

// Notifications is the subscription handle the listener blocks on. *pgx.Conn
// satisfies it.
type Notifications interface {
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
}

// Listener is the single background task per process that turns committed
// play events into hub publications.
type Listener struct {
	source Notifications
	hub    *Hub
}

func NewListener(source Notifications, hub *Hub) *Listener {
	return &Listener{source: source, hub: hub}
}

// Connect opens a dedicated connection and subscribes it to the play channel.
func Connect(ctx context.Context, dsn string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		_ = conn.Close(ctx)
		return nil, err
	}
	return conn, nil
}

// Run forwards notifications to the hub until ctx is cancelled or the source
// fails. A malformed payload is logged and skipped. A source error ends the
// loop and is fatal to live delivery for this process; the caller must treat
// it as a restart-worthy alarm.
func (l *Listener) Run(ctx context.Context) error {
	for {
		notification, err := l.source.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var event Event
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			logrus.WithError(err).Warn("dropping malformed play notification")
			continue
		}
		subscribers := l.hub.Publish(event)
		logrus.WithFields(logrus.Fields{
			"event_id":    event.ID,
			"subscribers": subscribers,
		}).Debug("play event forwarded")
	}
}
