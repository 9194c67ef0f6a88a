package stream

import (
	"context"
	"os"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"white-elephant/internal/db"
)

// The notify trigger lives in the SQL migrations, which the schema helper
// used by tests does not run. Installing it here keeps the round trip honest:
// the payload the subscriber sees is exactly what row_to_json produces.
const notifyTriggerDDL = `
CREATE OR REPLACE FUNCTION notify_play_event() RETURNS trigger AS $$
BEGIN
    PERFORM pg_notify('play', row_to_json(NEW)::text);
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;
`

func installNotifyTrigger(t *testing.T, conn *gorm.DB) {
	t.Helper()
	if err := conn.Exec(notifyTriggerDDL).Error; err != nil {
		t.Fatalf("create trigger function: %v", err)
	}
	if err := conn.Exec("DROP TRIGGER IF EXISTS play_events_notify ON play_events").Error; err != nil {
		t.Fatalf("drop stale trigger: %v", err)
	}
	if err := conn.Exec(
		"CREATE TRIGGER play_events_notify AFTER INSERT ON play_events FOR EACH ROW EXECUTE FUNCTION notify_play_event()",
	).Error; err != nil {
		t.Fatalf("create trigger: %v", err)
	}
}

// nextEventFor drains the subscription until an event for the given player
// arrives. The play channel is database-wide, so inserts from concurrently
// running tests may interleave; player ids are globally unique.
func nextEventFor(t *testing.T, sub *Subscription, playerID int64) Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case event := <-sub.Events():
			if event.PlayerID == playerID {
				return event
			}
		case <-deadline:
			t.Fatalf("no event for player %d reached the hub", playerID)
		}
	}
}

// A full turn against a real Postgres: every committed play action must
// surface on a hub subscription via the trigger and the listener, in commit
// order, with the row's fields and timestamp intact.
func TestPlayActionsReachSubscriber(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("skipping; TEST_DATABASE_URL is not set")
	}

	store, err := db.OpenURL(dsn, db.Pool{MaxOpenConns: 5})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(store); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	installNotifyTrigger(t, store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect listener: %v", err)
	}
	defer conn.Close(context.Background())

	hub := NewHub(8)
	sub := hub.Subscribe()
	defer sub.Close()

	listener := NewListener(conn, hub)
	done := make(chan error, 1)
	go func() {
		done <- listener.Run(ctx)
	}()

	game := &db.Game{
		Name:  "live exchange",
		Users: datatypes.NewJSONType(map[string]int64{"owner": db.PermissionOwn}),
	}
	if err := db.CreateGame(store, game); err != nil {
		t.Fatalf("create game: %v", err)
	}
	player := db.Player{GameID: game.ID, Name: "player"}
	if err := db.CreatePlayer(store, &player); err != nil {
		t.Fatalf("create player: %v", err)
	}
	present := db.Present{GameID: game.ID, Name: "present"}
	if err := db.CreatePresent(store, &present); err != nil {
		t.Fatalf("create present: %v", err)
	}

	// Start sets started_at only and appends no event.
	if _, err := db.Start(store, game.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := db.Roll(store, game.ID); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if _, err := db.Pick(store, game.ID, present.ID); err != nil {
		t.Fatalf("pick: %v", err)
	}
	if _, err := db.Keep(store, game.ID); err != nil {
		t.Fatalf("keep: %v", err)
	}

	rolled := nextEventFor(t, sub, player.ID)
	if rolled.PresentID != nil || rolled.FromPlayerID != nil {
		t.Fatalf("unexpected roll event %+v", rolled)
	}
	if rolled.CreatedAt.IsZero() {
		t.Fatal("roll event timestamp did not survive the trigger payload")
	}

	picked := nextEventFor(t, sub, player.ID)
	if picked.PresentID == nil || *picked.PresentID != present.ID {
		t.Fatalf("unexpected pick event %+v", picked)
	}
	if picked.FromPlayerID != nil {
		t.Fatalf("pick event must not carry from fields, got %+v", picked)
	}
	if picked.ID <= rolled.ID {
		t.Fatalf("pick event %d not after roll event %d", picked.ID, rolled.ID)
	}

	kept := nextEventFor(t, sub, player.ID)
	if kept.PresentID == nil || *kept.PresentID != present.ID ||
		kept.FromPlayerID == nil || *kept.FromPlayerID != player.ID ||
		kept.FromPresentID == nil || *kept.FromPresentID != present.ID {
		t.Fatalf("unexpected keep event %+v", kept)
	}
	if kept.ID <= picked.ID {
		t.Fatalf("keep event %d not after pick event %d", kept.ID, picked.ID)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop on cancel")
	}
}
