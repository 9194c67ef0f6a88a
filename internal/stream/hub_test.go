package stream

import (
	"sync"
	"testing"
	"time"
)

func receiveEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case event, ok := <-sub.Events():
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestHubDeliversInOrder(t *testing.T) {
	hub := NewHub(8)
	sub := hub.Subscribe()
	defer sub.Close()

	for i := int64(1); i <= 3; i++ {
		hub.Publish(Event{ID: i})
	}
	for i := int64(1); i <= 3; i++ {
		if got := receiveEvent(t, sub); got.ID != i {
			t.Fatalf("expected event %d, got %d", i, got.ID)
		}
	}
}

func TestHubSubscribersAreIndependent(t *testing.T) {
	hub := NewHub(8)
	first := hub.Subscribe()
	defer first.Close()

	hub.Publish(Event{ID: 1})

	second := hub.Subscribe()
	defer second.Close()

	hub.Publish(Event{ID: 2})

	if got := receiveEvent(t, first); got.ID != 1 {
		t.Fatalf("expected event 1, got %d", got.ID)
	}
	if got := receiveEvent(t, first); got.ID != 2 {
		t.Fatalf("expected event 2, got %d", got.ID)
	}
	// The late subscriber sees only what was published after it joined.
	if got := receiveEvent(t, second); got.ID != 2 {
		t.Fatalf("expected event 2, got %d", got.ID)
	}
	select {
	case event := <-second.Events():
		t.Fatalf("unexpected extra event %d", event.ID)
	default:
	}
}

func TestHubDropsOldestForLaggingSubscriber(t *testing.T) {
	hub := NewHub(2)
	lagging := hub.Subscribe()
	defer lagging.Close()
	keeper := hub.Subscribe()
	defer keeper.Close()

	hub.Publish(Event{ID: 1})
	hub.Publish(Event{ID: 2})
	// Drain the healthy subscriber so only the lagging one overflows.
	receiveEvent(t, keeper)
	receiveEvent(t, keeper)
	hub.Publish(Event{ID: 3})

	if got := receiveEvent(t, lagging); got.ID != 2 {
		t.Fatalf("expected oldest event dropped, got %d first", got.ID)
	}
	if got := receiveEvent(t, lagging); got.ID != 3 {
		t.Fatalf("expected event 3, got %d", got.ID)
	}
	if got := receiveEvent(t, keeper); got.ID != 3 {
		t.Fatalf("healthy subscriber affected by lagging one, got %d", got.ID)
	}
}

func TestHubPublishCountsSubscribers(t *testing.T) {
	hub := NewHub(0)
	if n := hub.Publish(Event{ID: 1}); n != 0 {
		t.Fatalf("expected no subscribers, got %d", n)
	}
	sub := hub.Subscribe()
	if n := hub.Publish(Event{ID: 2}); n != 1 {
		t.Fatalf("expected one subscriber, got %d", n)
	}
	sub.Close()
	if n := hub.Publish(Event{ID: 3}); n != 0 {
		t.Fatalf("expected no subscribers after close, got %d", n)
	}
}

func TestHubCloseIsIdempotent(t *testing.T) {
	hub := NewHub(1)
	sub := hub.Subscribe()
	sub.Close()
	sub.Close()

	if _, ok := <-sub.Events(); ok {
		t.Fatal("expected closed channel")
	}
}

func TestHubConcurrentPublishAndSubscribe(t *testing.T) {
	hub := NewHub(256)
	sub := hub.Subscribe()
	defer sub.Close()

	const total = 100
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for j := 0; j < total/4; j++ {
				hub.Publish(Event{ID: int64(offset*total/4 + j)})
				churn := hub.Subscribe()
				churn.Close()
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]struct{})
	for i := 0; i < total; i++ {
		event := receiveEvent(t, sub)
		if _, dup := seen[event.ID]; dup {
			t.Fatalf("event %d delivered twice", event.ID)
		}
		seen[event.ID] = struct{}{}
	}
}
