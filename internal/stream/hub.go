package stream

import "sync"

const defaultBuffer = 16

// Hub fans committed play events out to any number of subscribers. Each
// subscriber owns a bounded backlog; when it falls behind, its oldest unread
// events are dropped for it alone. Publish never blocks on a slow or absent
// subscriber. The hub is constructed once by the composition root and passed
// by reference wherever it is needed.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	buffer int
}

// Subscription is one subscriber's independent view of the event stream.
type Subscription struct {
	hub *Hub
	ch  chan Event
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. Only events published afterwards are
// delivered; there is no replay.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		hub: h,
		ch:  make(chan Event, h.buffer),
	}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Publish delivers the event to every current subscriber and returns how many
// there were. A full subscriber backlog loses its oldest event to make room.
func (h *Hub) Publish(event Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.ch <- event:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- event:
			default:
			}
		}
	}
	return len(h.subs)
}

// Events is the subscriber's receive channel; it is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if _, ok := s.hub.subs[s]; !ok {
		return
	}
	delete(s.hub.subs, s)
	close(s.ch)
}
