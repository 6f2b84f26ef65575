// Package live fans comment-change notifications out to per-topic
// subscribers, standing in for the document store's native change streams.
package live

import "sync"

// Event signals that the comment set of a topic changed. Subscribers re-query
// and rebuild; the event carries no payload of its own.
type Event struct {
	TopicID uint
}

type Hub struct {
	mu   sync.Mutex
	subs map[uint]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint]map[chan Event]struct{})}
}

// Subscribe registers interest in a topic. The returned release function must
// be called when the consumer goes away; it removes the subscription and
// closes the channel. Release is safe to call more than once.
func (h *Hub) Subscribe(topicID uint) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	h.mu.Lock()
	if h.subs[topicID] == nil {
		h.subs[topicID] = make(map[chan Event]struct{})
	}
	h.subs[topicID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[topicID], ch)
			if len(h.subs[topicID]) == 0 {
				delete(h.subs, topicID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, release
}

// Publish notifies every subscriber of the event's topic. Sends never block:
// a subscriber with a full buffer misses this notification and catches up on
// the next one, since consumers rebuild from the store rather than from the
// event itself.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[ev.TopicID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
