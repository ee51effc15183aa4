// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"log/slog"
	"sync"

	"github.com/classpulse/server/models"
)

// sendBuffer is the per-subscriber channel depth. Snapshots are
// self-contained, so a lagging consumer only ever needs the newest one; the
// buffer just absorbs short write stalls. A subscriber that can't keep even
// this much headroom is dropped from its room.
const sendBuffer = 8

// StatsFunc produces the current Stats snapshot for a question. The hub
// calls it while holding its lock, so snapshots delivered to a room are
// serialized: once a broadcast reflects a committed write, no later
// broadcast can omit that write.
type StatsFunc func(questionID string) (models.Stats, error)

// Hub fans freshly computed Stats out to the live subscribers of each
// question's room. Rooms exist only while they have subscribers: created on
// first subscribe, released when the last subscriber leaves. An empty room
// costs nothing - no timers, no polling. Recomputation happens exactly
// twice per lifecycle event: once on subscribe (for that subscriber only)
// and once per accepted write (for the whole room).
//
// One mutex guards all rooms. Fan-out never blocks on a subscriber and
// stats computation is a single bounded read, so the critical section stays
// short; per-question locking buys nothing at this scale.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Subscriber]struct{}
	stats StatsFunc
}

// Subscriber is one live viewer of a question's result stream. Receive
// Stats snapshots from C; every snapshot is complete, so earlier ones may
// safely be discarded. C is closed when the subscriber is dropped by the
// hub or closed by the caller.
type Subscriber struct {
	C chan models.Stats

	hub        *Hub
	questionID string
}

func NewHub(stats StatsFunc) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Subscriber]struct{}),
		stats: stats,
	}
}

// Subscribe registers a new subscriber for a question's result stream and
// immediately queues the current Stats snapshot for it, so a late joiner
// sees state without waiting for the next write. The caller must Close the
// subscriber when done with it.
func (h *Hub) Subscribe(questionID string) (*Subscriber, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	snapshot, err := h.stats(questionID)
	if err != nil {
		return nil, err
	}

	sub := &Subscriber{
		C:          make(chan models.Stats, sendBuffer),
		hub:        h,
		questionID: questionID,
	}

	r, ok := h.rooms[questionID]
	if !ok {
		r = make(map[*Subscriber]struct{})
		h.rooms[questionID] = r
	}
	r[sub] = struct{}{}
	sub.C <- snapshot // buffer is empty, never blocks

	return sub, nil
}

// Notify recomputes the question's Stats once and delivers the snapshot to
// every current subscriber of its room. Call it only after an accepted
// response write has been committed. A question with no room does zero
// work.
func (h *Hub) Notify(questionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[questionID]
	if !ok {
		return
	}

	snapshot, err := h.stats(questionID)
	if err != nil {
		slog.Error("failed to compute stats for broadcast", "question_id", questionID, "error", err)
		return
	}

	for sub := range r {
		select {
		case sub.C <- snapshot:
		default:
			// Subscriber is stalled (disconnected or hopelessly slow).
			// Drop it so the write path and the other subscribers never
			// wait on it.
			h.drop(sub)
			slog.Warn("dropped stalled subscriber", "question_id", questionID)
		}
	}
}

// SubscriberCount reports the number of live subscribers for a question.
func (h *Hub) SubscriberCount(questionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[questionID])
}

// RoomCount reports the number of live rooms. Used by tests to verify that
// empty rooms are released.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// drop removes a subscriber and releases its room if it was the last one.
// Must be called with h.mu held. No-op if the subscriber is already gone.
func (h *Hub) drop(sub *Subscriber) {
	r, ok := h.rooms[sub.questionID]
	if !ok {
		return
	}
	if _, ok := r[sub]; !ok {
		return
	}
	delete(r, sub)
	close(sub.C)
	if len(r) == 0 {
		delete(h.rooms, sub.questionID)
	}
}

// Close unsubscribes the subscriber and releases its room if it was the
// last one. Safe to call more than once, and safe to race with the hub
// dropping the same subscriber.
func (s *Subscriber) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.drop(s)
}
