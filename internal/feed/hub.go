// Package feed delivers live note list snapshots to subscribed
// clients. Every published snapshot is the user's full current note
// list and replaces whatever a subscriber has not consumed yet.
package feed

import (
	"sync"

	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/domain"
)

// Subscription is one client's feed of snapshots. Read from C until
// it is closed.
type Subscription struct {
	uid int64
	ch  chan []*domain.Note
}

// C returns the snapshot channel. It is closed on unsubscribe.
func (s *Subscription) C() <-chan []*domain.Note {
	return s.ch
}

// UID returns the user the subscription belongs to.
func (s *Subscription) UID() int64 {
	return s.uid
}

// Hub fans note list snapshots out to per-user subscriptions.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int64]map[*Subscription]struct{}
	closed bool
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[int64]map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscription for uid. Returns nil after
// Close.
func (h *Hub) Subscribe(uid int64) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	sub := &Subscription{
		uid: uid,
		// capacity 1 so a stale pending snapshot can be swapped for
		// the newest one without blocking the publisher
		ch: make(chan []*domain.Note, 1),
	}
	if h.subs[uid] == nil {
		h.subs[uid] = make(map[*Subscription]struct{})
	}
	h.subs[uid][sub] = struct{}{}
	h.logger.Debug("feed subscribe", zap.Int64("uid", uid), zap.Int("subscribers", len(h.subs[uid])))
	return sub
}

// Unsubscribe tears the subscription down. Snapshots published
// afterwards are dropped; C is closed.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.uid]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.uid)
	}
	close(sub.ch)
	h.logger.Debug("feed unsubscribe", zap.Int64("uid", sub.uid))
}

// Publish pushes the full snapshot to every subscription of uid. A
// snapshot a subscriber has not consumed yet is replaced, never
// queued behind.
func (h *Hub) Publish(uid int64, snapshot []*domain.Note) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for sub := range h.subs[uid] {
		select {
		case sub.ch <- snapshot:
		default:
			// drop the stale pending snapshot, then retry once
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snapshot:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of live subscriptions for uid.
func (h *Hub) SubscriberCount(uid int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[uid])
}

// Close tears down every subscription and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for uid, set := range h.subs {
		for sub := range set {
			close(sub.ch)
		}
		delete(h.subs, uid)
	}
}
