package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/domain"
)

func notes(ids ...int64) []*domain.Note {
	out := make([]*domain.Note, 0, len(ids))
	for _, id := range ids {
		out = append(out, &domain.Note{ID: id, UID: 1})
	}
	return out
}

func recvSnapshot(t *testing.T, sub *Subscription) []*domain.Note {
	t.Helper()
	select {
	case snap, ok := <-sub.C():
		require.True(t, ok, "subscription closed")
		return snap
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
		return nil
	}
}

func TestHub_SnapshotReplacesPrevious(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sub := hub.Subscribe(1)
	require.NotNil(t, sub)

	// two publishes before the client reads: only the newest survives
	hub.Publish(1, notes(1, 2))
	hub.Publish(1, notes(1, 2, 3))

	snap := recvSnapshot(t, sub)
	assert.Len(t, snap, 3)

	// an empty snapshot after a delete is a valid full replacement
	hub.Publish(1, notes())
	snap = recvSnapshot(t, sub)
	assert.Empty(t, snap)
}

func TestHub_FansOutToAllSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := hub.Subscribe(1)
	b := hub.Subscribe(1)
	other := hub.Subscribe(2)

	hub.Publish(1, notes(7))

	assert.Len(t, recvSnapshot(t, a), 1)
	assert.Len(t, recvSnapshot(t, b), 1)

	select {
	case <-other.C():
		t.Fatal("snapshot leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_NoDeliveryAfterUnsubscribe(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sub := hub.Subscribe(1)

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.SubscriberCount(1))

	// dropped, not queued
	hub.Publish(1, notes(1))

	snap, ok := <-sub.C()
	assert.False(t, ok)
	assert.Nil(t, snap)

	// double unsubscribe is a no-op
	hub.Unsubscribe(sub)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(zap.NewNop())
	_ = hub.Subscribe(1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(1, notes(int64(i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sub := hub.Subscribe(1)

	hub.Close()

	_, ok := <-sub.C()
	assert.False(t, ok)
	assert.Nil(t, hub.Subscribe(2))
	hub.Publish(1, notes(1))
}
