package notify

import (
	"testing"
	"time"
)

func TestHub_PerUserDeliveryIsIndependent(t *testing.T) {
	h := NewHub()
	defer h.Close()

	// Flood one user. The per-user pacing keeps all but the first event
	// sitting in that user's queue.
	a := h.ForUser(1)
	for i := 0; i < 10; i++ {
		a.Notify(KindAchievement, i)
	}

	// Another user's event lands in its own fresh queue immediately.
	h.ForUser(2).Notify(KindPurchase, "item")

	h.mu.Lock()
	q1, q2 := h.queues[1], h.queues[2]
	backlog := len(q1)
	h.mu.Unlock()

	if q1 == nil || q2 == nil {
		t.Fatal("expected a delivery queue per user")
	}
	if q1 == q2 {
		t.Fatal("users share a delivery queue")
	}
	if backlog < 8 {
		t.Errorf("user 1 backlog = %d, want most of the burst still queued", backlog)
	}
}

func TestHub_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	defer h.Close()

	n := h.ForUser(1)
	done := make(chan struct{})
	go func() {
		for i := 0; i < userQueueSize*2; i++ {
			n.Notify(KindDailyQuest, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
}
