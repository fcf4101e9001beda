package notify

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

// notificationStagger spaces out back-to-back toasts so a burst of unlocks
// reaches the client as a readable sequence rather than a pile-up. The
// stagger is per user: one user's burst never delays another's toasts.
const notificationStagger = 1500 * time.Millisecond

// userQueueSize bounds each user's pending toasts; overflow is dropped.
const userQueueSize = 64

type event struct {
	UserID uint   `json:"-"`
	Kind   Kind   `json:"kind"`
	Item   any    `json:"item"`
	SentAt string `json:"sent_at"`
}

// Hub fans engine notifications out to the websocket connections of each
// user. Each user gets their own delivery queue and pacing; a slow or
// dead connection only costs its own messages.
type Hub struct {
	mu     sync.Mutex
	conns  map[uint][]*websocket.Conn
	queues map[uint]chan event
	done   chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[uint][]*websocket.Conn),
		queues: make(map[uint]chan event),
		done:   make(chan struct{}),
	}
}

// Register adds a connection for the user. The caller owns the read loop
// and must call Unregister when the connection closes.
func (h *Hub) Register(userID uint, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userID] = append(h.conns[userID], c)
}

func (h *Hub) Unregister(userID uint, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.conns[userID]
	for i, conn := range conns {
		if conn == c {
			h.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// ForUser returns a Notifier bound to one user's connections.
func (h *Hub) ForUser(userID uint) Notifier {
	return userNotifier{hub: h, userID: userID}
}

// Close stops every delivery loop. Queued events are dropped.
func (h *Hub) Close() {
	close(h.done)
}

// enqueue hands the event to the user's delivery goroutine, starting it
// on first use. A full queue drops the event rather than blocking the
// engine that raised it.
func (h *Hub) enqueue(ev event) {
	h.mu.Lock()
	q, ok := h.queues[ev.UserID]
	if !ok {
		q = make(chan event, userQueueSize)
		h.queues[ev.UserID] = q
		go h.run(q)
	}
	h.mu.Unlock()

	select {
	case q <- ev:
	default:
		log.Printf("notify: queue full, dropping %s for user %d", ev.Kind, ev.UserID)
	}
}

func (h *Hub) run(q chan event) {
	for {
		select {
		case ev := <-q:
			h.deliver(ev)
			select {
			case <-time.After(notificationStagger):
			case <-h.done:
				return
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) deliver(ev event) {
	h.mu.Lock()
	conns := append([]*websocket.Conn(nil), h.conns[ev.UserID]...)
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(ev); err != nil {
			log.Printf("notify: dropping message for user %d: %v", ev.UserID, err)
		}
	}
}

type userNotifier struct {
	hub    *Hub
	userID uint
}

func (n userNotifier) Notify(kind Kind, item any) {
	n.hub.enqueue(event{
		UserID: n.userID,
		Kind:   kind,
		Item:   item,
		SentAt: time.Now().Format(time.RFC3339),
	})
}
