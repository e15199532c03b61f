package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/linskybing/programhub/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	bufferSize = 16
)

// Event is one lifecycle notification delivered to the application's owner.
type Event struct {
	Type          string    `json:"type"`
	ApplicationID string    `json:"application_id"`
	OwnerID       uint      `json:"owner_id"`
	ProgramName   string    `json:"program_name"`
	Status        string    `json:"status"`
	At            time.Time `json:"at"`
}

// Hub fans events out to every subscriber of the event's owner.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu       sync.RWMutex
	subs     map[uint]map[chan Event]struct{}
	upgrader websocket.Upgrader
}

func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Hub{
		subs:     make(map[uint]map[chan Event]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
	}
}

func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[e.OwnerID] {
		select {
		case ch <- e:
		default:
			logger.For("notify").WithField("owner_id", e.OwnerID).Warn("subscriber buffer full, event dropped")
		}
	}
}

// Subscribe registers a buffered channel for ownerID. The returned func
// unregisters and closes it.
func (h *Hub) Subscribe(ownerID uint) (<-chan Event, func()) {
	ch := make(chan Event, bufferSize)

	h.mu.Lock()
	if h.subs[ownerID] == nil {
		h.subs[ownerID] = make(map[chan Event]struct{})
	}
	h.subs[ownerID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[ownerID], ch)
			if len(h.subs[ownerID]) == 0 {
				delete(h.subs, ownerID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of open subscriptions for ownerID.
func (h *Hub) Subscribers(ownerID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[ownerID])
}

// Serve upgrades the request and streams ownerID's events until the client
// goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, ownerID uint) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	events, cancel := h.Subscribe(ownerID)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				return err
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}
