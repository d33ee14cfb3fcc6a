// Package tickstream fans metronome phase changes out to websocket clients.
package tickstream

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/metrics"
)

const (
	sendBuffer   = 16
	writeTimeout = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Tick is the JSON frame sent for every phase entered.
type Tick struct {
	Seq   uint64    `json:"seq"`
	Phase string    `json:"phase"`
	At    time.Time `json:"at"`
}

type client struct {
	conn *websocket.Conn
	send chan Tick
}

// Hub is an http.Handler serving the tick stream. OnTick never blocks;
// a client that falls behind misses ticks.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	seq     uint64
	now     func() time.Time
	l       *log.Logger
}

func NewHub(l *log.Logger) *Hub {
	if l == nil {
		l = log.Default()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		now:     time.Now,
		l:       l,
	}
}

func (h *Hub) OnTick(phase puttempo.Phase) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	t := Tick{Seq: h.seq, Phase: phase.String(), At: h.now()}
	for c := range h.clients {
		select {
		case c.send <- t:
		default:
			h.l.Debug("dropped tick for slow client", "remote", c.conn.RemoteAddr())
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Error("websocket upgrade failed", "err", err)
		return
	}
	c := &client{conn: conn, send: make(chan Tick, sendBuffer)}
	h.add(c)
	defer h.remove(c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Clients only listen. Reading detects the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case t, ok := <-c.send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(t); err != nil {
				h.l.Debug("tick write failed", "remote", conn.RemoteAddr(), "err", err)
				return
			}
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	metrics.TickClients.Set(0)
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	metrics.TickClients.Set(float64(len(h.clients)))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		metrics.TickClients.Set(float64(len(h.clients)))
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}
