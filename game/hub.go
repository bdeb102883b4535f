package game

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// messagesPerSecond bounds how fast a single connection may talk to the room.
// Key presses in a frantic round come in bursts, so the burst allowance is
// generous.
const (
	messagesPerSecond = 40
	messageBurst      = 80
)

// Hub multiplexes the physical connections of one room. Several simultaneous
// connections may share a player id (overlapping tabs); all of them receive
// broadcasts. The hub holds no game semantics: it reports opens, inbound
// messages and closes to the room actor and pushes frames the other way.
type Hub struct {
	mu      sync.RWMutex
	conns   []*connection
	counter int
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{log: log}
}

// Bind registers sock under playerID, starts its pumps and reports the open
// to deliver. deliver also receives every decoded inbound message and the
// eventual close.
func (h *Hub) Bind(playerID string, sock socketConn, deliver func(event)) {
	h.mu.Lock()
	c := &connection{
		id:       fmt.Sprintf("c-%d", h.counter),
		playerID: playerID,
		sock:     sock,
		outbox:   make(chan []byte, 64),
		done:     make(chan struct{}),
		limiter:  rate.NewLimiter(messagesPerSecond, messageBurst),
	}
	h.counter++
	h.conns = append(h.conns, c)
	open := len(h.conns)
	h.mu.Unlock()

	h.log.Debug().Str("conn", c.id).Str("player", playerID).Int("open", open).Msg("connection opened")

	go c.writePump(h.log)

	// The open event must reach the room before anything the read pump can
	// produce, or an eager first frame races ahead of the registration.
	deliver(evConnOpened{playerID: playerID})

	go h.readPump(c, deliver)
}

func (h *Hub) readPump(c *connection, deliver func(event)) {
	defer func() {
		remaining := h.remove(c)
		deliver(evConnClosed{playerID: c.playerID, remaining: remaining})
	}()

	for {
		data, err := c.sock.Read()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			h.log.Warn().Str("conn", c.id).Msg("rate limit exceeded, message dropped")
			continue
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Warn().Str("conn", c.id).Err(err).Msg("undecodable message dropped")
			continue
		}
		deliver(evMessage{playerID: c.playerID, msg: msg})
	}
}

// remove unregisters c and reports how many connections its player still has.
func (h *Hub) remove(c *connection) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, cc := range h.conns {
		if cc == c {
			h.conns = append(h.conns[:i], h.conns[i+1:]...)
			close(c.done)
			break
		}
	}

	remaining := 0
	for _, cc := range h.conns {
		if cc.playerID == c.playerID {
			remaining++
		}
	}
	h.log.Debug().Str("conn", c.id).Str("player", c.playerID).Int("open", len(h.conns)).Msg("connection closed")
	return remaining
}

// Broadcast sends v to every open connection. A slow or failed connection
// never blocks delivery to the others.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal failed, broadcast dropped")
		return
	}

	for _, c := range h.snapshot() {
		c.send(data, h.log)
	}
}

// SendTo sends v to every connection bound to playerID.
func (h *Hub) SendTo(playerID string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal failed, send dropped")
		return
	}

	for _, c := range h.snapshot() {
		if c.playerID == playerID {
			c.send(data, h.log)
		}
	}
}

func (h *Hub) snapshot() []*connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*connection, len(h.conns))
	copy(conns, h.conns)
	return conns
}
