package game

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// connection is one physical socket bound to a player id.
type connection struct {
	id       string
	playerID string
	sock     socketConn
	outbox   chan []byte
	done     chan struct{}
	limiter  *rate.Limiter
}

// send queues data for the write pump. A full buffer drops the message for
// this connection only.
func (c *connection) send(data []byte, log zerolog.Logger) {
	select {
	case <-c.done:
	case c.outbox <- data:
	default:
		log.Error().Str("conn", c.id).Str("player", c.playerID).Msg("send buffer full, dropping message")
	}
}

func (c *connection) writePump(log zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.sock.Close()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.outbox:
			if err := c.sock.Write(data); err != nil {
				log.Warn().Str("conn", c.id).Err(err).Msg("write failed, dropping connection")
				return
			}
		case <-ticker.C:
			if err := c.sock.Ping(); err != nil {
				return
			}
		}
	}
}
