package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrGameInProgress = errors.New("game already in progress")
	ErrRoomClosed     = errors.New("room closed")
)

// RoomHub is what the room needs from its connection layer.
type RoomHub interface {
	Broadcast(v any)
	SendTo(playerID string, v any)
	Bind(playerID string, sock socketConn, deliver func(event))
}

// Room is the authoritative coordinator for one game. All state lives behind
// a single goroutine draining inbox; timers re-enter through the same
// channel, so handlers never race each other and every deferred callback
// re-checks its precondition before acting.
type Room struct {
	id    string
	rules Rules

	status        GameStatus
	players       []*Player
	keys          []string
	moleKeys      []MoleKey
	round         int
	whacksInRound int
	winnerID      string
	startTime     time.Time

	hub   RoomHub
	src   Source
	clock Clock
	sched Scheduler
	log   zerolog.Logger

	inbox chan event
	done  chan struct{}
}

func NewRoom(id string, rules Rules, hub RoomHub, src Source, clock Clock, sched Scheduler, log zerolog.Logger) *Room {
	return &Room{
		id:     id,
		rules:  rules,
		status: StatusNotStarted,
		hub:    hub,
		src:    src,
		clock:  clock,
		sched:  sched,
		log:    log.With().Str("room", id).Logger(),
		inbox:  make(chan event, 256),
		done:   make(chan struct{}),
	}
}

// Run drains the inbox until Close. Exactly one Run per room.
func (r *Room) Run() {
	for {
		select {
		case <-r.done:
			return
		case ev := <-r.inbox:
			r.handle(ev)
		}
	}
}

func (r *Room) Close() {
	close(r.done)
}

// post enqueues ev for the room goroutine.
func (r *Room) post(ev event) {
	select {
	case r.inbox <- ev:
	case <-r.done:
	}
}

// Admit decides, before the websocket upgrade, whether playerID may open a
// connection: known ids always may, fresh ids only while the game has not
// started.
func (r *Room) Admit(playerID string) error {
	reply := make(chan error, 1)
	r.post(evAdmit{playerID: playerID, reply: reply})
	select {
	case err := <-reply:
		return err
	case <-r.done:
		return ErrRoomClosed
	}
}

// Bind hands a freshly upgraded socket to the hub, wired back into this
// room's inbox.
func (r *Room) Bind(playerID string, sock socketConn) {
	r.hub.Bind(playerID, sock, r.post)
}

func (r *Room) handle(ev event) {
	switch ev := ev.(type) {
	case evAdmit:
		ev.reply <- r.admit(ev.playerID)
	case evConnOpened:
		r.onConnOpened(ev.playerID)
	case evConnClosed:
		r.onConnClosed(ev)
	case evMessage:
		r.onMessage(ev.playerID, ev.msg)
	case evCountdown:
		r.onCountdown(ev.n)
	case evRoundStart:
		r.startRound()
	case evGraceExpired:
		r.onGraceExpired(ev.playerID)
	}
}

func (r *Room) findPlayer(id string) *Player {
	for _, p := range r.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (r *Room) admit(playerID string) error {
	if r.findPlayer(playerID) != nil {
		return nil
	}
	if r.status != StatusNotStarted {
		return ErrGameInProgress
	}
	return nil
}

func (r *Room) onConnOpened(playerID string) {
	p := r.findPlayer(playerID)
	if p == nil {
		if r.status != StatusNotStarted {
			r.log.Warn().Str("player", playerID).Msg("connection for unseen player on a started game")
			return
		}
		r.players = append(r.players, &Player{id: playerID, status: PlayerActive})
	} else {
		p.status = PlayerActive
	}
	r.broadcastState()
}

func (r *Room) onConnClosed(ev evConnClosed) {
	if ev.remaining > 0 {
		return
	}
	p := r.findPlayer(ev.playerID)
	if p == nil {
		return
	}
	p.status = PlayerDisconnecting
	r.broadcastState()

	r.sched.AfterFunc(r.rules.ReconnectGrace, func() {
		r.post(evGraceExpired{playerID: ev.playerID})
	})
}

func (r *Room) onGraceExpired(playerID string) {
	p := r.findPlayer(playerID)
	if p == nil {
		return
	}
	// The player reconnected, or the game is over: nothing to do.
	if p.status == PlayerActive || r.status == StatusEnded {
		return
	}

	for i, pp := range r.players {
		if pp == p {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	r.log.Info().Str("player", playerID).Msg("player removed after grace period")
	r.hub.Broadcast(newToast(fmt.Sprintf("Player %s disconnected", playerID)))

	if p.role == RoleMole && r.status == StatusActive && len(r.players) > 0 {
		r.chooseMole()
	}
	r.broadcastState()
}

func (r *Room) onMessage(playerID string, msg ClientMessage) {
	p := r.findPlayer(playerID)
	if p == nil {
		r.log.Warn().Str("player", playerID).Msg("message from unregistered player dropped")
		return
	}
	p.lastMessage = r.clock.Now()

	switch msg.Type {
	case msgInit:
		r.onInit(p)
	case msgPressKey:
		r.onPressKey(p, msg.Key)
	case msgReady:
		r.onReady(p)
	case msgNewGameLink:
		r.onNewGameLink(p, msg.GameID)
	case msgSetPlayerName:
		r.onSetPlayerName(p, msg.Name)
	default:
		r.log.Warn().Str("type", msg.Type).Msg("unknown message type")
	}

	r.broadcastState()
}

func (r *Room) onInit(p *Player) {
	p.status = PlayerActive
	r.hub.SendTo(p.id, newSelfID(p.id))
}

func (r *Room) onSetPlayerName(p *Player, name string) {
	if p.ready {
		r.hub.SendTo(p.id, newToast("Your name is already set."))
		return
	}
	p.name = strings.TrimSpace(name)
}

func (r *Room) onNewGameLink(p *Player, gameID string) {
	p.newGameID = gameID
	name := p.name
	if name == "" {
		name = p.id
	}
	r.hub.Broadcast(newToast(fmt.Sprintf("%s started a new game.", name)))
}

func (r *Room) onReady(p *Player) {
	if r.status != StatusNotStarted {
		r.hub.SendTo(p.id, newToast("Game already in-progress."))
		return
	}

	if p.name != "" && r.nameTaken(p) {
		r.hub.SendTo(p.id, newToast("That name is taken."))
		return
	}

	p.ready = true

	if len(r.players) < 2 {
		r.hub.SendTo(p.id, newToast("Waiting for at least one more player to join."))
		return
	}
	for _, other := range r.players {
		if !other.ready {
			r.hub.SendTo(p.id, newToast("Waiting for other players to be ready."))
			return
		}
	}

	r.startCountdown()
}

func (r *Room) nameTaken(p *Player) bool {
	for _, other := range r.players {
		if other != p && other.name == p.name {
			return true
		}
	}
	return false
}

func (r *Room) startCountdown() {
	r.status = StatusStarting
	r.hub.Broadcast(newToast("Game starting in 3"))
	r.sched.AfterFunc(r.rules.CountdownInterval, func() {
		r.post(evCountdown{n: 2})
	})
}

func (r *Room) onCountdown(n int) {
	if r.status != StatusStarting {
		return
	}
	r.hub.Broadcast(newToast(fmt.Sprintf("Game starting in %d", n)))

	if n > 1 {
		r.sched.AfterFunc(r.rules.CountdownInterval, func() {
			r.post(evCountdown{n: n - 1})
		})
		return
	}
	r.sched.AfterFunc(time.Millisecond, func() {
		r.post(evRoundStart{})
	})
}

// startRound activates the game. A stale countdown must not resurrect a room
// that moved on, hence the status check.
func (r *Room) startRound() {
	if r.status != StatusStarting {
		return
	}
	r.status = StatusActive
	r.startTime = r.clock.Now()
	r.keys = r.drawKeys()
	r.chooseMole()
	r.broadcastState()
}

func (r *Room) broadcastState() {
	r.hub.Broadcast(stateMessage{Type: "game_state", State: r.publicView()})
}
