package game

import (
	"sync"

	"github.com/rs/zerolog"
)

// Lobby maps room ids to their coordinators, creating each lazily on first
// open. There is exactly one coordinator per id for the lobby's lifetime,
// which is what lets rooms run lock-free inside.
type Lobby struct {
	mu    sync.Mutex
	rooms map[string]*Room
	rules Rules
	log   zerolog.Logger
}

func NewLobby(rules Rules, log zerolog.Logger) *Lobby {
	return &Lobby{
		rooms: make(map[string]*Room),
		rules: rules,
		log:   log,
	}
}

func (l *Lobby) Room(id string) *Room {
	l.mu.Lock()
	defer l.mu.Unlock()

	if room, ok := l.rooms[id]; ok {
		return room
	}

	room := NewRoom(id, l.rules, NewHub(l.log), NewSource(), NewClock(), NewScheduler(), l.log)
	l.rooms[id] = room
	go room.Run()
	l.log.Info().Str("room", id).Msg("room created")
	return room
}
