package game

import "time"

type GameStatus string

const (
	StatusNotStarted GameStatus = "not_started"
	StatusStarting   GameStatus = "starting"
	StatusActive     GameStatus = "active"
	StatusEnded      GameStatus = "ended"
)

type Role string

const (
	RoleNone    Role = ""
	RoleMole    Role = "mole"
	RoleWhacker Role = "whacker"
)

type PlayerStatus string

const (
	PlayerActive        PlayerStatus = "active"
	PlayerDisconnecting PlayerStatus = "disconnecting"
	PlayerInactive      PlayerStatus = "inactive"
)

// Player is one logical identity in a room. A player may be reached over any
// number of physical connections at once; the id is what identifies them.
type Player struct {
	id                string
	name              string
	ready             bool
	role              Role
	status            PlayerStatus
	moleMispresses    int
	whackerMispresses int
	whackerPresses    int
	moleDelta         int64 // milliseconds accumulated while holding the mole role
	newGameID         string
	lastMessage       time.Time
}

// MoleKey is the currently exposed key. At most one exists at any time.
type MoleKey struct {
	Key       string `json:"key"`
	PressedAt int64  `json:"pressedAt"` // unix milliseconds
}
