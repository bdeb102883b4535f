package game

// event is the closed union of everything that can reach the room actor:
// connection lifecycle from the hub, decoded client messages, admission
// queries from the HTTP boundary, and the room's own deferred timers.
type event interface {
	roomEvent()
}

type evConnOpened struct {
	playerID string
}

type evConnClosed struct {
	playerID  string
	remaining int // connections still open for this player
}

type evMessage struct {
	playerID string
	msg      ClientMessage
}

type evAdmit struct {
	playerID string
	reply    chan error
}

type evCountdown struct {
	n int
}

type evRoundStart struct{}

type evGraceExpired struct {
	playerID string
}

func (evConnOpened) roomEvent()   {}
func (evConnClosed) roomEvent()   {}
func (evMessage) roomEvent()      {}
func (evAdmit) roomEvent()        {}
func (evCountdown) roomEvent()    {}
func (evRoundStart) roomEvent()   {}
func (evGraceExpired) roomEvent() {}
