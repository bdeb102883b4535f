package game

// Inbound message tags.
const (
	msgInit          = "init"
	msgReady         = "ready"
	msgPressKey      = "press_key"
	msgSetPlayerName = "set_player_name"
	msgNewGameLink   = "new_game_link"
)

// ClientMessage is the inbound envelope. Type selects which of the other
// fields are meaningful; unrecognized types are logged and dropped.
type ClientMessage struct {
	Type   string `json:"type"`
	Key    string `json:"key,omitempty"`
	Name   string `json:"name,omitempty"`
	GameID string `json:"gameId,omitempty"`
}

type selfIDMessage struct {
	Type   string `json:"type"`
	SelfID string `json:"selfId"`
}

type toastMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type rumbleMessage struct {
	Type      string   `json:"type"`
	RumbleIDs []string `json:"rumbleIds"`
}

type confettiMessage struct {
	Type string `json:"type"`
}

type stateMessage struct {
	Type  string      `json:"type"`
	State PublicState `json:"state"`
}

func newSelfID(id string) selfIDMessage {
	return selfIDMessage{Type: "set_self_id", SelfID: id}
}

func newToast(message string) toastMessage {
	return toastMessage{Type: "toast", Message: message}
}

func newRumble(ids ...string) rumbleMessage {
	return rumbleMessage{Type: "rumble", RumbleIDs: ids}
}

func newConfetti() confettiMessage {
	return confettiMessage{Type: "confetti"}
}
