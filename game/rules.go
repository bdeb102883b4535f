package game

import "time"

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Rules holds the tunable gameplay constants of a room.
type Rules struct {
	WhacksPerRound         int
	RoundsPerGame          int
	KeysPerRound           int
	WhackerPressBonus      int
	MoleMispressPenalty    int
	WhackerMispressPenalty int
	CountdownInterval      time.Duration
	ReconnectGrace         time.Duration
}

func DefaultRules() Rules {
	return Rules{
		WhacksPerRound:         10,
		RoundsPerGame:          4,
		KeysPerRound:           15,
		WhackerPressBonus:      250,
		MoleMispressPenalty:    250,
		WhackerMispressPenalty: 250,
		CountdownInterval:      time.Second,
		ReconnectGrace:         time.Second * 2,
	}
}
