package game

import "slices"

type PublicPlayer struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Ready     bool         `json:"ready"`
	Role      Role         `json:"role,omitempty"`
	Status    PlayerStatus `json:"status"`
	Score     int          `json:"score"`
	NewGameID string       `json:"newGameId,omitempty"`
}

type PublicState struct {
	ID            string         `json:"id"`
	Status        GameStatus     `json:"status"`
	Keys          []string       `json:"keys"`
	MoleKeys      []MoleKey      `json:"moleKeys"`
	Round         int            `json:"round"`
	WhacksInRound int            `json:"whacksInRound"`
	GameProgress  float64        `json:"gameProgress"`
	Players       []PublicPlayer `json:"players"`
	WinnerID      string         `json:"winnerId,omitempty"`
}

// publicView derives the sanitized wire view of the room. It is a pure
// function of the room state: internal bookkeeping stays out, raw counters
// are replaced by the computed score, and unnamed players show their id.
func (r *Room) publicView() PublicState {
	keys := slices.Clone(r.keys)
	if keys == nil {
		keys = []string{}
	}
	moleKeys := slices.Clone(r.moleKeys)
	if moleKeys == nil {
		moleKeys = []MoleKey{}
	}

	progress := 0.0
	if totalWhacks := r.rules.WhacksPerRound * r.rules.RoundsPerGame; totalWhacks > 0 {
		progress = 100 * float64(r.round*r.rules.WhacksPerRound+r.whacksInRound) / float64(totalWhacks)
	}
	view := PublicState{
		ID:            r.id,
		Status:        r.status,
		Keys:          keys,
		MoleKeys:      moleKeys,
		Round:         r.round,
		WhacksInRound: r.whacksInRound,
		GameProgress:  progress,
		Players:       make([]PublicPlayer, 0, len(r.players)),
		WinnerID:      r.winnerID,
	}

	for _, p := range r.players {
		name := p.name
		if name == "" {
			name = p.id
		}
		view.Players = append(view.Players, PublicPlayer{
			ID:        p.id,
			Name:      name,
			Ready:     p.ready,
			Role:      p.role,
			Status:    p.status,
			Score:     r.score(p),
			NewGameID: p.newGameID,
		})
	}
	return view
}
