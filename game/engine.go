package game

import (
	"slices"
	"strings"
)

func (r *Room) drawKeys() []string {
	letters := strings.Split(alphabet, "")
	r.src.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return letters[:r.rules.KeysPerRound]
}

func (r *Room) currentMole() *Player {
	for _, p := range r.players {
		if p.role == RoleMole {
			return p
		}
	}
	return nil
}

// chooseMole reassigns the mole role among players not currently holding it.
// Only the current mole is excluded; there is no rotation guarantee across a
// game. With no other candidates the current mole keeps the role.
func (r *Room) chooseMole() *Player {
	candidates := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.role != RoleMole {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return r.currentMole()
	}

	mole := candidates[r.src.Intn(len(candidates))]
	for _, p := range r.players {
		if p == mole {
			p.role = RoleMole
		} else {
			p.role = RoleWhacker
		}
	}
	return mole
}

func (r *Room) onPressKey(p *Player, key string) {
	if r.status != StatusActive {
		return
	}
	if p.role == RoleMole {
		r.onMolePress(p, key)
	} else {
		r.onWhackerPress(p, key)
	}
}

// onMolePress exposes key as the round's live mole key. A second press while
// one is live, or a key outside the round's set, is a scored mispress.
func (r *Room) onMolePress(p *Player, key string) {
	if len(r.moleKeys) > 0 || !slices.Contains(r.keys, key) {
		r.hub.Broadcast(newRumble("player-"+p.id, "key-"+key))
		p.moleMispresses++
		return
	}

	r.moleKeys = append(r.moleKeys, MoleKey{
		Key:       key,
		PressedAt: r.clock.Now().UnixMilli(),
	})
}

func (r *Room) onWhackerPress(p *Player, key string) {
	idx := slices.IndexFunc(r.moleKeys, func(mk MoleKey) bool { return mk.Key == key })
	if idx < 0 {
		r.hub.Broadcast(newRumble("player-"+p.id, "key-"+key))
		p.whackerMispresses++
		return
	}

	delta := r.clock.Now().UnixMilli() - r.moleKeys[idx].PressedAt
	r.moleKeys = slices.Delete(r.moleKeys, idx, idx+1)
	p.whackerPresses++
	if mole := r.currentMole(); mole != nil {
		mole.moleDelta += delta
	}

	r.whacksInRound++
	if r.whacksInRound >= r.rules.WhacksPerRound {
		r.nextRound()
	}
}

func (r *Room) nextRound() {
	if r.round+1 == r.rules.RoundsPerGame {
		r.finishGame()
		return
	}
	r.round++
	r.whacksInRound = 0
	r.keys = r.drawKeys()

	previous := r.currentMole()
	next := r.chooseMole()

	ids := []string{"keys", "help-text"}
	if previous != nil {
		ids = append(ids, "role-badge-"+previous.id)
	}
	if next != nil && next != previous {
		ids = append(ids, "role-badge-"+next.id)
	}
	r.hub.Broadcast(newRumble(ids...))
}

func (r *Room) score(p *Player) int {
	return int(p.moleDelta) +
		p.whackerPresses*r.rules.WhackerPressBonus -
		p.moleMispresses*r.rules.MoleMispressPenalty -
		p.whackerMispresses*r.rules.WhackerMispressPenalty
}

// finishGame crowns the highest score; ties go to the earlier joiner.
func (r *Room) finishGame() {
	r.status = StatusEnded

	ranked := slices.Clone(r.players)
	slices.SortStableFunc(ranked, func(a, b *Player) int {
		return r.score(b) - r.score(a)
	})
	winner := ranked[0]
	r.winnerID = winner.id
	r.log.Info().Str("winner", winner.id).Int("score", r.score(winner)).Msg("game finished")
	r.hub.SendTo(winner.id, newConfetti())
}
