package wq

import (
	"sort"

	"github.com/gorgonia/tsumego/game"
)

// move ordering scores. higher is searched first
const (
	scoreCapture   = 1000 // plus one per stone taken
	scoreAtari     = 500
	scoreContact   = 100
	scoreQuiet     = 10
	scoreSelfAtari = 1
)

// LegalMoves returns every legal move for the side to move, best-looking
// first: captures, then ataris on the opponent, then contact with weak
// opponent groups, then quiet moves, with self-ataris at the back. The
// pass move is always last. Equal scores keep board order, so the ordering
// is deterministic.
func (b *Board) LegalMoves() []game.PlayerMove {
	type scoredMove struct {
		move  game.PlayerMove
		score int
	}
	var scored []scoredMove
	for i := range b.data {
		if !b.bounds[i] || b.data[i] != None {
			continue
		}
		m := game.PlayerMove{Player: b.toMove, Single: game.Single(i)}
		captures, err := b.check(m)
		if err != nil {
			continue
		}
		if len(captures) > 0 {
			// captures can still be superko violations
			if !b.Check(m) {
				continue
			}
		}
		scored = append(scored, scoredMove{move: m, score: b.scoreMove(m, captures)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	retVal := make([]game.PlayerMove, 0, len(scored)+1)
	for _, s := range scored {
		retVal = append(retVal, s.move)
	}
	return append(retVal, game.Pass(b.toMove))
}

func (b *Board) scoreMove(m game.PlayerMove, captures []game.Single) int {
	if len(captures) > 0 {
		return scoreCapture + len(captures)
	}

	opp := game.Colour(game.Opponent(m.Player))
	minOppLibs := 0
	for _, a := range b.adjacentsCoord(b.itol(m.Single)) {
		if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
			continue
		}
		ai := b.ltoi(a)
		if b.data[ai] != opp {
			continue
		}
		_, libs := b.groupAt(ai)
		if minOppLibs == 0 || len(libs) < minOppLibs {
			minOppLibs = len(libs)
		}
	}
	if minOppLibs == 2 {
		// filling one of two liberties is an atari
		return scoreAtari
	}

	if b.mergedLiberties(m) == 1 {
		return scoreSelfAtari
	}
	if minOppLibs > 0 && minOppLibs <= 3 {
		return scoreContact
	}
	return scoreQuiet
}
