// Package tsumego ties together the bounded board, the life and death
// solver and a generator of new problems.
//
// A problem ("tsumego") is a walled-off corner of a Go board. One colour,
// the attacker, surrounds the position from the outside; the defender's
// stones inside either live, die, or stand in seki. The solver proves
// which; the generator proposes random candidates and keeps the ones the
// solver finds interesting.
package tsumego

import (
	"github.com/gorgonia/tsumego/encoding/sgf"
	"github.com/gorgonia/tsumego/game"
	"github.com/gorgonia/tsumego/game/wq"
	"github.com/gorgonia/tsumego/search"
)

// Puzzle is a life and death problem with the roles read off the board:
// the attacker is the colour whose stones touch the outside.
type Puzzle struct {
	Board    *wq.Board
	Attacker game.Player
	Defender game.Player
}

func NewPuzzle(b *wq.Board) Puzzle {
	atk := b.Attacker()
	return Puzzle{
		Board:    b,
		Attacker: atk,
		Defender: game.Opponent(atk),
	}
}

// FromSGF builds a puzzle from an SGF-encoded board.
func FromSGF(s string) (Puzzle, string, error) {
	b, comment, err := sgf.Decode(s)
	if err != nil {
		return Puzzle{}, "", err
	}
	return NewPuzzle(b), comment, nil
}

// SGF renders the puzzle's board back to SGF.
func (p Puzzle) SGF(comment string) string { return sgf.Encode(p.Board, comment) }

// Solve runs the solver over the puzzle.
func (p Puzzle) Solve(conf search.Config) (search.SearchResult, error) {
	s, err := search.New(conf)
	if err != nil {
		return search.SearchResult{}, err
	}
	return s.Solve(p.Board), nil
}

// WithFirstPlayer rebuilds the puzzle's board with the given side to move.
func (p Puzzle) WithFirstPlayer(first game.Player) (Puzzle, error) {
	rows, cols := p.Board.BoardSize()
	b, err := wq.NewBoard(rows, cols, p.Board.Bounds(), p.Board.Stones(), first)
	if err != nil {
		return Puzzle{}, err
	}
	return NewPuzzle(b), nil
}
