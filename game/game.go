// Package game provides the primitives shared by the board, the solver and
// the puzzle generator.
package game

import (
	"fmt"
)

type Colour int32

const (
	None Colour = iota
	Black
	White
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		default:
			fmt.Fprint(s, "Outside")
		}
	case 's': // used on boards
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		default:
			fmt.Fprint(s, "#")
		}
	}
}

// Player represents a player. It's also a colour.
type Player Colour

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// Opponent returns the colour of the opponent player.
func Opponent(p Player) Player {
	switch Colour(p) {
	case White:
		return Player(Black)
	case Black:
		return Player(White)
	}
	panic("Unreachable")
}

// IsValid checks that a player is indeed valid
func IsValid(p Player) bool { return Colour(p) == Black || Colour(p) == White }

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player
	Single
}

// Pass constructs the pass move for a player.
func Pass(p Player) PlayerMove { return PlayerMove{Player: p, Single: -1} }

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Player == other.Player && p.Single == other.Single
}

func (p PlayerMove) Format(s fmt.State, c rune) {
	if p.IsPass() {
		fmt.Fprintf(s, "%v@pass", p.Player)
		return
	}
	fmt.Fprintf(s, "%v@%d", p.Player, p.Single)
}

// Coord represents a (row, col) coordinate.
// Given we're unlikely to actually have a board size of 255x255 or greater,
// a pair of int16s is sufficient to represent the coordinates
//
// The Coord uses standard computer cartesian coordinates
//		- (0, 0) represents the top left
//		- (254, 254) represents a "pass" move
type Coord struct {
	X, Y int16
}

func (c Coord) Add(other Coord) Coord {
	return Coord{c.X + other.X, c.Y + other.Y}
}

func (c Coord) Eq(other Coord) bool { return c.X == other.X && c.Y == other.Y }

// IsPass returns true when the coordinate represents a "pass" move
func (c Coord) IsPass() bool { return c.X == 254 && c.Y == 254 }

// Single represents a coordinate as a single number, utilized in a rowmajor
// fashion.
//		- 0 represents the top left
//		- -1 represents the "pass" move
type Single int32

// IsPass returns true when the coordinate represents a "pass" move
func (c Single) IsPass() bool { return c == -1 }

// Zobrist is a type representing a zobrist hash of a board.
type Zobrist uint64
