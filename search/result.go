package search

import (
	"fmt"

	"github.com/gorgonia/tsumego/game"
)

// Status is the outcome of a solve.
type Status int8

const (
	Unknown Status = iota
	BlackAlive
	WhiteAlive
	SekiStatus
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case BlackAlive:
		return "BlackAlive"
	case WhiteAlive:
		return "WhiteAlive"
	case SekiStatus:
		return "Seki"
	}
	return fmt.Sprintf("Status(%d)", int8(s))
}

// statusFor returns the status in which p's stones live.
func statusFor(p game.Player) Status {
	if game.Colour(p) == game.Black {
		return BlackAlive
	}
	return WhiteAlive
}

// Bound qualifies a score or a status: Exact results are proven, bounds are
// what a cut-off window search could establish.
type Bound int8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "Exact"
	case LowerBound:
		return "LowerBound"
	case UpperBound:
		return "UpperBound"
	}
	return fmt.Sprintf("Bound(%d)", int8(b))
}

// SearchResult is what Solve returns. Status is Unknown when the budget ran
// out before a proof; Nodes and Depth report the cost of whatever was
// established.
type SearchResult struct {
	Status Status
	Bound  Bound
	Depth  int   // deepest completed iteration
	Nodes  int64 // positions visited
	Best   game.PlayerMove
	PV     []game.PlayerMove
}

func (r SearchResult) Format(s fmt.State, c rune) {
	switch c {
	case 'v', 's':
		fmt.Fprintf(s, "%v (%v) depth %d, %d nodes", r.Status, r.Bound, r.Depth, r.Nodes)
	}
}
