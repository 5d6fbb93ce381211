package wq

import (
	"github.com/gorgonia/tsumego/game"
)

// Group is a maximal set of connected stones of one colour together with
// its liberties.
type Group struct {
	Colour    game.Colour
	Stones    []game.Single
	Liberties []game.Single
}

// Groups returns every group on the board. Stones and liberties are listed
// in ascending order; groups are ordered by their smallest stone.
func (b *Board) Groups() []Group {
	var retVal []Group
	seen := make([]bool, len(b.data))
	for i := range b.data {
		if b.data[i] == None || seen[i] {
			continue
		}
		stones, libs := b.groupAt(game.Single(i))
		for _, s := range stones {
			seen[s] = true
		}
		sortSingles(stones)
		sortSingles(libs)
		retVal = append(retVal, Group{
			Colour:    b.data[i],
			Stones:    stones,
			Liberties: libs,
		})
	}
	return retVal
}

// GroupAt returns the group containing the cell, or an empty Group if the
// cell is empty or outside.
func (b *Board) GroupAt(s game.Single) Group {
	if s < 0 || int(s) >= len(b.data) || b.data[s] == None {
		return Group{}
	}
	stones, libs := b.groupAt(s)
	sortSingles(stones)
	sortSingles(libs)
	return Group{Colour: b.data[s], Stones: stones, Liberties: libs}
}

func sortSingles(s []game.Single) {
	// insertion sort. groups on these boards are tiny
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
