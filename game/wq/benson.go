package wq

import (
	"fmt"

	"github.com/gorgonia/tsumego/game"
)

// Verdict is the static judgement of the defender's position. Every claim
// other than Undetermined is sound under correct play; the classifier
// never over-claims and leaves anything unsettled to the search.
type Verdict int8

const (
	Undetermined Verdict = iota
	Alive
	Dead
	Seki
)

func (v Verdict) String() string {
	switch v {
	case Undetermined:
		return "Undetermined"
	case Alive:
		return "Alive"
	case Dead:
		return "Dead"
	case Seki:
		return "Seki"
	}
	return fmt.Sprintf("Verdict(%d)", int8(v))
}

// Classify statically judges the life of the defender's stones.
//
//   - Alive: some defender group is unconditionally alive (Benson).
//   - Seki: a one-eye-each standoff. One mortal group per side, each with
//     a private one-point eye and one shared liberty neither dares fill.
//   - Dead: the defender cannot build two eyes in the space left to it and
//     no enclosed attacker stones remain whose capture could change that.
//   - Undetermined: everything else.
func (b *Board) Classify(defender game.Player) Verdict {
	if alive := b.bensonAlive(defender); len(alive) > 0 {
		return Alive
	}
	if b.seki(defender) {
		return Seki
	}

	attacker := game.Colour(game.Opponent(defender))
	hasUnsafe := false
	for _, g := range b.Groups() {
		if g.Colour == attacker && !b.groupTouchesOutside(g) {
			hasUnsafe = true
			break
		}
	}
	// capturing an enclosed attacker group may open up new eye space, so
	// the interior test is only conclusive without one
	if !hasUnsafe && !b.defenderCanLive(defender) {
		return Dead
	}
	return Undetermined
}

// Settled reports whether the position classifies without any search.
func (b *Board) Settled() bool { return b.Classify(b.Defender()) != Undetermined }

// bensonAlive returns the defender groups that are unconditionally alive
// per Benson's algorithm: a group is alive when it retains at least two
// vital regions after iteratively discarding groups with fewer than two and
// the regions touching discarded groups.
func (b *Board) bensonAlive(p game.Player) []Group {
	colour := game.Colour(p)

	var blocks []Group
	blockOf := make([]int, len(b.data))
	for i := range blockOf {
		blockOf[i] = -1
	}
	for _, g := range b.Groups() {
		if g.Colour != colour {
			continue
		}
		for _, s := range g.Stones {
			blockOf[s] = len(blocks)
		}
		blocks = append(blocks, g)
	}
	if len(blocks) == 0 {
		return nil
	}

	// regions: connected components of in-bounds cells not held by p
	type region struct {
		empties   []game.Single
		adjBlocks map[int]bool
	}
	var regions []region
	seen := make([]bool, len(b.data))
	for i := range b.data {
		if seen[i] || !b.bounds[i] || b.data[i] == colour {
			continue
		}
		r := region{adjBlocks: make(map[int]bool)}
		queue := []game.Single{game.Single(i)}
		seen[i] = true
		for len(queue) > 0 {
			s := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			if b.data[s] == None {
				r.empties = append(r.empties, s)
			}
			for _, a := range b.adjacentsCoord(b.itol(s)) {
				if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
					continue
				}
				ai := b.ltoi(a)
				if b.data[ai] == colour {
					r.adjBlocks[blockOf[ai]] = true
					continue
				}
				if !seen[ai] {
					seen[ai] = true
					queue = append(queue, ai)
				}
			}
		}
		regions = append(regions, r)
	}

	// a region is vital to a block iff every empty cell in it is a liberty
	// of that block
	vital := func(r region, blk int) bool {
		if !r.adjBlocks[blk] {
			return false
		}
		for _, e := range r.empties {
			isLib := false
			for _, a := range b.adjacentsCoord(b.itol(e)) {
				if b.isCoordValid(a) && blockOf[b.ltoi(a)] == blk {
					isLib = true
					break
				}
			}
			if !isLib {
				return false
			}
		}
		return true
	}

	aliveBlock := make([]bool, len(blocks))
	aliveRegion := make([]bool, len(regions))
	for i := range aliveBlock {
		aliveBlock[i] = true
	}
	for i := range aliveRegion {
		aliveRegion[i] = true
	}
	for changed := true; changed; {
		changed = false
		for i := range blocks {
			if !aliveBlock[i] {
				continue
			}
			n := 0
			for j, r := range regions {
				if aliveRegion[j] && vital(r, i) {
					n++
				}
			}
			if n < 2 {
				aliveBlock[i] = false
				changed = true
			}
		}
		for j, r := range regions {
			if !aliveRegion[j] {
				continue
			}
			for blk := range r.adjBlocks {
				if !aliveBlock[blk] {
					aliveRegion[j] = false
					changed = true
					break
				}
			}
		}
	}

	var retVal []Group
	for i, ok := range aliveBlock {
		if ok {
			retVal = append(retVal, blocks[i])
		}
	}
	return retVal
}

// defenderCanLive is the eye-space heuristic: discard the attacker stones
// that are anchored to the outside, and count the interior points of what
// remains. Fewer than two usable interior points, or exactly two adjacent
// ones, cannot be made into two eyes.
func (b *Board) defenderCanLive(defender game.Player) bool {
	atk := game.Colour(game.Opponent(defender))

	safe := make([]bool, len(b.data))
	for _, g := range b.Groups() {
		if g.Colour != atk || !b.groupTouchesOutside(g) {
			continue
		}
		for _, s := range g.Stones {
			safe[s] = true
		}
	}

	shape := make([]bool, len(b.data))
	for i := range b.data {
		shape[i] = b.bounds[i] && !safe[i]
	}

	// the grid edge counts as part of the shape; only outside cells and
	// safe stones break interiority
	var interior []game.Single
	for i := range b.data {
		if !shape[i] {
			continue
		}
		inner := true
		for _, a := range b.adjacentsCoord(b.itol(game.Single(i))) {
			if !b.isCoordValid(a) {
				continue
			}
			if !shape[b.ltoi(a)] {
				inner = false
				break
			}
		}
		if inner {
			interior = append(interior, game.Single(i))
		}
	}

	switch {
	case len(interior) > 2:
		return true
	case len(interior) == 2:
		return !b.singlesAdjacent(interior[0], interior[1])
	default:
		return false
	}
}

// seki recognises the one-eye-each standoff: every eyeless defender group
// and every enclosed attacker group has exactly two liberties, a private
// one-point eye plus one liberty shared by all of them. Filling the shared
// liberty is suicide-by-instalments for either side: the filler ends in
// atari on its own eye and the opponent's recapture leaves the capturer
// with an eye and a second eye space of at least three points.
//
// Note the rule deliberately excludes the two-shared-liberty shape with no
// private eyes. That shape is a nakade, not a seki: the attacker sacrifices
// into one liberty and the forced capture leaves a dead two-space eye.
func (b *Board) seki(defender game.Player) bool {
	defColour := game.Colour(defender)
	atkColour := game.Colour(game.Opponent(defender))

	aliveDef := make(map[game.Single]bool)
	for _, g := range b.bensonAlive(defender) {
		for _, s := range g.Stones {
			aliveDef[s] = true
		}
	}
	aliveAtk := make(map[game.Single]bool)
	for _, g := range b.bensonAlive(game.Opponent(defender)) {
		for _, s := range g.Stones {
			aliveAtk[s] = true
		}
	}

	var standoff []Group
	var haveDef, haveAtk bool
	safeStone := make([]bool, len(b.data))
	for _, g := range b.Groups() {
		switch g.Colour {
		case defColour:
			if aliveDef[g.Stones[0]] {
				continue
			}
			standoff = append(standoff, g)
			haveDef = true
		case atkColour:
			if b.groupTouchesOutside(g) || aliveAtk[g.Stones[0]] {
				for _, s := range g.Stones {
					safeStone[s] = true
				}
				continue
			}
			standoff = append(standoff, g)
			haveAtk = true
		}
	}
	// exactly one mortal group on each side. With two defender groups the
	// defender fills the shared liberty without self-atari and wins the
	// race outright; mirrored for the attacker.
	if !haveDef || !haveAtk || len(standoff) != 2 {
		return false
	}

	for _, g := range standoff {
		if len(g.Liberties) != 2 {
			return false
		}
	}

	// exactly one liberty is common to every standoff group
	inAll := func(l game.Single) bool {
		for _, g := range standoff {
			if g.Liberties[0] != l && g.Liberties[1] != l {
				return false
			}
		}
		return true
	}
	first, second := inAll(standoff[0].Liberties[0]), inAll(standoff[0].Liberties[1])
	if first == second {
		return false
	}
	shared := standoff[0].Liberties[0]
	if second {
		shared = standoff[0].Liberties[1]
	}

	memberOf := make([]int, len(b.data))
	for i := range memberOf {
		memberOf[i] = -1
	}
	for gi, g := range standoff {
		for _, s := range g.Stones {
			memberOf[s] = gi
		}
	}

	// the private liberty must be a one-point eye: every in-bounds
	// neighbour is a stone of the owning group
	eyes := make(map[game.Single]bool)
	for gi, g := range standoff {
		eye := g.Liberties[0]
		if eye == shared {
			eye = g.Liberties[1]
		}
		eyes[eye] = true
		for _, a := range b.adjacentsCoord(b.itol(eye)) {
			if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
				continue
			}
			if memberOf[b.ltoi(a)] != gi {
				return false
			}
		}
	}

	// the shared liberty touches standoff stones only
	for _, a := range b.adjacentsCoord(b.itol(shared)) {
		if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
			continue
		}
		if memberOf[b.ltoi(a)] == -1 {
			return false
		}
	}

	// whatever empty space remains must be safe-attacker eye space, too
	// small for the defender to live in
	seen := make([]bool, len(b.data))
	for i := range b.data {
		if seen[i] || !b.bounds[i] || b.data[i] != None {
			continue
		}
		s := game.Single(i)
		if s == shared || eyes[s] {
			continue
		}
		var size int
		queue := []game.Single{s}
		seen[i] = true
		for len(queue) > 0 {
			cur := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			size++
			for _, a := range b.adjacentsCoord(b.itol(cur)) {
				if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
					continue
				}
				ai := b.ltoi(a)
				switch {
				case b.data[ai] == None && !seen[ai]:
					seen[ai] = true
					queue = append(queue, ai)
				case b.data[ai] != None && !safeStone[ai]:
					return false
				}
			}
		}
		if size > 2 {
			return false
		}
	}
	return true
}

// mergedLiberties counts the liberties of the mover's group as it would
// stand right after placing m, ignoring captures.
func (b *Board) mergedLiberties(m game.PlayerMove) int {
	own := game.Colour(m.Player)
	seen := make([]bool, len(b.data))
	libSeen := make([]bool, len(b.data))
	seen[m.Single] = true
	queue := []game.Single{m.Single}
	n := 0
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, a := range b.adjacentsCoord(b.itol(s)) {
			if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
				continue
			}
			ai := b.ltoi(a)
			if seen[ai] || libSeen[ai] {
				continue
			}
			switch b.data[ai] {
			case None:
				libSeen[ai] = true
				n++
			case own:
				seen[ai] = true
				queue = append(queue, ai)
			}
		}
	}
	return n
}

func (b *Board) groupTouchesOutside(g Group) bool {
	for _, s := range g.Stones {
		for _, a := range b.adjacentsCoord(b.itol(s)) {
			if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
				return true
			}
		}
	}
	return false
}

func (b *Board) singlesAdjacent(x, y game.Single) bool {
	cx, cy := b.itol(x), b.itol(y)
	dx, dy := cx.X-cy.X, cx.Y-cy.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}
