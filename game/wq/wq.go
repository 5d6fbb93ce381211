// Package wq implements the bounded Go board used for life and death
// problems.
//
// Unlike a full board, a life and death board has a playable region
// surrounded by outside cells. Outside cells are walls: they can never be
// played on and never count as liberties. The colour whose stones touch the
// outside is the attacker; the enclosed colour is the defender whose life is
// in question.
package wq

import (
	"fmt"

	"github.com/gorgonia/tsumego/game"
	"github.com/pkg/errors"
)

const (
	None  = game.None
	Black = game.Black
	White = game.White

	BlackP = game.Player(game.Black)
	WhiteP = game.Player(game.White)
)

// historicalBoard is one layout in a line of play. The hash is checked
// first; the layout disambiguates hash collisions.
type historicalBoard struct {
	hash   game.Zobrist
	layout []game.Colour
}

// Board represents a bounded board position.
//
// A Board is a value: Apply returns a new Board and never mutates the
// receiver. Every Board carries the layouts of its own line of play, so a
// move recreating any earlier layout is rejected by Apply itself
// (positional superko).
type Board struct {
	rows, cols int32
	data       []game.Colour   // backing data
	it         [][]game.Colour // iterator for quick access
	bounds     []bool          // true for playable cells
	zobrist                    // hashing of the layout

	toMove     game.Player
	moveNum    int
	passes     int
	lastMove   game.PlayerMove
	historical []historicalBoard
}

// NewBoard constructs a board from an in-bounds mask and initial stones.
// stones may be nil for an empty region. Setups with a stone outside the
// region or a group without liberties are rejected with a SetupError.
func NewBoard(rows, cols int, bounds []bool, stones []game.Colour, toMove game.Player) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, SetupError{fmt.Sprintf("impossible board size %d×%d", rows, cols)}
	}
	if len(bounds) != rows*cols {
		return nil, SetupError{fmt.Sprintf("bounds has %d cells, want %d", len(bounds), rows*cols)}
	}
	if stones != nil && len(stones) != rows*cols {
		return nil, SetupError{fmt.Sprintf("stones has %d cells, want %d", len(stones), rows*cols)}
	}
	if !game.IsValid(toMove) {
		return nil, SetupError{fmt.Sprintf("impossible player to move %v", toMove)}
	}

	data := make([]game.Colour, rows*cols)
	bd := make([]bool, rows*cols)
	copy(bd, bounds)
	if stones != nil {
		copy(data, stones)
	}
	for i, c := range data {
		if c != None && !bd[i] {
			return nil, SetupError{fmt.Sprintf("stone %v on outside cell %d", c, i)}
		}
	}

	b := &Board{
		rows:    int32(rows),
		cols:    int32(cols),
		data:    data,
		it:      game.MakeIterator(data, int32(rows), int32(cols)),
		bounds:  bd,
		zobrist: makeZobrist(rows, cols),
		toMove:  toMove,
	}
	for i, c := range data {
		if c != None {
			b.zobrist.update(game.PlayerMove{Player: game.Player(c), Single: game.Single(i)})
		}
	}

	for _, g := range b.Groups() {
		if len(g.Liberties) == 0 {
			return nil, SetupError{fmt.Sprintf("group of %d %v stones has no liberties", len(g.Stones), g.Colour)}
		}
	}
	return b, nil
}

// FromString parses a board diagram. Each line is a row; cells are single
// runes with optional spaces between them:
//
//	'.' or '·'  empty in-bounds cell
//	'X' or 'B'  black stone
//	'O' or 'W'  white stone
//	'#'         outside cell
func FromString(s string, toMove game.Player) (*Board, error) {
	var rows [][]rune
	var row []rune
	for _, r := range s {
		switch r {
		case '\n':
			if len(row) > 0 {
				rows = append(rows, row)
				row = nil
			}
		case ' ', '\t', '\r', '⎢', '⎥':
			// padding
		default:
			row = append(row, r)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, SetupError{"empty diagram"}
	}
	cols := len(rows[0])
	bounds := make([]bool, len(rows)*cols)
	stones := make([]game.Colour, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, SetupError{fmt.Sprintf("row %d has %d cells, want %d", i, len(r), cols)}
		}
		for j, c := range r {
			idx := i*cols + j
			switch c {
			case '.', '·':
				bounds[idx] = true
			case 'X', 'B':
				bounds[idx] = true
				stones[idx] = Black
			case 'O', 'W':
				bounds[idx] = true
				stones[idx] = White
			case '#':
				// outside
			default:
				return nil, SetupError{fmt.Sprintf("unknown cell %q at (%d, %d)", c, i, j)}
			}
		}
	}
	return NewBoard(len(rows), cols, bounds, stones, toMove)
}

// Clone clones the board. The clone shares the immutable zobrist table and
// bounds mask with the receiver; everything mutable is copied.
func (b *Board) Clone() *Board {
	data := make([]game.Colour, len(b.data))
	copy(data, b.data)
	z := b.zobrist
	retVal := &Board{
		rows:       b.rows,
		cols:       b.cols,
		data:       data,
		it:         game.MakeIterator(data, b.rows, b.cols),
		bounds:     b.bounds,
		zobrist:    z,
		toMove:     b.toMove,
		moveNum:    b.moveNum,
		passes:     b.passes,
		lastMove:   b.lastMove,
		historical: b.historical,
	}
	return retVal
}

// Eq checks that both boards represent the same position: same region, same
// stones, same player to move.
func (b *Board) Eq(other *Board) bool {
	if b == other {
		return true
	}
	if b.rows != other.rows || b.cols != other.cols ||
		b.hash != other.hash || b.toMove != other.toMove {
		return false
	}
	for i, c := range b.data {
		if c != other.data[i] {
			return false
		}
	}
	for i, in := range b.bounds {
		if in != other.bounds[i] {
			return false
		}
	}
	return true
}

// Format implements fmt.Formatter
func (b *Board) Format(s fmt.State, c rune) {
	switch c {
	case 's':
		for i, row := range b.it {
			fmt.Fprint(s, "⎢ ")
			for j, col := range row {
				if !b.bounds[int(b.cols)*i+j] {
					fmt.Fprint(s, "# ")
					continue
				}
				fmt.Fprintf(s, "%s ", col)
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}

// Hash returns the layout hash of the board. It does not include the side
// to move; see Key.
func (b *Board) Hash() game.Zobrist { return b.hash }

// Key returns the hash of the position including the side to move, for use
// as a transposition table key.
func (b *Board) Key() uint64 {
	k := uint64(b.hash)
	if b.toMove == WhiteP {
		k ^= sideToMoveKey
	}
	return k
}

// BoardSize returns (rows, cols).
func (b *Board) BoardSize() (int, int) { return int(b.rows), int(b.cols) }

// Stones returns the backing layout. The caller must not modify it.
func (b *Board) Stones() []game.Colour { return b.data }

// InBounds returns true if the cell is part of the playable region.
func (b *Board) InBounds(s game.Single) bool {
	return s >= 0 && int(s) < len(b.bounds) && b.bounds[s]
}

// Bounds returns the in-bounds mask. The caller must not modify it.
func (b *Board) Bounds() []bool { return b.bounds }

func (b *Board) ToMove() game.Player      { return b.toMove }
func (b *Board) MoveNumber() int          { return b.moveNum }
func (b *Board) Passes() int              { return b.passes }
func (b *Board) LastMove() game.PlayerMove { return b.lastMove }

// Playable returns the number of in-bounds cells.
func (b *Board) Playable() int {
	var retVal int
	for _, in := range b.bounds {
		if in {
			retVal++
		}
	}
	return retVal
}

// Attacker returns the colour on the outside of the position: White if any
// white stone touches an outside cell or the board edge, otherwise Black.
func (b *Board) Attacker() game.Player {
	if b.touchesOutside(White) {
		return WhiteP
	}
	return BlackP
}

// Defender is the opponent of the attacker.
func (b *Board) Defender() game.Player { return game.Opponent(b.Attacker()) }

func (b *Board) touchesOutside(c game.Colour) bool {
	for i, v := range b.data {
		if v != c {
			continue
		}
		coord := b.itol(game.Single(i))
		for _, a := range b.adjacentsCoord(coord) {
			if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
				return true
			}
		}
	}
	return false
}

// Apply returns the board after the move, or an error if the move is
// illegal. The receiver is unchanged.
//
// A pass is always legal. A placement must be by the side to move, on an
// empty in-bounds cell, must not be suicide (captures are removed first)
// and must not recreate any earlier layout of this line of play.
func (b *Board) Apply(m game.PlayerMove) (*Board, error) {
	if !game.IsValid(m.Player) {
		return nil, errors.WithMessage(moveError(m), "impossible player")
	}
	if m.Player != b.toMove {
		return nil, errors.WithMessage(moveError(m), "not this player's turn")
	}

	if m.IsPass() {
		retVal := b.Clone()
		retVal.passes++
		retVal.moveNum++
		retVal.lastMove = m
		retVal.toMove = game.Opponent(m.Player)
		return retVal, nil
	}

	if int32(m.Single) >= b.rows*b.cols || m.Single < 0 {
		return nil, errors.WithMessage(moveError(m), "impossible move")
	}
	if !b.bounds[m.Single] {
		return nil, errors.WithMessage(moveError(m), "outside the playable region")
	}
	if b.data[m.Single] != None {
		return nil, errors.WithMessage(moveError(m), "board location not empty")
	}

	captures, err := b.check(m)
	if err != nil {
		return nil, err
	}

	retVal := b.Clone()
	retVal.data[m.Single] = game.Colour(m.Player)
	retVal.zobrist.update(m)
	for _, prisoner := range captures {
		retVal.data[prisoner] = None
		retVal.zobrist.update(game.PlayerMove{Player: game.Opponent(m.Player), Single: prisoner}) // xoring the original colour
	}

	// positional superko: the new layout must not repeat any layout this
	// line of play has seen
	for _, h := range b.historical {
		if h.hash != retVal.hash {
			continue
		}
		if sameLayout(h.layout, retVal.data) {
			return nil, errors.WithMessage(moveError(m), "positional superko")
		}
	}
	if b.hash == retVal.hash && sameLayout(b.data, retVal.data) {
		return nil, errors.WithMessage(moveError(m), "positional superko")
	}

	parent := make([]game.Colour, len(b.data))
	copy(parent, b.data)
	hist := make([]historicalBoard, len(b.historical), len(b.historical)+1)
	copy(hist, b.historical)
	retVal.historical = append(hist, historicalBoard{hash: b.hash, layout: parent})

	retVal.passes = 0
	retVal.moveNum++
	retVal.lastMove = m
	retVal.toMove = game.Opponent(m.Player)
	return retVal, nil
}

// Check reports whether a move would be accepted by Apply.
func (b *Board) Check(m game.PlayerMove) bool {
	_, err := b.Apply(m)
	return err == nil
}

// check finds the captures (if any) if the move is valid. If the move is
// a suicide an error is returned.
func (b *Board) check(m game.PlayerMove) (captures []game.Single, err error) {
	c := b.itol(m.Single)
	opp := game.Colour(game.Opponent(m.Player))

	for _, a := range b.adjacentsCoord(c) {
		if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
			continue
		}
		if b.it[a.X][a.Y] != opp {
			continue
		}
		already := false
		for _, cap := range captures {
			if cap == b.ltoi(a) {
				already = true
				break
			}
		}
		if already {
			continue
		}
		// opponent group whose sole liberty is the move point dies
		stones, libs := b.groupAt(b.ltoi(a))
		if len(libs) == 1 && libs[0] == m.Single {
			captures = append(captures, stones...)
		}
	}
	if len(captures) > 0 {
		return captures, nil
	}

	// no captures: the merged own group must keep a liberty
	if b.suicide(m) {
		return nil, errors.WithMessage(moveError(m), "suicide is not a valid option")
	}
	return nil, nil
}

// suicide reports whether placing m leaves the mover's merged group with no
// liberties. Callers must have ruled out captures first.
func (b *Board) suicide(m game.PlayerMove) bool {
	own := game.Colour(m.Player)
	seen := make([]bool, len(b.data))
	seen[m.Single] = true
	queue := []game.Single{m.Single}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, a := range b.adjacentsCoord(b.itol(s)) {
			if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
				continue
			}
			ai := b.ltoi(a)
			if seen[ai] {
				continue
			}
			switch b.data[ai] {
			case None:
				return false
			case own:
				seen[ai] = true
				queue = append(queue, ai)
			}
		}
	}
	return true
}

// groupAt returns the stones and liberties of the group containing s.
func (b *Board) groupAt(s game.Single) (stones, liberties []game.Single) {
	colour := b.data[s]
	if colour == None {
		return nil, nil
	}
	seen := make([]bool, len(b.data))
	seen[s] = true
	stones = append(stones, s)
	libSeen := make([]bool, len(b.data))
	for i := 0; i < len(stones); i++ {
		for _, a := range b.adjacentsCoord(b.itol(stones[i])) {
			if !b.isCoordValid(a) || !b.bounds[b.ltoi(a)] {
				continue
			}
			ai := b.ltoi(a)
			switch b.data[ai] {
			case None:
				if !libSeen[ai] {
					libSeen[ai] = true
					liberties = append(liberties, ai)
				}
			case colour:
				if !seen[ai] {
					seen[ai] = true
					stones = append(stones, ai)
				}
			}
		}
	}
	return stones, liberties
}

// ltoi takes a coordinate and returns a single
func (b *Board) ltoi(c game.Coord) game.Single { return game.Single(int32(c.X)*b.cols + int32(c.Y)) }

// itol takes a single and returns a coordinate
func (b *Board) itol(s game.Single) game.Coord {
	return game.Coord{X: int16(int32(s) / b.cols), Y: int16(int32(s) % b.cols)}
}

// adjacentsCoord returns the adjacent positions given a coord
func (b *Board) adjacentsCoord(c game.Coord) (retVal [4]game.Coord) {
	for i := range retVal {
		retVal[i] = c.Add(adjacents[i])
	}
	return retVal
}

func (b *Board) isCoordValid(c game.Coord) bool {
	x, y := int32(c.X), int32(c.Y)
	if x >= b.rows || x < 0 {
		return false
	}
	if y >= b.cols || y < 0 {
		return false
	}
	return true
}

func sameLayout(a, b []game.Colour) bool {
	for i, c := range a {
		if c != b[i] {
			return false
		}
	}
	return true
}

var adjacents = [4]game.Coord{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}
