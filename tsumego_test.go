package tsumego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorgonia/tsumego/game/wq"
	"github.com/gorgonia/tsumego/search"
)

const straightThree = `
	# # # # # # # # #
	# . O . O O O O #
	# O O O O O O O #
	# O X X X X X O #
	# O X . . . X O #
	# O X X X X X O #
	# # # # # # # # #`

func TestNewPuzzle_Roles(t *testing.T) {
	b, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)

	p := NewPuzzle(b)
	assert.Equal(t, wq.WhiteP, p.Attacker)
	assert.Equal(t, wq.BlackP, p.Defender)
}

func TestPuzzle_WithFirstPlayer(t *testing.T) {
	b, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)

	p := NewPuzzle(b)
	p2, err := p.WithFirstPlayer(p.Attacker)
	require.NoError(t, err)
	assert.Equal(t, wq.WhiteP, p2.Board.ToMove())
	assert.Equal(t, p.Attacker, p2.Attacker)
	assert.Equal(t, p.Defender, p2.Defender)
	// the original is untouched
	assert.Equal(t, wq.BlackP, p.Board.ToMove())
}

// serializing a puzzle and solving the decoded copy reproduces the status
func TestPuzzle_SGFRoundTripSolve(t *testing.T) {
	b, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)
	p := NewPuzzle(b)

	conf := search.DefaultConfig()
	r1, err := p.Solve(conf)
	require.NoError(t, err)
	assert.Equal(t, search.BlackAlive, r1.Status)

	p2, comment, err := FromSGF(p.SGF("black to live"))
	require.NoError(t, err)
	assert.Equal(t, "black to live", comment)
	assert.True(t, p.Board.Eq(p2.Board))
	assert.Equal(t, p.Attacker, p2.Attacker)

	r2, err := p2.Solve(conf)
	require.NoError(t, err)
	assert.Equal(t, r1.Status, r2.Status)
	assert.Equal(t, r1.Bound, r2.Bound)
}
