package search

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorgonia/tsumego/game"
	"github.com/gorgonia/tsumego/game/wq"
)

// two one-point eyes: alive without any search
const aliveBoard = `
	# # # # # # #
	# . O O O O #
	# O X X X X #
	# X X . X . #
	# # # # # # #`

// a lone black stone in atari: dead without any search
const deadBoard = `
	# # # # #
	# . O O #
	# O O X #
	# O O . #
	# # # # #`

// one eye each and a shared liberty
const sekiBoard = `
	# # # # # # # # # # #
	# . O . O O O O O O #
	# O O O O O O O O O #
	# X X X X X X X X X #
	# X X X O O O X X X #
	# X . X O . O X X X #
	# X X X O O O . X X #
	# X X X X X X X X X #
	# # # # # # # # # # #`

// a straight three space eye behind a two-eyed wall: whoever takes the
// centre decides
const straightThree = `
	# # # # # # # # #
	# . O . O O O O #
	# O O O O O O O #
	# O X X X X X O #
	# O X . . . X O #
	# O X X X X X O #
	# # # # # # # # #`

func newSolver(t *testing.T, conf Config) *Solver {
	t.Helper()
	s, err := New(conf)
	require.NoError(t, err)
	return s
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestSolve_StaticallyAlive(t *testing.T) {
	b, err := wq.FromString(aliveBoard, wq.WhiteP)
	require.NoError(t, err)

	s := newSolver(t, DefaultConfig())
	res := s.Solve(b)
	assert.Equal(t, BlackAlive, res.Status)
	assert.Equal(t, Exact, res.Bound)
	assert.Equal(t, int64(0), res.Nodes)
	assert.Equal(t, 0, res.Depth)
}

func TestSolve_StaticallyDead(t *testing.T) {
	b, err := wq.FromString(deadBoard, wq.BlackP)
	require.NoError(t, err)

	s := newSolver(t, DefaultConfig())
	res := s.Solve(b)
	assert.Equal(t, WhiteAlive, res.Status)
	assert.Equal(t, Exact, res.Bound)
	assert.Equal(t, int64(0), res.Nodes)

	// the line plays out to the capture
	want := []game.PlayerMove{
		game.Pass(wq.BlackP),
		{Player: wq.WhiteP, Single: game.Single(18)},
	}
	assert.Equal(t, want, res.PV)
	assert.Equal(t, want[0], res.Best)
}

func TestSolve_Seki(t *testing.T) {
	b, err := wq.FromString(sekiBoard, wq.BlackP)
	require.NoError(t, err)

	s := newSolver(t, DefaultConfig())
	res := s.Solve(b)
	assert.Equal(t, SekiStatus, res.Status)
	assert.Equal(t, Exact, res.Bound)
	assert.Equal(t, int64(0), res.Nodes)
}

func TestSolve_StraightThree_DefenderFirst(t *testing.T) {
	b, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)

	s := newSolver(t, DefaultConfig())
	res := s.Solve(b)
	assert.Equal(t, BlackAlive, res.Status)
	assert.Equal(t, Exact, res.Bound)
	assert.Equal(t, 1, res.Depth, "the vital point proves life immediately")
	assert.True(t, res.Nodes > 0)

	// {4, 4} is the vital point
	require.NotEmpty(t, res.PV)
	assert.Equal(t, game.Single(40), res.Best.Single)
	assert.Equal(t, wq.BlackP, res.Best.Player)
}

func TestSolve_BudgetExhausted(t *testing.T) {
	b, err := wq.FromString(straightThree, wq.WhiteP)
	require.NoError(t, err)

	conf := DefaultConfig()
	conf.MaxNodes = 1
	s := newSolver(t, conf)
	res := s.Solve(b)
	assert.Equal(t, Unknown, res.Status, "one node cannot prove a kill")
	assert.Equal(t, 1, res.Depth)

	// a depth-limited estimate is never Exact: every depth-1 line here
	// scores an unproven 0, which is at best a lower bound
	assert.Equal(t, LowerBound, res.Bound)
}

func TestNew_NoBackgroundWork(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 8; i++ {
		_, err := New(DefaultConfig())
		require.NoError(t, err)
	}
	assert.Equal(t, before, runtime.NumGoroutine(), "a Solver must not keep goroutines alive")
}

func TestSolve_Deterministic(t *testing.T) {
	conf := DefaultConfig()

	b1, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)
	r1 := newSolver(t, conf).Solve(b1)

	b2, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)
	r2 := newSolver(t, conf).Solve(b2)

	assert.Equal(t, r1.Status, r2.Status)
	assert.Equal(t, r1.Bound, r2.Bound)
	assert.Equal(t, r1.Depth, r2.Depth)
	assert.Equal(t, r1.Nodes, r2.Nodes)
	assert.Equal(t, r1.Best, r2.Best)
}

func TestSolve_Parallel(t *testing.T) {
	conf := DefaultConfig()
	conf.Workers = 4

	b, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)
	res := newSolver(t, conf).Solve(b)
	assert.Equal(t, BlackAlive, res.Status)
	assert.Equal(t, Exact, res.Bound)
	assert.Equal(t, game.Single(40), res.Best.Single)
}

// a solver instance is reusable: a second Solve starts from a clean slate
func TestSolve_Reuse(t *testing.T) {
	s := newSolver(t, DefaultConfig())

	b1, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)
	r1 := s.Solve(b1)

	b2, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)
	r2 := s.Solve(b2)

	assert.Equal(t, r1.Status, r2.Status)
	assert.Equal(t, r1.Nodes, r2.Nodes)
}
