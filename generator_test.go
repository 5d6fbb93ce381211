package tsumego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorgonia/tsumego/game"
	"github.com/gorgonia/tsumego/game/wq"
	"github.com/gorgonia/tsumego/search"
)

func TestGeneratorConfig_IsValid(t *testing.T) {
	assert.True(t, DefaultGeneratorConfig().IsValid())
	assert.False(t, GeneratorConfig{}.IsValid())

	conf := DefaultGeneratorConfig()
	conf.MaxWalk = conf.MinWalk - 1
	assert.False(t, conf.IsValid())

	conf = DefaultGeneratorConfig()
	conf.Rows = 5
	assert.False(t, conf.IsValid())
}

func TestGenerator_Candidate(t *testing.T) {
	conf := DefaultGeneratorConfig()
	conf.Seed = 42
	g, err := NewGenerator(conf)
	require.NoError(t, err)

	var built int
	for i := 0; i < 25; i++ {
		b, err := g.Candidate()
		if err != nil {
			// random sprinkles can produce stones without liberties
			continue
		}
		built++

		rows, cols := b.BoardSize()
		assert.Equal(t, conf.Rows, rows)
		assert.Equal(t, conf.Cols, cols)
		assert.True(t, b.Playable() > 0)
		assert.Equal(t, b.Defender(), b.ToMove(), "the defender moves first")

		// every playable cell on the outer rim of the region holds an
		// attacker stone
		atk := game.Colour(b.Attacker())
		bounds, stones := b.Bounds(), b.Stones()
		for i := range bounds {
			if !bounds[i] {
				continue
			}
			r, c := i/cols, i%cols
			rim := r == 0 || r == rows-1 || c == 0 || c == cols-1 ||
				!bounds[i-cols] || !bounds[i+cols] || !bounds[i-1] || !bounds[i+1]
			if rim {
				assert.Equal(t, atk, stones[i], "cell %d is on the rim", i)
			}
		}
	}
	require.True(t, built > 0, "no candidate survived setup validation")
}

func TestGenerator_Generate(t *testing.T) {
	conf := DefaultGeneratorConfig()
	conf.Seed = 3
	conf.MinNodes = 0

	g, err := NewGenerator(conf)
	require.NoError(t, err)

	p, res, err := g.Generate()
	require.NoError(t, err)
	require.NotEqual(t, search.Unknown, res.Status)
	assert.Equal(t, search.Exact, res.Bound)
	assert.Equal(t, p.Defender, p.Board.ToMove())

	stats := g.Statistics()
	assert.Equal(t, 1, stats.Accepted)

	// the accepted puzzle survives serialization with its status intact
	p2, _, err := FromSGF(p.SGF("generated"))
	require.NoError(t, err)
	assert.True(t, p.Board.Eq(p2.Board))

	s, err := search.New(conf.Solver)
	require.NoError(t, err)
	res2 := s.Solve(p2.Board)
	assert.Equal(t, res.Status, res2.Status)
	assert.Equal(t, search.Exact, res2.Bound)
}

func TestGenerator_Exhaustion(t *testing.T) {
	conf := DefaultGeneratorConfig()
	conf.Seed = 7
	conf.MaxAttempts = 3
	// a cost band nothing can land in
	conf.MinNodes = 1 << 40
	conf.MaxNodes = 1 << 41

	g, err := NewGenerator(conf)
	require.NoError(t, err)

	_, _, err = g.Generate()
	assert.Error(t, err)

	stats := g.Statistics()
	assert.Equal(t, 3, stats.Attempts)
	assert.Equal(t, 0, stats.Accepted)
	var rejections int
	for _, n := range stats.Rejections {
		rejections += n
	}
	assert.Equal(t, 3, rejections)
}

func TestGenerator_StatisticsSnapshot(t *testing.T) {
	conf := DefaultGeneratorConfig()
	conf.Seed = 7
	g, err := NewGenerator(conf)
	require.NoError(t, err)

	s1 := g.Statistics()
	s1.Rejections["bogus"] = 99
	s2 := g.Statistics()
	_, ok := s2.Rejections["bogus"]
	assert.False(t, ok, "Statistics must return an independent copy")
}

func TestValidate_NoDefender(t *testing.T) {
	b, err := wq.FromString(`
		# # # # #
		# O O O #
		# O . O #
		# O O O #
		# # # # #`, wq.BlackP)
	require.NoError(t, err)

	g, err := NewGenerator(DefaultGeneratorConfig())
	require.NoError(t, err)
	_, _, reason := g.validate(b)
	assert.Equal(t, "no defender", reason)
}

// a candidate the budget cannot settle is rejected, not accepted on the
// strength of its depth-limited score
func TestValidate_Unsolved(t *testing.T) {
	b, err := wq.FromString(straightThree, wq.BlackP)
	require.NoError(t, err)

	conf := DefaultGeneratorConfig()
	conf.Solver.MaxNodes = 1
	g, err := NewGenerator(conf)
	require.NoError(t, err)

	_, _, reason := g.validate(b)
	assert.Equal(t, "unsolved", reason)
}

func TestValidate_Trivial(t *testing.T) {
	// statically dead: nothing to solve
	b, err := wq.FromString(`
		# # # # #
		# . O O #
		# O O X #
		# O O . #
		# # # # #`, wq.BlackP)
	require.NoError(t, err)

	g, err := NewGenerator(DefaultGeneratorConfig())
	require.NoError(t, err)
	_, _, reason := g.validate(b)
	assert.Equal(t, "trivial", reason)
}
