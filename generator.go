package tsumego

import (
	"time"

	rng "github.com/leesper/go_rng"
	"github.com/pkg/errors"

	"github.com/gorgonia/tsumego/game"
	"github.com/gorgonia/tsumego/game/wq"
	"github.com/gorgonia/tsumego/search"
)

// GeneratorConfig is the structure to configure a Generator.
type GeneratorConfig struct {
	Rows, Cols int // grid size. the playable region is carved out of it

	// MinWalk and MaxWalk bound the random walk that carves out the
	// playable area.
	MinWalk, MaxWalk int
	// FillProb is the chance of a random stone on each interior cell.
	FillProb float64

	Solver search.Config

	// MinNodes and MaxNodes bound the accepted proof cost. Candidates
	// cheaper than MinNodes are throwaways; the solver budget itself
	// rejects the ones beyond MaxNodes.
	MinNodes, MaxNodes int64
	MaxAttempts        int

	Seed int64 // 0 seeds from the clock
}

func DefaultGeneratorConfig() GeneratorConfig {
	conf := GeneratorConfig{
		Rows:        9,
		Cols:        9,
		MinWalk:     6,
		MaxWalk:     14,
		FillProb:    0.5,
		Solver:      search.DefaultConfig(),
		MinNodes:    50,
		MaxNodes:    200000,
		MaxAttempts: 5000,
	}
	conf.Solver.MaxNodes = conf.MaxNodes
	return conf
}

func (c GeneratorConfig) IsValid() bool {
	return c.Rows >= 7 && c.Cols >= 7 &&
		c.MinWalk >= 2 && c.MaxWalk >= c.MinWalk &&
		c.FillProb > 0 && c.FillProb < 1 &&
		c.MinNodes >= 0 && c.MaxNodes > c.MinNodes &&
		c.MaxAttempts > 0 &&
		c.Solver.IsValid()
}

// Generator proposes random walled-off positions and keeps the ones the
// solver can prove for both first players at a reasonable cost.
type Generator struct {
	conf   GeneratorConfig
	rnd    *rng.UniformGenerator
	solver *search.Solver
	stats  Statistics
}

func NewGenerator(conf GeneratorConfig) (*Generator, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid generator config %+v", conf)
	}
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	solver, err := search.New(conf.Solver)
	if err != nil {
		return nil, err
	}
	return &Generator{
		conf:   conf,
		rnd:    rng.NewUniformGenerator(seed),
		solver: solver,
		stats:  makeStatistics(),
	}, nil
}

// Statistics returns a snapshot of the session statistics.
func (g *Generator) Statistics() Statistics { return g.stats.clone() }

// Generate draws candidates until one validates or MaxAttempts runs out.
// The returned puzzle has the defender to move; the result is its solve.
func (g *Generator) Generate() (Puzzle, search.SearchResult, error) {
	for i := 0; i < g.conf.MaxAttempts; i++ {
		g.stats.attempt()
		b, err := g.Candidate()
		if err != nil {
			g.stats.reject("setup")
			continue
		}
		p, res, reason := g.validate(b)
		if reason != "" {
			g.stats.reject(reason)
			continue
		}
		g.stats.accept(res.Nodes)
		return p, res, nil
	}
	return Puzzle{}, search.SearchResult{}, errors.Errorf("no puzzle found in %d attempts", g.conf.MaxAttempts)
}

// Candidate builds one random position: a random walk carves the playable
// area, the surrounding ring becomes attacker stones, and the interior is
// sprinkled with stones of both colours. Candidates may still be invalid
// setups; Generate treats that as a rejection.
func (g *Generator) Candidate() (*wq.Board, error) {
	rows, cols := g.conf.Rows, g.conf.Cols

	// the walk stays two cells off the edge so the attacker ring fits
	// inside the grid
	area := make([]bool, rows*cols)
	r, c := rows/2, cols/2
	area[r*cols+c] = true
	steps := g.conf.MinWalk + int(g.rnd.Int32n(int32(g.conf.MaxWalk-g.conf.MinWalk+1)))
	for i := 0; i < steps; i++ {
		nr, nc := r, c
		switch g.rnd.Int32n(4) {
		case 0:
			nr++
		case 1:
			nr--
		case 2:
			nc++
		case 3:
			nc--
		}
		if nr < 2 || nr >= rows-2 || nc < 2 || nc >= cols-2 {
			continue
		}
		r, c = nr, nc
		area[r*cols+c] = true
	}

	// the boundary ring is every 8-neighbour of the area
	bounds := make([]bool, rows*cols)
	ring := make([]bool, rows*cols)
	copy(bounds, area)
	for i := range area {
		if !area[i] {
			continue
		}
		ar, ac := i/cols, i%cols
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				nr, nc := ar+dr, ac+dc
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				j := nr*cols + nc
				if !area[j] {
					bounds[j] = true
					ring[j] = true
				}
			}
		}
	}

	attacker := game.Black
	if g.rnd.Int32n(2) == 0 {
		attacker = game.White
	}
	defender := game.White
	if attacker == game.White {
		defender = game.Black
	}

	stones := make([]game.Colour, rows*cols)
	var defenderStones int
	var interior []int
	for i := range stones {
		switch {
		case ring[i]:
			stones[i] = attacker
		case area[i]:
			interior = append(interior, i)
			if g.rnd.Float64() >= g.conf.FillProb {
				continue
			}
			if g.rnd.Int32n(2) == 0 {
				stones[i] = attacker
			} else {
				stones[i] = defender
				defenderStones++
			}
		}
	}
	if defenderStones == 0 {
		// a problem needs something to kill
		i := interior[int(g.rnd.Int32n(int32(len(interior))))]
		stones[i] = defender
	}

	return wq.NewBoard(rows, cols, bounds, stones, game.Player(defender))
}

// validate accepts a candidate when it does not classify statically, both
// first players solve to a proof, and the combined proof cost lands in the
// configured band. An empty reason means accepted.
func (g *Generator) validate(b *wq.Board) (Puzzle, search.SearchResult, string) {
	p := NewPuzzle(b)
	if !hasColour(b, game.Colour(p.Defender)) {
		return Puzzle{}, search.SearchResult{}, "no defender"
	}
	if b.Settled() {
		return Puzzle{}, search.SearchResult{}, "trivial"
	}

	resDef := g.solver.Solve(b)
	if resDef.Status == search.Unknown {
		return Puzzle{}, search.SearchResult{}, "unsolved"
	}

	atkFirst, err := p.WithFirstPlayer(p.Attacker)
	if err != nil {
		return Puzzle{}, search.SearchResult{}, "setup"
	}
	resAtk := g.solver.Solve(atkFirst.Board)
	if resAtk.Status == search.Unknown {
		return Puzzle{}, search.SearchResult{}, "unsolved"
	}

	cost := resDef.Nodes + resAtk.Nodes
	if cost < g.conf.MinNodes {
		return Puzzle{}, search.SearchResult{}, "too easy"
	}
	if cost > g.conf.MaxNodes {
		return Puzzle{}, search.SearchResult{}, "too hard"
	}
	return p, resDef, ""
}

func hasColour(b *wq.Board, c game.Colour) bool {
	for _, v := range b.Stones() {
		if v == c {
			return true
		}
	}
	return false
}
