// Package search implements the life and death solver: an
// iterative-deepening alpha-beta search over bounded board positions, with
// the static classifier cutting off every line it can judge and a shared
// transposition table memoising the rest.
package search

import (
	"sync"
	"sync/atomic"

	"github.com/gorgonia/tsumego/game"
	"github.com/gorgonia/tsumego/game/wq"
	"github.com/pkg/errors"
)

// negamax ordinals from the side to move. Seki sits between a loss and a
// win so both players prefer it to losing and avoid it when they can win.
const (
	scoreWin  int8 = 2
	scoreSeki int8 = 0
	scoreLoss int8 = -2
)

// Config is the structure to configure a Solver.
type Config struct {
	// MaxDepth caps the deepening. 0 derives a cap from the region size.
	MaxDepth int
	// MaxNodes is the node budget, checked between deepening iterations.
	MaxNodes int64
	// Workers is the number of goroutines splitting the root moves.
	Workers int

	TableSize    uint64 // transposition table slots, rounded up to 2^n
	TableBuckets int
}

func DefaultConfig() Config {
	return Config{
		MaxNodes:     1 << 20,
		Workers:      1,
		TableSize:    1 << 16,
		TableBuckets: 4,
	}
}

func (c Config) IsValid() bool {
	return c.MaxDepth >= 0 && c.MaxNodes > 0 && c.Workers >= 1 &&
		c.TableSize > 0 && c.TableBuckets > 0
}

// Solver solves life and death positions. A Solver may be reused; each
// Solve starts from a cleared table.
type Solver struct {
	conf Config
	tt   *TranspositionTable

	defender game.Player
	attacker game.Player
	nodes    atomic.Int64

	lumberjack
}

func New(conf Config) (*Solver, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid search config %+v", conf)
	}
	return &Solver{
		conf:       conf,
		tt:         NewTranspositionTable(conf.TableSize, conf.TableBuckets),
		lumberjack: makeLumberJack(),
	}, nil
}

// Table exposes the transposition table, mostly for inspection in tests.
func (s *Solver) Table() *TranspositionTable { return s.tt }

// Solve searches the position and reports the life status of the defender's
// stones. If the position classifies statically no search is done and Nodes
// is 0. Otherwise the solver deepens until it proves a result, exhausts the
// depth cap, or overruns the node budget; in the last two cases Status is
// Unknown and Bound qualifies the best partial answer.
func (s *Solver) Solve(b *wq.Board) SearchResult {
	s.defender = b.Defender()
	s.attacker = b.Attacker()
	s.nodes.Store(0)
	s.tt.Clear()

	if v := b.Classify(s.defender); v != wq.Undetermined {
		retVal := SearchResult{Bound: Exact}
		switch v {
		case wq.Alive:
			retVal.Status = statusFor(s.defender)
		case wq.Dead:
			retVal.Status = statusFor(s.attacker)
			retVal.PV = s.completePV(b, nil)
		case wq.Seki:
			retVal.Status = SekiStatus
		}
		if len(retVal.PV) > 0 {
			retVal.Best = retVal.PV[0]
		}
		return retVal
	}

	maxDepth := s.conf.MaxDepth
	if maxDepth == 0 {
		maxDepth = 2*b.Playable() + 4
	}

	var score int8
	var proven bool
	var depth int
	for d := 1; d <= maxDepth; d++ {
		s.tt.NextGeneration()
		if s.conf.Workers > 1 {
			score, proven = s.rootParallel(b, d)
		} else {
			score, proven = s.negamax(b, scoreLoss, scoreWin, 0, d)
		}
		depth = d
		s.log("depth %d: score %d proven %t nodes %d", d, score, proven, s.nodes.Load())
		if proven {
			break
		}
		if s.nodes.Load() >= s.conf.MaxNodes {
			break
		}
	}

	retVal := SearchResult{Depth: depth, Nodes: s.nodes.Load()}
	mover := b.ToMove()
	if proven {
		retVal.Bound = Exact
		switch score {
		case scoreWin:
			retVal.Status = s.goalOf(mover)
		case scoreLoss:
			retVal.Status = s.goalOf(game.Opponent(mover))
		default:
			retVal.Status = SekiStatus
		}
	} else {
		// Exact is reserved for proofs. A depth-limited score only
		// leans one way, so it is reported as the matching bound.
		retVal.Status = Unknown
		retVal.Bound = LowerBound
		if score < scoreSeki {
			retVal.Bound = UpperBound
		}
	}

	retVal.PV = s.principalVariation(b, maxDepth)
	if proven && retVal.Status == statusFor(s.attacker) {
		retVal.PV = s.completePV(b, retVal.PV)
	}
	if len(retVal.PV) > 0 {
		retVal.Best = retVal.PV[0]
	}
	return retVal
}

// goalOf maps a winning player to the resulting status: the defender wins
// by living, the attacker by killing.
func (s *Solver) goalOf(p game.Player) Status {
	if p == s.defender {
		return statusFor(s.defender)
	}
	return statusFor(s.attacker)
}

func (s *Solver) scoreFor(mover, winner game.Player) int8 {
	if mover == winner {
		return scoreWin
	}
	return scoreLoss
}

// negamax returns the score of the position from the side to move and
// whether that score is a proof rather than a depth-limited estimate.
//
// A score is proven when the winning line ends in a proven child, or when
// the whole subtree was resolved without a cutoff and every child was
// proven. A fail-high below a win stays unproven: the cut may hide a
// better defence.
func (s *Solver) negamax(b *wq.Board, alpha, beta int8, depth, maxDepth int) (int8, bool) {
	s.nodes.Add(1)
	mover := b.ToMove()

	if b.Passes() >= 2 {
		switch b.Classify(s.defender) {
		case wq.Alive:
			return s.scoreFor(mover, s.defender), true
		case wq.Dead:
			return s.scoreFor(mover, s.attacker), true
		case wq.Seki:
			return scoreSeki, true
		default:
			// unsettled double pass: the second passer gave up the game
			return scoreWin, true
		}
	}

	if depth > 0 {
		switch b.Classify(s.defender) {
		case wq.Alive:
			return s.scoreFor(mover, s.defender), true
		case wq.Dead:
			return s.scoreFor(mover, s.attacker), true
		case wq.Seki:
			return scoreSeki, true
		}
	}

	if depth >= maxDepth {
		return scoreSeki, false
	}

	key := b.Key()
	alphaOrig := alpha
	var ttBest game.Single
	hasTTBest := false
	if entry, ok := s.tt.Probe(key); ok {
		if entry.HasBest {
			ttBest, hasTTBest = entry.Best, true
		}
		if entry.Proven || int(entry.Depth) >= maxDepth-depth {
			switch entry.Flag {
			case Exact:
				return entry.Score, entry.Proven
			case LowerBound:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case UpperBound:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				return entry.Score, entry.Proven
			}
		}
	}

	moves := b.LegalMoves()
	if hasTTBest {
		moves = moveToFront(moves, ttBest)
	}

	best := scoreLoss - 1 // below any reachable score
	var bestMove game.PlayerMove
	bestProven := false
	allProven := true
	cutoff := false

	for _, m := range moves {
		child, err := b.Apply(m)
		if err != nil {
			continue
		}
		sc, pr := s.negamax(child, -beta, -alpha, depth+1, maxDepth)
		sc = -sc
		if !pr {
			allProven = false
		}
		if sc > best {
			best, bestMove, bestProven = sc, m, pr
		}
		if sc > alpha {
			alpha = sc
		}
		if alpha >= beta {
			cutoff = true
			break
		}
	}

	proven := (best == scoreWin && bestProven) || (!cutoff && allProven)

	var flag Bound
	switch {
	case best <= alphaOrig:
		flag = UpperBound
	case best >= beta:
		flag = LowerBound
	default:
		flag = Exact
	}
	s.tt.Store(key, best, clampDepth(maxDepth-depth), flag, proven, bestMove.Single, !bestMove.IsPass())
	return best, proven
}

func clampDepth(d int) int8 {
	if d >= int(provenDepth) {
		return provenDepth - 1
	}
	return int8(d)
}

// rootParallel splits the root moves over Workers goroutines. The workers
// share the transposition table and a monotone alpha; the first proven win
// stops the rest.
func (s *Solver) rootParallel(b *wq.Board, maxDepth int) (int8, bool) {
	moves := b.LegalMoves()
	if entry, ok := s.tt.Probe(b.Key()); ok && entry.HasBest {
		moves = moveToFront(moves, entry.Best)
	}

	var (
		mu         sync.Mutex
		best       = scoreLoss - 1
		bestMove   game.PlayerMove
		bestProven bool
		allProven  = true
		alpha      atomic.Int32
		stop       atomic.Bool
	)
	alpha.Store(int32(scoreLoss))

	ch := make(chan game.PlayerMove)
	var wg sync.WaitGroup
	for i := 0; i < s.conf.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range ch {
				if stop.Load() {
					mu.Lock()
					allProven = false
					mu.Unlock()
					continue
				}
				child, err := b.Apply(m)
				if err != nil {
					continue
				}
				a := int8(alpha.Load())
				sc, pr := s.negamax(child, -scoreWin, -a, 1, maxDepth)
				sc = -sc

				mu.Lock()
				if !pr {
					allProven = false
				}
				if sc > best {
					best, bestMove, bestProven = sc, m, pr
				}
				if sc == scoreWin && pr {
					stop.Store(true)
				}
				mu.Unlock()
				for {
					cur := alpha.Load()
					if int32(sc) <= cur || alpha.CompareAndSwap(cur, int32(sc)) {
						break
					}
				}
			}
		}()
	}
	for _, m := range moves {
		ch <- m
	}
	close(ch)
	wg.Wait()

	proven := (best == scoreWin && bestProven) || allProven
	s.tt.Store(b.Key(), best, clampDepth(maxDepth), boundAtRoot(best), proven, bestMove.Single, !bestMove.IsPass())
	return best, proven
}

func boundAtRoot(score int8) Bound {
	switch score {
	case scoreWin:
		return LowerBound
	case scoreLoss:
		return UpperBound
	}
	return Exact
}

// principalVariation walks the table's best moves from the root.
func (s *Solver) principalVariation(b *wq.Board, limit int) []game.PlayerMove {
	var retVal []game.PlayerMove
	cur := b
	for i := 0; i < limit; i++ {
		entry, ok := s.tt.Probe(cur.Key())
		if !ok || !entry.HasBest {
			break
		}
		m := game.PlayerMove{Player: cur.ToMove(), Single: entry.Best}
		child, err := cur.Apply(m)
		if err != nil {
			break
		}
		retVal = append(retVal, m)
		cur = child
	}
	return retVal
}

// completePV plays out a proven kill so the line ends with the capture
// instead of stopping where the classifier judged the group dead: the
// defender passes, the attacker takes the biggest capture or fills the
// hottest liberty.
func (s *Solver) completePV(b *wq.Board, pv []game.PlayerMove) []game.PlayerMove {
	cur := b
	for _, m := range pv {
		child, err := cur.Apply(m)
		if err != nil {
			return pv
		}
		cur = child
	}
	limit := 2*cur.Playable() + 4
	for i := 0; i < limit; i++ {
		if !hasStones(cur, game.Colour(s.defender)) {
			break
		}
		var m game.PlayerMove
		if cur.ToMove() == s.defender {
			m = game.Pass(s.defender)
		} else {
			m = s.biggestCapture(cur)
			if m.IsPass() {
				break
			}
		}
		child, err := cur.Apply(m)
		if err != nil {
			break
		}
		pv = append(pv, m)
		cur = child
	}
	return pv
}

// biggestCapture returns the attacker move taking the most defender
// stones, falling back to the best-ordered quiet move.
func (s *Solver) biggestCapture(b *wq.Board) game.PlayerMove {
	moves := b.LegalMoves()
	def := game.Colour(s.defender)
	before := countStones(b, def)

	bestN := 0
	best := game.Pass(b.ToMove())
	for _, m := range moves {
		if m.IsPass() {
			continue
		}
		child, err := b.Apply(m)
		if err != nil {
			continue
		}
		if n := before - countStones(child, def); n > bestN {
			bestN, best = n, m
		}
	}
	if bestN > 0 {
		return best
	}
	for _, m := range moves {
		if !m.IsPass() {
			return m
		}
	}
	return game.Pass(b.ToMove())
}

func hasStones(b *wq.Board, c game.Colour) bool {
	for _, v := range b.Stones() {
		if v == c {
			return true
		}
	}
	return false
}

func countStones(b *wq.Board, c game.Colour) int {
	var n int
	for _, v := range b.Stones() {
		if v == c {
			n++
		}
	}
	return n
}

func moveToFront(moves []game.PlayerMove, best game.Single) []game.PlayerMove {
	for i, m := range moves {
		if m.Single == best && !m.IsPass() {
			copy(moves[1:i+1], moves[:i])
			moves[0] = game.PlayerMove{Player: m.Player, Single: best}
			return moves
		}
	}
	return moves
}
