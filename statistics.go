package tsumego

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/stat"
)

// Statistics records one generation session: how many candidates were
// drawn, why the rejects were rejected, and what the accepted proofs cost.
type Statistics struct {
	Attempts   int
	Accepted   int
	Rejections map[string]int
	Costs      []float64 // proof cost in nodes, one per accepted puzzle
}

func makeStatistics() Statistics {
	return Statistics{
		Rejections: make(map[string]int),
		Costs:      make([]float64, 0, 64),
	}
}

func (s *Statistics) attempt() { s.Attempts++ }

func (s *Statistics) reject(reason string) { s.Rejections[reason]++ }

func (s *Statistics) accept(nodes int64) {
	s.Accepted++
	s.Costs = append(s.Costs, float64(nodes))
}

func (s Statistics) clone() Statistics {
	retVal := Statistics{
		Attempts:   s.Attempts,
		Accepted:   s.Accepted,
		Rejections: make(map[string]int, len(s.Rejections)),
		Costs:      make([]float64, len(s.Costs)),
	}
	for k, v := range s.Rejections {
		retVal.Rejections[k] = v
	}
	copy(retVal.Costs, s.Costs)
	return retVal
}

// AcceptanceRate is the fraction of attempts that became puzzles.
func (s Statistics) AcceptanceRate() float32 {
	if s.Attempts == 0 {
		return math32.NaN()
	}
	return float32(s.Accepted) / float32(s.Attempts)
}

// CostSummary returns the mean and standard deviation of the accepted
// proof costs.
func (s Statistics) CostSummary() (mean, stddev float64) {
	if len(s.Costs) == 0 {
		return 0, 0
	}
	return stat.MeanStdDev(s.Costs, nil)
}

// Dump writes the session as CSV: one row per rejection reason, then the
// totals.
func (s Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"key", "value"}); err != nil {
		return err
	}

	reasons := make([]string, 0, len(s.Rejections))
	for k := range s.Rejections {
		reasons = append(reasons, k)
	}
	sort.Strings(reasons)

	var records [][]string
	for _, k := range reasons {
		records = append(records, []string{"rejected: " + k, strconv.Itoa(s.Rejections[k])})
	}
	mean, stddev := s.CostSummary()
	records = append(records,
		[]string{"attempts", strconv.Itoa(s.Attempts)},
		[]string{"accepted", strconv.Itoa(s.Accepted)},
		[]string{"acceptance rate", strconv.FormatFloat(float64(s.AcceptanceRate()), 'f', 3, 32)},
		[]string{"mean cost", strconv.FormatFloat(mean, 'f', 1, 64)},
		[]string{"stddev cost", strconv.FormatFloat(stddev, 'f', 1, 64)},
	)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
