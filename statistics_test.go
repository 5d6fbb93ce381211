package tsumego

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Accounting(t *testing.T) {
	s := makeStatistics()
	assert.True(t, math32.IsNaN(s.AcceptanceRate()), "no attempts yet")

	s.attempt()
	s.reject("trivial")
	s.attempt()
	s.reject("trivial")
	s.attempt()
	s.reject("too hard")
	s.attempt()
	s.accept(1000)

	assert.Equal(t, 4, s.Attempts)
	assert.Equal(t, 1, s.Accepted)
	assert.Equal(t, 2, s.Rejections["trivial"])
	assert.Equal(t, 1, s.Rejections["too hard"])
	assert.InDelta(t, 0.25, float64(s.AcceptanceRate()), 1e-6)
}

func TestStatistics_CostSummary(t *testing.T) {
	s := makeStatistics()
	mean, stddev := s.CostSummary()
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, stddev)

	s.accept(10)
	s.accept(20)
	s.accept(30)
	mean, stddev = s.CostSummary()
	assert.InDelta(t, 20.0, mean, 1e-9)
	assert.InDelta(t, 10.0, stddev, 1e-9)
}

func TestStatistics_Clone(t *testing.T) {
	s := makeStatistics()
	s.attempt()
	s.reject("trivial")

	c := s.clone()
	c.Rejections["trivial"] = 99
	c.Costs = append(c.Costs, 1)
	assert.Equal(t, 1, s.Rejections["trivial"])
	assert.Len(t, s.Costs, 0)
}

func TestStatistics_Dump(t *testing.T) {
	s := makeStatistics()
	s.attempt()
	s.reject("too easy")
	s.attempt()
	s.accept(500)

	path := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, s.Dump(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.True(t, strings.Contains(out, "key,value"), out)
	assert.True(t, strings.Contains(out, "rejected: too easy,1"), out)
	assert.True(t, strings.Contains(out, "attempts,2"), out)
	assert.True(t, strings.Contains(out, "accepted,1"), out)
	assert.True(t, strings.Contains(out, "mean cost,500.0"), out)
}
