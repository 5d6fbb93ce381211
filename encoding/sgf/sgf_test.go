package sgf

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorgonia/tsumego/game"
	"github.com/gorgonia/tsumego/game/wq"
)

func TestRoundTrip(t *testing.T) {
	b, err := wq.FromString(`
		# # # # #
		# . O . #
		# O X O #
		# . X . #
		# # # # #`, wq.WhiteP)
	require.NoError(t, err)

	comment := `black to live [hard\mode]`
	s := Encode(b, comment)
	assert.True(t, strings.Contains(s, "SZ[5]"), s)
	assert.True(t, strings.Contains(s, "PL[W]"), s)

	b2, c2, err := Decode(s)
	require.NoError(t, err)
	assert.True(t, b.Eq(b2), "decoded board differs:\n%s\nvs\n%s", b, b2)
	assert.Equal(t, comment, c2)

	if diff := cmp.Diff(b.Stones(), b2.Stones()); diff != "" {
		t.Errorf("stones differ: %s", diff)
	}
	if diff := cmp.Diff(b.Bounds(), b2.Bounds()); diff != "" {
		t.Errorf("bounds differ: %s", diff)
	}
}

func TestRoundTrip_Rectangular(t *testing.T) {
	b, err := wq.FromString(`
		# # # # # #
		# . X O . #
		# . X O . #
		# # # # # #`, wq.BlackP)
	require.NoError(t, err)

	s := Encode(b, "")
	assert.True(t, strings.Contains(s, "SZ[6:4]"), s)

	b2, c2, err := Decode(s)
	require.NoError(t, err)
	assert.True(t, b.Eq(b2))
	assert.Equal(t, "", c2)
}

func TestDecode_CompressedView(t *testing.T) {
	b, _, err := Decode("(;GM[1]FF[4]SZ[4]AB[bb]VW[bb:cc]PL[B])")
	require.NoError(t, err)

	rows, cols := b.BoardSize()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 4, b.Playable())
	assert.True(t, b.InBounds(game.Single(5)))  // {1, 1}
	assert.False(t, b.InBounds(game.Single(0))) // {0, 0}
	assert.Equal(t, game.Black, b.Stones()[5])
	assert.Equal(t, wq.BlackP, b.ToMove())
}

func TestDecode_NoView(t *testing.T) {
	// without VW the whole grid is playable
	b, _, err := Decode("(;SZ[3]AW[aa]PL[W])")
	require.NoError(t, err)
	assert.Equal(t, 9, b.Playable())
	assert.Equal(t, game.White, b.Stones()[0])
	assert.Equal(t, wq.WhiteP, b.ToMove())
}

func TestDecode_UnknownProperties(t *testing.T) {
	_, comment, err := Decode("(;GM[1]FF[4]SZ[3]KM[6.5]AB[bb]C[ok])")
	require.NoError(t, err)
	assert.Equal(t, "ok", comment)
}

func TestDecode_Errors(t *testing.T) {
	for _, s := range []string{
		"",
		"not sgf",
		"(",
		"(;SZ[3]AB[zz])",  // point outside the grid
		"(;SZ[3]AB[b])",   // malformed point
		"(;SZ[3]AB",       // property without value
		"(;SZ[3]C[open",   // unterminated value
		"(;SZ[3]VW[cc:aa])", // inverted rectangle
	} {
		if _, _, err := Decode(s); err == nil {
			t.Errorf("expected an error for %q", s)
		}
	}
}
