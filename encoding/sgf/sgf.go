// Package sgf persists life and death problems as SGF.
//
// A problem is a single SGF node: SZ carries the grid size, AB/AW the
// setup stones, PL the side to move and VW the playable region. Cells not
// listed in VW are the outside walls of the problem. Encode and Decode
// round-trip losslessly.
package sgf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gorgonia/tsumego/game"
	"github.com/gorgonia/tsumego/game/wq"
	"github.com/pkg/errors"
)

// Encode renders the board as a one-node SGF tree. comment may be empty.
func Encode(b *wq.Board, comment string) string {
	rows, cols := b.BoardSize()
	var buf bytes.Buffer
	buf.WriteString("(;GM[1]FF[4]")
	if rows == cols {
		fmt.Fprintf(&buf, "SZ[%d]", cols)
	} else {
		fmt.Fprintf(&buf, "SZ[%d:%d]", cols, rows)
	}

	writePoints := func(prop string, include func(i int) bool) {
		var pts []string
		for i := range b.Stones() {
			if include(i) {
				pts = append(pts, point(i, cols))
			}
		}
		if len(pts) == 0 {
			return
		}
		buf.WriteString(prop)
		for _, p := range pts {
			fmt.Fprintf(&buf, "[%s]", p)
		}
	}

	stones := b.Stones()
	writePoints("AB", func(i int) bool { return stones[i] == game.Black })
	writePoints("AW", func(i int) bool { return stones[i] == game.White })

	if game.Colour(b.ToMove()) == game.White {
		buf.WriteString("PL[W]")
	} else {
		buf.WriteString("PL[B]")
	}

	bounds := b.Bounds()
	writePoints("VW", func(i int) bool { return bounds[i] })

	if comment != "" {
		fmt.Fprintf(&buf, "C[%s]", escapeText(comment))
	}
	buf.WriteString(")")
	return buf.String()
}

// Decode parses a problem encoded by Encode, tolerating compressed point
// lists and unknown properties.
func Decode(s string) (*wq.Board, string, error) {
	props, err := parse(s)
	if err != nil {
		return nil, "", err
	}

	rows, cols := 19, 19
	if sz, ok := props["SZ"]; ok && len(sz) > 0 {
		cols, rows, err = parseSize(sz[0])
		if err != nil {
			return nil, "", err
		}
	}
	n := rows * cols

	bounds := make([]bool, n)
	if vw, ok := props["VW"]; ok {
		for _, v := range vw {
			if err := expandPoints(v, rows, cols, func(i int) { bounds[i] = true }); err != nil {
				return nil, "", err
			}
		}
	} else {
		// no view: the whole grid is playable
		for i := range bounds {
			bounds[i] = true
		}
	}

	stones := make([]game.Colour, n)
	for _, v := range props["AB"] {
		if err := expandPoints(v, rows, cols, func(i int) { stones[i] = game.Black }); err != nil {
			return nil, "", err
		}
	}
	for _, v := range props["AW"] {
		if err := expandPoints(v, rows, cols, func(i int) { stones[i] = game.White }); err != nil {
			return nil, "", err
		}
	}

	toMove := game.Player(game.Black)
	if pl, ok := props["PL"]; ok && len(pl) > 0 && strings.TrimSpace(pl[0]) == "W" {
		toMove = game.Player(game.White)
	}

	var comment string
	if c, ok := props["C"]; ok && len(c) > 0 {
		comment = unescapeText(c[0])
	}

	b, err := wq.NewBoard(rows, cols, bounds, stones, toMove)
	if err != nil {
		return nil, "", errors.WithMessage(err, "decoding sgf")
	}
	return b, comment, nil
}

// parse reads the first node of the first game tree into a property map.
func parse(s string) (map[string][]string, error) {
	props := make(map[string][]string)
	i := 0
	skipSpace := func() {
		for i < len(s) && (s[i] == ' ' || s[i] == '\n' || s[i] == '\r' || s[i] == '\t') {
			i++
		}
	}
	skipSpace()
	if i >= len(s) || s[i] != '(' {
		return nil, errors.New("sgf: no game tree")
	}
	i++
	skipSpace()
	if i >= len(s) || s[i] != ';' {
		return nil, errors.New("sgf: no node")
	}
	i++

	for {
		skipSpace()
		if i >= len(s) {
			return nil, errors.New("sgf: unterminated tree")
		}
		if s[i] == ')' || s[i] == ';' || s[i] == '(' {
			// end of the first node
			return props, nil
		}
		start := i
		for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
			i++
		}
		if i == start {
			return nil, errors.Errorf("sgf: unexpected %q at %d", s[i], i)
		}
		ident := s[start:i]
		skipSpace()
		if i >= len(s) || s[i] != '[' {
			return nil, errors.Errorf("sgf: property %s has no value", ident)
		}
		for i < len(s) && s[i] == '[' {
			i++
			var val strings.Builder
			for i < len(s) && s[i] != ']' {
				if s[i] == '\\' && i+1 < len(s) {
					i++
				}
				val.WriteByte(s[i])
				i++
			}
			if i >= len(s) {
				return nil, errors.Errorf("sgf: unterminated value for %s", ident)
			}
			i++ // ']'
			props[ident] = append(props[ident], val.String())
			skipSpace()
		}
	}
}

func parseSize(v string) (cols, rows int, err error) {
	if c, r, ok := strings.Cut(v, ":"); ok {
		cols, err = strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return 0, 0, errors.Wrap(err, "sgf: bad SZ")
		}
		rows, err = strconv.Atoi(strings.TrimSpace(r))
		if err != nil {
			return 0, 0, errors.Wrap(err, "sgf: bad SZ")
		}
		return cols, rows, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, 0, errors.Wrap(err, "sgf: bad SZ")
	}
	return n, n, nil
}

// expandPoints handles both single points "ab" and rectangles "ab:cd".
func expandPoints(v string, rows, cols int, f func(i int)) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if a, b, ok := strings.Cut(v, ":"); ok {
		x1, y1, err := parsePoint(a, rows, cols)
		if err != nil {
			return err
		}
		x2, y2, err := parsePoint(b, rows, cols)
		if err != nil {
			return err
		}
		if x2 < x1 || y2 < y1 {
			return errors.Errorf("sgf: bad rectangle %q", v)
		}
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				f(y*cols + x)
			}
		}
		return nil
	}
	x, y, err := parsePoint(v, rows, cols)
	if err != nil {
		return err
	}
	f(y*cols + x)
	return nil
}

func parsePoint(v string, rows, cols int) (x, y int, err error) {
	if len(v) != 2 {
		return 0, 0, errors.Errorf("sgf: bad point %q", v)
	}
	x = pointOrd(v[0])
	y = pointOrd(v[1])
	if x < 0 || x >= cols || y < 0 || y >= rows {
		return 0, 0, errors.Errorf("sgf: point %q outside %dx%d", v, cols, rows)
	}
	return x, y, nil
}

func pointOrd(c byte) int {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26
	}
	return -1
}

func pointRune(n int) byte {
	if n < 26 {
		return byte('a' + n)
	}
	return byte('A' + n - 26)
}

// point converts a rowmajor index to an SGF point, column letter first.
func point(i, cols int) string {
	return string([]byte{pointRune(i % cols), pointRune(i / cols)})
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `]`, `\]`)
}

func unescapeText(s string) string {
	// parse already strips the backslashes
	return s
}
