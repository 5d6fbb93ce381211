package search

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/gorgonia/tsumego/game"
	"github.com/gorgonia/tsumego/game/wq"
)

type pvNode struct {
	ID     int
	Move   string
	Player game.Player
	board  []game.Colour
	bounds []bool
	stride int
}

func (n *pvNode) State() string {
	var buf bytes.Buffer
	for i, c := range n.board {
		if i%n.stride == 0 {
			fmt.Fprint(&buf, "⎢ ")
		}
		if !n.bounds[i] {
			fmt.Fprint(&buf, "# ")
		} else {
			fmt.Fprintf(&buf, "%s ", c)
		}
		if (i+1)%n.stride == 0 {
			fmt.Fprint(&buf, "⎥<BR />")
		}
	}
	return buf.String()
}

// ToDot renders the principal variation of a result as a graphviz chain,
// one node per position, for eyeballing what the solver found.
func ToDot(b *wq.Board, res SearchResult) string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	_, cols := b.BoardSize()
	cur := b
	var buf bytes.Buffer
	addNode := func(id int, move string) {
		n := &pvNode{
			ID:     id,
			Move:   move,
			Player: cur.ToMove(),
			board:  cur.Stones(),
			bounds: cur.Bounds(),
			stride: cols,
		}
		tmpl.Execute(&buf, n)
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		g.AddNode("G", fmt.Sprintf("n%d", id), attrs)
		buf.Reset()
		if id > 0 {
			g.AddEdge(fmt.Sprintf("n%d", id-1), fmt.Sprintf("n%d", id), true, nil)
		}
	}

	addNode(0, fmt.Sprintf("root: %v", res.Status))
	for i, m := range res.PV {
		child, err := cur.Apply(m)
		if err != nil {
			break
		}
		cur = child
		addNode(i+1, fmt.Sprintf("%v", m))
	}
	return g.String()
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Step</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Move</TD><TD>{{.Move}}</TD></TR>
<TR><TD>To Move</TD><TD>{{.Player}}</TD></TR>
<TR><TD>State</TD><TD>{{.State}}</TD></TR>
</TABLE>
>
`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("pv").Parse(tmplRaw))
}
