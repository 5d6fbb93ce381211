package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gorgonia/tsumego"
	"github.com/gorgonia/tsumego/search"
)

var (
	solveFile = flag.String("solve", "", "solve the problem in this SGF file")
	genCount  = flag.Int("gen", 0, "generate this many problems")
	maxNodes  = flag.Int64("nodes", 1<<20, "node budget per solve")
	workers   = flag.Int("workers", 1, "parallel root workers")
	dot       = flag.Bool("dot", false, "print the solution as graphviz dot")
	statsFile = flag.String("stats", "", "dump generation statistics to this CSV file")
)

func main() {
	flag.Parse()

	conf := search.DefaultConfig()
	conf.MaxNodes = *maxNodes
	conf.Workers = *workers

	switch {
	case *solveFile != "":
		solve(conf)
	case *genCount > 0:
		generate(conf)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func solve(conf search.Config) {
	raw, err := os.ReadFile(*solveFile)
	if err != nil {
		log.Fatal(err)
	}
	p, comment, err := tsumego.FromSGF(string(raw))
	if err != nil {
		log.Fatal(err)
	}
	if comment != "" {
		log.Printf("%s", comment)
	}
	log.Printf("attacker %v, defender %v, %v to move", p.Attacker, p.Defender, p.Board.ToMove())

	res, err := p.Solve(conf)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n%v\n", p.Board, res)
	for i, m := range res.PV {
		fmt.Printf("  %d. %v\n", i+1, m)
	}
	if *dot {
		fmt.Println(search.ToDot(p.Board, res))
	}
}

func generate(conf search.Config) {
	gconf := tsumego.DefaultGeneratorConfig()
	gconf.Solver = conf
	gconf.MaxNodes = conf.MaxNodes
	g, err := tsumego.NewGenerator(gconf)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < *genCount; i++ {
		p, res, err := g.Generate()
		if err != nil {
			log.Fatal(err)
		}
		comment := fmt.Sprintf("%v to play. %v", p.Board.ToMove(), res.Status)
		fmt.Println(p.SGF(comment))
		fmt.Printf("%s%v\n\n", p.Board, res)
	}

	stats := g.Statistics()
	log.Printf("%d attempts, %d accepted (%.1f%%)", stats.Attempts, stats.Accepted, 100*stats.AcceptanceRate())
	if *statsFile != "" {
		if err := stats.Dump(*statsFile); err != nil {
			log.Fatal(err)
		}
	}
}
