package wq

import (
	"testing"

	"github.com/gorgonia/tsumego/game"
)

var classifyTests = []struct {
	name     string
	board    string
	defender game.Player
	want     Verdict
}{
	// two one-point eyes: unconditionally alive no matter who moves
	{
		name: "two eyes",
		board: `
			# # # # # # #
			# . O O O O #
			# O X X X X #
			# X X . X . #
			# # # # # # #`,
		defender: BlackP,
		want:     Alive,
	},

	// a lone stone in the corner of White's wall with a single liberty
	{
		name: "no eye space",
		board: `
			# # # # #
			# . O O #
			# O O X #
			# O O . #
			# # # # #`,
		defender: BlackP,
		want:     Dead,
	},

	// one eye each plus a shared liberty: neither side dares fill
	{
		name: "seki",
		board: `
			# # # # # # # # # # #
			# . O . O O O O O O #
			# O O O O O O O O O #
			# X X X X X X X X X #
			# X X X O O O X X X #
			# X . X O . O X X X #
			# X X X O O O . X X #
			# X X X X X X X X X #
			# # # # # # # # # # #`,
		defender: BlackP,
		want:     Seki,
	},

	// two shared liberties and no private eyes is a nakade, not a seki:
	// White throws in and the forced recapture leaves a dead shape
	{
		name: "false seki",
		board: `
			# # # # # # # #
			# O O O O O . #
			# X X X X X O #
			# X . O . X O #
			# X X X X X O #
			# # # # # # # #`,
		defender: BlackP,
		want:     Undetermined,
	},

	// a three-space eye: the vital point decides, so no static verdict
	{
		name: "three space eye",
		board: `
			# # # # # # #
			# . O O O O #
			# O X X X X #
			# X . . . X #
			# X X X X X #
			# # # # # # #`,
		defender: BlackP,
		want:     Undetermined,
	},

	// open area, plenty of eye space left
	{
		name: "open area",
		board: `
			# # # # # # #
			# . . . . . #
			# . X X . . #
			# . . . . . #
			# # # # # # #`,
		defender: BlackP,
		want:     Undetermined,
	},

	// an uncaptured attacker stone inside blocks the dead verdict even
	// though the eye space is too small right now
	{
		name: "prisoner inside",
		board: `
			# # # # # # #
			# . O O O O #
			# O X X X X #
			# . X O . X #
			# . X X X X #
			# # # # # # #`,
		defender: BlackP,
		want:     Undetermined,
	},
}

func TestBoard_Classify(t *testing.T) {
	for _, ct := range classifyTests {
		b, err := FromString(ct.board, BlackP)
		if err != nil {
			t.Fatalf("%s: bad diagram: %v", ct.name, err)
		}
		if got := b.Classify(ct.defender); got != ct.want {
			t.Errorf("%s: expected %v, got %v for\n%s", ct.name, ct.want, got, b)
		}
	}
}

func TestBoard_Classify_ColourSymmetry(t *testing.T) {
	// the seki shape with the colours swapped must classify the same
	b, err := FromString(`
		# # # # # # # # # # #
		# . X . X X X X X X #
		# X X X X X X X X X #
		# O O O O O O O O O #
		# O O O X X X O O O #
		# O . O X . X O O O #
		# O O O X X X . O O #
		# O O O O O O O O O #
		# # # # # # # # # # #`, WhiteP)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Classify(WhiteP); got != Seki {
		t.Errorf("expected Seki, got %v", got)
	}
}

func TestBoard_Settled(t *testing.T) {
	alive, err := FromString(`
		# # # # # # #
		# . O O O O #
		# O X X X X #
		# X X . X . #
		# # # # # # #`, BlackP)
	if err != nil {
		t.Fatal(err)
	}
	if !alive.Settled() {
		t.Error("a statically alive group should be settled")
	}

	open, err := FromString(`
		# # # # # # #
		# . O O O O #
		# O X X X X #
		# X . . . X #
		# X X X X X #
		# # # # # # #`, BlackP)
	if err != nil {
		t.Fatal(err)
	}
	if open.Settled() {
		t.Error("a three-space eye should not be settled")
	}
}

func TestBensonAlive(t *testing.T) {
	b, err := FromString(`
		# # # # # # #
		# . O O O O #
		# O X X X X #
		# X X . X . #
		# # # # # # #`, BlackP)
	if err != nil {
		t.Fatal(err)
	}
	alive := b.bensonAlive(BlackP)
	if len(alive) != 1 {
		t.Fatalf("expected one unconditionally alive group, got %d", len(alive))
	}
	if alive[0].Colour != Black {
		t.Errorf("expected a black group, got %v", alive[0].Colour)
	}

	// White's wall has liberties but no eyes, so it is not
	// unconditionally alive
	if got := b.bensonAlive(WhiteP); len(got) != 0 {
		t.Errorf("expected no unconditionally alive white groups, got %d", len(got))
	}
}
