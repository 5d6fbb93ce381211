package wq

import (
	"math/rand"
	"sync"

	"github.com/gorgonia/tsumego/game"
)

// sideToMoveKey is xored into the transposition key when White is to move.
const sideToMoveKey uint64 = 0xf83c9e1a55b42d07

// zobrist is a data structure for calculating Zobrist hashes.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// The table is a (rows*cols, 2) matrix of random uint64s, one column per
// stone colour. Tables are deterministic per board size and shared between
// all boards of that size, so equal layouts always hash equal. This matters
// for the superko check and for transposition table hits across a search.
type zobrist struct {
	table []uint64 // backing storage, shared and read-only
	hash  game.Zobrist
}

var zobristTables = struct {
	sync.Mutex
	m map[[2]int32][]uint64
}{m: make(map[[2]int32][]uint64)}

func makeZobrist(rows, cols int) zobrist {
	key := [2]int32{int32(rows), int32(cols)}
	zobristTables.Lock()
	defer zobristTables.Unlock()
	table, ok := zobristTables.m[key]
	if !ok {
		// fixed seed mixed with the size keeps hashing reproducible
		seed := int64(0x6a09e667f3bcc908) ^ int64(rows)<<32 ^ int64(cols)
		r := rand.New(rand.NewSource(seed))
		table = make([]uint64, rows*cols*2)
		for i := range table {
			table[i] = r.Uint64()
		}
		zobristTables.m[key] = table
	}
	return zobrist{table: table}
}

// update xors the move into the hash. Placing and removing a stone are the
// same operation.
func (z *zobrist) update(m game.PlayerMove) game.Zobrist {
	switch game.Colour(m.Player) {
	case game.Black:
		z.hash ^= game.Zobrist(z.table[2*m.Single])
	case game.White:
		z.hash ^= game.Zobrist(z.table[2*m.Single+1])
	default:
		panic("Unreachable")
	}
	return z.hash
}
