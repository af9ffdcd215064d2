package rules

import "termchess/types"

// squareSet is a 64-bit set of squares, bit i set for types.SquareAt(i).
type squareSet uint64

func setOf(squares []types.Square) squareSet {
	var s squareSet
	for _, sq := range squares {
		s = s.with(sq)
	}
	return s
}

func (s squareSet) with(sq types.Square) squareSet {
	return s | 1<<uint(sq.Index())
}

func (s squareSet) without(sq types.Square) squareSet {
	return s &^ (1 << uint(sq.Index()))
}

func (s squareSet) has(sq types.Square) bool {
	return s&(1<<uint(sq.Index())) != 0
}

// squares lists the members in ascending index order.
func (s squareSet) squares() []types.Square {
	out := make([]types.Square, 0, 8)
	for i := 0; i < 64; i++ {
		if s&(1<<uint(i)) != 0 {
			out = append(out, types.SquareAt(i))
		}
	}
	return out
}
