package rules

import "termchess/types"

// PseudoMoves returns the squares p could reach by its movement pattern alone.
// Occupancy only matters for pawn captures: a forward diagonal is included when any piece stands on it.
func PseudoMoves(p types.Piece, b *Board) []types.Square {
	return pseudoSet(p, b).squares()
}

func pseudoSet(p types.Piece, b *Board) squareSet {
	pos := p.Position
	switch p.Type {
	case types.King:
		return setOf(pos.Adjacent()) | castleSet(p, b)
	case types.Queen:
		return setOf(pos.Horizontal()) | setOf(pos.Vertical()) | setOf(pos.Diagonals())
	case types.Rook:
		return setOf(pos.Horizontal()) | setOf(pos.Vertical())
	case types.Bishop:
		return setOf(pos.Diagonals())
	case types.Knight:
		return setOf(pos.KnightSquares())
	case types.Pawn:
		return pawnPseudoSet(p, b)
	}
	return 0
}

// castleSet is always empty: castling is not supported.
func castleSet(types.Piece, *Board) squareSet {
	return 0
}

func pawnPseudoSet(p types.Piece, b *Board) squareSet {
	var s squareSet
	fwd := p.Side.Forward()
	if sq, ok := p.Position.Offset(fwd, 0); ok {
		s = s.with(sq)
	}
	if !p.HasMoved {
		if sq, ok := p.Position.Offset(2*fwd, 0); ok {
			s = s.with(sq)
		}
	}
	for _, sq := range pawnDiagonals(p) {
		if b.Occupied(sq) {
			s = s.with(sq)
		}
	}
	return s
}

func pawnDiagonals(p types.Piece) []types.Square {
	return p.Position.Offsets([][2]int{{p.Side.Forward(), -1}, {p.Side.Forward(), 1}})
}
