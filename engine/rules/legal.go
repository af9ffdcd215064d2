package rules

import "termchess/types"

// LegalMoves filters PseudoMoves for blocking pieces and friendly fire, in ascending square order.
// It does not check whether the move leaves the mover's own king attacked; see SafeDestinations.
func LegalMoves(p types.Piece, b *Board) []types.Square {
	return legalSet(p, b).squares()
}

func legalSet(p types.Piece, b *Board) squareSet {
	candidates := pseudoSet(p, b)
	switch p.Type {
	case types.Queen, types.Rook, types.Bishop:
		return withoutFriendly(p, b, withoutBlocked(p, b, candidates))
	case types.Knight, types.King:
		return withoutFriendly(p, b, candidates)
	case types.Pawn:
		return pawnLegalSet(p, b, candidates)
	default:
		return withoutFriendly(p, b, candidates)
	}
}

func withoutFriendly(p types.Piece, b *Board, s squareSet) squareSet {
	for _, sq := range s.squares() {
		if b.OccupiedBy(sq, p.Side) {
			s = s.without(sq)
		}
	}
	return s
}

// withoutBlocked removes every candidate lying beyond the nearest occupied candidate in its direction.
// The nearest occupant itself stays so it can be captured; withoutFriendly drops it if it is friendly.
func withoutBlocked(p types.Piece, b *Board, s squareSet) squareSet {
	var nearest [8]int
	for _, sq := range s.squares() {
		if !b.Occupied(sq) {
			continue
		}
		dir, err := types.RelativeDirection(p.Position, sq)
		if err != nil {
			continue
		}
		dist := types.Distance(p.Position, sq)
		if nearest[dir] == 0 || dist < nearest[dir] {
			nearest[dir] = dist
		}
	}
	for _, sq := range s.squares() {
		dir, err := types.RelativeDirection(p.Position, sq)
		if err != nil {
			s = s.without(sq)
			continue
		}
		if nearest[dir] != 0 && types.Distance(p.Position, sq) > nearest[dir] {
			s = s.without(sq)
		}
	}
	return s
}

// pawnLegalSet keeps forward steps up to the first occupied square and adds diagonals only onto enemies.
func pawnLegalSet(p types.Piece, b *Board, generated squareSet) squareSet {
	var unblocked squareSet
	fwd := p.Side.Forward()
	steps := 1
	if !p.HasMoved {
		steps = 2
	}
	for i := 1; i <= steps; i++ {
		sq, ok := p.Position.Offset(i*fwd, 0)
		if !ok || b.Occupied(sq) {
			break
		}
		unblocked = unblocked.with(sq)
	}
	legal := generated & unblocked
	for _, sq := range pawnDiagonals(p) {
		if b.OccupiedBy(sq, p.Side.Flipped()) {
			legal = legal.with(sq)
		}
	}
	return legal
}
