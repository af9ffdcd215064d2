package rules

import "termchess/types"

// PieceMove is one entry of the attack map: a piece and a square it can move to.
type PieceMove struct {
	Piece types.Piece
	To    types.Square
}

// Move returns the (from, to) pair of pm.
func (pm PieceMove) Move() types.Move {
	return types.Move{From: pm.Piece.Position, To: pm.To}
}

// AllMoves returns the legal moves of every piece on b, both sides, flattened in square order.
// It doubles as the attack map of the position.
func AllMoves(b *Board) []PieceMove {
	var moves []PieceMove
	for _, p := range b.Pieces() {
		for _, to := range LegalMoves(p, b) {
			moves = append(moves, PieceMove{Piece: p, To: to})
		}
	}
	return moves
}

// UnderAttack reports whether any move in moves lands on p's square.
func UnderAttack(p types.Piece, moves []PieceMove) bool {
	for _, m := range moves {
		if m.To == p.Position {
			return true
		}
	}
	return false
}

// KingAttacked reports whether side's king is attacked on b. A side without a king is never attacked.
func KingAttacked(b *Board, side types.Side) bool {
	king, ok := b.King(side)
	if !ok {
		return false
	}
	return UnderAttack(king, AllMoves(b))
}

// MoveIsSelfSafe reports whether mover's king is safe on the board after its move.
func MoveIsSelfSafe(mover types.Side, after *Board) bool {
	return !KingAttacked(after, mover)
}

// CanKingMove reports whether side's king has a move in moves that leaves it unattacked.
func CanKingMove(b *Board, moves []PieceMove, side types.Side) bool {
	for _, m := range moves {
		if m.Piece.Type != types.King || m.Piece.Side != side {
			continue
		}
		if landsOnKing(b, m.To) {
			continue
		}
		trial, err := b.Apply(m.Move())
		if err != nil {
			continue
		}
		king, _ := trial.At(m.To)
		if !UnderAttack(king, AllMoves(&trial)) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether defending, whose king is attacked on b, has no move that lifts the attack.
// moves is the attack map of b.
func IsCheckmate(b *Board, moves []PieceMove, defending types.Side) bool {
	if CanKingMove(b, moves, defending) {
		return false
	}
	for _, m := range moves {
		if m.Piece.Side != defending || m.Piece.Type == types.King {
			continue
		}
		if landsOnKing(b, m.To) {
			continue
		}
		trial, err := b.Apply(m.Move())
		if err != nil {
			continue
		}
		if !KingAttacked(&trial, defending) {
			return false
		}
	}
	return true
}

// HasSafeMove reports whether side has any move that does not leave its own king attacked.
func HasSafeMove(b *Board, moves []PieceMove, side types.Side) bool {
	for _, m := range moves {
		if m.Piece.Side != side || landsOnKing(b, m.To) {
			continue
		}
		trial, err := b.Apply(m.Move())
		if err != nil {
			continue
		}
		if MoveIsSelfSafe(side, &trial) {
			return true
		}
	}
	return false
}

// IsStalemate reports whether defending is not in check and has no safe move.
func IsStalemate(b *Board, moves []PieceMove, defending types.Side) bool {
	if king, ok := b.King(defending); ok && UnderAttack(king, moves) {
		return false
	}
	return !HasSafeMove(b, moves, defending)
}

// SafeDestinations returns the legal destinations of the piece on sq that keep its own king safe
// and do not capture a king. An empty square has none.
func SafeDestinations(b *Board, sq types.Square) []types.Square {
	p, ok := b.At(sq)
	if !ok {
		return nil
	}
	var safe []types.Square
	for _, to := range LegalMoves(p, b) {
		if landsOnKing(b, to) {
			continue
		}
		trial, err := b.Apply(types.Move{From: sq, To: to})
		if err != nil {
			continue
		}
		if MoveIsSelfSafe(p.Side, &trial) {
			safe = append(safe, to)
		}
	}
	return safe
}

func landsOnKing(b *Board, to types.Square) bool {
	p, ok := b.At(to)
	return ok && p.Type == types.King
}
