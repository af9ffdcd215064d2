// Package types contains shared data structures for termchess.
package types

// Side is the colour a piece plays for.
type Side int

const (
	White Side = iota
	Black
)

// Flip toggles the side in place.
func (s *Side) Flip() {
	*s = s.Flipped()
}

// Flipped returns the opposing side.
func (s Side) Flipped() Side {
	if s == White {
		return Black
	}
	return White
}

// Forward is the rank step a pawn of this side advances by.
func (s Side) Forward() int {
	if s == White {
		return 1
	}
	return -1
}

// PawnRank is the rank this side's pawns start on.
func (s Side) PawnRank() int {
	if s == White {
		return 2
	}
	return 7
}

func (s Side) String() string {
	if s == White {
		return "White"
	}
	return "Black"
}

// PieceType is the kind of chess piece.
type PieceType int

const (
	King PieceType = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PieceTypes lists every piece type.
var PieceTypes = []PieceType{King, Queen, Rook, Bishop, Knight, Pawn}

// Letter returns the English piece letter, upper case.
func (p PieceType) Letter() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return '?'
}

func (p PieceType) String() string {
	switch p {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	}
	return "unknown"
}

// Piece is a chess piece on a square. It has no identity beyond its square and is copied freely.
type Piece struct {
	Side     Side
	Type     PieceType
	Position Square
	HasMoved bool
}

// Move is a (from, to) pair. Moves are transient and never stored by the engine.
type Move struct {
	From Square
	To   Square
}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}
