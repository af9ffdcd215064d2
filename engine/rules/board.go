// Package rules implements chess move generation, legality and check detection.
package rules

import (
	"errors"
	"fmt"

	"termchess/types"
)

var (
	// ErrOffBoard is returned for a square outside a1-h8.
	ErrOffBoard = errors.New("square off board")
	// ErrEmptySquare is returned when a move starts from an empty square.
	ErrEmptySquare = errors.New("no piece on square")
)

type slot struct {
	piece    types.Piece
	occupied bool
}

// Board holds one slot per square. It is a value: assigning a Board copies every slot,
// so simulations run on copies and never alias the original.
type Board struct {
	slots [64]slot
}

// EmptyBoard returns a board with no pieces.
func EmptyBoard() Board {
	return Board{}
}

var backRank = []types.PieceType{
	types.Rook, types.Knight, types.Bishop, types.Queen,
	types.King, types.Bishop, types.Knight, types.Rook,
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	b := EmptyBoard()
	for i, pt := range backRank {
		file := byte('a' + i)
		b.place(types.Piece{Side: types.White, Type: pt, Position: types.Square{File: file, Rank: 1}})
		b.place(types.Piece{Side: types.Black, Type: pt, Position: types.Square{File: file, Rank: 8}})
		b.place(types.Piece{Side: types.White, Type: types.Pawn, Position: types.Square{File: file, Rank: 2}})
		b.place(types.Piece{Side: types.Black, Type: types.Pawn, Position: types.Square{File: file, Rank: 7}})
	}
	return b
}

func (b *Board) place(p types.Piece) {
	b.slots[p.Position.Index()] = slot{piece: p, occupied: true}
}

// Place puts p on p.Position, replacing any occupant.
func (b *Board) Place(p types.Piece) error {
	if !p.Position.Valid() {
		return fmt.Errorf("place %s: %w", p.Type, ErrOffBoard)
	}
	b.place(p)
	return nil
}

// Clear empties sq.
func (b *Board) Clear(sq types.Square) error {
	if !sq.Valid() {
		return fmt.Errorf("clear %v: %w", sq, ErrOffBoard)
	}
	b.slots[sq.Index()] = slot{}
	return nil
}

// At returns the piece on sq. The second result is false for an empty or off-board square.
func (b *Board) At(sq types.Square) (types.Piece, bool) {
	if !sq.Valid() {
		return types.Piece{}, false
	}
	s := b.slots[sq.Index()]
	return s.piece, s.occupied
}

// Occupied reports whether any piece stands on sq.
func (b *Board) Occupied(sq types.Square) bool {
	_, ok := b.At(sq)
	return ok
}

// OccupiedBy reports whether a piece of side stands on sq.
func (b *Board) OccupiedBy(sq types.Square, side types.Side) bool {
	p, ok := b.At(sq)
	return ok && p.Side == side
}

// Pieces returns every piece in square index order.
func (b *Board) Pieces() []types.Piece {
	pieces := make([]types.Piece, 0, 32)
	for _, s := range b.slots {
		if s.occupied {
			pieces = append(pieces, s.piece)
		}
	}
	return pieces
}

// King returns the king of side, if it is on the board.
func (b *Board) King(side types.Side) (types.Piece, bool) {
	for _, s := range b.slots {
		if s.occupied && s.piece.Side == side && s.piece.Type == types.King {
			return s.piece, true
		}
	}
	return types.Piece{}, false
}

// Relocate moves the piece on m.From to m.To, marking it moved and capturing any occupant of m.To.
// It does not check legality.
func (b *Board) Relocate(m types.Move) error {
	if !m.From.Valid() || !m.To.Valid() {
		return fmt.Errorf("relocate %v: %w", m, ErrOffBoard)
	}
	p, ok := b.At(m.From)
	if !ok {
		return fmt.Errorf("relocate %v: %w", m, ErrEmptySquare)
	}
	b.slots[m.From.Index()] = slot{}
	p.Position = m.To
	p.HasMoved = true
	b.place(p)
	return nil
}

// Apply returns a copy of b with m relocated. b is left unchanged.
func (b Board) Apply(m types.Move) (Board, error) {
	if err := b.Relocate(m); err != nil {
		return Board{}, err
	}
	return b, nil
}

// String renders the board as 8 lines, rank 8 first, upper case for White.
func (b Board) String() string {
	out := make([]byte, 0, 72)
	for rank := 8; rank >= 1; rank-- {
		for file := byte('a'); file <= 'h'; file++ {
			p, ok := b.At(types.Square{File: file, Rank: rank})
			if !ok {
				out = append(out, '.')
				continue
			}
			out = append(out, pieceChar(p))
		}
		out = append(out, '\n')
	}
	return string(out)
}

func pieceChar(p types.Piece) byte {
	c := p.Type.Letter()
	if p.Side == types.Black {
		c += 'a' - 'A'
	}
	return c
}
