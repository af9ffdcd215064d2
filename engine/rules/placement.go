package rules

import (
	"fmt"
	"strings"

	"termchess/types"
)

var pieceLetters = map[byte]types.PieceType{
	'k': types.King,
	'q': types.Queen,
	'r': types.Rook,
	'b': types.Bishop,
	'n': types.Knight,
	'p': types.Pawn,
}

// ParsePlacement builds a board from the piece placement field of a FEN string,
// e.g. "7k/6p1/8/8/8/4R3/8/6K1". Anything after the first space is ignored.
// Pawns on their starting rank are unmoved; every other piece is marked as moved.
func ParsePlacement(placement string) (Board, error) {
	if i := strings.IndexByte(placement, ' '); i >= 0 {
		placement = placement[:i]
	}
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return Board{}, fmt.Errorf("placement %q: want 8 ranks, got %d", placement, len(rows))
	}
	b := EmptyBoard()
	for i, row := range rows {
		rank := 8 - i
		file := byte('a')
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += c - '0'
				continue
			}
			side := types.White
			lower := c
			if c >= 'a' && c <= 'z' {
				side = types.Black
			} else {
				lower = c + ('a' - 'A')
			}
			pt, ok := pieceLetters[lower]
			if !ok {
				return Board{}, fmt.Errorf("placement %q: unknown piece %q", placement, c)
			}
			sq, ok := types.NewSquare(file, rank)
			if !ok {
				return Board{}, fmt.Errorf("placement %q: rank %d overflows", placement, rank)
			}
			b.place(types.Piece{
				Side:     side,
				Type:     pt,
				Position: sq,
				HasMoved: !(pt == types.Pawn && rank == side.PawnRank()),
			})
			file++
		}
		if file != 'a'+8 {
			return Board{}, fmt.Errorf("placement %q: rank %d has %d files", placement, rank, file-'a')
		}
	}
	return b, nil
}

// Placement is the inverse of ParsePlacement.
func (b Board) Placement() string {
	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		empty := 0
		for file := byte('a'); file <= 'h'; file++ {
			p, ok := b.At(types.Square{File: file, Rank: rank})
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceChar(p))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
