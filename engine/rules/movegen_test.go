package rules

import (
	"testing"

	"termchess/types"
)

func TestPseudoMovesEmptyBoard(t *testing.T) {
	tests := []struct {
		piece  types.PieceType
		square string
		want   int
	}{
		{types.Rook, "a1", 14},
		{types.Rook, "d4", 14},
		{types.Bishop, "d4", 13},
		{types.Bishop, "a1", 7},
		{types.Queen, "d4", 27},
		{types.Queen, "h8", 21},
		{types.Knight, "g1", 3},
		{types.Knight, "d4", 8},
		{types.King, "e1", 5},
		{types.King, "e4", 8},
	}
	for _, tt := range tests {
		b := EmptyBoard()
		p := types.Piece{Side: types.White, Type: tt.piece, Position: sq(tt.square), HasMoved: true}
		b.Place(p)
		if got := PseudoMoves(p, &b); len(got) != tt.want {
			t.Errorf("%v on %s: %d pseudo moves %v, want %d", tt.piece, tt.square, len(got), squareStrings(got), tt.want)
		}
	}
}

func TestPseudoMovesIgnoreBlockers(t *testing.T) {
	b := NewBoard()
	rook, _ := b.At(sq("a1"))
	if got := PseudoMoves(rook, &b); len(got) != 14 {
		t.Errorf("rook on a1 has %d pseudo moves in the starting position, want 14", len(got))
	}
}

func TestPawnPseudoMoves(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		pawn      string
		want      []string
	}{
		{"white unmoved", "4k3/8/8/8/8/8/4P3/4K3", "e2", []string{"e3", "e4"}},
		{"black unmoved", "4k3/4p3/8/8/8/8/8/4K3", "e7", []string{"e6", "e5"}},
		{"moved", "4k3/8/8/8/8/4P3/8/4K3", "e3", []string{"e4"}},
		{"diagonal on enemy", "4k3/8/8/8/8/3n4/4P3/4K3", "e2", []string{"e3", "e4", "d3"}},
		{"diagonal on friend", "4k3/8/8/8/8/5N2/4P3/4K3", "e2", []string{"e3", "e4", "f3"}},
		{"edge file", "4k3/8/8/8/8/1n6/P7/4K3", "a2", []string{"a3", "a4", "b3"}},
		{"last rank", "4k2P/8/8/8/8/8/8/4K3", "h8", nil},
	}
	for _, tt := range tests {
		b := mustPlacement(t, tt.placement)
		p, ok := b.At(sq(tt.pawn))
		if !ok {
			t.Fatalf("%s: no pawn on %s", tt.name, tt.pawn)
		}
		got := PseudoMoves(p, &b)
		if !sameSquares(got, tt.want...) {
			t.Errorf("%s: PseudoMoves = %v, want %v", tt.name, squareStrings(got), tt.want)
		}
	}
}

func TestPseudoMovesAscending(t *testing.T) {
	b := NewBoard()
	for _, p := range b.Pieces() {
		got := PseudoMoves(p, &b)
		for i := 1; i < len(got); i++ {
			if got[i-1].Index() >= got[i].Index() {
				t.Errorf("%v on %v: moves not ascending: %v", p.Type, p.Position, squareStrings(got))
				break
			}
		}
	}
}
