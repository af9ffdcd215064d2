package rules

import (
	"testing"

	"termchess/types"
)

func sq(s string) types.Square {
	return types.MustParseSquare(s)
}

func mv(from, to string) types.Move {
	return types.Move{From: sq(from), To: sq(to)}
}

func mustPlacement(t *testing.T, placement string) Board {
	t.Helper()
	b, err := ParsePlacement(placement)
	if err != nil {
		t.Fatalf("ParsePlacement(%q): %v", placement, err)
	}
	return b
}

func squareStrings(squares []types.Square) []string {
	out := make([]string, len(squares))
	for i, s := range squares {
		out[i] = s.String()
	}
	return out
}

func sameSquares(got []types.Square, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]bool, len(got))
	for _, s := range got {
		seen[s.String()] = true
	}
	for _, w := range want {
		if !seen[w] {
			return false
		}
	}
	return true
}

type position struct {
	name      string
	placement string
	turn      types.Side
}

// samplePositions are shared by several tests. None has castling rights, en passant or a promotion available.
var samplePositions = []position{
	{"start", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", types.White},
	{"open center", "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/3P1N2/PPP2PPP/RNBQK2R", types.White},
	{"pinned knight", "4k3/8/8/8/4r3/8/4N3/4K3", types.White},
	{"king in check", "4k3/8/8/8/8/8/3q4/4K3", types.White},
	{"middlegame", "r2q1rk1/ppp2ppp/2n1bn2/3p4/3P4/2NBPN2/PP3PPP/R2Q1RK1", types.Black},
	{"endgame", "8/5k2/8/3K4/8/2R5/8/6r1", types.White},
}
