package types

import (
	"errors"
	"fmt"
)

// ErrSameSquare is returned by RelativeDirection when both squares are equal.
var ErrSameSquare = errors.New("squares are equal")

// Square is a board coordinate: file 'a'-'h', rank 1-8.
// The zero value is not a valid square.
type Square struct {
	File byte
	Rank int
}

// NewSquare returns the square at file and rank, or false if it is off the board.
func NewSquare(file byte, rank int) (Square, bool) {
	sq := Square{File: file, Rank: rank}
	return sq, sq.Valid()
}

// ParseSquare parses algebraic coordinates like "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square: %q", s)
	}
	sq, ok := NewSquare(s[0], int(s[1]-'0'))
	if !ok {
		return Square{}, fmt.Errorf("square out of range: %q", s)
	}
	return sq, nil
}

// MustParseSquare is like ParseSquare but panics on bad input. Meant for fixed positions in tests and setup.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// Valid reports whether the square lies on the 8x8 board.
func (s Square) Valid() bool {
	return s.File >= 'a' && s.File <= 'h' && s.Rank >= 1 && s.Rank <= 8
}

// Index maps a1..h8 to 0..63, rank-major. Only meaningful for valid squares.
func (s Square) Index() int {
	return (s.Rank-1)*8 + int(s.File-'a')
}

// SquareAt is the inverse of Index.
func SquareAt(index int) Square {
	return Square{File: byte('a' + index%8), Rank: index/8 + 1}
}

func (s Square) String() string {
	return fmt.Sprintf("%c%d", s.File, s.Rank)
}

// AllSquares returns every square in index order.
func AllSquares() []Square {
	squares := make([]Square, 0, 64)
	for i := 0; i < 64; i++ {
		squares = append(squares, SquareAt(i))
	}
	return squares
}

// Offset shifts the square by rowDelta ranks and fileDelta files.
// Returns false instead of an off-board square.
func (s Square) Offset(rowDelta, fileDelta int) (Square, bool) {
	file := int(s.File) + fileDelta
	if file < 'a' || file > 'h' {
		return Square{}, false
	}
	return NewSquare(byte(file), s.Rank+rowDelta)
}

// Offsets applies each (rowDelta, fileDelta) pair and keeps the on-board results.
func (s Square) Offsets(deltas [][2]int) []Square {
	squares := make([]Square, 0, len(deltas))
	for _, d := range deltas {
		if sq, ok := s.Offset(d[0], d[1]); ok {
			squares = append(squares, sq)
		}
	}
	return squares
}

var adjacentDeltas = [][2]int{
	{1, 0}, {0, 1}, {1, 1}, {-1, 0},
	{0, -1}, {-1, -1}, {-1, 1}, {1, -1},
}

var knightDeltas = [][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-2, -1}, {-1, -2}, {-1, 2}, {-2, 1},
}

// Adjacent returns the up to 8 neighbouring squares.
func (s Square) Adjacent() []Square {
	return s.Offsets(adjacentDeltas)
}

// KnightSquares returns the on-board squares a knight jump away.
func (s Square) KnightSquares() []Square {
	return s.Offsets(knightDeltas)
}

// Beyond returns the ray from s toward d, nearest square first, excluding s itself.
func (s Square) Beyond(d Direction) []Square {
	dr, df := d.Delta()
	var ray []Square
	cur := s
	for {
		next, ok := cur.Offset(dr, df)
		if !ok {
			return ray
		}
		ray = append(ray, next)
		cur = next
	}
}

func (s Square) rays(dirs []Direction) []Square {
	var squares []Square
	for _, d := range dirs {
		squares = append(squares, s.Beyond(d)...)
	}
	return squares
}

// Horizontal returns every other square on the same rank.
func (s Square) Horizontal() []Square {
	return s.rays([]Direction{West, East})
}

// Vertical returns every other square on the same file.
func (s Square) Vertical() []Square {
	return s.rays([]Direction{South, North})
}

// Diagonals returns every square on the two diagonals through s, s excluded.
func (s Square) Diagonals() []Square {
	return s.rays([]Direction{NorthEast, NorthWest, SouthEast, SouthWest})
}

// Distance is the Manhattan distance between two squares.
// It only orders squares along a single ray; it is not king distance.
func Distance(a, b Square) int {
	return abs(int(a.File)-int(b.File)) + abs(a.Rank-b.Rank)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is one of the 8 compass directions. North is toward rank 8, East toward file h.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions lists all 8 directions, clockwise from North.
var Directions = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Orthogonals are the rook directions.
var Orthogonals = []Direction{North, East, South, West}

// DiagonalDirections are the bishop directions.
var DiagonalDirections = []Direction{NorthEast, SouthEast, SouthWest, NorthWest}

// Delta returns the (rank, file) step of one square in direction d.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 1, 0
	case NorthEast:
		return 1, 1
	case East:
		return 0, 1
	case SouthEast:
		return -1, 1
	case South:
		return -1, 0
	case SouthWest:
		return -1, -1
	case West:
		return 0, -1
	case NorthWest:
		return 1, -1
	}
	return 0, 0
}

// Diagonal reports whether d is a bishop direction.
func (d Direction) Diagonal() bool {
	dr, df := d.Delta()
	return dr != 0 && df != 0
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	}
	return "?"
}

// RelativeDirection classifies where other lies as seen from anchor.
// Squares that share no line still get the compass octant they fall in.
func RelativeDirection(anchor, other Square) (Direction, error) {
	dr := sign(other.Rank - anchor.Rank)
	df := sign(int(other.File) - int(anchor.File))
	switch {
	case dr > 0 && df == 0:
		return North, nil
	case dr > 0 && df > 0:
		return NorthEast, nil
	case dr == 0 && df > 0:
		return East, nil
	case dr < 0 && df > 0:
		return SouthEast, nil
	case dr < 0 && df == 0:
		return South, nil
	case dr < 0 && df < 0:
		return SouthWest, nil
	case dr == 0 && df < 0:
		return West, nil
	case dr > 0 && df < 0:
		return NorthWest, nil
	}
	return 0, fmt.Errorf("relative direction of %s: %w", anchor, ErrSameSquare)
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
