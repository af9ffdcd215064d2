package rules

import (
	"errors"
	"fmt"

	"termchess/types"
)

// ErrIllegalMove wraps every rejection of a user move. The board is unchanged when it is returned.
var ErrIllegalMove = errors.New("illegal move")

// Outcome classifies the position after a committed move, from the side now to move.
type Outcome int

const (
	Ongoing Outcome = iota
	Check
	Checkmate
	Stalemate
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "unknown"
}

// Game is the authoritative board and the side to move.
type Game struct {
	Board Board
	Turn  types.Side
}

// NewGame returns a game in the starting position with White to move.
func NewGame() *Game {
	return &Game{Board: NewBoard(), Turn: types.White}
}

// NewGameFromPlacement returns a game with a FEN piece placement and the given side to move.
func NewGameFromPlacement(placement string, turn types.Side) (*Game, error) {
	b, err := ParsePlacement(placement)
	if err != nil {
		return nil, err
	}
	return &Game{Board: b, Turn: turn}, nil
}

// ValidDestinations returns the squares the piece on sq may move to right now.
// Pieces of the side not to move have none.
func (g *Game) ValidDestinations(sq types.Square) ([]types.Square, error) {
	if !sq.Valid() {
		return nil, fmt.Errorf("valid destinations of %v: %w", sq, ErrOffBoard)
	}
	p, ok := g.Board.At(sq)
	if !ok || p.Side != g.Turn {
		return nil, nil
	}
	return SafeDestinations(&g.Board, sq), nil
}

// Simulate validates m against the current position and returns the board it would produce.
// The game itself is not modified.
func (g *Game) Simulate(m types.Move) (Board, error) {
	if !m.From.Valid() || !m.To.Valid() {
		return Board{}, fmt.Errorf("move %v: %w", m, ErrOffBoard)
	}
	p, ok := g.Board.At(m.From)
	if !ok {
		return Board{}, fmt.Errorf("move %v: %w: %s", m, ErrIllegalMove, ErrEmptySquare)
	}
	if p.Side != g.Turn {
		return Board{}, fmt.Errorf("move %v: %w: %s to move", m, ErrIllegalMove, g.Turn)
	}
	if !legalSet(p, &g.Board).has(m.To) {
		return Board{}, fmt.Errorf("move %v: %w: unreachable for %s", m, ErrIllegalMove, p.Type)
	}
	if landsOnKing(&g.Board, m.To) {
		return Board{}, fmt.Errorf("move %v: %w: captures king", m, ErrIllegalMove)
	}
	after, err := g.Board.Apply(m)
	if err != nil {
		return Board{}, err
	}
	if !MoveIsSelfSafe(p.Side, &after) {
		return Board{}, fmt.Errorf("move %v: %w: leaves %s king attacked", m, ErrIllegalMove, p.Side)
	}
	return after, nil
}

// Commit plays m if it is legal, flips the turn and classifies the resulting position for the side now to move.
// On error the game is unchanged.
func (g *Game) Commit(m types.Move) (Outcome, error) {
	after, err := g.Simulate(m)
	if err != nil {
		return Ongoing, err
	}
	g.Board = after
	g.Turn.Flip()
	return Classify(&g.Board, g.Turn), nil
}

// Classify reports the state of the position for defending, the side to move.
func Classify(b *Board, defending types.Side) Outcome {
	moves := AllMoves(b)
	king, hasKing := b.King(defending)
	if hasKing && UnderAttack(king, moves) {
		if IsCheckmate(b, moves, defending) {
			return Checkmate
		}
		return Check
	}
	if IsStalemate(b, moves, defending) {
		return Stalemate
	}
	return Ongoing
}
