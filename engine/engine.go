// Package engine defines the message protocol between the chess engine and its frontends.
package engine

import (
	"time"

	"termchess/types"
)

// RequestKind selects what a Request asks of the engine.
type RequestKind int

const (
	// ValidMoves asks for the destinations of the piece on From. Answered with Moves.
	ValidMoves RequestKind = iota
	// CheckMove asks whether From-To would be accepted, without playing it. Answered with MoveValid or Invalid.
	CheckMove
	// MakeMove plays From-To. Answered with Board, Checkmate, Stalemate, Invalid or Error.
	MakeMove
	// GetBoardState asks for a snapshot. Answered with Board.
	GetBoardState
	// Quit stops the engine. Not answered.
	Quit
)

func (k RequestKind) String() string {
	switch k {
	case ValidMoves:
		return "valid_moves"
	case CheckMove:
		return "check_move"
	case MakeMove:
		return "make_move"
	case GetBoardState:
		return "board_state"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Request is sent from a frontend to the engine.
type Request struct {
	Kind RequestKind
	From types.Square
	To   types.Square
}

// ResponseKind tells a frontend how to read a Response.
type ResponseKind int

const (
	Moves ResponseKind = iota
	MoveValid
	Board
	Invalid
	Stalemate
	Checkmate
	Error
)

func (k ResponseKind) String() string {
	switch k {
	case Moves:
		return "moves"
	case MoveValid:
		return "move_valid"
	case Board:
		return "board"
	case Invalid:
		return "invalid"
	case Stalemate:
		return "stalemate"
	case Checkmate:
		return "checkmate"
	case Error:
		return "error"
	}
	return "unknown"
}

// Snapshot is a copy of the game state. Pieces are listed in square order.
type Snapshot struct {
	Pieces    []types.Piece
	Turn      types.Side
	TurnCount int
	InCheck   bool
	WhiteTime time.Duration
	BlackTime time.Duration
	LastMove  *types.Move
}

// PieceAt returns the piece on sq in the snapshot.
func (s *Snapshot) PieceAt(sq types.Square) (types.Piece, bool) {
	for _, p := range s.Pieces {
		if p.Position == sq {
			return p, true
		}
	}
	return types.Piece{}, false
}

// Response is sent from the engine to a frontend, at most one per Request.
type Response struct {
	Kind         ResponseKind
	Request      Request
	Destinations []types.Square
	// Snapshot is set for Board, Checkmate and Stalemate.
	Snapshot *Snapshot
	// Winner is the side that delivered mate, set for Checkmate. The mated side is Winner.Flipped().
	Winner types.Side
	// Reason explains Invalid and Error responses.
	Reason string
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	ClockTime time.Duration // Placeholder clock per side, not enforced
	Placement string        // FEN piece placement; empty for the starting position
	Turn      types.Side    // Side to move first
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		ClockTime: 10 * time.Minute,
		Turn:      types.White,
	}
}
