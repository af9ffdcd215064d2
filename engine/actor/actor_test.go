package actor

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"termchess/engine"
	"termchess/types"
)

const waitTimeout = 5 * time.Second

func sq(s string) types.Square {
	return types.MustParseSquare(s)
}

type harness struct {
	t         *testing.T
	requests  chan<- engine.Request
	responses <-chan engine.Response
}

func startGame(t *testing.T, placement string, turn types.Side) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	cfg := engine.DefaultConfig()
	cfg.Placement = placement
	cfg.Turn = turn
	requests, responses, err := Start(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return &harness{t: t, requests: requests, responses: responses}
}

func (h *harness) ask(req engine.Request) engine.Response {
	h.t.Helper()
	h.requests <- req
	select {
	case resp, ok := <-h.responses:
		if !ok {
			h.t.Fatalf("response channel closed while waiting for %v", req.Kind)
		}
		if resp.Request != req {
			h.t.Fatalf("response to %+v, want %+v", resp.Request, req)
		}
		return resp
	case <-time.After(waitTimeout):
		h.t.Fatalf("no response to %v", req.Kind)
	}
	return engine.Response{}
}

func (h *harness) board() *engine.Snapshot {
	h.t.Helper()
	resp := h.ask(engine.Request{Kind: engine.GetBoardState})
	if resp.Kind != engine.Board || resp.Snapshot == nil {
		h.t.Fatalf("board state response = %v", resp.Kind)
	}
	return resp.Snapshot
}

func waitClosed(t *testing.T, responses <-chan engine.Response) {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case _, ok := <-responses:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("response channel not closed")
		}
	}
}

func contains(squares []types.Square, s types.Square) bool {
	for _, x := range squares {
		if x == s {
			return true
		}
	}
	return false
}

func TestMates(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		from, to  string
	}{
		{"anastasia", "7k/4N1p1/8/8/8/4R3/8/6K1", "e3", "h3"},
		{"anderssen", "6k1/6P1/5K2/8/8/8/7R/8", "h2", "h8"},
		{"arabian", "7k/1R6/5N2/8/8/8/8/6K1", "b7", "h7"},
		{"balestra", "4k3/8/5Q2/8/8/5B2/8/6K1", "f3", "c6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := startGame(t, tt.placement, types.White)

			moves := h.ask(engine.Request{Kind: engine.ValidMoves, From: sq(tt.from)})
			if moves.Kind != engine.Moves || !contains(moves.Destinations, sq(tt.to)) {
				t.Fatalf("valid moves of %s = %v %v, want %s among them", tt.from, moves.Kind, moves.Destinations, tt.to)
			}

			resp := h.ask(engine.Request{Kind: engine.MakeMove, From: sq(tt.from), To: sq(tt.to)})
			if resp.Kind != engine.Checkmate {
				t.Fatalf("response = %v (%s), want checkmate", resp.Kind, resp.Reason)
			}
			if resp.Winner != types.White {
				t.Errorf("winner = %v, want White", resp.Winner)
			}
			if resp.Snapshot == nil || resp.Snapshot.Turn != types.Black || !resp.Snapshot.InCheck {
				t.Errorf("checkmate snapshot = %+v", resp.Snapshot)
			}

			after := h.ask(engine.Request{Kind: engine.MakeMove, From: sq("h8"), To: sq("g8")})
			if after.Kind != engine.Invalid {
				t.Errorf("move after checkmate = %v, want invalid", after.Kind)
			}
		})
	}
}

func TestMoveOutsideValidSetIsRejected(t *testing.T) {
	h := startGame(t, "", types.White)
	before := h.board()

	moves := h.ask(engine.Request{Kind: engine.ValidMoves, From: sq("e2")})
	if contains(moves.Destinations, sq("e5")) {
		t.Fatalf("e5 offered for the e2 pawn: %v", moves.Destinations)
	}
	resp := h.ask(engine.Request{Kind: engine.MakeMove, From: sq("e2"), To: sq("e5")})
	if resp.Kind != engine.Invalid {
		t.Fatalf("response = %v, want invalid", resp.Kind)
	}
	if resp.Reason == "" {
		t.Error("invalid response has no reason")
	}

	after := h.board()
	if len(after.Pieces) != len(before.Pieces) {
		t.Fatalf("piece count changed: %d -> %d", len(before.Pieces), len(after.Pieces))
	}
	for i := range before.Pieces {
		if after.Pieces[i] != before.Pieces[i] {
			t.Errorf("piece %d changed: %+v -> %+v", i, before.Pieces[i], after.Pieces[i])
		}
	}
	if after.Turn != before.Turn || after.TurnCount != before.TurnCount {
		t.Errorf("turn changed: %v/%d -> %v/%d", before.Turn, before.TurnCount, after.Turn, after.TurnCount)
	}
}

func TestMakeMove(t *testing.T) {
	h := startGame(t, "", types.White)

	check := h.ask(engine.Request{Kind: engine.CheckMove, From: sq("e2"), To: sq("e4")})
	if check.Kind != engine.MoveValid {
		t.Fatalf("check move = %v, want move_valid", check.Kind)
	}
	if s := h.board(); s.TurnCount != 0 || s.LastMove != nil {
		t.Fatalf("CheckMove played the move: %+v", s)
	}

	resp := h.ask(engine.Request{Kind: engine.MakeMove, From: sq("e2"), To: sq("e4")})
	if resp.Kind != engine.Board {
		t.Fatalf("response = %v (%s), want board", resp.Kind, resp.Reason)
	}
	s := resp.Snapshot
	if s.Turn != types.Black || s.TurnCount != 1 || s.InCheck {
		t.Errorf("snapshot = turn %v count %d check %v", s.Turn, s.TurnCount, s.InCheck)
	}
	if s.LastMove == nil || s.LastMove.String() != "e2-e4" {
		t.Errorf("LastMove = %v, want e2-e4", s.LastMove)
	}
	if p, ok := s.PieceAt(sq("e4")); !ok || p.Type != types.Pawn || !p.HasMoved {
		t.Errorf("e4 = %+v, %v", p, ok)
	}

	wrongSide := h.ask(engine.Request{Kind: engine.MakeMove, From: sq("d2"), To: sq("d4")})
	if wrongSide.Kind != engine.Invalid {
		t.Errorf("white moving twice = %v, want invalid", wrongSide.Kind)
	}
	none := h.ask(engine.Request{Kind: engine.ValidMoves, From: sq("d2")})
	if none.Kind != engine.Moves || len(none.Destinations) != 0 {
		t.Errorf("valid moves for the side not to move = %v", none.Destinations)
	}
}

func TestStalemate(t *testing.T) {
	h := startGame(t, "7k/5K2/8/6Q1/8/8/8/8", types.White)
	resp := h.ask(engine.Request{Kind: engine.MakeMove, From: sq("g5"), To: sq("g6")})
	if resp.Kind != engine.Stalemate {
		t.Fatalf("response = %v, want stalemate", resp.Kind)
	}
	if resp.Snapshot == nil || resp.Snapshot.InCheck {
		t.Errorf("stalemate snapshot = %+v", resp.Snapshot)
	}
}

func TestClocks(t *testing.T) {
	h := startGame(t, "", types.White)
	s := h.board()
	if s.BlackTime != 10*time.Minute {
		t.Errorf("black clock = %v before black's turn, want 10m", s.BlackTime)
	}
	if s.WhiteTime > 10*time.Minute {
		t.Errorf("white clock = %v", s.WhiteTime)
	}
	h.ask(engine.Request{Kind: engine.MakeMove, From: sq("e2"), To: sq("e4")})
	first := h.board().WhiteTime
	time.Sleep(20 * time.Millisecond)
	if second := h.board().WhiteTime; second != first {
		t.Errorf("white clock kept running on black's turn: %v -> %v", first, second)
	}
}

func TestOffBoardRequestIsError(t *testing.T) {
	h := startGame(t, "", types.White)
	resp := h.ask(engine.Request{Kind: engine.ValidMoves, From: types.Square{File: 'z', Rank: 9}})
	if resp.Kind != engine.Error {
		t.Errorf("response = %v, want error", resp.Kind)
	}
	resp = h.ask(engine.Request{Kind: engine.MakeMove, From: sq("e2"), To: types.Square{File: 'e', Rank: 0}})
	if resp.Kind != engine.Error {
		t.Errorf("response = %v, want error", resp.Kind)
	}
	// the engine keeps serving after an error
	if s := h.board(); len(s.Pieces) != 32 {
		t.Errorf("%d pieces after errors", len(s.Pieces))
	}
}

func TestQuit(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	requests := make(chan engine.Request, 1)
	responses := make(chan engine.Response, 1)
	a, err := New(engine.DefaultConfig(), requests, responses, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	go a.Run(context.Background())

	requests <- engine.Request{Kind: engine.Quit}
	waitClosed(t, responses)

	out := buf.String()
	if !strings.Contains(out, `"game":"`+a.ID+`"`) {
		t.Errorf("log lines lack the game id: %s", out)
	}
	if !strings.Contains(out, "quit requested") {
		t.Errorf("quit not logged: %s", out)
	}
}

func TestClosedRequestsStopEngine(t *testing.T) {
	requests := make(chan engine.Request)
	responses := make(chan engine.Response)
	a, err := New(engine.DefaultConfig(), requests, responses, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	go a.Run(context.Background())
	close(requests)
	waitClosed(t, responses)
}

func TestCancelStopsEngine(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, responses, err := Start(ctx, engine.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()
	waitClosed(t, responses)
}

func TestBadPlacement(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Placement = "not/a/board"
	if _, _, err := Start(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Error("Start accepted a bad placement")
	}
}
