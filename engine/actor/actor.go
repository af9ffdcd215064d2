// Package actor runs a chess game on its own goroutine and serves the engine protocol over channels.
package actor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"termchess/engine"
	"termchess/engine/rules"
	"termchess/types"
)

// Channel capacities. The frontend polls responses once per tick, so a few may queue up.
const (
	requestBuffer  = 16
	responseBuffer = 16
)

// Actor owns a Game. Only Run touches it.
type Actor struct {
	ID string

	game      *rules.Game
	clocks    map[types.Side]*engine.Clock
	turnCount int
	lastMove  *types.Move
	finished  bool

	requests  <-chan engine.Request
	responses chan<- engine.Response
	log       zerolog.Logger
}

// New creates an actor for a game set up from cfg. It does nothing until Run is called.
func New(cfg engine.GameConfig, requests <-chan engine.Request, responses chan<- engine.Response, log zerolog.Logger) (*Actor, error) {
	game := rules.NewGame()
	if cfg.Placement != "" {
		var err error
		game, err = rules.NewGameFromPlacement(cfg.Placement, cfg.Turn)
		if err != nil {
			return nil, err
		}
	}
	id := uuid.New().String()
	return &Actor{
		ID:   id,
		game: game,
		clocks: map[types.Side]*engine.Clock{
			types.White: engine.NewClock(cfg.ClockTime),
			types.Black: engine.NewClock(cfg.ClockTime),
		},
		requests:  requests,
		responses: responses,
		log:       log.With().Str("game", id).Logger(),
	}, nil
}

// Start creates the channels, launches Run on a new goroutine and returns the frontend's ends.
func Start(ctx context.Context, cfg engine.GameConfig, log zerolog.Logger) (chan<- engine.Request, <-chan engine.Response, error) {
	requests := make(chan engine.Request, requestBuffer)
	responses := make(chan engine.Response, responseBuffer)
	a, err := New(cfg, requests, responses, log)
	if err != nil {
		return nil, nil, err
	}
	go a.Run(ctx)
	return requests, responses, nil
}

// Run serves requests until Quit, a closed request channel or ctx cancellation.
// It closes the response channel on return.
func (a *Actor) Run(ctx context.Context) {
	defer close(a.responses)
	a.log.Info().Str("placement", a.game.Board.Placement()).Str("turn", a.game.Turn.String()).Msg("engine started")
	a.clocks[a.game.Turn].Start()

	for {
		select {
		case <-ctx.Done():
			a.log.Warn().Err(ctx.Err()).Msg("engine cancelled")
			return
		case req, ok := <-a.requests:
			if !ok {
				a.log.Warn().Msg("request channel closed, stopping engine")
				return
			}
			if req.Kind == engine.Quit {
				a.log.Info().Msg("quit requested")
				return
			}
			resp := a.handle(req)
			select {
			case a.responses <- resp:
			case <-ctx.Done():
				a.log.Warn().Err(ctx.Err()).Str("response", resp.Kind.String()).Msg("engine cancelled while sending")
				return
			}
		}
	}
}

func (a *Actor) handle(req engine.Request) engine.Response {
	a.log.Debug().Str("request", req.Kind.String()).Stringer("from", req.From).Stringer("to", req.To).Msg("request received")
	switch req.Kind {
	case engine.ValidMoves:
		return a.validMoves(req)
	case engine.CheckMove:
		return a.checkMove(req)
	case engine.MakeMove:
		return a.makeMove(req)
	case engine.GetBoardState:
		return engine.Response{Kind: engine.Board, Request: req, Snapshot: a.snapshot()}
	default:
		a.log.Error().Int("kind", int(req.Kind)).Msg("unknown request kind")
		return engine.Response{Kind: engine.Error, Request: req, Reason: "unknown request"}
	}
}

func (a *Actor) validMoves(req engine.Request) engine.Response {
	if a.finished {
		return engine.Response{Kind: engine.Moves, Request: req}
	}
	dests, err := a.game.ValidDestinations(req.From)
	if err != nil {
		return a.failure(req, err)
	}
	return engine.Response{Kind: engine.Moves, Request: req, Destinations: dests}
}

func (a *Actor) checkMove(req engine.Request) engine.Response {
	if a.finished {
		return engine.Response{Kind: engine.Invalid, Request: req, Reason: "game is over"}
	}
	if _, err := a.game.Simulate(types.Move{From: req.From, To: req.To}); err != nil {
		return a.failure(req, err)
	}
	return engine.Response{Kind: engine.MoveValid, Request: req}
}

func (a *Actor) makeMove(req engine.Request) engine.Response {
	if a.finished {
		return engine.Response{Kind: engine.Invalid, Request: req, Reason: "game is over"}
	}
	move := types.Move{From: req.From, To: req.To}
	mover := a.game.Turn
	outcome, err := a.game.Commit(move)
	if err != nil {
		return a.failure(req, err)
	}

	a.clocks[mover].Stop()
	a.clocks[mover.Flipped()].Start()
	a.turnCount++
	a.lastMove = &move
	a.log.Info().Stringer("move", move).Str("side", mover.String()).Str("outcome", outcome.String()).Msg("move committed")

	switch outcome {
	case rules.Checkmate:
		a.finish()
		a.log.Info().Str("winner", mover.String()).Msg("checkmate")
		return engine.Response{Kind: engine.Checkmate, Request: req, Winner: mover, Snapshot: a.snapshot()}
	case rules.Stalemate:
		a.finish()
		a.log.Info().Msg("stalemate")
		return engine.Response{Kind: engine.Stalemate, Request: req, Snapshot: a.snapshot()}
	default:
		return engine.Response{Kind: engine.Board, Request: req, Snapshot: a.snapshot()}
	}
}

func (a *Actor) finish() {
	a.finished = true
	for _, c := range a.clocks {
		c.Stop()
	}
}

// failure turns an error from the rules into a response. Illegal moves are expected;
// anything else is a broken invariant and is logged as an error.
func (a *Actor) failure(req engine.Request, err error) engine.Response {
	if errors.Is(err, rules.ErrIllegalMove) {
		a.log.Debug().Err(err).Msg("move rejected")
		return engine.Response{Kind: engine.Invalid, Request: req, Reason: err.Error()}
	}
	a.log.Error().Err(err).Str("request", req.Kind.String()).Msg("request failed")
	return engine.Response{Kind: engine.Error, Request: req, Reason: err.Error()}
}

func (a *Actor) snapshot() *engine.Snapshot {
	b := a.game.Board
	return &engine.Snapshot{
		Pieces:    b.Pieces(),
		Turn:      a.game.Turn,
		TurnCount: a.turnCount,
		InCheck:   rules.KingAttacked(&b, a.game.Turn),
		WhiteTime: a.clocks[types.White].TimeLeft(),
		BlackTime: a.clocks[types.Black].TimeLeft(),
		LastMove:  a.lastMove,
	}
}
