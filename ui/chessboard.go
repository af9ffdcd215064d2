// Package ui specifies custom controls for tview to play chess in the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"termchess/config"
	"termchess/engine"
	"termchess/types"
)

// Each square is drawn 3 cells wide; the rank labels take the first 3 columns.
const (
	squareWidth = 3
	labelWidth  = 3
)

// MoveEntry is one committed move, as shown in the move history.
type MoveEntry struct {
	Side types.Side
	Move types.Move
}

type ChessBoardUI struct {
	Box      *tview.Box
	Snapshot *engine.Snapshot
	hint     *tview.TextView
	cfg      *config.Config
	log      zerolog.Logger

	requests  chan<- engine.Request
	responses <-chan engine.Response

	cursor       types.Square
	selected     *types.Square
	validMoves   []types.Square
	moveHistory  []MoveEntry
	finished     bool
	disconnected bool
	status       string
	styles       []tcell.Color
	infoPanel    *GameInfoPanel
}

func NewChessBoard(c *config.Config, hint *tview.TextView, log zerolog.Logger) *ChessBoardUI {
	board := &ChessBoardUI{
		Box:    tview.NewBox(),
		hint:   hint,
		log:    log,
		cursor: types.Square{File: 'e', Rank: 2},
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	return board
}

// ConnectEngine attaches the board to an engine's channels and asks for the initial position.
func (g *ChessBoardUI) ConnectEngine(requests chan<- engine.Request, responses <-chan engine.Response) {
	g.requests = requests
	g.responses = responses
	g.finished = false
	g.disconnected = false
	g.moveHistory = nil
	g.ResetSelection()
	g.send(engine.Request{Kind: engine.GetBoardState})
	g.refreshHint()
}

// send queues a request without blocking the UI. A full queue drops the request.
func (g *ChessBoardUI) send(req engine.Request) bool {
	if g.requests == nil || g.disconnected {
		return false
	}
	select {
	case g.requests <- req:
		return true
	default:
		g.log.Warn().Str("request", req.Kind.String()).Msg("engine busy, request dropped")
		return false
	}
}

// RequestState asks the engine for a fresh snapshot, e.g. to refresh the clocks.
func (g *ChessBoardUI) RequestState() {
	if !g.finished {
		g.send(engine.Request{Kind: engine.GetBoardState})
	}
}

// PollEngine handles at most one pending response and never blocks.
// Returns true if something changed.
func (g *ChessBoardUI) PollEngine() bool {
	if g.responses == nil || g.disconnected {
		return false
	}
	select {
	case resp, ok := <-g.responses:
		if !ok {
			g.disconnected = true
			g.status = "Engine stopped"
			g.log.Warn().Msg("response channel closed")
			g.refreshHint()
			return true
		}
		g.handleResponse(resp)
		return true
	default:
		return false
	}
}

func (g *ChessBoardUI) handleResponse(resp engine.Response) {
	switch resp.Kind {
	case engine.Moves:
		if g.selected != nil && *g.selected == resp.Request.From {
			g.validMoves = resp.Destinations
		}
	case engine.MoveValid:
		g.status = fmt.Sprintf("%s is playable", resp.Request.From.String()+"-"+resp.Request.To.String())
	case engine.Board:
		g.applySnapshot(resp)
	case engine.Invalid:
		g.status = "Invalid move"
		g.log.Debug().Str("reason", resp.Reason).Msg("move rejected")
	case engine.Stalemate:
		g.applySnapshot(resp)
		g.finished = true
		g.status = "Stalemate"
	case engine.Checkmate:
		g.applySnapshot(resp)
		g.finished = true
		g.status = fmt.Sprintf("Checkmate, %s wins", resp.Winner)
	case engine.Error:
		g.status = "Engine error"
		g.log.Error().Str("reason", resp.Reason).Msg("engine error")
	}
	g.refreshHint()
}

func (g *ChessBoardUI) applySnapshot(resp engine.Response) {
	if resp.Snapshot == nil {
		return
	}
	if resp.Request.Kind == engine.MakeMove {
		g.moveHistory = append(g.moveHistory, MoveEntry{
			Side: resp.Snapshot.Turn.Flipped(),
			Move: types.Move{From: resp.Request.From, To: resp.Request.To},
		})
		g.status = ""
	}
	g.Snapshot = resp.Snapshot
}

// MoveCursor shifts the cursor by ranks and files, staying on the board.
func (g *ChessBoardUI) MoveCursor(ranks, files int) {
	if sq, ok := g.cursor.Offset(ranks, files); ok {
		g.cursor = sq
	}
}

// Cursor returns the square under the cursor.
func (g *ChessBoardUI) Cursor() types.Square {
	return g.cursor
}

// SelectedSquare returns the picked-up square, or nil.
func (g *ChessBoardUI) SelectedSquare() *types.Square {
	return g.selected
}

// Select picks up the piece under the cursor, or plays the picked-up piece to the cursor.
func (g *ChessBoardUI) Select() {
	if g.finished || g.Snapshot == nil {
		return
	}
	if g.selected != nil {
		from := *g.selected
		if from != g.cursor && containsSquare(g.validMoves, g.cursor) {
			g.send(engine.Request{Kind: engine.MakeMove, From: from, To: g.cursor})
		}
		g.ResetSelection()
		return
	}
	p, ok := g.Snapshot.PieceAt(g.cursor)
	if !ok || p.Side != g.Snapshot.Turn {
		return
	}
	sq := g.cursor
	g.selected = &sq
	g.validMoves = nil
	g.send(engine.Request{Kind: engine.ValidMoves, From: sq})
}

// ResetSelection drops the picked-up piece.
func (g *ChessBoardUI) ResetSelection() {
	g.selected = nil
	g.validMoves = nil
}

// Close stops the engine.
func (g *ChessBoardUI) Close() {
	g.send(engine.Request{Kind: engine.Quit})
}

// IsFinished returns true if the game is over.
func (g *ChessBoardUI) IsFinished() bool {
	return g.finished
}

func (g *ChessBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.LightSquare),         // 0
		tcell.PaletteColor(c.Theme.Colors.DarkSquare),          // 1
		tcell.PaletteColor(c.Theme.Colors.LightSquareSelected), // 2
		tcell.PaletteColor(c.Theme.Colors.DarkSquareSelected),  // 3
		tcell.PaletteColor(c.Theme.Colors.ValidMove),           // 4
		tcell.PaletteColor(c.Theme.Colors.PickedSquare),        // 5
		tcell.PaletteColor(c.Theme.Colors.WhitePiece),          // 6
		tcell.PaletteColor(c.Theme.Colors.BlackPiece),          // 7
		tcell.PaletteColor(c.Theme.Colors.LastMove),            // 8
	}
	g.cfg = c
}

func (g *ChessBoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if g.Snapshot == nil {
		return x, y, 1, 1
	}
	for rank := 8; rank >= 1; rank-- {
		row := 8 - rank
		for f := 0; f < 8; f++ {
			sq := types.Square{File: byte('a' + f), Rank: rank}
			style := tcell.StyleDefault.Background(g.styles[g.squareStyle(sq)])
			r := ' '
			if p, ok := g.Snapshot.PieceAt(sq); ok {
				r = g.pieceRune(p.Type)
				fg := g.styles[6]
				if p.Side == types.Black {
					fg = g.styles[7]
				}
				style = style.Foreground(fg).Bold(true)
			}
			drawSquare(screen, style, r, x+labelWidth+f*squareWidth, y+row)
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, labelWidth + 8*squareWidth, 9
}

// squareStyle picks the background index for sq.
func (g *ChessBoardUI) squareStyle(sq types.Square) int {
	light := (int(sq.File-'a')+sq.Rank)%2 == 0
	switch {
	case g.selected != nil && *g.selected == sq:
		return 5
	case sq == g.cursor && light:
		return 2
	case sq == g.cursor:
		return 3
	case containsSquare(g.validMoves, sq):
		return 4
	case g.cfg.Theme.DrawLastMoveBackground && g.Snapshot.LastMove != nil &&
		(g.Snapshot.LastMove.From == sq || g.Snapshot.LastMove.To == sq):
		return 8
	case light:
		return 0
	default:
		return 1
	}
}

func (g *ChessBoardUI) pieceRune(pt types.PieceType) rune {
	s := g.cfg.Theme.Symbols
	switch pt {
	case types.King:
		return s.King
	case types.Queen:
		return s.Queen
	case types.Rook:
		return s.Rook
	case types.Bishop:
		return s.Bishop
	case types.Knight:
		return s.Knight
	case types.Pawn:
		return s.Pawn
	}
	return '?'
}

// drawSquare draws one 3-wide square with the piece in the middle.
func drawSquare(s tcell.Screen, c tcell.Style, r rune, l, t int) {
	s.SetContent(l, t, ' ', nil, c)
	s.SetContent(l+1, t, r, nil, c)
	s.SetContent(l+2, t, ' ', nil, c)
}

func (g *ChessBoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[3])
	for f := 0; f < 8; f++ {
		_style := style
		if byte('a'+f) == g.cursor.File {
			_style = highlight
		}
		l := x + labelWidth + f*squareWidth
		s.SetContent(l, y+8, ' ', nil, _style)
		s.SetContent(l+1, y+8, rune('a'+f), nil, _style)
		s.SetContent(l+2, y+8, ' ', nil, _style)
	}
	for rank := 1; rank <= 8; rank++ {
		_style := style
		if rank == g.cursor.Rank {
			_style = highlight
		}
		s.SetContent(x+1, y+8-rank, rune('0'+rank), nil, _style)
	}
}

func containsSquare(squares []types.Square, sq types.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

func (g *ChessBoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetSnapshot(g.Snapshot)
	}

	var statusLine, turnLine, controlsLine string

	if g.finished {
		statusLine = "───────── Game Complete ─────────\n"
		turnLine = fmt.Sprintf("  Result: %s\n", g.status)
		controlsLine = "  q · quit"
	} else {
		if g.status != "" {
			statusLine = fmt.Sprintf("  %s\n", g.status)
		}
		if g.Snapshot != nil {
			check := ""
			if g.Snapshot.InCheck {
				check = " · check!"
			}
			turnLine = fmt.Sprintf("  %s to move%s\n", g.Snapshot.Turn, check)
		} else {
			turnLine = "  ◌ Waiting for engine...\n"
		}
		controlsLine = "  hjkl/↑↓←→ move   space/⏎ select   esc cancel   q quit"
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}
