package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/engine"
	"termchess/types"
)

// PanelColors is the palette for the frame around the board.
var PanelColors = struct {
	Border tcell.Color
	Title  tcell.Color
	Hint   tcell.Color
}{
	Border: tcell.PaletteColor(60),
	Title:  tcell.PaletteColor(255),
	Hint:   tcell.PaletteColor(245),
}

// historyRows is how many moves the side panel lists before scrolling.
const historyRows = 12

// GameInfoPanel displays clocks, turn and move history alongside the board.
type GameInfoPanel struct {
	box         *tview.TextView
	snapshot    *engine.Snapshot
	moveHistory *[]MoveEntry
}

func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}
	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)
	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

func (p *GameInfoPanel) SetSnapshot(s *engine.Snapshot) {
	p.snapshot = s
	p.refresh()
}

// SetMoveHistory points the panel at the board's move history.
func (p *GameInfoPanel) SetMoveHistory(history *[]MoveEntry) {
	p.moveHistory = history
}

func (p *GameInfoPanel) refresh() {
	p.box.SetText(p.text())
}

func (p *GameInfoPanel) text() string {
	if p.snapshot == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString("[white::b]Game Info[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&b, "[white]Turn:[-:-:-] %d\n", p.snapshot.TurnCount)
	fmt.Fprintf(&b, "[white]To move:[-:-:-] %s\n", p.snapshot.Turn)
	fmt.Fprintf(&b, "%s %s\n", clockLabel(types.White, p.snapshot.Turn), formatClock(p.snapshot.WhiteTime))
	fmt.Fprintf(&b, "%s %s\n", clockLabel(types.Black, p.snapshot.Turn), formatClock(p.snapshot.BlackTime))
	if p.snapshot.InCheck {
		b.WriteString("[red::b]Check![-:-:-]\n")
	}

	if p.moveHistory == nil || len(*p.moveHistory) == 0 {
		return b.String()
	}

	b.WriteString("\n[white::b]Moves[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")

	moves := *p.moveHistory
	start := 0
	if len(moves) > historyRows {
		start = len(moves) - historyRows
	}
	for i := start; i < len(moves); i++ {
		m := moves[i]
		side := "[white]W[-]"
		if m.Side == types.Black {
			side = "[dimgray]B[-]"
		}
		marker := " "
		if i == len(moves)-1 {
			marker = "[white]>[-]"
		}
		fmt.Fprintf(&b, "%s[dimgray]%3d.[-] %s %s\n", marker, i+1, side, m.Move)
	}
	if start > 0 {
		fmt.Fprintf(&b, "[dimgray]  ··· %d earlier[-]\n", start)
	}
	return b.String()
}

func clockLabel(side, turn types.Side) string {
	if side == turn {
		return fmt.Sprintf("[yellow]%s:[-:-:-]", side)
	}
	return fmt.Sprintf("[white]%s:[-:-:-]", side)
}

// formatClock renders d as mm:ss.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *ChessBoardUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel
	infoPanel.SetMoveHistory(&board.moveHistory)

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 5, 0, false)

	return mainFlex
}
