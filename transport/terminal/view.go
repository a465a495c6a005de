package terminal

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/usecase"
)

const thinkingText = "Computer is thinking..."

var symbolColors = map[string]tcell.Color{
	entity.SymbolX.String(): tcell.ColorAqua,
	entity.SymbolO.String(): tcell.ColorOrange,
}

func renderBoard(table *tview.Table, snapshot usecase.Snapshot) {
	winning := make(map[entity.Position]bool, len(snapshot.WinningLine))
	for _, pos := range snapshot.WinningLine {
		winning[pos] = true
	}

	for i, symbol := range snapshot.Board {
		pos := entity.Position{Row: i / entity.BoardCols, Col: i % entity.BoardCols}

		cell := tview.NewTableCell(tileText(symbol)).
			SetAlign(tview.AlignCenter).
			SetExpansion(1)

		if color, ok := symbolColors[symbol]; ok {
			cell.SetTextColor(color)
		}

		if winning[pos] {
			cell.SetTextColor(tcell.ColorRed).SetAttributes(tcell.AttrBold)
		}

		table.SetCell(pos.Row, pos.Col, cell)
	}
}

// tileText pads a tile to a fixed width so empty cells stay selectable.
func tileText(symbol string) string {
	if symbol == "" {
		return "   "
	}
	return " " + symbol + " "
}

func playerName(player, other usecase.PlayerView, fallback string) string {
	switch {
	case player.Computer:
		return "Computer"
	case other.Computer:
		return "You"
	default:
		return fallback
	}
}

func playerText(player, other usecase.PlayerView, fallback string, current bool) string {
	text := fmt.Sprintf("%s (%s): %d", playerName(player, other, fallback), player.Symbol, player.Score)
	if current {
		return "[yellow::b]" + text + "[-:-:-]"
	}
	return text
}

// scoreText - both players with their scores, the one to move highlighted.
func scoreText(snapshot usecase.Snapshot) string {
	live := snapshot.State == entity.OutcomeInProgress

	one := playerText(snapshot.PlayerOne, snapshot.PlayerTwo, "Player 1", live && snapshot.PlayerOneTurn)
	two := playerText(snapshot.PlayerTwo, snapshot.PlayerOne, "Player 2", live && !snapshot.PlayerOneTurn)

	return one + "  |  " + two
}

// current returns the player to move, which after a win is the winner.
func current(snapshot usecase.Snapshot) (usecase.PlayerView, string) {
	if snapshot.PlayerOneTurn {
		return snapshot.PlayerOne, playerName(snapshot.PlayerOne, snapshot.PlayerTwo, "Player 1")
	}
	return snapshot.PlayerTwo, playerName(snapshot.PlayerTwo, snapshot.PlayerOne, "Player 2")
}

func statusText(snapshot usecase.Snapshot) string {
	if snapshot.State.IsFinished() {
		return resultText(snapshot)
	}

	player, name := current(snapshot)
	if player.Computer {
		return thinkingText
	}

	return fmt.Sprintf("%s (%s) to move", name, player.Symbol)
}

func resultText(snapshot usecase.Snapshot) string {
	switch snapshot.State {
	case entity.OutcomeWin:
		player, name := current(snapshot)
		switch {
		case player.Computer:
			return "The computer wins!"
		case name == "You":
			return "You win!"
		default:
			return fmt.Sprintf("%s (%s) wins!", name, player.Symbol)
		}
	case entity.OutcomeTie:
		return "It's a tie!"
	default:
		return ""
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidMove):
		return "That tile is taken."
	case errors.Is(err, apperror.ErrOutOfRange):
		return "Pick a tile on the board."
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over."
	default:
		return "Something went wrong: " + err.Error()
	}
}
