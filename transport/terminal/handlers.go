package terminal

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-classic/internal/usecase"
)

func (that *Server) handleStart() {
	log := that.logger.With("method", "handleStart")

	var err error
	if that.choice.single {
		err = that.uGame.StartSinglePlayer(that.choice.symbol, !that.choice.computerFirst)
	} else {
		err = that.uGame.StartTwoPlayer(that.choice.symbol)
	}

	if err != nil {
		log.Error("Failed to start game", "error", err)
		return
	}

	that.showGame()
}

func (that *Server) handleSelect(row, col int) {
	log := that.logger.With("method", "handleSelect")

	if that.thinking {
		that.status.SetText(thinkingText)
		return
	}

	result, err := that.uGame.MakeTurn(row, col)
	if err != nil {
		log.Debug("Turn rejected", "row", row, "col", col, "error", err)
		that.status.SetText(errorText(err))
		return
	}

	that.afterTurn(result)
}

func (that *Server) handleResult(_ int, label string) {
	log := that.logger.With("method", "handleResult")

	switch label {
	case buttonPlayAgain:
		if err := that.uGame.PlayAgain(); err != nil {
			log.Error("Failed to reset game", "error", err)
			that.goHome()
			return
		}
		that.showGame()
	case buttonHome:
		that.goHome()
	case buttonQuit:
		that.app.Stop()
	}
}

// afterTurn redraws and either ends the game or hands over to the computer.
func (that *Server) afterTurn(result *usecase.TurnResult) {
	snapshot := that.refresh()

	if result.Outcome.IsFinished() {
		that.showResult(snapshot)
		return
	}

	if result.ComputerNext {
		that.computerTurn()
	}
}

// computerTurn runs the computer's move off the event loop and applies it there.
func (that *Server) computerTurn() {
	if that.thinking || that.turnCtx == nil {
		return
	}

	log := that.logger.With("method", "computerTurn")

	that.thinking = true
	that.status.SetText(thinkingText)

	ctx := that.turnCtx

	go func() {
		result, err := that.uGame.ComputerTurn(ctx)

		that.app.QueueUpdateDraw(func() {
			// the game was left while the computer was thinking
			if ctx.Err() != nil {
				return
			}

			that.thinking = false

			if err != nil {
				log.Error("Computer failed to move", "error", err)
				that.status.SetText(errorText(err))
				return
			}

			that.afterTurn(result)
		})
	}()
}

// showGame switches to the board for a fresh or reset game.
func (that *Server) showGame() {
	that.stopTurn()
	that.turnCtx, that.cancelTurn = context.WithCancel(that.ctx)

	that.pages.HidePage(pageResult)
	that.pages.SwitchToPage(pageGame)
	that.board.Select(1, 1)
	that.refresh()

	if that.uGame.ComputerToMove() {
		that.computerTurn()
	}
}

func (that *Server) showResult(snapshot usecase.Snapshot) {
	that.result.SetText(resultText(snapshot))
	that.result.SetFocus(0)
	that.pages.ShowPage(pageResult)
	that.app.SetFocus(that.result)
}

func (that *Server) goHome() {
	that.stopTurn()
	that.uGame.Stop()

	that.pages.HidePage(pageResult)
	that.pages.SwitchToPage(pageHome)
}

// stopTurn cancels a pending computer move.
func (that *Server) stopTurn() {
	if that.cancelTurn != nil {
		that.cancelTurn()
	}

	that.turnCtx = nil
	that.cancelTurn = nil
	that.thinking = false
}

// refresh redraws score, board and status from the current snapshot.
func (that *Server) refresh() usecase.Snapshot {
	snapshot, err := that.uGame.Snapshot()
	if err != nil {
		that.logger.Error("Failed to read game", "error", err)
		return snapshot
	}

	that.score.SetText(scoreText(snapshot))
	that.status.SetText(statusText(snapshot))
	renderBoard(that.board, snapshot)

	return snapshot
}
