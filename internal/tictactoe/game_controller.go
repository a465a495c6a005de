package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
)

// Session is one game between two players on one board. Scores survive Reset.
// A Session is not safe for concurrent use.
type Session struct {
	board *entity.Board

	playerOne *entity.Player
	playerTwo *entity.Player
	current   *entity.Player

	state    entity.Outcome
	strategy *Strategy
}

// NewSession - creates a game between two humans. Player one moves first.
func NewSession(symbolOne, symbolTwo entity.Symbol) (*Session, error) {
	if err := validateSymbols(symbolOne, symbolTwo); err != nil {
		return nil, err
	}

	playerOne, err := entity.NewHuman(symbolOne)
	if err != nil {
		return nil, fmt.Errorf("failed to create player one: %w", err)
	}

	playerTwo, err := entity.NewHuman(symbolTwo)
	if err != nil {
		return nil, fmt.Errorf("failed to create player two: %w", err)
	}

	return newSession(playerOne, playerTwo, nil), nil
}

// NewSingleSession - creates a game between a human and the computer.
// When humanFirst is false the computer is player one and the caller is
// expected to request its first move right away.
func NewSingleSession(humanSymbol, computerSymbol entity.Symbol, humanFirst bool, strategy *Strategy) (*Session, error) {
	if err := validateSymbols(humanSymbol, computerSymbol); err != nil {
		return nil, err
	}

	human, err := entity.NewHuman(humanSymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create human player: %w", err)
	}

	computer, err := entity.NewComputer(computerSymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create computer player: %w", err)
	}

	if strategy == nil {
		strategy = NewStrategy(nil)
	}

	if humanFirst {
		return newSession(human, computer, strategy), nil
	}

	return newSession(computer, human, strategy), nil
}

func newSession(playerOne, playerTwo *entity.Player, strategy *Strategy) *Session {
	return &Session{
		board:     entity.NewBoard(),
		playerOne: playerOne,
		playerTwo: playerTwo,
		current:   playerOne,
		state:     entity.OutcomeInProgress,
		strategy:  strategy,
	}
}

// validateSymbols - both symbols must be canonical and different.
func validateSymbols(first, second entity.Symbol) error {
	if !first.IsValid() || !second.IsValid() {
		return fmt.Errorf("%w: got %q and %q", apperror.ErrInvalidSymbol, rune(first), rune(second))
	}

	if first == second {
		return fmt.Errorf("%w: both players use %s", apperror.ErrInvalidSymbol, first)
	}

	return nil
}

// AttemptMove plays (row, col) for the current player.
// An invalid move changes nothing and keeps the turn.
func (that *Session) AttemptMove(row, col int) (entity.Outcome, error) {
	if that.state.IsFinished() {
		return entity.OutcomeInvalidMove, apperror.ErrGameFinished
	}

	return that.apply(that.current, row, col)
}

// ComputerMove lets the current player, which must be the computer, choose and play a move.
func (that *Session) ComputerMove() (entity.Position, entity.Outcome, error) {
	if that.state.IsFinished() {
		return entity.Position{}, entity.OutcomeInvalidMove, apperror.ErrGameFinished
	}

	if !that.current.IsComputer() {
		return entity.Position{}, entity.OutcomeInvalidMove, apperror.ErrNotComputerTurn
	}

	decision, err := that.strategy.SelectMove(that.board, that.current.Symbol(), that.WaitingPlayer().Symbol())
	if err != nil {
		return entity.Position{}, entity.OutcomeInvalidMove, fmt.Errorf("failed to select computer move: %w", err)
	}

	outcome, err := that.apply(that.current, decision.Position.Row, decision.Position.Col)
	if err != nil {
		return decision.Position, outcome, fmt.Errorf("computer failed to make turn: %w", err)
	}

	return decision.Position, outcome, nil
}

// apply - makes the move and updates score and turn.
func (that *Session) apply(player *entity.Player, row, col int) (entity.Outcome, error) {
	outcome, err := player.AttemptMove(that.board, row, col)
	if err != nil {
		return entity.OutcomeInvalidMove, fmt.Errorf("invalid turn: %w", err)
	}

	// on a win or a tie the mover stays current
	switch outcome {
	case entity.OutcomeWin:
		player.IncreaseScore()
	case entity.OutcomeInProgress:
		that.SwitchTurns()
	}

	that.state = outcome

	return outcome, nil
}

// SwitchTurns swaps the current and the waiting player.
func (that *Session) SwitchTurns() {
	if that.current.Is(that.playerOne) {
		that.current = that.playerTwo
	} else {
		that.current = that.playerOne
	}
}

// Reset - clears the board for a new game. Scores are kept and player one moves first.
func (that *Session) Reset() {
	that.board.Reset()
	that.current = that.playerOne
	that.state = entity.OutcomeInProgress
}

func (that *Session) PlayerOne() *entity.Player {
	return that.playerOne
}

func (that *Session) PlayerTwo() *entity.Player {
	return that.playerTwo
}

func (that *Session) CurrentPlayer() *entity.Player {
	return that.current
}

func (that *Session) WaitingPlayer() *entity.Player {
	if that.current.Is(that.playerOne) {
		return that.playerTwo
	}
	return that.playerOne
}

func (that *Session) IsComputer(player *entity.Player) bool {
	return player != nil && player.IsComputer()
}

func (that *Session) IsPlayerOneTurn() bool {
	return that.current.Is(that.playerOne)
}

func (that *Session) TileAt(row, col int) (entity.Tile, error) {
	return that.board.TileAt(row, col)
}

func (that *Session) FilledCount() int {
	return that.board.FilledCount()
}

// State is the outcome of the last valid move, OutcomeInProgress for a fresh board.
func (that *Session) State() entity.Outcome {
	return that.state
}

// Board returns a copy of the board.
func (that *Session) Board() entity.Board {
	return *that.board
}
