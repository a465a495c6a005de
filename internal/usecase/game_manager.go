package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-classic/internal/config"
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/tictactoe"
)

// TurnResult describes one applied move.
type TurnResult struct {
	Position entity.Position
	Symbol   entity.Symbol
	Outcome  entity.Outcome
	// ComputerNext is set when the game goes on and the computer is to move.
	ComputerNext bool
}

type PlayerView struct {
	Symbol   entity.Symbol
	Score    int
	Computer bool
}

// Snapshot is everything the presentation needs to draw the game.
type Snapshot struct {
	ID            string
	Board         [entity.TilesCount]string
	PlayerOne     PlayerView
	PlayerTwo     PlayerView
	PlayerOneTurn bool
	State         entity.Outcome
	WinningLine   []entity.Position
}

// GameManager drives a single session for the presentation layer. It paces the
// computer's moves and serializes access, since the computer moves off the UI goroutine.
type GameManager struct {
	logger   *slog.Logger
	conf     config.Game
	strategy *tictactoe.Strategy

	mu      sync.Mutex
	id      string
	session *tictactoe.Session
}

func NewGameManager(logger *slog.Logger, conf config.Game, strategy *tictactoe.Strategy) *GameManager {
	if strategy == nil {
		strategy = tictactoe.NewStrategy(nil)
	}

	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		conf:     conf,
		strategy: strategy,
	}
}

// StartFromConfig starts the session configured in game.mode.
// It reports false when the mode is left for the player to choose.
func (that *GameManager) StartFromConfig() (bool, error) {
	if that.conf.Mode == config.ModeAsk {
		return false, nil
	}

	symbol, err := entity.ParseSymbol(that.conf.PlayerOneSymbol)
	if err != nil {
		return false, fmt.Errorf("invalid player-one-symbol: %w", err)
	}

	switch that.conf.Mode {
	case config.ModeTwo:
		err = that.StartTwoPlayer(symbol)
	case config.ModeSingle:
		err = that.StartSinglePlayer(symbol, !that.conf.ComputerFirst)
	default:
		err = fmt.Errorf("%w: %q", config.ErrUnknownMode, that.conf.Mode)
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// StartTwoPlayer - starts a hot-seat game; player two gets the other symbol.
func (that *GameManager) StartTwoPlayer(symbolOne entity.Symbol) error {
	session, err := tictactoe.NewSession(symbolOne, symbolOne.Opponent())
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	that.start(session, "two_player")

	return nil
}

// StartSinglePlayer - starts a game against the computer, which gets the other symbol.
func (that *GameManager) StartSinglePlayer(humanSymbol entity.Symbol, humanFirst bool) error {
	session, err := tictactoe.NewSingleSession(humanSymbol, humanSymbol.Opponent(), humanFirst, that.strategy)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	that.start(session, "single_player")

	return nil
}

func (that *GameManager) start(session *tictactoe.Session, mode string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.id = uuid.NewString()
	that.session = session

	that.logger.Info("Session started",
		"session", that.id,
		"mode", mode,
		"player_one", session.PlayerOne().Symbol().String(),
		"player_one_kind", session.PlayerOne().Kind().String(),
		"player_two", session.PlayerTwo().Symbol().String(),
		"player_two_kind", session.PlayerTwo().Kind().String(),
	)
}

// Started reports whether a session exists.
func (that *GameManager) Started() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session != nil
}

// ComputerToMove reports whether the presentation should call ComputerTurn now.
func (that *GameManager) ComputerToMove() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.computerToMove()
}

func (that *GameManager) computerToMove() bool {
	return that.session != nil &&
		that.session.State() == entity.OutcomeInProgress &&
		that.session.IsComputer(that.session.CurrentPlayer())
}

// MakeTurn plays a human move at (row, col).
func (that *GameManager) MakeTurn(row, col int) (*TurnResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return nil, apperror.ErrSessionNotStarted
	}

	log := that.logger.With("method", "MakeTurn", "session", that.id)

	mover := that.session.CurrentPlayer()
	if that.session.IsComputer(mover) {
		return nil, fmt.Errorf("%w: waiting for the computer", apperror.ErrInvalidMove)
	}

	outcome, err := that.session.AttemptMove(row, col)
	if err != nil {
		log.Debug("Move rejected", "row", row, "col", col, "error", err)
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	result := that.result(mover, entity.Position{Row: row, Col: col}, outcome)
	that.logTurn(log, result)

	return result, nil
}

// ComputerTurn waits the configured think time, then lets the computer move.
func (that *GameManager) ComputerTurn(ctx context.Context) (*TurnResult, error) {
	if err := that.think(ctx); err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return nil, apperror.ErrSessionNotStarted
	}

	log := that.logger.With("method", "ComputerTurn", "session", that.id)

	mover := that.session.CurrentPlayer()

	pos, outcome, err := that.session.ComputerMove()
	if err != nil {
		return nil, fmt.Errorf("failed computer turn: %w", err)
	}

	result := that.result(mover, pos, outcome)
	that.logTurn(log, result)

	return result, nil
}

func (that *GameManager) think(ctx context.Context) error {
	if that.conf.ComputerThinkTime <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(that.conf.ComputerThinkTime)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("computer turn canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (that *GameManager) result(mover *entity.Player, pos entity.Position, outcome entity.Outcome) *TurnResult {
	return &TurnResult{
		Position:     pos,
		Symbol:       mover.Symbol(),
		Outcome:      outcome,
		ComputerNext: that.computerToMove(),
	}
}

func (that *GameManager) logTurn(log *slog.Logger, result *TurnResult) {
	log.Debug("Turn made",
		"symbol", result.Symbol.String(),
		"position", result.Position.String(),
		"outcome", result.Outcome.String(),
	)

	switch result.Outcome {
	case entity.OutcomeWin:
		log.Info("Game won",
			"winner", result.Symbol.String(),
			"score_one", that.session.PlayerOne().Score(),
			"score_two", that.session.PlayerTwo().Score(),
		)
	case entity.OutcomeTie:
		log.Info("Game tied")
	}
}

// PlayAgain clears the board and keeps the scores. Player one starts again.
func (that *GameManager) PlayAgain() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return apperror.ErrSessionNotStarted
	}

	that.session.Reset()
	that.logger.Info("Session reset", "session", that.id)

	return nil
}

// Stop drops the current session; scores are lost.
func (that *GameManager) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session != nil {
		that.logger.Info("Session closed", "session", that.id)
	}

	that.session = nil
	that.id = ""
}

func (that *GameManager) Snapshot() (Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return Snapshot{}, apperror.ErrSessionNotStarted
	}

	board := that.session.Board()

	snapshot := Snapshot{
		ID:            that.id,
		Board:         board.Symbols(),
		PlayerOne:     playerView(that.session.PlayerOne()),
		PlayerTwo:     playerView(that.session.PlayerTwo()),
		PlayerOneTurn: that.session.IsPlayerOneTurn(),
		State:         that.session.State(),
	}

	if line, _, ok := entity.WinningLine(&board); ok {
		snapshot.WinningLine = line[:]
	}

	return snapshot, nil
}

func playerView(player *entity.Player) PlayerView {
	return PlayerView{
		Symbol:   player.Symbol(),
		Score:    player.Score(),
		Computer: player.IsComputer(),
	}
}
