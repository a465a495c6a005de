package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-classic/internal/config"
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-classic/testing/suite"
)

func TestGameManager_NotStarted(t *testing.T) {
	ctx, st := suite.New(t)
	manager := NewGameManager(st.Logger, config.Game{}, nil)

	assert.False(t, manager.Started())
	assert.False(t, manager.ComputerToMove())

	_, err := manager.MakeTurn(0, 0)
	require.ErrorIs(t, err, apperror.ErrSessionNotStarted)

	_, err = manager.ComputerTurn(ctx)
	require.ErrorIs(t, err, apperror.ErrSessionNotStarted)

	_, err = manager.Snapshot()
	require.ErrorIs(t, err, apperror.ErrSessionNotStarted)

	require.ErrorIs(t, manager.PlayAgain(), apperror.ErrSessionNotStarted)
}

func TestGameManager_TwoPlayer(t *testing.T) {
	t.Run("Alternates turns and reports moves", func(t *testing.T) {
		// Given: a hot-seat game where player one plays O
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, config.Game{}, nil)
		require.NoError(t, manager.StartTwoPlayer(entity.SymbolO))

		// When: player one plays the center
		result, err := manager.MakeTurn(1, 1)

		// Then: the move is O's and player two is next
		require.NoError(t, err)
		assert.Equal(t, entity.Position{Row: 1, Col: 1}, result.Position)
		assert.Equal(t, entity.SymbolO, result.Symbol)
		assert.Equal(t, entity.OutcomeInProgress, result.Outcome)
		assert.False(t, result.ComputerNext)

		snapshot, err := manager.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, entity.SymbolX, snapshot.PlayerTwo.Symbol)
		assert.False(t, snapshot.PlayerOneTurn)
		assert.Equal(t, "O", snapshot.Board[4])

		_, err = uuid.Parse(snapshot.ID)
		assert.NoError(t, err)
	})

	t.Run("Rejected move keeps the turn", func(t *testing.T) {
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, config.Game{}, nil)
		require.NoError(t, manager.StartTwoPlayer(entity.SymbolX))

		_, err := manager.MakeTurn(0, 0)
		require.NoError(t, err)

		_, err = manager.MakeTurn(0, 0)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)

		_, err = manager.MakeTurn(3, 0)
		require.ErrorIs(t, err, apperror.ErrOutOfRange)

		snapshot, err := manager.Snapshot()
		require.NoError(t, err)
		assert.False(t, snapshot.PlayerOneTurn)
	})

	t.Run("Win is scored and play again keeps the score", func(t *testing.T) {
		// Given: X is about to complete the top row
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, config.Game{}, nil)
		require.NoError(t, manager.StartTwoPlayer(entity.SymbolX))

		for _, pos := range []entity.Position{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}} {
			_, err := manager.MakeTurn(pos.Row, pos.Col)
			require.NoError(t, err)
		}

		// When: X plays the last cell of the row
		result, err := manager.MakeTurn(0, 2)

		// Then: the game is won and the line is reported
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeWin, result.Outcome)

		snapshot, err := manager.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeWin, snapshot.State)
		assert.Equal(t, 1, snapshot.PlayerOne.Score)
		assert.Equal(t, []entity.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, snapshot.WinningLine)

		_, err = manager.MakeTurn(2, 2)
		require.ErrorIs(t, err, apperror.ErrGameFinished)

		// When: the players start over
		require.NoError(t, manager.PlayAgain())

		// Then: the board is empty, player one starts and the score survives
		snapshot, err = manager.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, [entity.TilesCount]string{}, snapshot.Board)
		assert.True(t, snapshot.PlayerOneTurn)
		assert.Equal(t, entity.OutcomeInProgress, snapshot.State)
		assert.Equal(t, 1, snapshot.PlayerOne.Score)
		assert.Empty(t, snapshot.WinningLine)
	})
}

func TestGameManager_SinglePlayer(t *testing.T) {
	t.Run("Computer opens when it goes first", func(t *testing.T) {
		// Given: the human plays O and lets the computer start
		ctx, st := suite.New(t)
		random := suite.NewMockRandom(t).
			Draws(2, 0).
			Draws(entity.BoardRows, 1, 1)
		manager := NewGameManager(st.Logger, config.Game{}, tictactoe.NewStrategy(random))
		require.NoError(t, manager.StartSinglePlayer(entity.SymbolO, false))
		require.True(t, manager.ComputerToMove())

		// When: the human tries to move out of turn
		_, err := manager.MakeTurn(0, 0)

		// Then: the move is refused
		require.ErrorIs(t, err, apperror.ErrInvalidMove)

		// When: the computer moves
		result, err := manager.ComputerTurn(ctx)

		// Then: X takes the drawn tile and hands the turn back
		require.NoError(t, err)
		assert.Equal(t, entity.SymbolX, result.Symbol)
		assert.Equal(t, entity.Position{Row: 1, Col: 1}, result.Position)
		assert.False(t, result.ComputerNext)
		assert.False(t, manager.ComputerToMove())
	})

	t.Run("Human move hands the turn to the computer", func(t *testing.T) {
		ctx, st := suite.New(t)
		manager := NewGameManager(st.Logger, config.Game{}, tictactoe.NewStrategy(suite.NewMockRandom(t)))
		require.NoError(t, manager.StartSinglePlayer(entity.SymbolX, true))

		result, err := manager.MakeTurn(0, 0)
		require.NoError(t, err)
		assert.True(t, result.ComputerNext)

		snapshot, err := manager.Snapshot()
		require.NoError(t, err)
		assert.True(t, snapshot.PlayerTwo.Computer)
		assert.False(t, snapshot.PlayerOne.Computer)

		_, err = manager.MakeTurn(1, 1)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)

		ctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err = manager.ComputerTurn(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Think time is cut short by cancellation", func(t *testing.T) {
		// Given: a computer that thinks for an hour
		ctx, st := suite.New(t)
		conf := config.Game{ComputerThinkTime: time.Hour}
		manager := NewGameManager(st.Logger, conf, tictactoe.NewStrategy(suite.NewMockRandom(t)))
		require.NoError(t, manager.StartSinglePlayer(entity.SymbolX, false))

		ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		// When: the context expires first
		_, err := manager.ComputerTurn(ctx)

		// Then: no move is made
		require.ErrorIs(t, err, context.DeadlineExceeded)

		snapshot, err := manager.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, [entity.TilesCount]string{}, snapshot.Board)
		assert.True(t, manager.ComputerToMove())
	})

	t.Run("Computer turn is refused on a human turn", func(t *testing.T) {
		ctx, st := suite.New(t)
		manager := NewGameManager(st.Logger, config.Game{}, tictactoe.NewStrategy(suite.NewMockRandom(t)))
		require.NoError(t, manager.StartSinglePlayer(entity.SymbolX, true))

		_, err := manager.ComputerTurn(ctx)

		require.ErrorIs(t, err, apperror.ErrNotComputerTurn)
	})
}

func TestGameManager_StartFromConfig(t *testing.T) {
	t.Run("Leaves the choice to the player", func(t *testing.T) {
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, config.Game{Mode: config.ModeAsk}, nil)

		started, err := manager.StartFromConfig()

		require.NoError(t, err)
		assert.False(t, started)
		assert.False(t, manager.Started())
	})

	t.Run("Starts a single player game with the computer first", func(t *testing.T) {
		_, st := suite.New(t)
		conf := config.Game{Mode: config.ModeSingle, PlayerOneSymbol: "o", ComputerFirst: true}
		manager := NewGameManager(st.Logger, conf, nil)

		started, err := manager.StartFromConfig()

		require.NoError(t, err)
		assert.True(t, started)
		assert.True(t, manager.ComputerToMove())

		snapshot, err := manager.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, entity.SymbolX, snapshot.PlayerOne.Symbol)
		assert.Equal(t, entity.SymbolO, snapshot.PlayerTwo.Symbol)
	})

	t.Run("Starts a two player game", func(t *testing.T) {
		_, st := suite.New(t)
		conf := config.Game{Mode: config.ModeTwo, PlayerOneSymbol: "X"}
		manager := NewGameManager(st.Logger, conf, nil)

		started, err := manager.StartFromConfig()

		require.NoError(t, err)
		assert.True(t, started)
		assert.False(t, manager.ComputerToMove())
	})

	t.Run("Rejects a bad symbol", func(t *testing.T) {
		_, st := suite.New(t)
		conf := config.Game{Mode: config.ModeTwo, PlayerOneSymbol: "Z"}
		manager := NewGameManager(st.Logger, conf, nil)

		_, err := manager.StartFromConfig()

		require.ErrorIs(t, err, apperror.ErrInvalidSymbol)
		assert.False(t, manager.Started())
	})

	t.Run("Rejects an unknown mode", func(t *testing.T) {
		_, st := suite.New(t)
		conf := config.Game{Mode: "online", PlayerOneSymbol: "X"}
		manager := NewGameManager(st.Logger, conf, nil)

		_, err := manager.StartFromConfig()

		require.ErrorIs(t, err, config.ErrUnknownMode)
	})
}

func TestGameManager_Stop(t *testing.T) {
	_, st := suite.New(t)
	manager := NewGameManager(st.Logger, config.Game{}, nil)
	require.NoError(t, manager.StartTwoPlayer(entity.SymbolX))

	manager.Stop()

	assert.False(t, manager.Started())
	_, err := manager.Snapshot()
	require.ErrorIs(t, err, apperror.ErrSessionNotStarted)
}

func TestGameManager_ComputerGamesFinish(t *testing.T) {
	ctx, st := suite.New(t)

	for seed := range 50 {
		manager := NewGameManager(st.Logger, config.Game{}, tictactoe.NewStrategy(st.Seeded(uint64(seed))))
		require.NoError(t, manager.StartSinglePlayer(entity.SymbolO, seed%2 == 0))

		human := st.Seeded(uint64(seed) + 1000)
		for turns := 0; ; turns++ {
			require.Less(t, turns, entity.TilesCount+1, "seed %d: game did not end", seed)

			snapshot, err := manager.Snapshot()
			require.NoError(t, err)
			if snapshot.State.IsFinished() {
				break
			}

			if manager.ComputerToMove() {
				_, err = manager.ComputerTurn(ctx)
				require.NoError(t, err)
				continue
			}

			pos := randomEmpty(snapshot.Board, human.IntN)
			_, err = manager.MakeTurn(pos.Row, pos.Col)
			require.NoError(t, err)
		}
	}
}

func randomEmpty(board [entity.TilesCount]string, intN func(int) int) entity.Position {
	empty := make([]entity.Position, 0, entity.TilesCount)
	for i, value := range board {
		if value == "" {
			empty = append(empty, entity.Position{Row: i / entity.BoardCols, Col: i % entity.BoardCols})
		}
	}

	return empty[intN(len(empty))]
}
