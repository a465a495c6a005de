package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
)

// Kind tells how a player's moves are chosen.
type Kind uint8

const (
	KindHuman Kind = iota
	KindComputer
)

func (that Kind) String() string {
	if that == KindComputer {
		return "computer"
	}
	return "human"
}

// Player is either a human, whose moves come from outside, or a computer,
// which picks its own. Two players are the same player when they share a symbol.
type Player struct {
	kind   Kind
	symbol Symbol
	score  int

	lastMove *Position
}

func NewHuman(symbol Symbol) (*Player, error) {
	return newPlayer(KindHuman, symbol)
}

func NewComputer(symbol Symbol) (*Player, error) {
	return newPlayer(KindComputer, symbol)
}

func newPlayer(kind Kind, symbol Symbol) (*Player, error) {
	if !symbol.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, rune(symbol))
	}

	return &Player{kind: kind, symbol: symbol}, nil
}

func (that *Player) Symbol() Symbol {
	return that.symbol
}

func (that *Player) Score() int {
	return that.score
}

func (that *Player) IncreaseScore() {
	that.score++
}

func (that *Player) Kind() Kind {
	return that.kind
}

func (that *Player) IsComputer() bool {
	return that.kind == KindComputer
}

// Is compares players by symbol.
func (that *Player) Is(other *Player) bool {
	return that != nil && other != nil && that.symbol == other.symbol
}

// LastMove returns the position this player filled most recently.
func (that *Player) LastMove() (Position, bool) {
	if that.lastMove == nil {
		return Position{}, false
	}
	return *that.lastMove, true
}

// AttemptMove fills (row, col) with the player's symbol when the tile is empty
// and returns the resulting board outcome. A filled or off-board tile yields
// OutcomeInvalidMove and leaves the board untouched.
func (that *Player) AttemptMove(board *Board, row, col int) (Outcome, error) {
	tile, err := board.TileAt(row, col)
	if err != nil {
		return OutcomeInvalidMove, err
	}

	if !tile.IsEmpty() {
		return OutcomeInvalidMove, fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidMove, row, col)
	}

	if err = board.Fill(row, col, that.symbol); err != nil {
		return OutcomeInvalidMove, fmt.Errorf("failed to fill tile: %w", err)
	}

	that.lastMove = &Position{Row: row, Col: col}

	return Evaluate(board), nil
}
