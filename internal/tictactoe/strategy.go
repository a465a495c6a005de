package tictactoe

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
)

// RandomSource is the subset of *rand.Rand the strategy needs.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // it's a game, not crypto
}

// Rule names the heuristic that produced a move.
type Rule uint8

const (
	RuleRandom Rule = iota
	RuleOpeningBlock
	RuleWin
	RuleBlockWin
	RuleTwoInARow
	RuleBlockTwoInARow
)

func (that Rule) String() string {
	switch that {
	case RuleOpeningBlock:
		return "opening_block"
	case RuleWin:
		return "win"
	case RuleBlockWin:
		return "block_win"
	case RuleTwoInARow:
		return "two_in_a_row"
	case RuleBlockTwoInARow:
		return "block_two_in_a_row"
	default:
		return "random"
	}
}

// Decision is a chosen move together with the rule that chose it.
type Decision struct {
	Position entity.Position
	Rule     Rule
}

// Strategy picks the computer's moves. It is intentionally beatable:
//  1. complete own line;
//  2. block the opponent's line;
//  3. extend own symbol into two in a row;
//  4. block the opponent's two in a row;
//  5. random empty tile.
//
// With 0 or 1 filled tiles the ladder is skipped: half of the time the
// opponent's lone mark is blocked, otherwise the move is random.
type Strategy struct {
	rand RandomSource
}

func NewStrategy(src RandomSource) *Strategy {
	if src == nil {
		src = globalSource{}
	}

	return &Strategy{rand: src}
}

// SelectMove chooses an empty tile for symbol. The board must have an empty tile.
func (that *Strategy) SelectMove(board *entity.Board, symbol, opponent entity.Symbol) (Decision, error) {
	if !symbol.IsValid() || !opponent.IsValid() || symbol == opponent {
		return Decision{}, fmt.Errorf("%w: %s against %s", apperror.ErrInvalidSymbol, symbol, opponent)
	}

	if board.IsFull() {
		return Decision{}, apperror.ErrBoardFull
	}

	if board.FilledCount() <= 1 {
		return that.openingMove(board, opponent), nil
	}

	if pos, ok := findWinningMove(board, symbol); ok {
		return Decision{Position: pos, Rule: RuleWin}, nil
	}

	if pos, ok := findWinningMove(board, opponent); ok {
		return Decision{Position: pos, Rule: RuleBlockWin}, nil
	}

	if pos, ok := findTwoInARow(board, symbol); ok {
		return Decision{Position: pos, Rule: RuleTwoInARow}, nil
	}

	if pos, ok := findTwoInARow(board, opponent); ok {
		return Decision{Position: pos, Rule: RuleBlockTwoInARow}, nil
	}

	return Decision{Position: that.randomMove(board), Rule: RuleRandom}, nil
}

func (that *Strategy) openingMove(board *entity.Board, opponent entity.Symbol) Decision {
	// only block when the opponent has already placed its first mark
	if that.rand.IntN(2) == 0 && board.FilledCount() == 1 {
		if pos, ok := findTwoInARow(board, opponent); ok {
			return Decision{Position: pos, Rule: RuleOpeningBlock}
		}
	}

	return Decision{Position: that.randomMove(board), Rule: RuleRandom}
}

// randomMove draws rows and columns until it hits an empty tile.
func (that *Strategy) randomMove(board *entity.Board) entity.Position {
	for {
		pos := entity.Position{
			Row: that.rand.IntN(entity.BoardRows),
			Col: that.rand.IntN(entity.BoardCols),
		}

		if board.IsEmptyAt(pos.Row, pos.Col) {
			return pos
		}
	}
}

// companion is a pair of cells inspected from a tile holding the searched symbol.
// The move, if any, is always target.
type companion struct {
	other  entity.Position
	target entity.Position
}

func pair(otherRow, otherCol, targetRow, targetCol int) companion {
	return companion{
		other:  entity.Position{Row: otherRow, Col: otherCol},
		target: entity.Position{Row: targetRow, Col: targetCol},
	}
}

var (
	// winCompanions[row][col]: other must hold the symbol and target must be empty.
	winCompanions = buildCompanions(winningPairs)
	// twoInARowCompanions[row][col]: target and other must both be empty.
	twoInARowCompanions = buildCompanions(twoInARowPairs)
)

func buildCompanions(pairs func(row, col int) []companion) [entity.BoardRows][entity.BoardCols][]companion {
	var table [entity.BoardRows][entity.BoardCols][]companion
	for row := range entity.BoardRows {
		for col := range entity.BoardCols {
			table[row][col] = pairs(row, col)
		}
	}
	return table
}

// winningPairs lists, in search order, the lines a tile can complete:
// diagonals from the top corners and the center, then the column, then the row.
func winningPairs(row, col int) []companion {
	var pairs []companion

	switch {
	case row == 0 && col == 0:
		pairs = append(pairs, pair(1, 1, 2, 2), pair(2, 2, 1, 1))
	case row == 0 && col == 2:
		pairs = append(pairs, pair(1, 1, 2, 0), pair(2, 0, 1, 1))
	case row == 1 && col == 1:
		pairs = append(pairs, pair(0, 0, 2, 2), pair(0, 2, 2, 0), pair(2, 2, 0, 0), pair(2, 0, 0, 2))
	}

	switch row {
	case 0:
		pairs = append(pairs, pair(1, col, 2, col), pair(2, col, 1, col))
	case 1:
		pairs = append(pairs, pair(2, col, 0, col))
	}

	switch col {
	case 0:
		pairs = append(pairs, pair(row, 1, row, 2), pair(row, 2, row, 1))
	case 1:
		pairs = append(pairs, pair(row, 2, row, 0))
	}

	return pairs
}

// twoInARowPairs lists, in search order, the open lines through a tile:
// corner diagonals and the row first, then the column. The target is the
// empty cell next to the tile (or the center for diagonals).
func twoInARowPairs(row, col int) []companion {
	var pairs []companion

	switch col {
	case 0:
		switch row {
		case 0:
			pairs = append(pairs, pair(2, 2, 1, 1))
		case 2:
			pairs = append(pairs, pair(0, 2, 1, 1))
		}
		pairs = append(pairs, pair(row, 2, row, 1))
	case 1:
		pairs = append(pairs, pair(row, 2, row, 0))
	case 2:
		switch row {
		case 0:
			pairs = append(pairs, pair(2, 0, 1, 1))
		case 2:
			pairs = append(pairs, pair(0, 0, 1, 1))
		}
		pairs = append(pairs, pair(row, 0, row, 1))
	}

	switch row {
	case 0:
		pairs = append(pairs, pair(2, col, 1, col))
	case 1:
		pairs = append(pairs, pair(2, col, 0, col))
	case 2:
		pairs = append(pairs, pair(0, col, 1, col))
	}

	return pairs
}

// findWinningMove returns an empty tile that completes a line of symbol.
func findWinningMove(board *entity.Board, symbol entity.Symbol) (entity.Position, bool) {
	return scan(board, symbol, winCompanions, func(c companion) bool {
		return board.HoldsAt(c.other.Row, c.other.Col, symbol) && board.IsEmptyAt(c.target.Row, c.target.Col)
	})
}

// findTwoInARow returns an empty tile that puts a second symbol on an otherwise empty line.
func findTwoInARow(board *entity.Board, symbol entity.Symbol) (entity.Position, bool) {
	return scan(board, symbol, twoInARowCompanions, func(c companion) bool {
		return board.IsEmptyAt(c.target.Row, c.target.Col) && board.IsEmptyAt(c.other.Row, c.other.Col)
	})
}

// scan walks the board row-major and tries the companions of every tile holding symbol.
func scan(
	board *entity.Board,
	symbol entity.Symbol,
	table [entity.BoardRows][entity.BoardCols][]companion,
	matches func(companion) bool,
) (entity.Position, bool) {
	for row := range entity.BoardRows {
		for col := range entity.BoardCols {
			if !board.HoldsAt(row, col, symbol) {
				continue
			}

			for _, c := range table[row][col] {
				if matches(c) {
					return c.target, true
				}
			}
		}
	}

	return entity.Position{}, false
}
