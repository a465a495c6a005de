package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
)

const (
	BoardRows = 3
	BoardCols = 3

	TilesCount = BoardRows * BoardCols
)

// Symbol is the mark a player places on the board.
type Symbol byte

const (
	SymbolNone Symbol = 0
	SymbolX    Symbol = 'X'
	SymbolO    Symbol = 'O'
)

// ParseSymbol - converts user input ("x", "O", ...) into a canonical symbol.
func ParseSymbol(value string) (Symbol, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "X":
		return SymbolX, nil
	case "O":
		return SymbolO, nil
	default:
		return SymbolNone, fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, value)
	}
}

func (that Symbol) IsValid() bool {
	return that == SymbolX || that == SymbolO
}

// Opponent returns the other canonical mark, or SymbolNone for an invalid symbol.
func (that Symbol) Opponent() Symbol {
	switch that {
	case SymbolX:
		return SymbolO
	case SymbolO:
		return SymbolX
	default:
		return SymbolNone
	}
}

func (that Symbol) String() string {
	if !that.IsValid() {
		return " "
	}
	return string(rune(that))
}

// Tile is one cell of the board. The zero value is an empty tile.
type Tile struct {
	symbol Symbol
}

func (that Tile) IsEmpty() bool {
	return that.symbol == SymbolNone
}

func (that Tile) Symbol() Symbol {
	return that.symbol
}

func (that Tile) String() string {
	return that.symbol.String()
}

// Position addresses a tile by row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) Valid() bool {
	return that.Row >= 0 && that.Row < BoardRows && that.Col >= 0 && that.Col < BoardCols
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a 3x3 grid of tiles plus the number of filled tiles.
// It is a plain value: copying a Board snapshots it.
type Board struct {
	tiles  [BoardRows][BoardCols]Tile
	filled int
}

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) TileAt(row, col int) (Tile, error) {
	if !(Position{Row: row, Col: col}).Valid() {
		return Tile{}, fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfRange, row, col)
	}

	return that.tiles[row][col], nil
}

// Fill places symbol at (row, col). Occupancy is the caller's concern.
func (that *Board) Fill(row, col int, symbol Symbol) error {
	if !symbol.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, rune(symbol))
	}

	if !(Position{Row: row, Col: col}).Valid() {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfRange, row, col)
	}

	that.tiles[row][col] = Tile{symbol: symbol}
	that.filled++

	return nil
}

func (that *Board) FilledCount() int {
	return that.filled
}

func (that *Board) IsFull() bool {
	return that.filled >= TilesCount
}

func (that *Board) Reset() {
	that.tiles = [BoardRows][BoardCols]Tile{}
	that.filled = 0
}

// IsEmptyAt reports whether (row, col) is on the board and empty.
func (that *Board) IsEmptyAt(row, col int) bool {
	tile, err := that.TileAt(row, col)
	return err == nil && tile.IsEmpty()
}

// HoldsAt reports whether (row, col) is on the board and holds symbol.
func (that *Board) HoldsAt(row, col int, symbol Symbol) bool {
	tile, err := that.TileAt(row, col)
	return err == nil && !tile.IsEmpty() && tile.Symbol() == symbol
}

// Symbols returns the board row-major as strings, "" for empty tiles.
func (that *Board) Symbols() [TilesCount]string {
	var cells [TilesCount]string
	for row := range BoardRows {
		for col := range BoardCols {
			if tile := that.tiles[row][col]; !tile.IsEmpty() {
				cells[row*BoardCols+col] = tile.String()
			}
		}
	}
	return cells
}

// String renders the board as text:
//
//	X|O|
//	-+-+-
//	 |X|
//	-+-+-
//	 | |O
func (that *Board) String() string {
	var sb strings.Builder

	for row := range BoardRows {
		for col := range BoardCols {
			sb.WriteString(that.tiles[row][col].String())
			if col != BoardCols-1 {
				sb.WriteByte('|')
			}
		}
		sb.WriteByte('\n')

		if row != BoardRows-1 {
			sb.WriteString("-+-+-\n")
		}
	}

	return sb.String()
}
