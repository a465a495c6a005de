package entity

// Line is three positions that win when they hold the same symbol.
type Line [3]Position

// WinLines - all 8 winning lines: rows, columns, diagonals.
var WinLines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// WinningLine returns the first complete line on the board and its symbol.
// The whole board is scanned, not only lines touching the last move.
func WinningLine(board *Board) (Line, Symbol, bool) {
	for _, line := range WinLines {
		a := board.tiles[line[0].Row][line[0].Col]
		b := board.tiles[line[1].Row][line[1].Col]
		c := board.tiles[line[2].Row][line[2].Col]

		if !a.IsEmpty() && a == b && b == c {
			return line, a.Symbol(), true
		}
	}

	return Line{}, SymbolNone, false
}

func HasWinningLine(board *Board) bool {
	_, _, ok := WinningLine(board)
	return ok
}

// IsTie - the board is full and nobody has a line.
func IsTie(board *Board) bool {
	return board.FilledCount() == TilesCount && !HasWinningLine(board)
}

// Evaluate derives the outcome of the board after a move.
func Evaluate(board *Board) Outcome {
	switch {
	case HasWinningLine(board):
		return OutcomeWin
	case IsTie(board):
		return OutcomeTie
	default:
		return OutcomeInProgress
	}
}
