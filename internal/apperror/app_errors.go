package apperror

import "errors"

var (
	ErrInvalidSymbol     = errors.New("symbol must be X or O")
	ErrOutOfRange        = errors.New("coordinates out of range")
	ErrInvalidMove       = errors.New("tile is already filled")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotComputerTurn   = errors.New("current player is not a computer")
	ErrBoardFull         = errors.New("no empty tiles left")
	ErrSessionNotStarted = errors.New("session is not started")
)
