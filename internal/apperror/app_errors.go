package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidCell    = errors.New("invalid cell position")
	ErrInvalidSymbol  = errors.New("invalid player symbol")
	ErrNoLegalMove    = errors.New("no legal move available")
	ErrMalformedBoard = errors.New("malformed board")
)
