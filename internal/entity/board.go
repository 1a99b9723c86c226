package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const BoardSize = 3

// Cell is the content of a single board square.
type Cell string

const (
	EmptyCell Cell = ""
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"

	// PlayerTie is stored as the winner of a drawn game, never on the board.
	PlayerTie Cell = "-"
)

// IsPlayer reports whether the cell is one of the two player symbols.
func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's symbol.
func (that Cell) Opponent() (Cell, error) {
	switch that {
	case PlayerX:
		return PlayerO, nil
	case PlayerO:
		return PlayerX, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, string(that))
	}
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) IsValid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// WinLines lists every line that wins the game: rows top to bottom, columns
// left to right, then the main and anti diagonals. Winner depends on this order.
var WinLines = [8][BoardSize]Position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is the 3x3 grid in row-major order.
type Board [BoardSize][BoardSize]Cell

func (that *Board) At(pos Position) Cell {
	return that[pos.Row][pos.Col]
}

func (that *Board) Set(pos Position, cell Cell) {
	that[pos.Row][pos.Col] = cell
}

// Winner returns the symbol of the first complete line, if any.
func (that *Board) Winner() (Cell, bool) {
	for _, line := range WinLines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a != EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return EmptyCell, false
}

// IsDraw reports whether no empty cell remains. It does not look for a
// winner, callers have to check Winner first.
func (that *Board) IsDraw() bool {
	return that.IsFull()
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) IsEmpty() bool {
	return that.Count(EmptyCell) == BoardSize*BoardSize
}

// EmptyCells returns the free positions in row-major order.
func (that *Board) EmptyCells() []Position {
	cells := make([]Position, 0, BoardSize*BoardSize)
	for row := range BoardSize {
		for col := range BoardSize {
			if that[row][col] == EmptyCell {
				cells = append(cells, Position{Row: row, Col: col})
			}
		}
	}

	return cells
}

func (that *Board) Count(cell Cell) int {
	count := 0
	for _, row := range that {
		for _, c := range row {
			if c == cell {
				count++
			}
		}
	}

	return count
}

// NextTurn returns the symbol to move under alternating play with X first.
func (that *Board) NextTurn() Cell {
	if that.Count(PlayerX) > that.Count(PlayerO) {
		return PlayerO
	}

	return PlayerX
}

func (that *Board) Outcome() Outcome {
	if winner, ok := that.Winner(); ok {
		return Outcome{Kind: OutcomeWin, Winner: winner}
	}

	if that.IsDraw() {
		return Outcome{Kind: OutcomeDraw}
	}

	return Outcome{Kind: OutcomeOngoing}
}

// Validate rejects boards that alternating play from an empty board cannot produce.
func (that *Board) Validate() error {
	for row := range BoardSize {
		for col := range BoardSize {
			if cell := that[row][col]; cell != EmptyCell && !cell.IsPlayer() {
				return fmt.Errorf("%w: unknown cell %q at %s", apperror.ErrMalformedBoard, string(cell), Position{Row: row, Col: col})
			}
		}
	}

	x, o := that.Count(PlayerX), that.Count(PlayerO)
	if diff := x - o; diff < 0 || diff > 1 {
		return fmt.Errorf("%w: %d X against %d O", apperror.ErrMalformedBoard, x, o)
	}

	xWins, oWins := that.hasLine(PlayerX), that.hasLine(PlayerO)

	switch {
	case xWins && oWins:
		return fmt.Errorf("%w: both players have a complete line", apperror.ErrMalformedBoard)
	case xWins && x == o:
		return fmt.Errorf("%w: O moved after X won", apperror.ErrMalformedBoard)
	case oWins && x > o:
		return fmt.Errorf("%w: X moved after O won", apperror.ErrMalformedBoard)
	}

	return nil
}

func (that *Board) hasLine(cell Cell) bool {
	for _, line := range WinLines {
		if that.At(line[0]) == cell && that.At(line[1]) == cell && that.At(line[2]) == cell {
			return true
		}
	}

	return false
}

// Encode renders the board as nine characters, '.' for empty cells.
func (that *Board) Encode() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)

	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
	}

	return sb.String()
}

func (that *Board) String() string {
	var sb strings.Builder
	for i, row := range that {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
	}

	return sb.String()
}
