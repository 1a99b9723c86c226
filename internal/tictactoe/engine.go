package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ScoreWin  = 1
	ScoreDraw = 0
	ScoreLoss = -1
)

// Decision is the move chosen by the engine together with its minimax score.
type Decision struct {
	Position entity.Position `json:"position"`
	Score    int             `json:"score"`
}

// Engine plays one fixed symbol with exhaustive minimax. The engine is the
// maximizer, its opponent the minimizer.
type Engine struct {
	self     entity.Cell
	opponent entity.Cell
}

func NewEngine(symbol entity.Cell) (*Engine, error) {
	opponent, err := symbol.Opponent()
	if err != nil {
		return nil, fmt.Errorf("can't create engine: %w", err)
	}

	return &Engine{
		self:     symbol,
		opponent: opponent,
	}, nil
}

func (that *Engine) Symbol() entity.Cell {
	return that.self
}

// BestMove returns the empty cell with the highest score for the engine. Ties
// go to the cell that comes first in row-major order. The board is searched in
// place and left exactly as it was passed in.
func (that *Engine) BestMove(board *entity.Board) (Decision, error) {
	best := Decision{Score: math.MinInt}
	found := false

	for _, pos := range board.EmptyCells() {
		score := that.try(board, pos, that.self, false)
		if score > best.Score {
			best = Decision{Position: pos, Score: score}
			found = true
		}
	}

	if !found {
		return Decision{}, apperror.ErrNoLegalMove
	}

	return best, nil
}

// Minimax scores the board from the engine's point of view: ScoreWin,
// ScoreLoss or ScoreDraw under optimal play by both sides.
func (that *Engine) Minimax(board *entity.Board, maximizing bool) int {
	switch winner, _ := board.Winner(); winner {
	case that.self:
		return ScoreWin
	case that.opponent:
		return ScoreLoss
	}

	if board.IsDraw() {
		return ScoreDraw
	}

	if maximizing {
		best := math.MinInt
		for _, pos := range board.EmptyCells() {
			best = max(best, that.try(board, pos, that.self, false))
		}

		return best
	}

	best := math.MaxInt
	for _, pos := range board.EmptyCells() {
		best = min(best, that.try(board, pos, that.opponent, true))
	}

	return best
}

// try places mark at pos, scores the result and clears the cell again.
func (that *Engine) try(board *entity.Board, pos entity.Position, mark entity.Cell, maximizing bool) int {
	board.Set(pos, mark)
	defer board.Set(pos, entity.EmptyCell)

	return that.Minimax(board, maximizing)
}
