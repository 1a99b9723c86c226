package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type searcher interface {
	Symbol() entity.Cell
	BestMove(board *entity.Board) (tictactoe.Decision, error)
}

// BotService plays the engine's turn in a match.
type BotService interface {
	Mark() entity.Cell
	MakeTurn(game *entity.Game) (tictactoe.Decision, error)
}

type botService struct {
	engine searcher
}

func NewBotService(engine searcher) BotService {
	return &botService{
		engine: engine,
	}
}

func (that *botService) Mark() entity.Cell {
	return that.engine.Symbol()
}

func (that *botService) MakeTurn(game *entity.Game) (tictactoe.Decision, error) {
	if game.IsFinished() {
		return tictactoe.Decision{}, apperror.ErrGameFinished
	}

	if game.Turn != that.engine.Symbol() {
		return tictactoe.Decision{}, apperror.ErrNotYourTurn
	}

	// the search works on its own copy so the match board is only touched by MakeTurn
	board := game.Board

	decision, err := that.engine.BestMove(&board)
	if err != nil {
		return tictactoe.Decision{}, fmt.Errorf("bot failed to find a move: %w", err)
	}

	if err = game.MakeTurn(that.engine.Symbol(), decision.Position); err != nil {
		return tictactoe.Decision{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return decision, nil
}
