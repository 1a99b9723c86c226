package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// DecisionService answers "what should this symbol play on this board".
type DecisionService interface {
	Decide(ctx context.Context, board entity.Board, symbol entity.Cell) (tictactoe.Decision, error)
}

type decisionRepo interface {
	Save(ctx context.Context, symbol entity.Cell, board *entity.Board, decision tictactoe.Decision) error
	Get(ctx context.Context, symbol entity.Cell, board *entity.Board) (tictactoe.Decision, error)
}

type decisionService struct {
	logger *slog.Logger

	decisionRepo decisionRepo
	engines      map[entity.Cell]searcher
}

func NewDecisionService(logger *slog.Logger, decisionRepo decisionRepo, engines ...searcher) DecisionService {
	bySymbol := make(map[entity.Cell]searcher, len(engines))
	for _, engine := range engines {
		bySymbol[engine.Symbol()] = engine
	}

	return &decisionService{
		logger:       logger,
		decisionRepo: decisionRepo,
		engines:      bySymbol,
	}
}

func (that *decisionService) Decide(ctx context.Context, board entity.Board, symbol entity.Cell) (tictactoe.Decision, error) {
	log := that.logger.With("method", "Decide", "symbol", symbol, "board", board.Encode())

	engine, ok := that.engines[symbol]
	if !ok {
		return tictactoe.Decision{}, fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, string(symbol))
	}

	if err := board.Validate(); err != nil {
		return tictactoe.Decision{}, fmt.Errorf("can't decide: %w", err)
	}

	switch outcome := board.Outcome(); outcome.Kind {
	case entity.OutcomeWin:
		return tictactoe.Decision{}, fmt.Errorf("%w: %s won", apperror.ErrGameFinished, outcome.Winner)
	case entity.OutcomeDraw:
		return tictactoe.Decision{}, apperror.ErrNoLegalMove
	}

	if next := board.NextTurn(); next != symbol {
		return tictactoe.Decision{}, fmt.Errorf("%w: %s is to move", apperror.ErrNotYourTurn, next)
	}

	cached, err := that.decisionRepo.Get(ctx, symbol, &board)
	switch {
	case err == nil:
		log.Debug("decision served from cache")
		return cached, nil
	case !errors.Is(err, repository.ErrDecisionNotFound):
		log.Warn("failed to read cached decision", "error", err)
	}

	decision, err := engine.BestMove(&board)
	if err != nil {
		return tictactoe.Decision{}, fmt.Errorf("failed to search best move: %w", err)
	}

	if err = that.decisionRepo.Save(ctx, symbol, &board, decision); err != nil {
		log.Warn("failed to cache decision", "error", err)
	}

	log.Debug("decision computed", "position", decision.Position, "score", decision.Score)

	return decision, nil
}
