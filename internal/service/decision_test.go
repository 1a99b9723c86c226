package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

func newDecisionService(t *testing.T, repo *mockDecisionRepo) DecisionService {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewDecisionService(logger, repo, newEngine(t, x), newEngine(t, o))
}

func TestDecisionService_Decide(t *testing.T) {
	ctx := context.Background()
	winning := entity.Board{{x, x, e}, {o, o, e}, {e, e, e}}
	win := tictactoe.Decision{Position: entity.Position{Row: 0, Col: 2}, Score: tictactoe.ScoreWin}

	t.Run("Computes and caches a decision on a cache miss", func(t *testing.T) {
		// Given: an empty cache
		repo := &mockDecisionRepo{}
		repo.On("Get", mock.Anything, x, winning).Return(tictactoe.Decision{}, repository.ErrDecisionNotFound).Once()
		repo.On("Save", mock.Anything, x, winning, win).Return(nil).Once()

		// When: asking for X's move
		decision, err := newDecisionService(t, repo).Decide(ctx, winning, x)

		// Then: the engine result is returned and stored
		require.NoError(t, err)
		assert.Equal(t, win, decision)
		repo.AssertExpectations(t)
	})

	t.Run("Serves a cached decision without searching", func(t *testing.T) {
		// Given: a cache holding a decision for the board
		cached := tictactoe.Decision{Position: entity.Position{Row: 2, Col: 2}, Score: tictactoe.ScoreDraw}
		repo := &mockDecisionRepo{}
		repo.On("Get", mock.Anything, x, winning).Return(cached, nil).Once()

		// When: asking for X's move
		decision, err := newDecisionService(t, repo).Decide(ctx, winning, x)

		// Then: the cached decision comes back and nothing is saved
		require.NoError(t, err)
		assert.Equal(t, cached, decision)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cache errors do not fail the request", func(t *testing.T) {
		repo := &mockDecisionRepo{}
		repo.On("Get", mock.Anything, x, winning).Return(tictactoe.Decision{}, errRedisDown).Once()
		repo.On("Save", mock.Anything, x, winning, win).Return(errRedisDown).Once()

		decision, err := newDecisionService(t, repo).Decide(ctx, winning, x)

		require.NoError(t, err)
		assert.Equal(t, win, decision)
		repo.AssertExpectations(t)
	})

	t.Run("Rejects invalid requests before touching the cache", func(t *testing.T) {
		tests := []struct {
			name   string
			board  entity.Board
			symbol entity.Cell
			err    error
		}{
			{
				name:   "unknown symbol",
				board:  entity.Board{},
				symbol: e,
				err:    apperror.ErrInvalidSymbol,
			},
			{
				name:   "malformed board",
				board:  entity.Board{{o, e, e}, {e, e, e}, {e, e, e}},
				symbol: x,
				err:    apperror.ErrMalformedBoard,
			},
			{
				name:   "won board",
				board:  entity.Board{{x, x, x}, {o, o, e}, {e, e, e}},
				symbol: o,
				err:    apperror.ErrGameFinished,
			},
			{
				name:   "full board",
				board:  entity.Board{{x, o, x}, {x, o, o}, {o, x, x}},
				symbol: o,
				err:    apperror.ErrNoLegalMove,
			},
			{
				name:   "wrong symbol to move",
				board:  entity.Board{},
				symbol: o,
				err:    apperror.ErrNotYourTurn,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &mockDecisionRepo{}

				_, err := newDecisionService(t, repo).Decide(ctx, tt.board, tt.symbol)

				require.ErrorIs(t, err, tt.err)
				repo.AssertExpectations(t)
			})
		}
	})
}
