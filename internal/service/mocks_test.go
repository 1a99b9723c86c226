package service

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/mock"
)

type mockDecisionRepo struct {
	mock.Mock
}

func (that *mockDecisionRepo) Save(ctx context.Context, symbol entity.Cell, board *entity.Board, decision tictactoe.Decision) error {
	args := that.Called(ctx, symbol, *board, decision)
	return args.Error(0)
}

func (that *mockDecisionRepo) Get(ctx context.Context, symbol entity.Cell, board *entity.Board) (tictactoe.Decision, error) {
	args := that.Called(ctx, symbol, *board)
	return args.Get(0).(tictactoe.Decision), args.Error(1)
}

type mockSearcher struct {
	mock.Mock
}

func (that *mockSearcher) Symbol() entity.Cell {
	args := that.Called()
	return args.Get(0).(entity.Cell)
}

func (that *mockSearcher) BestMove(board *entity.Board) (tictactoe.Decision, error) {
	args := that.Called(*board)
	return args.Get(0).(tictactoe.Decision), args.Error(1)
}
