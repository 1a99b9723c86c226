package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrDecisionNotFound = errors.New("decision not found")

// DecisionRepository caches engine decisions by board and symbol to move.
type DecisionRepository interface {
	Save(ctx context.Context, symbol entity.Cell, board *entity.Board, decision tictactoe.Decision) error
	Get(ctx context.Context, symbol entity.Cell, board *entity.Board) (tictactoe.Decision, error)
}

type dbDecision struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDecisionRepository(client *redis.Client, ttl time.Duration) DecisionRepository {
	return &dbDecision{
		client: client,
		ttl:    ttl,
	}
}

func decisionKey(symbol entity.Cell, board *entity.Board) string {
	return "decision:" + string(symbol) + ":" + board.Encode()
}

func (that *dbDecision) Save(ctx context.Context, symbol entity.Cell, board *entity.Board, decision tictactoe.Decision) error {
	decisionJSON, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("could not marshal decision: %w", err)
	}

	err = that.client.Set(ctx, decisionKey(symbol, board), decisionJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set decision: %w", err)
	}

	return nil
}

func (that *dbDecision) Get(ctx context.Context, symbol entity.Cell, board *entity.Board) (tictactoe.Decision, error) {
	response, err := that.client.Get(ctx, decisionKey(symbol, board)).Result()

	if errors.Is(err, redis.Nil) {
		return tictactoe.Decision{}, ErrDecisionNotFound
	}

	if err != nil {
		return tictactoe.Decision{}, fmt.Errorf("failed to get decision: %w", err)
	}

	var decision tictactoe.Decision
	if err = json.Unmarshal([]byte(response), &decision); err != nil {
		return tictactoe.Decision{}, fmt.Errorf("failed to unmarshal decision: %w", err)
	}

	return decision, nil
}
