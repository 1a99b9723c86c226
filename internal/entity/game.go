package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game is a single match driven one turn at a time by an external loop.
type Game struct {
	Board  Board  `json:"board"`
	Winner Cell   `json:"winner"`
	Status string `json:"status"`
	Turn   Cell   `json:"player_turn"`
}

func NewGame() *Game {
	return &Game{
		Turn:   PlayerX,
		Status: StatusOngoing,
	}
}

// RestoreGame rebuilds a match from a board submitted by a client.
func RestoreGame(board Board) (*Game, error) {
	if err := board.Validate(); err != nil {
		return nil, err
	}

	game := &Game{
		Board: board,
		Turn:  board.NextTurn(),
	}
	game.UpdateGameState()

	return game, nil
}

func (that *Game) UpdateGameState() {
	switch outcome := that.Board.Outcome(); outcome.Kind {
	// one player wins
	case OutcomeWin:
		that.Winner = outcome.Winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// tie
	case OutcomeDraw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(playerMark Cell, pos Position) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, pos)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board.At(pos) != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board.Set(pos, playerMark)

	// It's simple logic for a game changing move
	if that.Turn == PlayerX {
		that.Turn = PlayerO
	} else {
		that.Turn = PlayerX
	}

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
