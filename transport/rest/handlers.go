package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const maxBodySize = 4 << 10

var errBoardShape = fmt.Errorf("%w: board must be %dx%d", apperror.ErrMalformedBoard, entity.BoardSize, entity.BoardSize)

type moveRequest struct {
	Board  [][]entity.Cell `json:"board"`
	Symbol entity.Cell     `json:"symbol"`
}

type moveResponse struct {
	Row     int            `json:"row"`
	Col     int            `json:"col"`
	Score   int            `json:"score"`
	Outcome entity.Outcome `json:"outcome"`
}

type playRequest struct {
	Board [][]entity.Cell `json:"board"`
	// Turn is optional; when set it must match the mark the board says is to move.
	Turn entity.Cell `json:"turn,omitempty"`
}

type playResponse struct {
	Game     *entity.Game    `json:"game"`
	Position entity.Position `json:"position"`
	Score    int             `json:"score"`
}

type errorResponse struct {
	Error   string          `json:"error"`
	Outcome *entity.Outcome `json:"outcome,omitempty"`
}

// moveHandler - answers with the best cell for the requested symbol.
func (that *Server) moveHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "moveHandler")

	var req moveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", apperror.ErrMalformedBoard, err))
		return
	}

	board, err := toBoard(req.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	decision, err := that.decisionService.Decide(r.Context(), board, req.Symbol)
	if err != nil {
		log.Info("could not decide move", "error", err)
		that.writeBoardError(w, &board, err)
		return
	}

	board.Set(decision.Position, req.Symbol)

	that.writeJSON(w, http.StatusOK, moveResponse{
		Row:     decision.Position.Row,
		Col:     decision.Position.Col,
		Score:   decision.Score,
		Outcome: board.Outcome(),
	})
}

// playHandler - lets the bot answer the human's last move.
func (that *Server) playHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "playHandler")

	var req playRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", apperror.ErrMalformedBoard, err))
		return
	}

	board, err := toBoard(req.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	game, err := entity.RestoreGame(board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	if game.IsOngoing() && req.Turn != entity.EmptyCell && req.Turn != game.Turn {
		that.writeBoardError(w, &board, fmt.Errorf("%w: turn %q does not match the board", apperror.ErrNotYourTurn, string(req.Turn)))
		return
	}

	decision, err := that.botService.MakeTurn(game)
	if err != nil {
		log.Info("bot could not play", "error", err)
		that.writeBoardError(w, &board, err)
		return
	}

	log.Info("bot played", "mark", that.botService.Mark(), "position", decision.Position, "status", game.Status)

	that.writeJSON(w, http.StatusOK, playResponse{
		Game:     game,
		Position: decision.Position,
		Score:    decision.Score,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

func toBoard(rows [][]entity.Cell) (entity.Board, error) {
	var board entity.Board

	if len(rows) != entity.BoardSize {
		return board, errBoardShape
	}

	for row := range rows {
		if len(rows[row]) != entity.BoardSize {
			return board, errBoardShape
		}
		copy(board[row][:], rows[row])
	}

	return board, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrMalformedBoard),
		errors.Is(err, apperror.ErrInvalidSymbol),
		errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNoLegalMove),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeBoardError - like writeError, but a rejected move also reports the board's outcome.
func (that *Server) writeBoardError(w http.ResponseWriter, board *entity.Board, err error) {
	status := statusFor(err)
	if status != http.StatusConflict {
		that.writeError(w, err)
		return
	}

	outcome := board.Outcome()
	that.writeJSON(w, status, errorResponse{Error: err.Error(), Outcome: &outcome})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
