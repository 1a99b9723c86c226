package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type decisionService interface {
	Decide(ctx context.Context, board entity.Board, symbol entity.Cell) (tictactoe.Decision, error)
}

type botService interface {
	Mark() entity.Cell
	MakeTurn(game *entity.Game) (tictactoe.Decision, error)
}

type Server struct {
	logger *slog.Logger

	decisionService decisionService
	botService      botService
}

func New(logger *slog.Logger, decisionService decisionService, botService botService) *Server {
	return &Server{
		logger:          logger.With("component", "rest"),
		decisionService: decisionService,
		botService:      botService,
	}
}

// Handler returns the routes served by the HTTP server.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.pingHandler)
	mux.HandleFunc("POST /move", that.moveHandler)
	mux.HandleFunc("POST /play", that.playHandler)

	return mux
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
