package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	shutdownTimeout = 5 * time.Second

	// a full snapshot of the largest board fits well below this
	maxRequestBodyBytes = 64 << 10
)

type gameUseCase interface {
	GetGame(ctx context.Context, sessionID string) (*tictactoe.Game, error)
	PlayTurn(ctx context.Context, sessionID string, row, col int) (*tictactoe.Game, error)
	Forfeit(ctx context.Context, sessionID string) (*tictactoe.Game, error)
	ResetGame(ctx context.Context, sessionID string, size int) (*tictactoe.Game, error)
	LoadGame(ctx context.Context, sessionID string, snapshot *entity.Snapshot) (*tictactoe.Game, error)
	GetSnapshot(ctx context.Context, sessionID string) (*entity.Snapshot, error)
	EndSession(ctx context.Context, sessionID string) error
}

type Server struct {
	logger *slog.Logger
	game   gameUseCase
	router *chi.Mux
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		game:   game,
		router: chi.NewRouter(),
	}

	server.router.Use(chimw.RequestID)
	server.router.Use(chimw.Recoverer)
	server.router.Use(chimw.RequestSize(maxRequestBodyBytes))
	server.router.Use(jsonContentType)

	server.router.Get("/ping", server.handlePing)

	server.router.Route("/game", func(r chi.Router) {
		r.Use(server.withSession)

		r.Get("/", server.handleGetGame)
		r.Delete("/", server.handleEndSession)
		r.Post("/turn", server.handleTurn)
		r.Post("/forfeit", server.handleForfeit)
		r.Post("/reset", server.handleReset)
		r.Get("/snapshot", server.handleGetSnapshot)
		r.Put("/snapshot", server.handleLoadSnapshot)
	})

	return server
}

// Handler exposes the router, mostly for tests.
func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP on port until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
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

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
