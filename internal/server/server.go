package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	boardinghandlers "github.com/eliteair/pass-signing-service/internal/boarding/handlers"
	"github.com/eliteair/pass-signing-service/internal/config"
	"github.com/eliteair/pass-signing-service/internal/documents"
	"github.com/eliteair/pass-signing-service/internal/server/handlers"
	"github.com/eliteair/pass-signing-service/internal/server/middleware"
	"github.com/eliteair/pass-signing-service/internal/wallet"
)

type Server struct {
	config *config.ServerEnvironment
	logger *slog.Logger
	router *chi.Mux
	gate   *documents.Gate
	issuer *wallet.Issuer
}

func NewServer(
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
	gate *documents.Gate,
	issuer *wallet.Issuer,
) *Server {
	server := &Server{
		config: cfg,
		logger: logger,
		router: chi.NewRouter(),
		gate:   gate,
		issuer: issuer,
	}

	server.setupMiddleware()
	server.registerRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Timeout(config.RequestTimeout))
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	s.router.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
	s.router.Use(middleware.RequestSizeLimit(s.config.MaxRequestBytes))
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", handlers.HandleHealth)
	s.router.Get("/version", handlers.HandleVersion)

	defaultDoc := boardinghandlers.NewDefaultDocHandler(s.gate)
	s.router.Post("/default-doc", defaultDoc.HandleDefaultDoc)

	signPass := boardinghandlers.NewSignPassHandler(s.issuer)
	s.router.Post("/sign", signPass.HandleSignPass)
}

// Router exposes the configured chi mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
