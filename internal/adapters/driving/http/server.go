package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/siteqa/internal/core/ports/driving"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	ingestService driving.IngestService
	answerService driving.AnswerService
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8000,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	ingestService driving.IngestService,
	answerService driving.AnswerService,
	logger *slog.Logger,
) *Server {
	s := &Server{
		router:        http.NewServeMux(),
		version:       cfg.Version,
		ingestService: ingestService,
		answerService: answerService,
	}

	if logger == nil {
		logger = slog.Default()
	}

	// Chain: logging -> recovery -> CORS -> routes. Recovery sits inside
	// logging so panics still produce a logged 500.
	logging := NewLoggingMiddleware(logger)
	recovery := NewRecoveryMiddleware(logger)
	cors := NewCORSMiddleware([]string{"*"})
	handler := logging.Handler(recovery.Handler(cors.Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: handler,
		// Crawl requests are synchronous and can legitimately run for
		// minutes, so the write timeout is generous.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// Handler exposes the fully assembled handler chain, so the server can be
// mounted in tests or embedded behind another mux.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.handleRoot)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /stats", s.handleStats)

	// Ingestion
	s.router.HandleFunc("POST /crawl", s.handleCrawl)
	s.router.HandleFunc("GET /crawl/status", s.handleCrawlStatus)

	// Question answering
	s.router.HandleFunc("POST /ask", s.handleAsk)

	// Generated API document
	s.router.HandleFunc("GET /openapi.json", s.handleOpenAPI)
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
