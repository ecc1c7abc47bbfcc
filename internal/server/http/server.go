package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/model"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/service"
)

// Server wires the huma API over net/http.
type Server struct {
	httpServer *http.Server
	api        huma.API
}

// NewServer builds the API and registers all handlers.
func NewServer(port int, state *model.Holder, svc *service.TTS) *Server {
	mux := http.NewServeMux()

	cfg := huma.DefaultConfig("MeloTTS API", "1.0.0")
	cfg.Info.Description = "Text-to-Speech API powered by MeloTTS, deployed on Render."
	api := humago.New(mux, cfg)

	NewStatusHandler(api, state)
	NewTTSHandler(api, svc)

	return &Server{
		api: api,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
