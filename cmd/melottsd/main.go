package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/config"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/env"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/logger"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/model"
	httpserver "github.com/QuantumPhantom09/MeloTTS-Render/internal/server/http"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/service"
)

var version = "1.0.0"

func main() {
	var (
		flagHTTPPort   = flag.Int("http-port", 0, "HTTP port to listen on (overrides config)")
		flagConfigPath = flag.String("config", path.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")
		flagSchemaPath = flag.String("schema", path.Join(config.DefaultConfigPath(), "melotts.v1.schema.json"), "Path to schema file")
		flagVersion    = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *flagVersion {
		fmt.Println(version)
		return
	}

	environment := env.FromEnv()

	watcher, err := config.NewWatcher(*flagConfigPath, *flagSchemaPath, func(cfg *config.Config, err error) {
		if err != nil {
			slog.Error("Failed to reload config", "error", err)
			return
		}

		slog.Info("Synthesis settings reloaded",
			"default_voice", cfg.Synthesis.DefaultVoice,
			"timeout_seconds", cfg.Synthesis.TimeoutSeconds,
		)
	})
	if err != nil {
		slog.Error("Failed to load config", "config", *flagConfigPath, "error", err)
		os.Exit(1)
	}

	cfg := watcher.Snapshot()

	slog.SetDefault(logger.New(environment,
		logger.WithLogToFile(cfg.Logging.ToFile),
		logger.WithLogFile(cfg.Logging.File),
	))

	slog.Info("Config loaded successfully", "config", *flagConfigPath, "schema", *flagSchemaPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	holder := model.NewHolder()

	// The startup hook runs asynchronously relative to request handling;
	// requests arriving before it finishes get the loading state.
	go func() {
		holder.Initialize(ctx, model.LoaderFromConfig(cfg.Model, cfg.Synthesis))

		if snap := holder.Current(); snap.Status == model.StatusFailed && cfg.Model.ExitOnLoadFailure {
			slog.Error("Exiting: model load failed", "error", snap.Error)
			os.Exit(1)
		}
	}()

	svc := service.NewTTS(holder, func() config.SynthesisConfig {
		return watcher.Snapshot().Synthesis
	})

	port := cfg.Server.HTTPPort
	if *flagHTTPPort > 0 {
		port = *flagHTTPPort
	}

	srv := httpserver.NewServer(port, holder, svc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
	case err := <-errCh:
		if err != nil {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}

	slog.Info("Shutdown complete")
}
