package model

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/backend"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/backend/melo"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/backend/mock"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/config"
)

// engineRegistry returns the registry of built-in engine factories.
func engineRegistry() *backend.Registry {
	registry := backend.NewRegistry()

	registry.Register(config.EngineMelo, func(cfg config.ModelConfig, timeout time.Duration) (backend.Engine, error) {
		return melo.New(cfg, timeout)
	})
	registry.Register(config.EngineMock, func(cfg config.ModelConfig, _ time.Duration) (backend.Engine, error) {
		return mock.New(cfg.SampleRate, 1), nil
	})

	return registry
}

// LoaderFromConfig builds the startup loader for the configured engine.
func LoaderFromConfig(cfg config.ModelConfig, synth config.SynthesisConfig) Loader {
	return func(ctx context.Context) (*Handle, error) {
		name := cfg.Engine
		if name == "" {
			name = config.EngineMelo
		}

		factory, ok := engineRegistry().Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", backend.ErrNotFound, name)
		}

		slog.Info("Starting model loading", "engine", name, "language", cfg.Language)

		timeout := time.Duration(synth.TimeoutSeconds) * time.Second
		engine, err := factory(cfg, timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to load MeloTTS model: %w", err)
		}

		device := "cpu"
		if reporter, ok := engine.(backend.DeviceReporter); ok {
			device = reporter.Device()
		}

		sampleRate := cfg.SampleRate
		if warmer, ok := engine.(backend.Warmer); ok {
			slog.Info("Attempting to load MeloTTS model", "device", device)

			sampleRate, err = warmer.Warmup(ctx, cfg.WarmupText, synth.DefaultVoice)
			if err != nil {
				_ = engine.Close()
				return nil, fmt.Errorf("failed to load MeloTTS model: %w", err)
			}
		}

		return &Handle{
			Engine:     engine,
			SampleRate: sampleRate,
			Channels:   1,
			Language:   cfg.Language,
			Device:     device,
			LoadedAt:   time.Now(),
		}, nil
	}
}
