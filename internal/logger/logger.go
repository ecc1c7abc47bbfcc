package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/env"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/envvar"
)

type options struct {
	logToFile bool
	logFile   string
}

// Option configures the logger.
type Option func(*options)

// WithLogToFile enables mirroring log output into a rotated file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the log file path used when file logging is enabled.
func WithLogFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.logFile = path
		}
	}
}

// New builds the process logger. Development gets a tinted console handler,
// production gets structured JSON. Every record carries the Render instance
// identifier so lines from different instances can be told apart.
func New(e env.Environment, opts ...Option) *slog.Logger {
	o := &options{logFile: "logs/melotts.log"}
	for _, opt := range opts {
		opt(o)
	}

	var w io.Writer = os.Stderr
	if o.logToFile {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	var handler slog.Handler
	switch e {
	case env.Production:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = tint.NewHandler(w, &tint.Options{Level: slog.LevelDebug})
	}

	instance := os.Getenv(envvar.RenderInstanceID)
	if instance == "" {
		instance = "local"
	}

	return slog.New(handler).With("instance", instance)
}
