package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/audio"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/backend"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/config"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/model"
)

// Error kinds surfaced by Speak, matched exhaustively at the handler
// boundary.
var (
	// ErrLoadFailed means the model failed to load at startup. Sticky for
	// the process lifetime; wraps the captured failure text.
	ErrLoadFailed = errors.New("model failed to load")

	// ErrNotReady means the model is still loading.
	ErrNotReady = errors.New("model is still loading")

	// ErrEmptyText means the request carried no text.
	ErrEmptyText = errors.New("text input is required")
)

// SynthesisError wraps a failure during inference or WAV encoding.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("speech generation failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// Settings supplies the live synthesis settings snapshot.
type Settings func() config.SynthesisConfig

// TTS is the service behind the synthesis endpoint. Stateless per request;
// the only shared state it touches is the read-only model holder.
type TTS struct {
	state    *model.Holder
	settings Settings
}

// NewTTS creates a new TTS service.
func NewTTS(state *model.Holder, settings Settings) *TTS {
	return &TTS{
		state:    state,
		settings: settings,
	}
}

// SpeakResult is a finished synthesis: a WAV byte buffer and its format.
type SpeakResult struct {
	WAV        []byte
	SampleRate int
	Engine     string
}

// Speak gates on the current model state, synthesizes speech and encodes it
// into a WAV buffer. Preconditions are checked in order and the first
// failing one short-circuits: load failure, not ready, empty text.
func (s *TTS) Speak(ctx context.Context, text, voice string, params map[string]any) (*SpeakResult, error) {
	snap := s.state.Current()
	switch snap.Status {
	case model.StatusFailed:
		return nil, fmt.Errorf("%w: %s", ErrLoadFailed, snap.Error)
	case model.StatusLoaded:
		// fall through
	default:
		return nil, ErrNotReady
	}

	if text == "" {
		return nil, ErrEmptyText
	}

	cfg := s.settings()
	if voice == "" {
		voice = cfg.DefaultVoice
	}

	if cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	id := uuid.NewString()
	slog.Info("Received TTS request", "request_id", id, "voice", voice, "text", preview(text))

	wavBytes, sampleRate, err := s.synthesize(ctx, snap.Handle, text, voice, params)
	if err != nil {
		slog.Error("TTS generation failed", "request_id", id, "error", err)
		return nil, &SynthesisError{Err: err}
	}

	slog.Info("Successfully generated audio", "request_id", id, "bytes", len(wavBytes))

	return &SpeakResult{
		WAV:        wavBytes,
		SampleRate: sampleRate,
		Engine:     snap.Handle.Engine.Name(),
	}, nil
}

// synthesize runs inference and WAV encoding. A panicking engine is reported
// as an error; a failed request must never corrupt the model state.
func (s *TTS) synthesize(ctx context.Context, handle *model.Handle, text, voice string, params map[string]any) (wavBytes []byte, sampleRate int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panic: %v", r)
		}
	}()

	resp, err := handle.Engine.Synthesize(ctx, &backend.Request{
		Text:       text,
		Voice:      voice,
		Parameters: params,
	})
	if err != nil {
		return nil, 0, err
	}

	sampleRate = resp.SampleRate
	if sampleRate == 0 {
		sampleRate = handle.SampleRate
	}

	wavBytes, err = audio.EncodeWAV(resp.PCM, sampleRate, resp.Channels)
	if err != nil {
		return nil, 0, err
	}

	return wavBytes, sampleRate, nil
}

// preview truncates text for log lines, matching what the service logs on
// each request.
func preview(text string) string {
	const max = 50
	if len(text) <= max {
		return text
	}

	return text[:max] + "..."
}
