package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/service"
)

type (
	// SpeakRequestDTO is the request body for the speak operation.
	SpeakRequestDTO struct {
		Text       string         `json:"text,omitempty" doc:"Text to synthesize"`
		VoiceName  string         `json:"voice_name,omitempty" doc:"Engine voice identifier (e.g. EN-US)"`
		Parameters map[string]any `json:"parameters,omitempty" doc:"Engine-specific parameters"`
	}
)

type (
	// SpeakInput is the huma input for the speak operation.
	SpeakInput struct {
		Body SpeakRequestDTO
	}

	// SpeakOutput carries raw WAV bytes.
	SpeakOutput struct {
		ContentType string `header:"Content-Type"`
		Body        []byte
	}
)

// TTSHandler handles HTTP requests for TTS.
type TTSHandler struct {
	service *service.TTS
}

// NewTTSHandler creates a new TTSHandler instance.
func NewTTSHandler(api huma.API, svc *service.TTS) *TTSHandler {
	h := &TTSHandler{service: svc}

	huma.Register(api, huma.Operation{
		OperationID:   "speak",
		Method:        http.MethodPost,
		Path:          "/tts",
		Summary:       "Synthesize speech from text",
		Tags:          []string{"tts"},
		DefaultStatus: http.StatusOK,
	}, h.handleSpeak)

	return h
}

// handleSpeak handles the speak operation. Every service error kind maps to
// exactly one HTTP category; nothing propagates unmapped.
func (h *TTSHandler) handleSpeak(ctx context.Context, input *SpeakInput) (*SpeakOutput, error) {
	result, err := h.service.Speak(ctx, input.Body.Text, input.Body.VoiceName, input.Body.Parameters)
	if err != nil {
		var synthErr *service.SynthesisError
		switch {
		case errors.Is(err, service.ErrLoadFailed):
			return nil, huma.Error503ServiceUnavailable("Service Unavailable: " + err.Error())
		case errors.Is(err, service.ErrNotReady):
			return nil, huma.Error503ServiceUnavailable("Service Unavailable: MeloTTS model is still loading. Please try again shortly.")
		case errors.Is(err, service.ErrEmptyText):
			return nil, huma.Error400BadRequest("Text input is required.")
		case errors.As(err, &synthErr):
			return nil, huma.Error500InternalServerError("TTS generation failed: " + synthErr.Err.Error() + ". Check server logs for details.")
		default:
			return nil, huma.Error500InternalServerError("TTS generation failed", err)
		}
	}

	return &SpeakOutput{
		ContentType: "audio/wav",
		Body:        result.WAV,
	}, nil
}
