package backend

import (
	"context"
	"time"
)

// Engine defines the core interface for synthesis engines.
type Engine interface {
	// Name returns the engine identifier.
	Name() string

	// Synthesize renders speech for the request and returns raw PCM.
	Synthesize(ctx context.Context, req *Request) (*Response, error)

	// Close cleans up resources.
	Close() error
}

// Warmer is an optional interface for engines that must render once to
// finish loading and learn their sample rate.
type Warmer interface {
	Engine

	// Warmup renders a short utterance and returns the engine's sample rate.
	Warmup(ctx context.Context, text, voice string) (int, error)
}

// DeviceReporter is an optional interface for engines bound to a compute
// device.
type DeviceReporter interface {
	// Device returns the resolved compute device.
	Device() string
}

// Request encapsulates all parameters for a synthesis call.
type Request struct {
	// Text is the text to render.
	Text string

	// Voice is the engine voice identifier (e.g. "EN-US"). It is passed
	// through untouched; the engine owns voice resolution.
	Voice string

	// Parameters contains engine-specific per-request parameters.
	Parameters map[string]any
}

// Response contains the result of a synthesis call.
type Response struct {
	// PCM is 16-bit little-endian audio.
	PCM []byte

	// SampleRate and Channels describe the PCM payload.
	SampleRate int
	Channels   int

	// Metadata contains engine-specific information.
	Metadata *ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	Engine         string         `json:"engine"`
	Timestamp      time.Time      `json:"timestamp"`
	OutputBytes    int64          `json:"output_bytes"`
	EngineSpecific map[string]any `json:"engine_specific,omitempty"`
}
