package mock

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/backend"
)

// EngineName is the engine identifier.
const EngineName = "mock"

// Engine is a deterministic backend.Engine for tests and local development.
// It renders a 440 Hz tone whose duration scales with the text length.
type Engine struct {
	sampleRate int
	channels   int
}

// New creates a mock engine with the given output format.
func New(sampleRate, channels int) *Engine {
	if channels <= 0 {
		channels = 1
	}

	return &Engine{sampleRate: sampleRate, channels: channels}
}

// Name returns the engine identifier.
func (e *Engine) Name() string {
	return EngineName
}

// Synthesize renders the canned tone.
func (e *Engine) Synthesize(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 100ms per 10 characters, clamped to [100ms, 2s].
	duration := time.Duration(len(req.Text)/10+1) * 100 * time.Millisecond
	if duration > 2*time.Second {
		duration = 2 * time.Second
	}

	frames := int(float64(e.sampleRate) * duration.Seconds())
	pcm := make([]byte, frames*e.channels*2)
	for i := 0; i < frames; i++ {
		sample := int16(0.2 * math.MaxInt16 * math.Sin(2*math.Pi*440*float64(i)/float64(e.sampleRate)))
		for c := 0; c < e.channels; c++ {
			binary.LittleEndian.PutUint16(pcm[(i*e.channels+c)*2:], uint16(sample))
		}
	}

	return &backend.Response{
		PCM:        pcm,
		SampleRate: e.sampleRate,
		Channels:   e.channels,
		Metadata: &backend.ResponseMetadata{
			Engine:      EngineName,
			Timestamp:   time.Now(),
			OutputBytes: int64(len(pcm)),
		},
	}, nil
}

// Close cleans up resources. The mock engine has none.
func (e *Engine) Close() error {
	return nil
}
