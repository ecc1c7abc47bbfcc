package melo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/mattn/go-shellwords"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/backend"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/config"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/mapsafe"
)

// EngineName is the engine identifier.
const EngineName = "melo"

// Supported compute devices.
const (
	DeviceAuto = "auto"
	DeviceCPU  = "cpu"
	DeviceCUDA = "cuda"
)

// Engine implements backend.Engine for the MeloTTS CLI.
//
// Wire protocol per call: one JSON request on stdin, one JSON response on
// stdout carrying base64-encoded 16-bit little-endian PCM.
type Engine struct {
	executor *backend.Executor
	args     []string
	language string
	device   string
	speed    float64
}

type synthRequest struct {
	Text     string  `json:"text"`
	Voice    string  `json:"voice"`
	Language string  `json:"language"`
	Device   string  `json:"device"`
	Speed    float64 `json:"speed,omitempty"`
}

type synthResponse struct {
	PCMBase64  string `json:"pcm_base64"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DetectDevice resolves the compute device for the engine. An explicit
// request for cpu or cuda is honored; "auto" probes for CUDA capability
// (nvidia-smi on PATH) and falls back to CPU. This is a capability probe,
// not a retry policy.
func DetectDevice(requested string) string {
	switch requested {
	case DeviceCPU, DeviceCUDA:
		return requested
	}

	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return DeviceCUDA
	}

	return DeviceCPU
}

// New creates the engine from the configured command line. The binary must
// exist; model weights are only pulled in by the first synthesis (warmup).
func New(cfg config.ModelConfig, timeout time.Duration) (*Engine, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("parse melo command: %w", err)
	}
	if len(args) == 0 {
		return nil, errors.New("melo command is empty")
	}

	executor, err := backend.NewExecutor(args[0], timeout)
	if err != nil {
		return nil, err
	}

	return &Engine{
		executor: executor,
		args:     args[1:],
		language: cfg.Language,
		device:   DetectDevice(cfg.Device),
		speed:    mapsafe.Get(cfg.Parameters, "speed", 1.0),
	}, nil
}

// Name returns the engine identifier.
func (e *Engine) Name() string {
	return EngineName
}

// Device returns the resolved compute device.
func (e *Engine) Device() string {
	return e.device
}

// Warmup renders a short utterance to force model weights into memory and
// returns the engine's sample rate.
func (e *Engine) Warmup(ctx context.Context, text, voice string) (int, error) {
	resp, err := e.Synthesize(ctx, &backend.Request{Text: text, Voice: voice})
	if err != nil {
		return 0, err
	}

	return resp.SampleRate, nil
}

// Synthesize renders speech for the request.
func (e *Engine) Synthesize(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	payload, err := json.Marshal(synthRequest{
		Text:     req.Text,
		Voice:    req.Voice,
		Language: e.language,
		Device:   e.device,
		Speed:    mapsafe.Get(req.Parameters, "speed", e.speed),
	})
	if err != nil {
		return nil, fmt.Errorf("encode melo request: %w", err)
	}

	stdout, stderr, err := e.executor.Execute(ctx, e.args, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("execution failed: %w\nstderr: %s", err, stderr)
	}

	var resp synthResponse
	if err := json.Unmarshal(bytes.TrimSpace(stdout), &resp); err != nil {
		return nil, fmt.Errorf("decode melo response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("melo: %s", resp.Error)
	}

	pcm, err := base64.StdEncoding.DecodeString(resp.PCMBase64)
	if err != nil {
		return nil, fmt.Errorf("decode melo audio: %w", err)
	}
	if len(pcm) == 0 {
		return nil, backend.ErrEmptyResponse
	}

	channels := resp.Channels
	if channels == 0 {
		channels = 1
	}

	return &backend.Response{
		PCM:        pcm,
		SampleRate: resp.SampleRate,
		Channels:   channels,
		Metadata: &backend.ResponseMetadata{
			Engine:      EngineName,
			Timestamp:   time.Now(),
			OutputBytes: int64(len(pcm)),
			EngineSpecific: map[string]any{
				"device":   e.device,
				"language": e.language,
			},
		},
	}, nil
}

// Close cleans up resources. The engine spawns a process per call and holds
// nothing open between calls.
func (e *Engine) Close() error {
	return nil
}
