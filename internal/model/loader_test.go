package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/backend"
	"github.com/QuantumPhantom09/MeloTTS-Render/internal/config"
)

func TestLoaderFromConfig_MockEngine(t *testing.T) {
	loader := LoaderFromConfig(config.ModelConfig{
		Engine:     config.EngineMock,
		Language:   "EN",
		SampleRate: 22050,
	}, config.SynthesisConfig{DefaultVoice: "EN-US", TimeoutSeconds: 5})

	handle, err := loader(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Engine.Close() })

	assert.Equal(t, "mock", handle.Engine.Name())
	assert.Equal(t, 22050, handle.SampleRate)
	assert.Equal(t, 1, handle.Channels)
	assert.Equal(t, "EN", handle.Language)
	assert.Equal(t, "cpu", handle.Device)
	assert.False(t, handle.LoadedAt.IsZero())
}

func TestLoaderFromConfig_UnknownEngine(t *testing.T) {
	loader := LoaderFromConfig(config.ModelConfig{Engine: config.EngineName("espeak")}, config.SynthesisConfig{})

	handle, err := loader(context.Background())
	assert.Nil(t, handle)
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestLoaderFromConfig_MissingBinary(t *testing.T) {
	loader := LoaderFromConfig(config.ModelConfig{
		Engine:  config.EngineMelo,
		Command: "definitely-not-on-path-melo --mode pipe",
	}, config.SynthesisConfig{TimeoutSeconds: 5})

	handle, err := loader(context.Background())
	assert.Nil(t, handle)
	assert.Error(t, err)
}
