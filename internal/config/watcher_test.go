package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watcherInitialYAML = `version: "1"
model:
  engine: melo
  command: "melo-tts --mode pipe"
synthesis:
  default_voice: EN-US
`

const watcherUpdatedYAML = `version: "1"
model:
  engine: mock
  command: "overwritten"
synthesis:
  default_voice: EN-BR
`

func TestWatcher_ReloadPinsModelSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(watcherInitialYAML), 0o644))

	reloaded := make(chan *Config, 1)
	watcher, err := NewWatcher(path, schemaPath, func(cfg *Config, err error) {
		require.NoError(t, err)
		reloaded <- cfg
	})
	require.NoError(t, err)

	initial := watcher.Snapshot()
	require.Equal(t, EngineMelo, initial.Model.Engine)
	require.Equal(t, "EN-US", initial.Synthesis.DefaultVoice)

	require.NoError(t, os.WriteFile(path, []byte(watcherUpdatedYAML), 0o644))

	select {
	case cfg := <-reloaded:
		// Hot-reloadable sections take effect.
		assert.Equal(t, "EN-BR", cfg.Synthesis.DefaultVoice)

		// The model section is pinned to the startup values.
		assert.Equal(t, EngineMelo, cfg.Model.Engine)
		assert.Equal(t, "melo-tts --mode pipe", cfg.Model.Command)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	snapshot := watcher.Snapshot()
	assert.Equal(t, EngineMelo, snapshot.Model.Engine)
	assert.Equal(t, "melo-tts --mode pipe", snapshot.Model.Command)
	assert.Equal(t, "EN-BR", snapshot.Synthesis.DefaultVoice)
	assert.GreaterOrEqual(t, watcher.ReloadCount(), uint32(1))
}

func TestWatcher_InvalidPathRejected(t *testing.T) {
	watcher, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), schemaPath, nil)
	assert.Nil(t, watcher)
	assert.Error(t, err)
}
