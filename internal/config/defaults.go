package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/envvar"
)

const (
	defaultHTTPPort       = 8080
	defaultLanguage       = "EN"
	defaultDevice         = "auto"
	defaultWarmupText     = "The quick brown fox jumps over the lazy dog."
	defaultMockSampleRate = 44100
	defaultVoice          = "EN-US"
	defaultTimeoutSecs    = 120
)

// DefaultHTTPPort returns the default HTTP port, honoring the
// MELOTTS_SERVER_HTTP_PORT environment variable.
func DefaultHTTPPort() int {
	if v := os.Getenv(envvar.MeloTTSServerHTTPPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			return port
		}
	}

	return defaultHTTPPort
}

// DefaultConfigPath returns the default path for the MeloTTS config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "melotts", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "melotts")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "melotts")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "melotts")
		}
		return filepath.Join(home, ".config", "melotts")
	}
}

// applyDefaults fills in unset optional fields after validation.
func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = DefaultHTTPPort()
	}
	if c.Model.Language == "" {
		c.Model.Language = defaultLanguage
	}
	if c.Model.Device == "" {
		c.Model.Device = defaultDevice
	}
	if c.Model.WarmupText == "" {
		c.Model.WarmupText = defaultWarmupText
	}
	if c.Model.SampleRate == 0 {
		c.Model.SampleRate = defaultMockSampleRate
	}
	if c.Synthesis.DefaultVoice == "" {
		c.Synthesis.DefaultVoice = defaultVoice
	}
	if c.Synthesis.TimeoutSeconds == 0 {
		c.Synthesis.TimeoutSeconds = defaultTimeoutSecs
	}
}
