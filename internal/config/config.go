package config

// EngineName identifies a synthesis engine implementation.
type EngineName string

const (
	// EngineMelo is the MeloTTS engine driven through its CLI.
	EngineMelo EngineName = "melo"

	// EngineMock is a canned engine for tests and local development.
	EngineMock EngineName = "mock"
)

// Config holds the main configuration for the application.
type Config struct {
	Version   string          `json:"version"             yaml:"version"`
	Server    ServerConfig    `json:"server,omitempty"    yaml:"server,omitempty"`
	Logging   LoggingConfig   `json:"logging,omitempty"   yaml:"logging,omitempty"`
	Model     ModelConfig     `json:"model"               yaml:"model"`
	Synthesis SynthesisConfig `json:"synthesis,omitempty" yaml:"synthesis,omitempty"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	HTTPPort int `json:"http_port,omitempty" yaml:"http_port,omitempty"`
}

// LoggingConfig holds file logging configuration.
type LoggingConfig struct {
	ToFile bool   `json:"to_file,omitempty" yaml:"to_file,omitempty"`
	File   string `json:"file,omitempty"    yaml:"file,omitempty"`
}

// ModelConfig describes the engine loaded once at process startup.
// This section is not hot-reloadable; the model state machine is monotonic.
type ModelConfig struct {
	Engine     EngineName `json:"engine"                yaml:"engine"`
	Command    string     `json:"command,omitempty"     yaml:"command,omitempty"`
	Language   string     `json:"language,omitempty"    yaml:"language,omitempty"`
	Device     string     `json:"device,omitempty"      yaml:"device,omitempty"` // auto | cpu | cuda
	WarmupText string     `json:"warmup_text,omitempty" yaml:"warmup_text,omitempty"`

	// SampleRate is the output rate of the mock engine. The melo engine
	// reports its own rate during warmup.
	SampleRate int `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty"`

	// ExitOnLoadFailure escalates a startup load failure to process exit
	// instead of serving 503s for the process lifetime.
	ExitOnLoadFailure bool `json:"exit_on_load_failure,omitempty" yaml:"exit_on_load_failure,omitempty"`

	// Parameters contains engine-specific defaults (e.g. speed).
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// SynthesisConfig holds per-request synthesis settings. Hot-reloadable.
type SynthesisConfig struct {
	DefaultVoice   string `json:"default_voice,omitempty"   yaml:"default_voice,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}
