package env

import (
	"os"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/envvar"
)

// Environment is the runtime environment of the process.
type Environment string

const (
	// Development is the local development environment.
	Development Environment = "development"

	// Production is the deployed environment.
	Production Environment = "production"
)

// FromEnv determines the environment from MELOTTS_ENV.
// Anything other than "production" is treated as development.
func FromEnv() Environment {
	if Environment(os.Getenv(envvar.MeloTTSEnv)) == Production {
		return Production
	}

	return Development
}
