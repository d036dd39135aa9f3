package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	ServiceEnable     time.Duration // Timeout for the backend service batch-enable operation
	Build             time.Duration // Timeout for the notebook image build
	InstanceCreate    time.Duration // Timeout for workstation instance creation
	Apply             time.Duration // Timeout for the delegated infrastructure apply
	CRDEstablish      time.Duration // Bound for waiting on CRDs to become established
	Settle            time.Duration // Settle period before reading the platform endpoint
	PollInterval      time.Duration // Interval between readiness polls
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - MLOPSLAB_TIMEOUT_SERVICE_ENABLE (default: 5m)
//   - MLOPSLAB_TIMEOUT_BUILD (default: 15m)
//   - MLOPSLAB_TIMEOUT_INSTANCE_CREATE (default: 10m)
//   - MLOPSLAB_TIMEOUT_APPLY (default: 30m)
//   - MLOPSLAB_TIMEOUT_CRD_ESTABLISH (default: 60s)
//   - MLOPSLAB_TIMEOUT_SETTLE (default: 2m)
//   - MLOPSLAB_POLL_INTERVAL (default: 5s)
//   - MLOPSLAB_RETRY_MAX_ATTEMPTS (default: 5)
//   - MLOPSLAB_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ServiceEnable:     parseDuration("MLOPSLAB_TIMEOUT_SERVICE_ENABLE", 5*time.Minute),
		Build:             parseDuration("MLOPSLAB_TIMEOUT_BUILD", 15*time.Minute),
		InstanceCreate:    parseDuration("MLOPSLAB_TIMEOUT_INSTANCE_CREATE", 10*time.Minute),
		Apply:             parseDuration("MLOPSLAB_TIMEOUT_APPLY", 30*time.Minute),
		CRDEstablish:      parseDuration("MLOPSLAB_TIMEOUT_CRD_ESTABLISH", 60*time.Second),
		Settle:            parseDuration("MLOPSLAB_TIMEOUT_SETTLE", 2*time.Minute),
		PollInterval:      parseDuration("MLOPSLAB_POLL_INTERVAL", 5*time.Second),
		RetryMaxAttempts:  parseInt("MLOPSLAB_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("MLOPSLAB_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
