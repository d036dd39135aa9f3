// Package config resolves the inputs of a provisioning run.
//
// Parameters arrive either as positional CLI arguments or from a lab
// config file written by the init wizard; both paths share one
// defaulting policy. Timeouts are tuned through environment variables.
package config
