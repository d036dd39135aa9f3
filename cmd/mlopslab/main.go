// Package main is the entry point for the mlopslab CLI.
//
// mlopslab is a command-line tool for provisioning a complete
// machine-learning pipeline lab in a Google Cloud project: project
// services, a containerized notebook workstation, the Terraform-managed
// GKE cluster with its service identity and artifact bucket, and the ML
// pipeline platform bootstrapped into the cluster.
//
// Commands: up, init, doctor, version, completion.
//
// For detailed usage information, run:
//
//	mlopslab --help
package main

import (
	"fmt"
	"os"

	"github.com/jamie-woolworths/mlops-labs/cmd/mlopslab/commands"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		// Failures of delegated tools carry their own exit status and
		// the process terminates with the same one.
		os.Exit(provisioning.ExitStatus(err))
	}
}
