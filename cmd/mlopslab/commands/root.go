// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the mlopslab CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// Errors are reported once by main, so cobra's own error printing is
// silenced; usage is still printed for argument errors.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mlopslab",
		Short:         "Provision an ML pipeline lab on Google Cloud",
		SilenceErrors: true,
	}

	// Core commands
	cmd.AddCommand(Up())
	cmd.AddCommand(Init())
	cmd.AddCommand(Doctor())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
