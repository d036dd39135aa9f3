package commands

import (
	"github.com/spf13/cobra"

	"github.com/jamie-woolworths/mlops-labs/cmd/mlopslab/handlers"
)

// Doctor returns the doctor command for local environment diagnostics.
func Doctor() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the local environment for required tooling",
		Long: `Check the local environment without calling any cloud APIs.

Verifies that terraform is on PATH, reports optional tooling (gcloud,
kubectl), and checks for application default credentials and a lab
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return handlers.Doctor(cmd.Context(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
