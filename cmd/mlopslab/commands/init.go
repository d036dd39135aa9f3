package commands

import (
	"github.com/spf13/cobra"

	"github.com/jamie-woolworths/mlops-labs/cmd/mlopslab/handlers"
	"github.com/jamie-woolworths/mlops-labs/internal/config"
)

// Init returns the init command which writes the lab config file.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a lab configuration file interactively",
		Long: `Create a lab configuration file through an interactive wizard.

The wizard asks for the Google Cloud project, the Cloud SQL password and
the optional prefix, region, zone and namespace, then writes them to a
YAML file for use with 'mlopslab up --config'.

Examples:
  # Create mlopslab.yaml in the current directory
  mlopslab init

  # Write to a custom path
  mlopslab init --output labs/team-a.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultFile, "Path of the config file to write")

	return cmd
}
