package commands

import (
	"github.com/spf13/cobra"

	"github.com/jamie-woolworths/mlops-labs/cmd/mlopslab/handlers"
)

// Up returns the up command, the main provisioning entry point.
func Up() *cobra.Command {
	var opts handlers.UpOptions

	cmd := &cobra.Command{
		Use:   "up PROJECT_ID SQL_PASSWORD [NAME_PREFIX] [REGION] [ZONE] [NAMESPACE]",
		Short: "Provision the complete ML pipeline lab",
		Long: `Provision the complete ML pipeline lab in a Google Cloud project.

The command runs five phases in order and stops at the first failure:

  1. preflight       enable project services, grant the Cloud Build role
  2. workstation     build the notebook image and create the notebook VM
  3. infrastructure  terraform init/apply for cluster, identity and bucket
  4. cluster         install credentials and the pipeline platform
  5. endpoint        wait for the pipeline UI hostname

Parameters beyond the first two are optional and default to:
NAME_PREFIX=PROJECT_ID, REGION=us-central1, ZONE=us-central1-a,
NAMESPACE=kubeflow.

Examples:
  # Provision with defaults
  mlopslab up my-project s3cret

  # Pin the resource prefix and region
  mlopslab up my-project s3cret team-a us-east1

  # Load parameters from a file written by 'mlopslab init'
  mlopslab up --config mlopslab.yaml`,
		Args: upArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid at this point; runtime failures must
			// not reprint usage.
			cmd.SilenceUsage = true
			return handlers.Up(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Load parameters from a YAML file instead of positional arguments")
	cmd.Flags().StringVar(&opts.InfraDir, "infra-dir", "infra", "Directory containing the Terraform module")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "notebook", "Docker build context for the notebook image")

	return cmd
}

// upArgs validates positional parameters. With --config the parameters come
// from the file and no positionals are accepted; otherwise the project id
// and sql password are required.
func upArgs(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("config") {
		return cobra.NoArgs(cmd, args)
	}
	return cobra.RangeArgs(2, 6)(cmd, args)
}
