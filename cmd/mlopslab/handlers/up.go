// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/jamie-woolworths/mlops-labs/internal/config"
	"github.com/jamie-woolworths/mlops-labs/internal/k8s"
	"github.com/jamie-woolworths/mlops-labs/internal/manifests"
	"github.com/jamie-woolworths/mlops-labs/internal/platform/gcp"
	"github.com/jamie-woolworths/mlops-labs/internal/platform/terraform"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning/cluster"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning/endpoint"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning/infrastructure"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning/preflight"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning/workstation"
	"github.com/jamie-woolworths/mlops-labs/internal/ui"
	"github.com/jamie-woolworths/mlops-labs/internal/util/prerequisites"
)

// UpOptions carries the flag values of the up command.
type UpOptions struct {
	// ConfigPath loads parameters from a YAML file instead of positional
	// arguments. Empty means positional arguments only.
	ConfigPath string

	// InfraDir is the Terraform working directory.
	InfraDir string

	// BuildDir is the Docker build context for the notebook image.
	BuildDir string
}

// platformLogger returns the logger handed to the platform clients.
func platformLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		log.Printf("%s %s", prefix, args)
	}, funcr.Options{})
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newCloudManager creates the Google Cloud API client set.
	newCloudManager = func(ctx context.Context) (gcp.Manager, error) {
		return gcp.NewRealClient(ctx, gcp.WithLogger(platformLogger()))
	}

	// newInfraRunner creates the Terraform runner for the given directory.
	newInfraRunner = func(workdir string) (terraform.Runner, error) {
		return terraform.NewCLIRunner(workdir, terraform.WithLogger(platformLogger()))
	}

	// newManifestSource creates the pipeline release fetcher.
	newManifestSource = func() manifests.Source {
		return manifests.NewHTTPSource(manifests.WithLogger(platformLogger()))
	}

	// newKubeClient builds cluster clients from kubeconfig bytes.
	newKubeClient k8s.Factory = func(kubeconfig []byte) (k8s.Client, error) {
		return k8s.NewFromKubeconfig(kubeconfig, k8s.WithLogger(platformLogger()))
	}

	// checkDefaultPrereqs runs prerequisite checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// loadFileParams loads parameters from a lab config file.
	loadFileParams = config.LoadFile

	// renderSummary writes the completion summary.
	renderSummary = func(s ui.Summary) {
		fmt.Print(ui.RenderSummary(s, ui.IsInteractive()))
	}
)

// Up provisions the complete ML pipeline lab.
//
// The handler runs five phases in order, stopping at the first failure:
//
//  1. Enables the required project services and grants the Cloud Build
//     service account the role it needs.
//  2. Builds the notebook container image and creates the workstation VM,
//     skipping both when the VM already exists.
//  3. Runs terraform init and apply to create the cluster, the pipeline
//     service account and the artifact bucket, then reads the outputs.
//  4. Installs the service account credentials and the pipeline platform
//     into the cluster.
//  5. Waits for the pipeline UI hostname to be published.
//
// Parameters come from positional arguments, or from a config file when
// opts.ConfigPath is set. Parameter validation happens before any cloud
// client is constructed, so an invalid invocation makes no external calls.
func Up(ctx context.Context, args []string, opts UpOptions) error {
	params, err := resolveParams(args, opts.ConfigPath)
	if err != nil {
		return err
	}

	if err := checkPrerequisites(); err != nil {
		return err
	}

	cloud, err := newCloudManager(ctx)
	if err != nil {
		return fmt.Errorf("initializing cloud clients: %w", err)
	}
	defer func() { _ = cloud.Close() }()

	infra, err := newInfraRunner(opts.InfraDir)
	if err != nil {
		return err
	}

	pctx := provisioning.NewContext(ctx, params, cloud, infra, newManifestSource(), newKubeClient)

	pipeline := provisioning.NewPipeline(
		preflight.NewProvisioner(),
		workstation.NewProvisioner(opts.BuildDir),
		infrastructure.NewProvisioner(),
		cluster.NewProvisioner(),
		endpoint.NewProvisioner(),
	)

	start := time.Now()
	if err := pipeline.Run(pctx); err != nil {
		return err
	}

	renderSummary(summarize(params, pctx.State, time.Since(start)))
	return nil
}

// resolveParams resolves run parameters from positional arguments or, when
// configPath is set, from the lab config file.
func resolveParams(args []string, configPath string) (*config.RunParameters, error) {
	if configPath != "" {
		return loadFileParams(configPath)
	}
	return config.ResolveParameters(args)
}

// checkPrerequisites verifies required client tools are available.
func checkPrerequisites() error {
	results := checkDefaultPrereqs()
	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}
	return nil
}

// summarize collects the run outcome for rendering.
func summarize(params *config.RunParameters, state *provisioning.State, elapsed time.Duration) ui.Summary {
	s := ui.Summary{
		ProjectID:      params.ProjectID,
		Region:         params.Region,
		Zone:           params.Zone,
		Namespace:      params.Namespace,
		InstanceName:   state.InstanceName,
		InstanceReused: state.InstanceExisted,
		ImageURI:       state.ImageURI,
		PlatformHost:   state.PlatformHost,
		Elapsed:        elapsed,
	}
	if state.Infra != nil {
		s.ClusterName = state.Infra.ClusterName
		s.ServiceAccount = state.Infra.ServiceAccountEmail
		s.BucketName = state.Infra.BucketName
	}
	return s
}
