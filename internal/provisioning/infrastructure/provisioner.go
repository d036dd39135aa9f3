package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"github.com/jamie-woolworths/mlops-labs/internal/config"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning"
)

const phase = "infrastructure"

// Output names the terraform root module must produce.
const (
	outputClusterName    = "cluster_name"
	outputServiceAccount = "pipeline_service_account"
	outputArtifactBucket = "artifact_bucket"
	outputClusterZone    = "cluster_zone"
)

// Provisioner handles the delegated infrastructure run.
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. It runs init, apply
// and output strictly in that order; outputs are only read after a
// successful apply.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	ctx.Observer.Printf("[%s] Initializing terraform...", phase)
	if err := ctx.Infra.Init(ctx); err != nil {
		return err
	}

	ctx.Observer.Printf("[%s] Applying infrastructure (this can take a while)...", phase)
	applyCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Apply)
	defer cancel()
	if err := ctx.Infra.Apply(applyCtx, applyVars(ctx.Params)); err != nil {
		return err
	}

	outputs, err := ctx.Infra.Outputs(ctx)
	if err != nil {
		return err
	}
	infra, err := parseOutputs(outputs)
	if err != nil {
		return err
	}
	ctx.State.Infra = infra

	ctx.Observer.Printf("[%s] Cluster %s ready in %s, artifacts in gs://%s", phase, infra.ClusterName, infra.ClusterZone, infra.BucketName)
	return nil
}

// applyVars maps the run parameters onto the root module variables.
func applyVars(params *config.RunParameters) map[string]string {
	return map[string]string{
		"project_id":   params.ProjectID,
		"region":       params.Region,
		"zone":         params.Zone,
		"name_prefix":  params.NamePrefix,
		"sql_password": params.SQLPassword,
	}
}

// parseOutputs extracts the outputs later phases rely on. Every output is
// required; a missing one means the root module broke its contract.
func parseOutputs(outputs map[string]string) (*provisioning.InfraOutputs, error) {
	infra := &provisioning.InfraOutputs{
		ClusterName:         outputs[outputClusterName],
		ServiceAccountEmail: outputs[outputServiceAccount],
		BucketName:          outputs[outputArtifactBucket],
		ClusterZone:         outputs[outputClusterZone],
	}

	var missing []string
	if infra.ClusterName == "" {
		missing = append(missing, outputClusterName)
	}
	if infra.ServiceAccountEmail == "" {
		missing = append(missing, outputServiceAccount)
	}
	if infra.BucketName == "" {
		missing = append(missing, outputArtifactBucket)
	}
	if infra.ClusterZone == "" {
		missing = append(missing, outputClusterZone)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("terraform outputs missing: %s", strings.Join(missing, ", "))
	}
	return infra, nil
}
