package preflight

import (
	"context"

	"github.com/jamie-woolworths/mlops-labs/internal/platform/gcp"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning"
)

const phase = "preflight"

// RequiredServices are the APIs the lab needs at build, deploy and run time.
// Enabling an already enabled service is a no-op, so the list is applied on
// every run.
var RequiredServices = []string{
	"cloudbuild.googleapis.com",
	"container.googleapis.com",
	"cloudresourcemanager.googleapis.com",
	"iam.googleapis.com",
	"containerregistry.googleapis.com",
	"containeranalysis.googleapis.com",
	"ml.googleapis.com",
	"sqladmin.googleapis.com",
	"dataflow.googleapis.com",
}

// buildRole is granted to the build identity so image builds can push to the
// project registry and read project resources.
const buildRole = "roles/editor"

// Provisioner handles project preparation.
type Provisioner struct{}

// NewProvisioner creates a new preflight provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.enableServices(ctx); err != nil {
		return err
	}
	return p.grantBuildRole(ctx)
}

func (p *Provisioner) enableServices(ctx *provisioning.Context) error {
	ctx.Observer.Printf("[%s] Enabling %d services on %s...", phase, len(RequiredServices), ctx.Params.ProjectID)

	enableCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.ServiceEnable)
	defer cancel()
	if err := ctx.Cloud.EnableServices(enableCtx, ctx.Params.ProjectID, RequiredServices); err != nil {
		return err
	}

	ctx.Observer.Printf("[%s] Services enabled", phase)
	return nil
}

// grantBuildRole resolves the project number, derives the build identity
// from it and grants the identity its project role.
func (p *Provisioner) grantBuildRole(ctx *provisioning.Context) error {
	number, err := ctx.Cloud.ProjectNumber(ctx, ctx.Params.ProjectID)
	if err != nil {
		return err
	}

	member := gcp.BuildServiceAccountMember(number)
	ctx.Observer.Printf("[%s] Granting %s to %s", phase, buildRole, member)
	return ctx.Cloud.EnsureRoleBinding(ctx, ctx.Params.ProjectID, member, buildRole)
}
