package provisioning

import (
	"context"

	"github.com/jamie-woolworths/mlops-labs/internal/config"
	"github.com/jamie-woolworths/mlops-labs/internal/k8s"
	"github.com/jamie-woolworths/mlops-labs/internal/manifests"
	"github.com/jamie-woolworths/mlops-labs/internal/platform/gcp"
	"github.com/jamie-woolworths/mlops-labs/internal/platform/terraform"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Params        *config.RunParameters
	State         *State
	Cloud         gcp.Manager
	Infra         terraform.Runner
	Manifests     manifests.Source
	NewKubeClient k8s.Factory
	Observer      Observer
	Timeouts      *config.Timeouts
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	params *config.RunParameters,
	cloud gcp.Manager,
	infra terraform.Runner,
	src manifests.Source,
	kube k8s.Factory,
) *Context {
	return &Context{
		Context:       ctx,
		Params:        params,
		State:         NewState(),
		Cloud:         cloud,
		Infra:         infra,
		Manifests:     src,
		NewKubeClient: kube,
		Observer:      NewConsoleObserver(),
		Timeouts:      config.LoadTimeouts(),
	}
}
