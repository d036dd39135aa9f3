// Package terraform drives a terraform working directory through the
// terraform CLI.
package terraform

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os/exec"
	"slices"

	"github.com/go-logr/logr"
	"github.com/hashicorp/terraform-exec/tfexec"
)

// Runner defines the interface for provisioning delegated infrastructure.
type Runner interface {
	// Init prepares the working directory, downloading providers and modules.
	Init(ctx context.Context) error
	// Apply creates or updates the infrastructure with the given variables.
	Apply(ctx context.Context, vars map[string]string) error
	// Outputs reads the root module outputs after a successful apply.
	Outputs(ctx context.Context) (map[string]string, error)
}

// CLIRunner implements Runner using the terraform binary.
type CLIRunner struct {
	tf  *tfexec.Terraform
	log logr.Logger
}

var _ Runner = (*CLIRunner)(nil)

// RunnerOption configures a CLIRunner.
type RunnerOption func(*CLIRunner)

// WithLogger sets the logger terraform output is forwarded to.
func WithLogger(log logr.Logger) RunnerOption {
	return func(r *CLIRunner) {
		r.log = log
	}
}

// NewCLIRunner locates the terraform binary on PATH and binds it to workdir.
func NewCLIRunner(workdir string, opts ...RunnerOption) (*CLIRunner, error) {
	execPath, err := exec.LookPath("terraform")
	if err != nil {
		return nil, fmt.Errorf("terraform binary not found in PATH: %w", err)
	}
	tf, err := tfexec.NewTerraform(workdir, execPath)
	if err != nil {
		return nil, fmt.Errorf("binding terraform to %s: %w", workdir, err)
	}
	r := &CLIRunner{
		tf:  tf,
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	tf.SetLogger(printfAdapter{log: r.log})
	return r, nil
}

// Init runs terraform init without upgrading pinned providers.
func (r *CLIRunner) Init(ctx context.Context) error {
	r.log.Info("initializing terraform", "dir", r.tf.WorkingDir())
	if err := r.tf.Init(ctx, tfexec.Upgrade(false)); err != nil {
		return wrapRunError("init", err)
	}
	return nil
}

// Apply runs terraform apply with the variables passed as -var flags.
func (r *CLIRunner) Apply(ctx context.Context, vars map[string]string) error {
	opts := make([]tfexec.ApplyOption, 0, len(vars))
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		opts = append(opts, tfexec.Var(fmt.Sprintf("%s=%s", key, vars[key])))
	}
	r.log.Info("applying infrastructure", "dir", r.tf.WorkingDir())
	if err := r.tf.Apply(ctx, opts...); err != nil {
		return wrapRunError("apply", err)
	}
	return nil
}

// Outputs reads the root module outputs and flattens them to strings.
func (r *CLIRunner) Outputs(ctx context.Context) (map[string]string, error) {
	raw, err := r.tf.Output(ctx)
	if err != nil {
		return nil, wrapRunError("output", err)
	}
	return decodeOutputs(raw), nil
}

// decodeOutputs converts tfexec output metadata into plain strings. String
// outputs lose their JSON quoting, everything else keeps its JSON encoding.
func decodeOutputs(raw map[string]tfexec.OutputMeta) map[string]string {
	outputs := make(map[string]string, len(raw))
	for name, meta := range raw {
		var s string
		if err := json.Unmarshal(meta.Value, &s); err != nil {
			s = string(meta.Value)
		}
		outputs[name] = s
	}
	return outputs
}

type printfAdapter struct {
	log logr.Logger
}

func (p printfAdapter) Printf(format string, args ...interface{}) {
	p.log.Info(fmt.Sprintf(format, args...))
}
