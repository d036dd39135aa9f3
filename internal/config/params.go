package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jamie-woolworths/mlops-labs/internal/util/naming"
)

// Defaults applied to optional parameters that are not supplied.
const (
	DefaultRegion    = "us-central1"
	DefaultZone      = "us-central1-a"
	DefaultNamespace = "kubeflow"
)

// ErrUsage reports an invalid argument list.
var ErrUsage = errors.New("expected arguments: PROJECT_ID SQL_PASSWORD [NAME_PREFIX] [REGION] [ZONE] [NAMESPACE]")

// RunParameters holds the fully resolved inputs of a provisioning run.
type RunParameters struct {
	ProjectID   string
	SQLPassword string
	NamePrefix  string
	Region      string
	Zone        string
	Namespace   string
}

// ResolveParameters builds RunParameters from the positional argument list
// PROJECT_ID SQL_PASSWORD [NAME_PREFIX] [REGION] [ZONE] [NAMESPACE].
// Fewer than two arguments is a usage error. Empty optional arguments are
// treated as unset and defaulted.
func ResolveParameters(args []string) (*RunParameters, error) {
	if len(args) < 2 || len(args) > 6 {
		return nil, ErrUsage
	}

	p := &RunParameters{
		ProjectID:   strings.TrimSpace(args[0]),
		SQLPassword: args[1],
	}
	if p.ProjectID == "" {
		return nil, fmt.Errorf("project id must not be empty: %w", ErrUsage)
	}
	if p.SQLPassword == "" {
		return nil, fmt.Errorf("sql password must not be empty: %w", ErrUsage)
	}

	opt := func(i int) string {
		if len(args) > i {
			return strings.TrimSpace(args[i])
		}
		return ""
	}
	p.NamePrefix = opt(2)
	p.Region = opt(3)
	p.Zone = opt(4)
	p.Namespace = opt(5)

	p.applyDefaults()
	return p, nil
}

func (p *RunParameters) applyDefaults() {
	if p.NamePrefix == "" {
		p.NamePrefix = p.ProjectID
	}
	if p.Region == "" {
		p.Region = DefaultRegion
	}
	if p.Zone == "" {
		p.Zone = DefaultZone
	}
	if p.Namespace == "" {
		p.Namespace = DefaultNamespace
	}
}

// InstanceName returns the notebook workstation name derived from the prefix.
func (p *RunParameters) InstanceName() string {
	return naming.Notebook(p.NamePrefix)
}
