// Package gcp provides a wrapper around the Google Cloud APIs.
package gcp

import (
	"context"
	"time"
)

// InstanceOpts holds all parameters for creating a workstation instance.
type InstanceOpts struct {
	Name           string
	MachineType    string
	BootDiskGB     int64
	ContainerImage string
	Metadata       map[string]string
	Labels         map[string]string
}

// BuildOpts holds all parameters for a Cloud Build image build.
type BuildOpts struct {
	// Name is the logical build name used for the staged source object.
	Name string
	// Tag is the fully qualified image URI to build and push.
	Tag string
	// ContextDir is the local directory used as the docker build context.
	ContextDir string
	// Timeout bounds the build on the Cloud Build side. Zero keeps the
	// backend default.
	Timeout time.Duration
}

// Instance is the subset of instance state consumed by provisioning.
type Instance struct {
	ID     uint64
	Name   string
	Zone   string
	Status string
}

// ClusterAccess bundles the material needed to talk to a GKE cluster.
type ClusterAccess struct {
	// Endpoint is the public endpoint of the cluster control plane.
	Endpoint string
	// CACert is the PEM encoded cluster CA certificate.
	CACert []byte
	// Token is an access token for the active credentials.
	Token string
}

// ServiceEnabler defines the interface for enabling project APIs.
type ServiceEnabler interface {
	// EnableServices enables the given services on the project and waits
	// until the enablement settles. Already enabled services are a no-op.
	EnableServices(ctx context.Context, projectID string, services []string) error
}

// ProjectConfigurator defines the interface for project metadata and IAM.
type ProjectConfigurator interface {
	ProjectNumber(ctx context.Context, projectID string) (int64, error)
	// EnsureRoleBinding grants the role to the member on the project. The
	// grant is idempotent: a member that already holds the role leaves the
	// policy untouched.
	EnsureRoleBinding(ctx context.Context, projectID, member, role string) error
}

// InstanceManager defines the interface for managing workstation instances.
type InstanceManager interface {
	// FindInstance returns the named instance in the zone, or nil when no
	// such instance exists.
	FindInstance(ctx context.Context, projectID, zone, name string) (*Instance, error)
	CreateInstance(ctx context.Context, projectID, zone string, opts InstanceOpts) error
}

// ImagePublisher defines the interface for building container images.
type ImagePublisher interface {
	// BuildImage stages the build context to Cloud Storage, runs a Cloud
	// Build job and waits until the image is pushed.
	BuildImage(ctx context.Context, projectID string, opts BuildOpts) error
}

// ClusterAccessor defines the interface for reading cluster connection material.
type ClusterAccessor interface {
	ClusterAccess(ctx context.Context, projectID, location, name string) (*ClusterAccess, error)
}

// KeyMinter defines the interface for minting service account keys.
type KeyMinter interface {
	// CreateServiceAccountKey mints a user-managed key for the service
	// account and returns the decoded JSON credentials.
	CreateServiceAccountKey(ctx context.Context, email string) ([]byte, error)
}

// Manager combines all cloud operations used by provisioning phases.
type Manager interface {
	ServiceEnabler
	ProjectConfigurator
	InstanceManager
	ImagePublisher
	ClusterAccessor
	KeyMinter
	Close() error
}
