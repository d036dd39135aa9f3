package gcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	cloudbuild "cloud.google.com/go/cloudbuild/apiv1/v2"
	compute "cloud.google.com/go/compute/apiv1"
	container "cloud.google.com/go/container/apiv1"
	admin "cloud.google.com/go/iam/admin/apiv1"
	resourcemanager "cloud.google.com/go/resourcemanager/apiv3"
	serviceusage "cloud.google.com/go/serviceusage/apiv1"
	"cloud.google.com/go/storage"
	"github.com/go-logr/logr"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// RealClient implements Manager using the Google Cloud APIs.
type RealClient struct {
	services  *serviceusage.Client
	projects  *resourcemanager.ProjectsClient
	instances *compute.InstancesClient
	builds    *cloudbuild.Client
	clusters  *container.ClusterManagerClient
	iam       *admin.IamClient
	storage   *storage.Client

	tokens oauth2.TokenSource
	log    logr.Logger
	now    func() time.Time
}

var _ Manager = (*RealClient)(nil)

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithLogger sets the logger used for API progress output.
func WithLogger(log logr.Logger) ClientOption {
	return func(c *RealClient) {
		c.log = log
	}
}

// WithTokenSource overrides the token source used for cluster credentials.
func WithTokenSource(ts oauth2.TokenSource) ClientOption {
	return func(c *RealClient) {
		c.tokens = ts
	}
}

// NewRealClient creates a RealClient with application default credentials.
func NewRealClient(ctx context.Context, opts ...ClientOption) (*RealClient, error) {
	c := &RealClient{
		log: logr.Discard(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.tokens == nil {
		ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("resolving default credentials: %w", err)
		}
		c.tokens = ts
	}

	var err error
	if c.services, err = serviceusage.NewClient(ctx); err != nil {
		return nil, fmt.Errorf("creating service usage client: %w", err)
	}
	if c.projects, err = resourcemanager.NewProjectsClient(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("creating resource manager client: %w", err)
	}
	if c.instances, err = compute.NewInstancesRESTClient(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("creating compute client: %w", err)
	}
	if c.builds, err = cloudbuild.NewClient(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("creating cloud build client: %w", err)
	}
	if c.clusters, err = container.NewClusterManagerClient(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("creating cluster manager client: %w", err)
	}
	if c.iam, err = admin.NewIamClient(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("creating IAM client: %w", err)
	}
	if c.storage, err = storage.NewClient(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return c, nil
}

// Close releases every underlying API client.
func (c *RealClient) Close() error {
	var errs []error
	if c.services != nil {
		errs = append(errs, c.services.Close())
	}
	if c.projects != nil {
		errs = append(errs, c.projects.Close())
	}
	if c.instances != nil {
		errs = append(errs, c.instances.Close())
	}
	if c.builds != nil {
		errs = append(errs, c.builds.Close())
	}
	if c.clusters != nil {
		errs = append(errs, c.clusters.Close())
	}
	if c.iam != nil {
		errs = append(errs, c.iam.Close())
	}
	if c.storage != nil {
		errs = append(errs, c.storage.Close())
	}
	return errors.Join(errs...)
}
