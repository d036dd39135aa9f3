package gcp

import "context"

// MockClient is a mock implementation of Manager for testing.
type MockClient struct {
	EnableServicesFunc    func(ctx context.Context, projectID string, services []string) error
	ProjectNumberFunc     func(ctx context.Context, projectID string) (int64, error)
	EnsureRoleBindingFunc func(ctx context.Context, projectID, member, role string) error

	// Instances
	FindInstanceFunc   func(ctx context.Context, projectID, zone, name string) (*Instance, error)
	CreateInstanceFunc func(ctx context.Context, projectID, zone string, opts InstanceOpts) error

	// Builds
	BuildImageFunc func(ctx context.Context, projectID string, opts BuildOpts) error

	// Clusters and keys
	ClusterAccessFunc           func(ctx context.Context, projectID, location, name string) (*ClusterAccess, error)
	CreateServiceAccountKeyFunc func(ctx context.Context, email string) ([]byte, error)

	CloseFunc func() error
}

// Ensure interface compliance
var _ Manager = (*MockClient)(nil)

// EnableServices mocks service enablement.
func (m *MockClient) EnableServices(ctx context.Context, projectID string, services []string) error {
	if m.EnableServicesFunc != nil {
		return m.EnableServicesFunc(ctx, projectID, services)
	}
	return nil
}

// ProjectNumber mocks project number resolution.
func (m *MockClient) ProjectNumber(ctx context.Context, projectID string) (int64, error) {
	if m.ProjectNumberFunc != nil {
		return m.ProjectNumberFunc(ctx, projectID)
	}
	return 1234567890, nil
}

// EnsureRoleBinding mocks role grants.
func (m *MockClient) EnsureRoleBinding(ctx context.Context, projectID, member, role string) error {
	if m.EnsureRoleBindingFunc != nil {
		return m.EnsureRoleBindingFunc(ctx, projectID, member, role)
	}
	return nil
}

// FindInstance mocks instance lookup. The default reports no instance.
func (m *MockClient) FindInstance(ctx context.Context, projectID, zone, name string) (*Instance, error) {
	if m.FindInstanceFunc != nil {
		return m.FindInstanceFunc(ctx, projectID, zone, name)
	}
	return nil, nil
}

// CreateInstance mocks instance creation.
func (m *MockClient) CreateInstance(ctx context.Context, projectID, zone string, opts InstanceOpts) error {
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, projectID, zone, opts)
	}
	return nil
}

// BuildImage mocks image builds.
func (m *MockClient) BuildImage(ctx context.Context, projectID string, opts BuildOpts) error {
	if m.BuildImageFunc != nil {
		return m.BuildImageFunc(ctx, projectID, opts)
	}
	return nil
}

// ClusterAccess mocks cluster credential reads.
func (m *MockClient) ClusterAccess(ctx context.Context, projectID, location, name string) (*ClusterAccess, error) {
	if m.ClusterAccessFunc != nil {
		return m.ClusterAccessFunc(ctx, projectID, location, name)
	}
	return &ClusterAccess{
		Endpoint: "192.0.2.10",
		CACert:   []byte("-----BEGIN CERTIFICATE-----\nbW9jaw==\n-----END CERTIFICATE-----\n"),
		Token:    "mock-token",
	}, nil
}

// CreateServiceAccountKey mocks key minting.
func (m *MockClient) CreateServiceAccountKey(ctx context.Context, email string) ([]byte, error) {
	if m.CreateServiceAccountKeyFunc != nil {
		return m.CreateServiceAccountKeyFunc(ctx, email)
	}
	return []byte(`{"type":"service_account","client_email":"` + email + `"}`), nil
}

// Close mocks client shutdown.
func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
