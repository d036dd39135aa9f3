package k8s

import (
	"context"
	"time"
)

// MockClient is a mock implementation of Client for testing.
type MockClient struct {
	CreateNamespaceFunc       func(ctx context.Context, name string) error
	CreateSecretFunc          func(ctx context.Context, namespace, name string, data map[string][]byte) error
	ApplyManifestsFunc        func(ctx context.Context, namespace string, stream []byte) error
	WaitForCRDEstablishedFunc func(ctx context.Context, name string, timeout time.Duration) error
	ReadConfigMapFunc         func(ctx context.Context, namespace, name string) (map[string]string, error)
}

// Ensure interface compliance
var _ Client = (*MockClient)(nil)

// CreateNamespace mocks namespace creation.
func (m *MockClient) CreateNamespace(ctx context.Context, name string) error {
	if m.CreateNamespaceFunc != nil {
		return m.CreateNamespaceFunc(ctx, name)
	}
	return nil
}

// CreateSecret mocks secret creation.
func (m *MockClient) CreateSecret(ctx context.Context, namespace, name string, data map[string][]byte) error {
	if m.CreateSecretFunc != nil {
		return m.CreateSecretFunc(ctx, namespace, name, data)
	}
	return nil
}

// ApplyManifests mocks manifest application.
func (m *MockClient) ApplyManifests(ctx context.Context, namespace string, stream []byte) error {
	if m.ApplyManifestsFunc != nil {
		return m.ApplyManifestsFunc(ctx, namespace, stream)
	}
	return nil
}

// WaitForCRDEstablished mocks the CRD readiness wait.
func (m *MockClient) WaitForCRDEstablished(ctx context.Context, name string, timeout time.Duration) error {
	if m.WaitForCRDEstablishedFunc != nil {
		return m.WaitForCRDEstablishedFunc(ctx, name, timeout)
	}
	return nil
}

// ReadConfigMap mocks config map reads.
func (m *MockClient) ReadConfigMap(ctx context.Context, namespace, name string) (map[string]string, error) {
	if m.ReadConfigMapFunc != nil {
		return m.ReadConfigMapFunc(ctx, namespace, name)
	}
	return nil, nil
}
