package manifests

import "context"

// MockSource is a mock implementation of Source for testing.
type MockSource struct {
	ClusterScopedFunc func(ctx context.Context) ([]byte, error)
	NamespacedFunc    func(ctx context.Context) ([]byte, error)
}

// Ensure interface compliance
var _ Source = (*MockSource)(nil)

// ClusterScoped mocks the cluster-scoped manifest download.
func (m *MockSource) ClusterScoped(ctx context.Context) ([]byte, error) {
	if m.ClusterScopedFunc != nil {
		return m.ClusterScopedFunc(ctx)
	}
	return []byte("apiVersion: apiextensions.k8s.io/v1\nkind: CustomResourceDefinition\nmetadata:\n  name: applications.app.k8s.io\n"), nil
}

// Namespaced mocks the namespaced manifest download.
func (m *MockSource) Namespaced(ctx context.Context) ([]byte, error) {
	if m.NamespacedFunc != nil {
		return m.NamespacedFunc(ctx)
	}
	return []byte("apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: inverse-proxy-config\n"), nil
}
