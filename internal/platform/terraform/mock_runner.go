package terraform

import "context"

// MockRunner is a mock implementation of Runner for testing.
type MockRunner struct {
	InitFunc    func(ctx context.Context) error
	ApplyFunc   func(ctx context.Context, vars map[string]string) error
	OutputsFunc func(ctx context.Context) (map[string]string, error)
}

// Ensure interface compliance
var _ Runner = (*MockRunner)(nil)

// Init mocks terraform init.
func (m *MockRunner) Init(ctx context.Context) error {
	if m.InitFunc != nil {
		return m.InitFunc(ctx)
	}
	return nil
}

// Apply mocks terraform apply.
func (m *MockRunner) Apply(ctx context.Context, vars map[string]string) error {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, vars)
	}
	return nil
}

// Outputs mocks terraform output.
func (m *MockRunner) Outputs(ctx context.Context) (map[string]string, error) {
	if m.OutputsFunc != nil {
		return m.OutputsFunc(ctx)
	}
	return map[string]string{
		"cluster_name":             "mock-cluster",
		"pipeline_service_account": "pipeline-runner@mock.iam.gserviceaccount.com",
		"artifact_bucket":          "mock-artifacts",
		"cluster_zone":             "us-central1-a",
	}, nil
}
