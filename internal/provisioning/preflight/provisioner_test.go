package preflight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamie-woolworths/mlops-labs/internal/config"
	"github.com/jamie-woolworths/mlops-labs/internal/k8s"
	"github.com/jamie-woolworths/mlops-labs/internal/manifests"
	"github.com/jamie-woolworths/mlops-labs/internal/platform/gcp"
	"github.com/jamie-woolworths/mlops-labs/internal/platform/terraform"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning"
)

func createTestContext(t *testing.T, cloud *gcp.MockClient) *provisioning.Context {
	t.Helper()

	params, err := config.ResolveParameters([]string{"proj1", "pw1"})
	require.NoError(t, err)

	return provisioning.NewContext(
		context.Background(),
		params,
		cloud,
		&terraform.MockRunner{},
		&manifests.MockSource{},
		func([]byte) (k8s.Client, error) { return &k8s.MockClient{}, nil },
	)
}

func TestProvisioner_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "preflight", NewProvisioner().Name())
}

func TestProvisioner_Provision_EnablesServicesBeforeGranting(t *testing.T) {
	t.Parallel()

	var calls []string
	cloud := &gcp.MockClient{
		EnableServicesFunc: func(_ context.Context, projectID string, services []string) error {
			calls = append(calls, "enable")
			assert.Equal(t, "proj1", projectID)
			assert.Equal(t, RequiredServices, services)
			return nil
		},
		ProjectNumberFunc: func(_ context.Context, projectID string) (int64, error) {
			calls = append(calls, "number")
			return 987654321, nil
		},
		EnsureRoleBindingFunc: func(_ context.Context, projectID, member, role string) error {
			calls = append(calls, "grant")
			assert.Equal(t, "proj1", projectID)
			assert.Equal(t, "serviceAccount:987654321@cloudbuild.gserviceaccount.com", member)
			assert.Equal(t, "roles/editor", role)
			return nil
		},
	}

	err := NewProvisioner().Provision(createTestContext(t, cloud))
	require.NoError(t, err)
	assert.Equal(t, []string{"enable", "number", "grant"}, calls)
}

func TestProvisioner_Provision_ServiceEnableFailureStopsPhase(t *testing.T) {
	t.Parallel()

	numberCalled := false
	cloud := &gcp.MockClient{
		EnableServicesFunc: func(_ context.Context, _ string, _ []string) error {
			return errors.New("serviceusage unavailable")
		},
		ProjectNumberFunc: func(_ context.Context, _ string) (int64, error) {
			numberCalled = true
			return 0, nil
		},
	}

	err := NewProvisioner().Provision(createTestContext(t, cloud))
	require.Error(t, err)
	assert.False(t, numberCalled, "role grant must not run after a failed enable")
}

func TestProvisioner_Provision_ProjectNumberFailure(t *testing.T) {
	t.Parallel()

	grantCalled := false
	cloud := &gcp.MockClient{
		ProjectNumberFunc: func(_ context.Context, _ string) (int64, error) {
			return 0, errors.New("project not found")
		},
		EnsureRoleBindingFunc: func(_ context.Context, _, _, _ string) error {
			grantCalled = true
			return nil
		},
	}

	err := NewProvisioner().Provision(createTestContext(t, cloud))
	require.Error(t, err)
	assert.False(t, grantCalled)
}

func TestProvisioner_Provision_GrantFailure(t *testing.T) {
	t.Parallel()

	cloud := &gcp.MockClient{
		EnsureRoleBindingFunc: func(_ context.Context, _, _, _ string) error {
			return errors.New("set iam policy denied")
		},
	}

	err := NewProvisioner().Provision(createTestContext(t, cloud))
	assert.ErrorContains(t, err, "set iam policy denied")
}
