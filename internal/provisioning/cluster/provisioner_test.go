package cluster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/jamie-woolworths/mlops-labs/internal/config"
	"github.com/jamie-woolworths/mlops-labs/internal/k8s"
	"github.com/jamie-woolworths/mlops-labs/internal/manifests"
	"github.com/jamie-woolworths/mlops-labs/internal/platform/gcp"
	"github.com/jamie-woolworths/mlops-labs/internal/platform/terraform"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning"
)

func testInfraOutputs() *provisioning.InfraOutputs {
	return &provisioning.InfraOutputs{
		ClusterName:         "proj1-cluster",
		ServiceAccountEmail: "pipeline-runner@proj1.iam.gserviceaccount.com",
		BucketName:          "proj1-artifacts",
		ClusterZone:         "us-central1-a",
	}
}

func createTestContext(t *testing.T, cloud *gcp.MockClient, kube *k8s.MockClient, source *manifests.MockSource) *provisioning.Context {
	t.Helper()

	params, err := config.ResolveParameters([]string{"proj1", "pw1"})
	require.NoError(t, err)

	ctx := provisioning.NewContext(
		context.Background(),
		params,
		cloud,
		&terraform.MockRunner{},
		source,
		func([]byte) (k8s.Client, error) { return kube, nil },
	)
	ctx.State.Infra = testInfraOutputs()
	return ctx
}

func testProvisioner(t *testing.T) *Provisioner {
	t.Helper()

	p := NewProvisioner()
	p.KeyDir = t.TempDir()
	return p
}

func TestProvisioner_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "cluster", NewProvisioner().Name())
}

func TestProvisioner_Provision_StepOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	cloud := &gcp.MockClient{
		ClusterAccessFunc: func(_ context.Context, projectID, location, name string) (*gcp.ClusterAccess, error) {
			calls = append(calls, "access")
			assert.Equal(t, "proj1", projectID)
			assert.Equal(t, "us-central1-a", location)
			assert.Equal(t, "proj1-cluster", name)
			return &gcp.ClusterAccess{Endpoint: "203.0.113.10", CACert: []byte("ca"), Token: "tok"}, nil
		},
		CreateServiceAccountKeyFunc: func(_ context.Context, email string) ([]byte, error) {
			calls = append(calls, "key")
			assert.Equal(t, "pipeline-runner@proj1.iam.gserviceaccount.com", email)
			return []byte(`{"type":"service_account"}`), nil
		},
	}
	kube := &k8s.MockClient{
		CreateNamespaceFunc: func(_ context.Context, name string) error {
			calls = append(calls, "namespace")
			assert.Equal(t, "kubeflow", name)
			return nil
		},
		CreateSecretFunc: func(_ context.Context, namespace, name string, data map[string][]byte) error {
			calls = append(calls, "secret")
			return nil
		},
		ApplyManifestsFunc: func(_ context.Context, namespace string, _ []byte) error {
			if namespace == "" {
				calls = append(calls, "cluster-scoped")
			} else {
				calls = append(calls, "namespaced")
				assert.Equal(t, "kubeflow", namespace)
			}
			return nil
		},
		WaitForCRDEstablishedFunc: func(_ context.Context, name string, _ time.Duration) error {
			calls = append(calls, "crd-wait")
			assert.Equal(t, "applications.app.k8s.io", name)
			return nil
		},
	}
	ctx := createTestContext(t, cloud, kube, &manifests.MockSource{})

	require.NoError(t, testProvisioner(t).Provision(ctx))
	assert.Equal(t, []string{"access", "namespace", "key", "secret", "cluster-scoped", "crd-wait", "namespaced"}, calls)
	assert.NotEmpty(t, ctx.State.Kubeconfig)
}

func TestProvisioner_Provision_ExistingNamespaceIsFatal(t *testing.T) {
	t.Parallel()

	keyMinted := false
	cloud := &gcp.MockClient{
		CreateServiceAccountKeyFunc: func(_ context.Context, _ string) ([]byte, error) {
			keyMinted = true
			return nil, nil
		},
	}
	kube := &k8s.MockClient{
		CreateNamespaceFunc: func(_ context.Context, name string) error {
			return apierrors.NewAlreadyExists(schema.GroupResource{Resource: "namespaces"}, name)
		},
	}

	err := testProvisioner(t).Provision(createTestContext(t, cloud, kube, &manifests.MockSource{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `namespace "kubeflow" already exists`)
	assert.False(t, keyMinted, "no credentials must be minted for a namespace some other install owns")
}

func TestProvisioner_Provision_SecretDataAndKeyFileLifecycle(t *testing.T) {
	t.Parallel()

	p := testProvisioner(t)
	keyFile := filepath.Join(p.KeyDir, "user-gcp-sa.json")
	keyJSON := []byte(`{"type":"service_account","client_email":"pipeline-runner@proj1.iam.gserviceaccount.com"}`)

	cloud := &gcp.MockClient{
		CreateServiceAccountKeyFunc: func(_ context.Context, _ string) ([]byte, error) {
			return keyJSON, nil
		},
	}
	kube := &k8s.MockClient{
		CreateSecretFunc: func(_ context.Context, namespace, name string, data map[string][]byte) error {
			assert.Equal(t, "kubeflow", namespace)
			assert.Equal(t, "user-gcp-sa", name)
			assert.Equal(t, keyJSON, data["user-gcp-sa.json"])
			assert.Equal(t, keyJSON, data["admin-gcp-sa.json"])

			// The staged file must exist while the secret is created.
			_, statErr := os.Stat(keyFile)
			assert.NoError(t, statErr)
			return nil
		},
	}

	require.NoError(t, p.Provision(createTestContext(t, cloud, kube, &manifests.MockSource{})))

	_, err := os.Stat(keyFile)
	assert.True(t, os.IsNotExist(err), "key file must be removed after provisioning")
}

func TestProvisioner_Provision_KeyFileRemovedOnSecretFailure(t *testing.T) {
	t.Parallel()

	p := testProvisioner(t)
	kube := &k8s.MockClient{
		CreateSecretFunc: func(_ context.Context, _, _ string, _ map[string][]byte) error {
			return errors.New("secrets API unavailable")
		},
	}

	err := p.Provision(createTestContext(t, &gcp.MockClient{}, kube, &manifests.MockSource{}))
	require.ErrorContains(t, err, "secrets API unavailable")

	_, statErr := os.Stat(filepath.Join(p.KeyDir, "user-gcp-sa.json"))
	assert.True(t, os.IsNotExist(statErr), "key file must be removed even when the secret fails")
}

func TestProvisioner_Provision_ClusterAccessFailure(t *testing.T) {
	t.Parallel()

	namespaceCreated := false
	cloud := &gcp.MockClient{
		ClusterAccessFunc: func(_ context.Context, _, _, _ string) (*gcp.ClusterAccess, error) {
			return nil, errors.New("cluster not found")
		},
	}
	kube := &k8s.MockClient{
		CreateNamespaceFunc: func(_ context.Context, _ string) error {
			namespaceCreated = true
			return nil
		},
	}

	err := testProvisioner(t).Provision(createTestContext(t, cloud, kube, &manifests.MockSource{}))
	require.ErrorContains(t, err, "cluster not found")
	assert.False(t, namespaceCreated)
}

func TestProvisioner_Provision_CRDWaitFailureSkipsNamespacedInstall(t *testing.T) {
	t.Parallel()

	var applied []string
	kube := &k8s.MockClient{
		ApplyManifestsFunc: func(_ context.Context, namespace string, _ []byte) error {
			applied = append(applied, namespace)
			return nil
		},
		WaitForCRDEstablishedFunc: func(_ context.Context, _ string, _ time.Duration) error {
			return errors.New("CRD never became established")
		},
	}

	err := testProvisioner(t).Provision(createTestContext(t, &gcp.MockClient{}, kube, &manifests.MockSource{}))
	require.ErrorContains(t, err, "never became established")
	assert.Equal(t, []string{""}, applied, "only the cluster-scoped apply may run before the CRD wait")
}

func TestProvisioner_Provision_RequiresInfraOutputs(t *testing.T) {
	t.Parallel()

	ctx := createTestContext(t, &gcp.MockClient{}, &k8s.MockClient{}, &manifests.MockSource{})
	ctx.State.Infra = nil

	err := testProvisioner(t).Provision(ctx)
	assert.ErrorContains(t, err, "infrastructure outputs missing")
}
