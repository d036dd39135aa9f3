package cluster

import (
	"fmt"
	"os"
	"path/filepath"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/jamie-woolworths/mlops-labs/internal/k8s"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning"
	"github.com/jamie-woolworths/mlops-labs/internal/util/naming"
)

const (
	phase = "cluster"

	// applicationCRD must be established before the namespaced install, which
	// contains Application resources.
	applicationCRD = "applications.app.k8s.io"

	// The key lands in the secret under both names: the pipeline components
	// read the user entry, the bootstrap jobs read the admin entry.
	secretKeyUser  = "user-gcp-sa.json"
	secretKeyAdmin = "admin-gcp-sa.json"
)

// Provisioner handles pipeline platform installation.
type Provisioner struct {
	// KeyDir is where the ephemeral service account key file is staged.
	// Defaults to the system temp directory.
	KeyDir string
}

// NewProvisioner creates a new cluster provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Infra == nil {
		return fmt.Errorf("infrastructure outputs missing, cannot bootstrap cluster")
	}

	// 1. Cluster credentials
	client, err := p.connect(ctx)
	if err != nil {
		return err
	}

	// 2. Pipeline namespace. An existing namespace means a previous install
	// owns it, so stop rather than overwrite.
	if err := p.createNamespace(ctx, client); err != nil {
		return err
	}

	// 3. Pipeline service account credentials
	if err := p.installCredentials(ctx, client); err != nil {
		return err
	}

	// 4. Platform manifests
	return p.installPlatform(ctx, client)
}

// connect fetches the cluster connection material and builds a client from
// it. The rendered kubeconfig is kept in state for later phases.
func (p *Provisioner) connect(ctx *provisioning.Context) (k8s.Client, error) {
	infra := ctx.State.Infra
	ctx.Observer.Printf("[%s] Fetching credentials for cluster %s in %s...", phase, infra.ClusterName, infra.ClusterZone)

	access, err := ctx.Cloud.ClusterAccess(ctx, ctx.Params.ProjectID, infra.ClusterZone, infra.ClusterName)
	if err != nil {
		return nil, err
	}
	kubeconfig, err := k8s.BuildKubeconfig(infra.ClusterName, access.Endpoint, access.CACert, access.Token)
	if err != nil {
		return nil, err
	}
	ctx.State.Kubeconfig = kubeconfig

	return ctx.NewKubeClient(kubeconfig)
}

func (p *Provisioner) createNamespace(ctx *provisioning.Context, client k8s.Client) error {
	namespace := ctx.Params.Namespace
	err := client.CreateNamespace(ctx, namespace)
	if apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("namespace %q already exists; remove it or pick a different namespace before provisioning again", namespace)
	}
	if err != nil {
		return fmt.Errorf("creating namespace %s: %w", namespace, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, phase, "namespace", namespace, "")
	return nil
}

// installCredentials mints a key for the pipeline service account, stages it
// in a file and loads it into the credentials secret under both key names.
// The staged file is removed on every path out of this function.
func (p *Provisioner) installCredentials(ctx *provisioning.Context, client k8s.Client) error {
	infra := ctx.State.Infra
	key, err := ctx.Cloud.CreateServiceAccountKey(ctx, infra.ServiceAccountEmail)
	if err != nil {
		return err
	}

	keyFile := filepath.Join(p.keyDir(), secretKeyUser)
	if err := os.WriteFile(keyFile, key, 0o600); err != nil {
		return fmt.Errorf("staging key file %s: %w", keyFile, err)
	}
	defer func() {
		if err := os.Remove(keyFile); err != nil {
			ctx.Observer.Printf("[%s] Warning: could not remove key file %s: %v", phase, keyFile, err)
		}
	}()

	data, err := os.ReadFile(keyFile)
	if err != nil {
		return fmt.Errorf("reading key file %s: %w", keyFile, err)
	}

	secret := naming.CredentialSecret()
	if err := client.CreateSecret(ctx, ctx.Params.Namespace, secret, map[string][]byte{
		secretKeyUser:  data,
		secretKeyAdmin: data,
	}); err != nil {
		return err
	}
	provisioning.LogResourceCreated(ctx.Observer, phase, "secret", secret, "")
	return nil
}

// installPlatform applies the cluster-scoped resources, waits for the
// application CRD to be served and then installs the namespaced resources.
func (p *Provisioner) installPlatform(ctx *provisioning.Context, client k8s.Client) error {
	clusterScoped, err := ctx.Manifests.ClusterScoped(ctx)
	if err != nil {
		return err
	}
	ctx.Observer.Printf("[%s] Applying cluster-scoped resources...", phase)
	if err := client.ApplyManifests(ctx, "", clusterScoped); err != nil {
		return err
	}

	if err := client.WaitForCRDEstablished(ctx, applicationCRD, ctx.Timeouts.CRDEstablish); err != nil {
		return err
	}

	namespaced, err := ctx.Manifests.Namespaced(ctx)
	if err != nil {
		return err
	}
	ctx.Observer.Printf("[%s] Installing pipeline platform into namespace %s...", phase, ctx.Params.Namespace)
	return client.ApplyManifests(ctx, ctx.Params.Namespace, namespaced)
}

func (p *Provisioner) keyDir() string {
	if p.KeyDir != "" {
		return p.KeyDir
	}
	return os.TempDir()
}
