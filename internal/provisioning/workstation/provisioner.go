package workstation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jamie-woolworths/mlops-labs/internal/platform/gcp"
	"github.com/jamie-woolworths/mlops-labs/internal/provisioning"
	"github.com/jamie-woolworths/mlops-labs/internal/util/keygen"
	"github.com/jamie-woolworths/mlops-labs/internal/util/naming"
)

const (
	phase = "workstation"

	imageName = "mlops-notebook"
	imageTag  = "v1"

	// sshUser is the login the generated key is registered for.
	sshUser = "mlops"

	sshKeyBits = 4096
)

// Provisioner builds the notebook image and creates the workstation instance.
type Provisioner struct {
	// BuildContextDir is the docker build context of the notebook image.
	BuildContextDir string
	// KeyDir is where the generated SSH private key is written. Defaults to
	// the current directory.
	KeyDir string
}

// NewProvisioner creates a new workstation provisioner.
func NewProvisioner(buildContextDir string) *Provisioner {
	return &Provisioner{
		BuildContextDir: buildContextDir,
		KeyDir:          ".",
	}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. An existing
// instance short-circuits the phase: no build is submitted and no create
// call is made.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	name := ctx.Params.InstanceName()
	ctx.State.InstanceName = name

	existing, err := ctx.Cloud.FindInstance(ctx, ctx.Params.ProjectID, ctx.Params.Zone, name)
	if err != nil {
		return err
	}
	if existing != nil {
		ctx.State.InstanceExisted = true
		provisioning.LogResourceExists(ctx.Observer, phase, "instance", name, strconv.FormatUint(existing.ID, 10))
		ctx.Observer.Printf("[%s] Instance %s already exists in %s, skipping image build and instance creation", phase, name, ctx.Params.Zone)
		return nil
	}

	if err := p.buildImage(ctx); err != nil {
		return err
	}
	return p.createInstance(ctx, name)
}

// buildImage publishes the notebook image the instance boots with.
func (p *Provisioner) buildImage(ctx *provisioning.Context) error {
	tag := naming.Image(ctx.Params.ProjectID, imageName, imageTag)
	ctx.State.ImageURI = tag

	provisioning.LogResourceCreating(ctx.Observer, phase, "image", tag)
	buildCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Build)
	defer cancel()
	if err := ctx.Cloud.BuildImage(buildCtx, ctx.Params.ProjectID, gcp.BuildOpts{
		Name:       imageName,
		Tag:        tag,
		ContextDir: p.BuildContextDir,
		Timeout:    ctx.Timeouts.Build,
	}); err != nil {
		return err
	}
	provisioning.LogResourceCreated(ctx.Observer, phase, "image", tag, tag)
	return nil
}

func (p *Provisioner) createInstance(ctx *provisioning.Context, name string) error {
	provisioning.LogResourceCreating(ctx.Observer, phase, "instance", name)

	metadata, err := p.sshMetadata(ctx, name)
	if err != nil {
		return err
	}

	createCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.InstanceCreate)
	defer cancel()
	if err := ctx.Cloud.CreateInstance(createCtx, ctx.Params.ProjectID, ctx.Params.Zone, gcp.InstanceOpts{
		Name:           name,
		ContainerImage: ctx.State.ImageURI,
		Metadata:       metadata,
		Labels:         map[string]string{"purpose": "mlops-lab"},
	}); err != nil {
		return err
	}

	provisioning.LogResourceCreated(ctx.Observer, phase, "instance", name, "")
	return nil
}

// sshMetadata generates a keypair for the instance, keeps the private key in
// KeyDir and returns the ssh-keys metadata entry for the public half.
func (p *Provisioner) sshMetadata(ctx *provisioning.Context, name string) (map[string]string, error) {
	keyPair, err := keygen.GenerateRSAKeyPair(sshKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generating SSH key: %w", err)
	}

	keyDir := p.KeyDir
	if keyDir == "" {
		keyDir = "."
	}
	keyFile := filepath.Join(keyDir, naming.SSHKeyFile(name))
	if err := os.WriteFile(keyFile, keyPair.PrivateKey, 0o600); err != nil {
		return nil, fmt.Errorf("writing SSH key %s: %w", keyFile, err)
	}
	ctx.Observer.Printf("[%s] SSH private key written to %s", phase, keyFile)

	return map[string]string{
		"ssh-keys": keyPair.MetadataEntry(sshUser),
	}, nil
}
