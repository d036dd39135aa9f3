package endpoint

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/jamie-woolworths/mlops-labs/internal/provisioning"
)

const (
	phase = "endpoint"

	// configMapName is written by the proxy agent once the frontend has
	// registered.
	configMapName = "inverse-proxy-config"

	// hostPattern identifies the proxy hostname among the config map values.
	hostPattern = "googleusercontent.com"
)

// Provisioner handles the final endpoint lookup.
type Provisioner struct{}

// NewProvisioner creates a new endpoint provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. A hostname that has
// not been published yet is reported, not treated as a failure.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if len(ctx.State.Kubeconfig) == 0 {
		return fmt.Errorf("cluster credentials missing, cannot read endpoint")
	}

	ctx.Observer.Printf("[%s] Waiting %s for the proxy agent to register...", phase, ctx.Timeouts.Settle)
	if err := sleepContext(ctx, ctx.Timeouts.Settle); err != nil {
		return err
	}

	client, err := ctx.NewKubeClient(ctx.State.Kubeconfig)
	if err != nil {
		return err
	}
	data, err := client.ReadConfigMap(ctx, ctx.Params.Namespace, configMapName)
	if err != nil {
		return err
	}

	host := hostname(data)
	ctx.State.PlatformHost = host
	if host == "" {
		ctx.Observer.Printf("[%s] Pipeline hostname not published yet; check the %s config map in namespace %s later", phase, configMapName, ctx.Params.Namespace)
		return nil
	}

	ctx.Observer.Printf("[%s] Pipeline available at https://%s", phase, host)
	return nil
}

// hostname returns the first config map value carrying the proxy hostname.
// Keys are scanned in sorted order so repeated reads agree.
func hostname(data map[string]string) string {
	for _, key := range slices.Sorted(maps.Keys(data)) {
		if strings.Contains(data[key], hostPattern) {
			return data[key]
		}
	}
	return ""
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
