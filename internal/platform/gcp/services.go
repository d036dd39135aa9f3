package gcp

import (
	"context"
	"fmt"

	serviceusagepb "cloud.google.com/go/serviceusage/apiv1/serviceusagepb"
)

// EnableServices enables the given service APIs on the project in a single
// batch and waits for the operation to settle.
func (c *RealClient) EnableServices(ctx context.Context, projectID string, services []string) error {
	if len(services) == 0 {
		return nil
	}
	c.log.Info("enabling services", "project", projectID, "count", len(services))
	op, err := c.services.BatchEnableServices(ctx, &serviceusagepb.BatchEnableServicesRequest{
		Parent:     "projects/" + projectID,
		ServiceIds: services,
	})
	if err != nil {
		return fmt.Errorf("enabling services on %s: %w", projectID, err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for service enablement on %s: %w", projectID, err)
	}
	return nil
}
