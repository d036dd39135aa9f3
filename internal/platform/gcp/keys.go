package gcp

import (
	"context"
	"fmt"

	adminpb "cloud.google.com/go/iam/admin/apiv1/adminpb"
)

// CreateServiceAccountKey mints a user-managed key for the service account
// and returns the decoded JSON credentials.
func (c *RealClient) CreateServiceAccountKey(ctx context.Context, email string) ([]byte, error) {
	c.log.Info("creating service account key", "serviceAccount", email)
	key, err := c.iam.CreateServiceAccountKey(ctx, &adminpb.CreateServiceAccountKeyRequest{
		// The dash wildcard resolves the owning project from the email.
		Name: "projects/-/serviceAccounts/" + email,
	})
	if err != nil {
		return nil, fmt.Errorf("creating key for %s: %w", email, err)
	}
	return key.GetPrivateKeyData(), nil
}
