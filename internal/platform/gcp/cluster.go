package gcp

import (
	"context"
	"encoding/base64"
	"fmt"

	containerpb "cloud.google.com/go/container/apiv1/containerpb"
)

// ClusterAccess reads the endpoint and CA certificate of the cluster and
// pairs them with a fresh access token for the active credentials.
func (c *RealClient) ClusterAccess(ctx context.Context, projectID, location, name string) (*ClusterAccess, error) {
	cluster, err := c.clusters.GetCluster(ctx, &containerpb.GetClusterRequest{
		Name: fmt.Sprintf("projects/%s/locations/%s/clusters/%s", projectID, location, name),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("cluster %q not found in %s: %w", name, location, err)
		}
		return nil, fmt.Errorf("getting cluster %s in %s: %w", name, location, err)
	}
	caCert, err := base64.StdEncoding.DecodeString(cluster.GetMasterAuth().GetClusterCaCertificate())
	if err != nil {
		return nil, fmt.Errorf("decoding CA certificate of %s: %w", name, err)
	}
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("fetching access token: %w", err)
	}
	return &ClusterAccess{
		Endpoint: cluster.GetEndpoint(),
		CACert:   caCert,
		Token:    token.AccessToken,
	}, nil
}
