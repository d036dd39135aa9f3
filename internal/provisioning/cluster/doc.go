// Package cluster bootstraps the pipeline platform onto the provisioned
// cluster: credentials, namespace, the pipeline service account secret and
// the platform manifests, strictly in that order.
package cluster
