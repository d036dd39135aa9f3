// Package provisioning provides shared types, interfaces, and orchestration
// for lab environment provisioning.
//
// # Subpackages
//
//   - preflight/ — backend service enablement and build identity grants
//   - workstation/ — notebook image build and workstation instance
//   - infrastructure/ — delegated Terraform apply and output capture
//   - cluster/ — cluster credentials, namespace, secret, platform install
//   - endpoint/ — settle wait and dashboard endpoint discovery
//
// # Core Types
//
// Context carries run parameters, state, platform clients, and the observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// State accumulates results from each phase (instance, infra outputs,
// kubeconfig, platform host).
package provisioning
