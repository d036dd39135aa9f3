// Package workstation provisions the lab notebook instance. The phase is
// idempotent: when the instance already exists it skips both the image build
// and the create call.
package workstation
