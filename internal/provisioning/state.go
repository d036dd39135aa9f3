package provisioning

// InfraOutputs holds the outputs read back from the delegated
// infrastructure apply. All values are opaque strings interpreted by the
// steps that consume them.
type InfraOutputs struct {
	ClusterName         string
	ServiceAccountEmail string
	BucketName          string
	ClusterZone         string
}

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Workstation results (populated by the workstation provisioner)
	InstanceName    string
	InstanceExisted bool // notebook was already present; build and create were skipped
	ImageURI        string

	// Infrastructure results (populated by the infrastructure provisioner)
	Infra *InfraOutputs

	// Cluster results (populated by the cluster bootstrapper)
	Kubeconfig []byte

	// Endpoint results (populated by the completion waiter)
	PlatformHost string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
