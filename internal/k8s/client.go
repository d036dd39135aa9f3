// Package k8s provides a Kubernetes client wrapper for cluster bootstrap
// operations.
package k8s

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"

	apiextensionsclientset "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
)

// Client defines the cluster operations used during bootstrap.
type Client interface {
	// CreateNamespace creates the namespace. The API error is returned
	// unchanged so callers can detect an existing namespace.
	CreateNamespace(ctx context.Context, name string) error
	// CreateSecret creates an opaque secret with the given data.
	CreateSecret(ctx context.Context, namespace, name string, data map[string][]byte) error
	// ApplyManifests server-side applies every document in the stream. A
	// non-empty namespace overrides the namespace of namespaced objects.
	ApplyManifests(ctx context.Context, namespace string, stream []byte) error
	// WaitForCRDEstablished polls the CRD until its Established condition
	// is true or the timeout expires.
	WaitForCRDEstablished(ctx context.Context, name string, timeout time.Duration) error
	// ReadConfigMap returns the data of the config map, or nil when the
	// config map does not exist.
	ReadConfigMap(ctx context.Context, namespace, name string) (map[string]string, error)
}

// Factory builds a Client from raw kubeconfig bytes.
type Factory func(kubeconfig []byte) (Client, error)

type clientSet struct {
	typed        kubernetes.Interface
	dynamic      dynamic.Interface
	extensions   apiextensionsclientset.Interface
	mapper       meta.RESTMapper
	log          logr.Logger
	pollInterval time.Duration
}

var _ Client = (*clientSet)(nil)

// Option configures a Client.
type Option func(*clientSet)

// WithLogger sets the logger used for progress output.
func WithLogger(log logr.Logger) Option {
	return func(c *clientSet) {
		c.log = log
	}
}

// WithPollInterval sets the interval used by waiting operations.
func WithPollInterval(interval time.Duration) Option {
	return func(c *clientSet) {
		c.pollInterval = interval
	}
}

// NewFromKubeconfig creates a Client from kubeconfig bytes.
func NewFromKubeconfig(kubeconfig []byte, opts ...Option) (Client, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("parsing kubeconfig: %w", err)
	}

	typed, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("creating clientset: %w", err)
	}
	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("creating dynamic client: %w", err)
	}
	extensions, err := apiextensionsclientset.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("creating apiextensions client: %w", err)
	}
	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("creating discovery client: %w", err)
	}
	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(discoveryClient))

	return NewFromClients(typed, dynamicClient, extensions, mapper, opts...), nil
}

// NewFromClients creates a Client from pre-built API clients.
func NewFromClients(
	typed kubernetes.Interface,
	dynamicClient dynamic.Interface,
	extensions apiextensionsclientset.Interface,
	mapper meta.RESTMapper,
	opts ...Option,
) Client {
	c := &clientSet{
		typed:        typed,
		dynamic:      dynamicClient,
		extensions:   extensions,
		mapper:       mapper,
		log:          logr.Discard(),
		pollInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
