// Package manifests fetches the pipeline platform install manifests for a
// pinned release.
package manifests

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/jamie-woolworths/mlops-labs/internal/util/retry"
)

const (
	// DefaultVersion is the pipeline platform release installed by the lab.
	DefaultVersion = "2.0.5"

	defaultBaseURL = "https://storage.googleapis.com/ml-pipeline/pipeline-lite"

	clusterScopedFile = "cluster-scoped-resources.yaml"
	namespacedFile    = "namespaced-install.yaml"
)

// Source delivers the install manifests of the pipeline platform.
type Source interface {
	// ClusterScoped returns the cluster-scoped resources, CRDs included.
	ClusterScoped(ctx context.Context) ([]byte, error)
	// Namespaced returns the namespaced install resources.
	Namespaced(ctx context.Context) ([]byte, error)
}

// HTTPSource fetches release manifests from the public release bucket.
type HTTPSource struct {
	baseURL    string
	version    string
	client     *http.Client
	log        logr.Logger
	retryDelay time.Duration
}

var _ Source = (*HTTPSource)(nil)

// SourceOption configures an HTTPSource.
type SourceOption func(*HTTPSource)

// WithBaseURL overrides the release bucket URL.
func WithBaseURL(baseURL string) SourceOption {
	return func(s *HTTPSource) {
		s.baseURL = baseURL
	}
}

// WithVersion pins a different platform release.
func WithVersion(version string) SourceOption {
	return func(s *HTTPSource) {
		s.version = version
	}
}

// WithHTTPClient sets a custom HTTP client for manifest downloads.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// WithLogger sets the logger used for download progress.
func WithLogger(log logr.Logger) SourceOption {
	return func(s *HTTPSource) {
		s.log = log
	}
}

// WithRetryDelay sets the initial backoff between download attempts.
func WithRetryDelay(delay time.Duration) SourceOption {
	return func(s *HTTPSource) {
		s.retryDelay = delay
	}
}

// NewHTTPSource creates a Source for the default release bucket.
func NewHTTPSource(opts ...SourceOption) *HTTPSource {
	s := &HTTPSource{
		baseURL:    defaultBaseURL,
		version:    DefaultVersion,
		client:     &http.Client{Timeout: 60 * time.Second},
		log:        logr.Discard(),
		retryDelay: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Version returns the pinned platform release.
func (s *HTTPSource) Version() string {
	return s.version
}

// ClusterScoped returns the cluster-scoped resources of the release.
func (s *HTTPSource) ClusterScoped(ctx context.Context) ([]byte, error) {
	return s.fetch(ctx, clusterScopedFile)
}

// Namespaced returns the namespaced install resources of the release.
func (s *HTTPSource) Namespaced(ctx context.Context) ([]byte, error) {
	return s.fetch(ctx, namespacedFile)
}

func (s *HTTPSource) fetch(ctx context.Context, file string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", s.baseURL, s.version, file)
	s.log.Info("downloading manifest", "url", url)

	var body []byte
	err := retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			// A missing release file never heals on retry.
			return retry.Permanent(fmt.Errorf("manifest %s not found", url))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}, retry.WithAttempts(3), retry.WithDelay(s.retryDelay))
	if err != nil {
		return nil, err
	}
	return body, nil
}
