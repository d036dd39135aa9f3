package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSummary() Summary {
	return Summary{
		ProjectID:      "proj1",
		Region:         "us-central1",
		Zone:           "us-central1-a",
		Namespace:      "kubeflow",
		InstanceName:   "proj1-notebook",
		ImageURI:       "gcr.io/proj1/mlops-notebook:v1",
		ClusterName:    "proj1-cluster",
		ServiceAccount: "pipeline-runner@proj1.iam.gserviceaccount.com",
		BucketName:     "proj1-artifacts",
		PlatformHost:   "1a2b3c.googleusercontent.com",
		Elapsed:        90 * time.Second,
	}
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()

	out := RenderSummary(testSummary(), false)

	assert.Contains(t, out, "Lab ready in project proj1")
	assert.Contains(t, out, "notebook proj1-notebook")
	assert.Contains(t, out, "gcr.io/proj1/mlops-notebook:v1")
	assert.Contains(t, out, "cluster proj1-cluster (us-central1-a)")
	assert.Contains(t, out, "pipeline-runner@proj1.iam.gserviceaccount.com")
	assert.Contains(t, out, "gs://proj1-artifacts")
	assert.Contains(t, out, "namespace kubeflow")
	assert.Contains(t, out, "https://1a2b3c.googleusercontent.com")
	assert.Contains(t, out, "1m30s")
	assert.NotContains(t, out, "not published")
}

func TestRenderSummaryReusedInstance(t *testing.T) {
	t.Parallel()

	s := testSummary()
	s.InstanceReused = true

	out := RenderSummary(s, false)

	assert.Contains(t, out, "already existed, build skipped")
	assert.NotContains(t, out, "image gcr.io")
}

func TestRenderSummaryMissingHost(t *testing.T) {
	t.Parallel()

	s := testSummary()
	s.PlatformHost = ""

	out := RenderSummary(s, false)

	assert.Contains(t, out, "not published yet")
	assert.Contains(t, out, "kubectl -n kubeflow get configmap inverse-proxy-config")
}

func TestRenderSummaryStyled(t *testing.T) {
	t.Parallel()

	// Styled rendering must carry the same content; colors depend on the
	// terminal profile and are not asserted.
	out := RenderSummary(testSummary(), true)

	assert.Contains(t, out, "Lab ready in project proj1")
	assert.Contains(t, out, "cluster proj1-cluster")
}

func TestRenderChecks(t *testing.T) {
	t.Parallel()

	checks := []Check{
		{Name: "terraform", OK: true, Required: true, Detail: "v1.9.0"},
		{Name: "gcloud", OK: false, Required: false},
		{Name: "credentials", OK: false, Required: true},
	}

	out := RenderChecks("mlopslab doctor", checks, false)

	assert.Contains(t, out, "mlopslab doctor")
	assert.Contains(t, out, "[OK] terraform")
	assert.Contains(t, out, "v1.9.0")
	assert.Contains(t, out, "[??] gcloud")
	assert.Contains(t, out, "[!!] credentials")
}
