package provisioning

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObservePhase(t *testing.T) {
	before := testutil.ToFloat64(phaseTotal.WithLabelValues("metrics-test", phaseResultCompleted))

	observePhase("metrics-test", phaseResultCompleted, 250*time.Millisecond)
	observePhase("metrics-test", phaseResultCompleted, 500*time.Millisecond)
	observePhase("metrics-test", phaseResultFailed, time.Second)

	completed := testutil.ToFloat64(phaseTotal.WithLabelValues("metrics-test", phaseResultCompleted))
	failed := testutil.ToFloat64(phaseTotal.WithLabelValues("metrics-test", phaseResultFailed))

	assert.Equal(t, before+2, completed)
	assert.Equal(t, float64(1), failed)
}
