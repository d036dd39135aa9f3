package provisioning

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPhase implements the Phase interface for testing.
type mockPhase struct {
	name string
	err  error
}

func (m *mockPhase) Name() string               { return m.name }
func (m *mockPhase) Provision(_ *Context) error { return m.err }

// phaseFunc creates a Phase from a function for testing.
type phaseFuncImpl struct {
	name string
	fn   func(*Context) error
}

func phaseFunc(name string, fn func(*Context) error) Phase {
	return &phaseFuncImpl{name: name, fn: fn}
}

func (p *phaseFuncImpl) Name() string                 { return p.name }
func (p *phaseFuncImpl) Provision(ctx *Context) error { return p.fn(ctx) }

func TestNewPipeline(t *testing.T) {
	t.Parallel()
	p1 := &mockPhase{name: "phase-1"}
	p2 := &mockPhase{name: "phase-2"}

	pipeline := NewPipeline(p1, p2)

	require.NotNil(t, pipeline)
	assert.Len(t, pipeline.Phases, 2)
	assert.Equal(t, "phase-1", pipeline.Phases[0].Name())
	assert.Equal(t, "phase-2", pipeline.Phases[1].Name())
}

func TestNewPipeline_Empty(t *testing.T) {
	t.Parallel()
	pipeline := NewPipeline()

	require.NotNil(t, pipeline)
	assert.Empty(t, pipeline.Phases)
}

func TestPipeline_Run_Success(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)

	ctx := &Context{
		State:    NewState(),
		Observer: NewMockObserver(),
	}

	pipeline := NewPipeline(
		phaseFunc("preflight", func(_ *Context) error { executed = append(executed, "preflight"); return nil }),
		phaseFunc("workstation", func(_ *Context) error { executed = append(executed, "workstation"); return nil }),
		phaseFunc("infrastructure", func(_ *Context) error { executed = append(executed, "infrastructure"); return nil }),
	)

	err := pipeline.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"preflight", "workstation", "infrastructure"}, executed)
}

func TestPipeline_Run_StopsOnError(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)

	ctx := &Context{
		State:    NewState(),
		Observer: NewMockObserver(),
	}

	pipeline := NewPipeline(
		phaseFunc("preflight", func(_ *Context) error { executed = append(executed, "preflight"); return nil }),
		phaseFunc("workstation", func(_ *Context) error { return fmt.Errorf("quota exhausted") }),
		phaseFunc("cluster", func(_ *Context) error { executed = append(executed, "cluster"); return nil }),
	)

	err := pipeline.Run(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "workstation phase failed")
	assert.Contains(t, err.Error(), "quota exhausted")
	// cluster should NOT have executed
	assert.Equal(t, []string{"preflight"}, executed)
}

func TestPipeline_Run_EmptyPipeline(t *testing.T) {
	t.Parallel()
	ctx := &Context{
		State:    NewState(),
		Observer: NewMockObserver(),
	}

	err := NewPipeline().Run(ctx)

	require.NoError(t, err)
}

func TestPipeline_Run_LogsPhaseEvents(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	ctx := &Context{
		State:    NewState(),
		Observer: observer,
	}

	pipeline := NewPipeline(
		phaseFunc("test", func(_ *Context) error { return nil }),
	)

	err := pipeline.Run(ctx)

	require.NoError(t, err)

	var hasStart, hasComplete bool
	for _, event := range observer.events {
		if event.Type == EventPhaseStarted {
			hasStart = true
		}
		if event.Type == EventPhaseCompleted {
			hasComplete = true
		}
	}
	assert.True(t, hasStart, "should log phase start event")
	assert.True(t, hasComplete, "should log phase complete event")
}

func TestPipeline_Run_LogsFailure(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	ctx := &Context{
		State:    NewState(),
		Observer: observer,
	}

	pipeline := NewPipeline(
		phaseFunc("failing", func(_ *Context) error { return fmt.Errorf("boom") }),
	)

	err := pipeline.Run(ctx)

	require.Error(t, err)

	var hasFailed bool
	for _, event := range observer.events {
		if event.Type == EventPhaseFailed {
			hasFailed = true
		}
	}
	assert.True(t, hasFailed, "should log phase failed event")
}

func TestPipeline_Run_PreservesExitStatus(t *testing.T) {
	t.Parallel()
	ctx := &Context{
		State:    NewState(),
		Observer: NewMockObserver(),
	}

	pipeline := NewPipeline(
		phaseFunc("infrastructure", func(_ *Context) error {
			return WithStatus(3, fmt.Errorf("terraform apply failed"))
		}),
	)

	err := pipeline.Run(ctx)

	require.Error(t, err)
	assert.Equal(t, 3, ExitStatus(err))
}
