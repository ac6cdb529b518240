package poller

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hotel-inventory/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls   atomic.Int32
	block   chan struct{}
	started chan struct{}
	err     error
	plan    *reconcile.Plan
}

func (r *fakeRunner) RunCycle(context.Context) (*reconcile.Summary, error) {
	n := r.calls.Add(1)
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}
	if r.err != nil {
		return nil, r.err
	}
	return &reconcile.Summary{CycleID: fmt.Sprintf("cycle-%d", n), NoWork: true}, nil
}

func (r *fakeRunner) Preview(context.Context) (*reconcile.Plan, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.plan, nil
}

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, 10*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return runner.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	assert.GreaterOrEqual(t, s.Status().Cycles, int64(3))
}

func TestScheduler_TriggerRejectsOverlap(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{}), started: make(chan struct{}, 1)}
	s := NewScheduler(runner, time.Hour, nil)

	result := make(chan error, 1)
	go func() {
		_, err := s.Trigger(context.Background())
		result <- err
	}()
	<-runner.started

	assert.True(t, s.Status().Running)
	_, err := s.Trigger(context.Background())
	assert.ErrorIs(t, err, ErrCycleRunning)

	close(runner.block)
	require.NoError(t, <-result)
	assert.Equal(t, int32(1), runner.calls.Load())
	assert.False(t, s.Status().Running)
}

func TestScheduler_TickSkippedWhileRunning(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{}), started: make(chan struct{}, 1)}
	s := NewScheduler(runner, time.Hour, nil)

	go func() { _, _ = s.Trigger(context.Background()) }()
	<-runner.started

	s.tick(context.Background())
	assert.Equal(t, int32(1), runner.calls.Load())

	close(runner.block)
}

func TestScheduler_RecordsStatus(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, time.Hour, nil)

	summary, err := s.Trigger(context.Background())
	require.NoError(t, err)
	status := s.Status()
	assert.Equal(t, summary, status.Summary)
	assert.Empty(t, status.Error)
	assert.False(t, status.LastRun.IsZero())

	runner.err = errors.New("upstream down")
	_, err = s.Trigger(context.Background())
	require.Error(t, err)
	status = s.Status()
	assert.Nil(t, status.Summary)
	assert.Equal(t, "upstream down", status.Error)
	assert.Equal(t, int64(2), status.Cycles)
	assert.Equal(t, int64(1), status.Failures)
}
