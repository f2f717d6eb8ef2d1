package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) ExpireOverdue(context.Context) (int, error) {
	e.calls.Add(1)
	return 1, e.err
}

func run(t *testing.T, e *countingExpirer, interval time.Duration) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	w := NewExpiryWorker(e, interval, logger.NewNop())
	go func() {
		defer close(done)
		w.Start(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func TestExpiryWorker_SweepsImmediatelyAndOnTick(t *testing.T) {
	e := &countingExpirer{}
	stop := run(t, e, 10*time.Millisecond)
	defer stop()

	assert.Eventually(t, func() bool { return e.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestExpiryWorker_KeepsRunningAfterErrors(t *testing.T) {
	e := &countingExpirer{err: errors.New("db down")}
	stop := run(t, e, 10*time.Millisecond)
	defer stop()

	assert.Eventually(t, func() bool { return e.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestExpiryWorker_StopsOnCancel(t *testing.T) {
	e := &countingExpirer{}
	stop := run(t, e, time.Hour)

	assert.Eventually(t, func() bool { return e.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	stop()
}

func TestNewExpiryWorker_DefaultInterval(t *testing.T) {
	w := NewExpiryWorker(&countingExpirer{}, 0, logger.NewNop())
	assert.Equal(t, time.Minute, w.interval)
}
