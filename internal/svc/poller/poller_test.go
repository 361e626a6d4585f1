package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seventv/tracker/internal/svc/ingest"
	"github.com/seventv/tracker/internal/testutil"
)

type blockingRunner struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (r *blockingRunner) Run(ctx context.Context) (ingest.Result, error) {
	r.calls.Add(1)
	r.started <- struct{}{}
	<-r.release

	return ingest.Result{}, nil
}

func TestTickSkipsWhileRunning(t *testing.T) {
	r := &blockingRunner{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}

	p := New(Options{Runner: r, Interval: time.Hour})
	ctx := context.Background()

	ran := make(chan bool)
	go func() {
		ran <- p.Tick(ctx)
	}()

	<-r.started

	testutil.Assert(t, false, p.Tick(ctx), "overlapping tick is skipped")

	close(r.release)

	testutil.Assert(t, true, <-ran, "first tick ran")
	testutil.Assert(t, int32(1), r.calls.Load(), "runner called once")
}

type countingRunner struct {
	calls atomic.Int32
}

func (r *countingRunner) Run(ctx context.Context) (ingest.Result, error) {
	r.calls.Add(1)

	return ingest.Result{}, nil
}

func TestStartStopsOnCancel(t *testing.T) {
	r := &countingRunner{}
	p := New(Options{Runner: r, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := p.Start(ctx)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop")
	}

	testutil.Assert(t, int32(1), r.calls.Load(), "immediate run")
}
