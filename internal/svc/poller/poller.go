package poller

import (
	"context"
	"sync"
	"time"

	"github.com/seventv/tracker/internal/svc/ingest"
	"go.uber.org/zap"
)

type Runner interface {
	Run(ctx context.Context) (ingest.Result, error)
}

type Options struct {
	Runner   Runner
	Interval time.Duration
}

type Poller struct {
	runner   Runner
	interval time.Duration
	mx       sync.Mutex
}

func New(opt Options) *Poller {
	return &Poller{
		runner:   opt.Runner,
		interval: opt.Interval,
	}
}

// Start runs an ingestion immediately and then on every tick until ctx is cancelled.
// The returned channel is closed once the poller has stopped.
func (p *Poller) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.Tick(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Tick(ctx)
			}
		}
	}()

	return done
}

// Tick performs a single ingestion, unless one is still in progress.
// It reports whether a run took place.
func (p *Poller) Tick(ctx context.Context) bool {
	if !p.mx.TryLock() {
		zap.S().Debugw("poller, previous run still in progress, skipping tick")

		return false
	}
	defer p.mx.Unlock()

	if _, err := p.runner.Run(ctx); err != nil {
		zap.S().Errorw("poller, ingestion run failed",
			"error", err,
		)
	}

	return true
}
