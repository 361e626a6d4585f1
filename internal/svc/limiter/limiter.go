package limiter

import (
	"context"
	"time"

	"github.com/seventv/tracker/data/model"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Instance serializes access to a throttled upstream.
type Instance interface {
	// Await blocks until the caller may issue one request, or fails once the wait timeout elapses.
	Await(ctx context.Context) error
}

type limiterInst struct {
	rl          *rate.Limiter
	waitTimeout time.Duration
}

type Options struct {
	// MinInterval is the minimum spacing between two requests
	MinInterval time.Duration
	// WaitTimeout bounds how long Await may block. Zero means no bound beyond ctx.
	WaitTimeout time.Duration
}

func New(opt Options) Instance {
	limit := rate.Inf
	if opt.MinInterval > 0 {
		limit = rate.Every(opt.MinInterval)
	}

	return &limiterInst{
		rl:          rate.NewLimiter(limit, 1),
		waitTimeout: opt.WaitTimeout,
	}
}

func (inst *limiterInst) Await(ctx context.Context) error {
	if inst.waitTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, inst.waitTimeout)
		defer cancel()
	}

	if err := inst.rl.Wait(ctx); err != nil {
		zap.S().Warnw("limiter, gave up waiting for a request slot",
			"wait_timeout", inst.waitTimeout,
			"error", err,
		)

		return model.ErrUpstreamUnavailable().SetDetail("throttle wait exceeded")
	}

	return nil
}
