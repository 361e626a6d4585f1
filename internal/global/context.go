package global

import (
	"context"
	"time"

	"github.com/seventv/tracker/internal/configure"
	"github.com/seventv/tracker/internal/instance"
)

type Context interface {
	context.Context
	Config() *configure.Config
	Inst() *instance.Instances
}

type gCtx struct {
	context.Context
	config *configure.Config
	inst   *instance.Instances
}

func (g *gCtx) Config() *configure.Config {
	return g.config
}

func (g *gCtx) Inst() *instance.Instances {
	return g.inst
}

func New(ctx context.Context, config *configure.Config) Context {
	return &gCtx{
		Context: ctx,
		config:  config,
		inst:    &instance.Instances{},
	}
}

// WithInstances is New with an already populated set of instances.
func WithInstances(ctx context.Context, config *configure.Config, inst *instance.Instances) Context {
	return &gCtx{
		Context: ctx,
		config:  config,
		inst:    inst,
	}
}

func WithCancel(ctx Context) (Context, context.CancelFunc) {
	c, cancel := context.WithCancel(ctx)

	return &gCtx{
		Context: c,
		config:  ctx.Config(),
		inst:    ctx.Inst(),
	}, cancel
}

func WithTimeout(ctx Context, timeout time.Duration) (Context, context.CancelFunc) {
	c, cancel := context.WithTimeout(ctx, timeout)

	return &gCtx{
		Context: c,
		config:  ctx.Config(),
		inst:    ctx.Inst(),
	}, cancel
}
