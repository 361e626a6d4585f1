package accounts

import (
	"time"

	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/internal/global"
	"github.com/seventv/tracker/internal/rest/rest"
)

type activityRoute struct {
	Ctx global.Context
}

func newActivityRoute(gCtx global.Context) rest.Route {
	return &activityRoute{gCtx}
}

func (r *activityRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/activity",
		Method: rest.GET,
		Children: []rest.Route{
			newHistoryRoute(r.Ctx),
		},
	}
}

// Handler returns the time an account spent online on each platform within a window.
// The window is given as unix seconds in the from and to query arguments.
func (r *activityRoute) Handler(ctx *rest.Ctx) rest.APIError {
	id, err := ctx.UserValue("account.id").Int64()
	if err != nil {
		return errors.From(err)
	}

	from, to, apiErr := ctx.Window(time.Now())
	if apiErr != nil {
		return apiErr
	}

	stats, err := r.Ctx.Inst().Aggregate.PeriodStatistics(ctx, id, from, to)
	if err != nil {
		return errors.From(err)
	}

	return ctx.JSON(rest.OK, r.Ctx.Inst().Modelizer.PeriodStats(stats))
}

type historyRoute struct {
	Ctx global.Context
}

func newHistoryRoute(gCtx global.Context) rest.Route {
	return &historyRoute{gCtx}
}

func (r *historyRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/history",
		Method: rest.GET,
	}
}

func (r *historyRoute) Handler(ctx *rest.Ctx) rest.APIError {
	id, err := ctx.UserValue("account.id").Int64()
	if err != nil {
		return errors.From(err)
	}

	stats, err := r.Ctx.Inst().Aggregate.FullHistoryStatistics(ctx, id)
	if err != nil {
		return errors.From(err)
	}

	return ctx.JSON(rest.OK, r.Ctx.Inst().Modelizer.DetailedStats(stats))
}
