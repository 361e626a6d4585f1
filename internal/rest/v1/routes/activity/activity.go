package activity

import (
	"time"

	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/global"
	"github.com/seventv/tracker/internal/rest/rest"
)

type Route struct {
	Ctx global.Context
}

func New(gCtx global.Context) rest.Route {
	return &Route{gCtx}
}

func (r *Route) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/activity",
		Method: rest.GET,
	}
}

// Handler ranks accounts by the time they spent online within a window.
func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	from, to, apiErr := ctx.Window(time.Now())
	if apiErr != nil {
		return apiErr
	}

	skip, apiErr := ctx.QueryInt("skip", 0)
	if apiErr != nil {
		return apiErr
	}

	take, apiErr := ctx.QueryInt("take", 0)
	if apiErr != nil {
		return apiErr
	}

	if skip < 0 || take < 0 {
		return errors.ErrInvalidRequest().SetDetail("skip and take must not be negative")
	}

	result, err := r.Ctx.Inst().Aggregate.RankedActivityListing(ctx, model.AccountFilter{
		Query: string(ctx.QueryArgs().Peek("query")),
		Skip:  skip,
		Take:  take,
	}, from, to)
	if err != nil {
		return errors.From(err)
	}

	return ctx.JSON(rest.OK, r.Ctx.Inst().Modelizer.Listing(result))
}
