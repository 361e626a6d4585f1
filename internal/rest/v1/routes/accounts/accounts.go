package accounts

import (
	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/global"
	"github.com/seventv/tracker/internal/rest/rest"
)

const maxTake = 100

type Route struct {
	Ctx global.Context
}

func New(gCtx global.Context) rest.Route {
	return &Route{gCtx}
}

func (r *Route) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/accounts",
		Method: rest.GET,
		Children: []rest.Route{
			newAccountRoute(r.Ctx),
		},
	}
}

// Handler lists tracked accounts, optionally filtered by name.
func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	skip, err := ctx.QueryInt("skip", 0)
	if err != nil {
		return err
	}

	take, err := ctx.QueryInt("take", maxTake)
	if err != nil {
		return err
	}

	if skip < 0 || take <= 0 || take > maxTake {
		return errors.ErrInvalidRequest().SetDetail("skip must be positive and take between 1 and %d", maxTake)
	}

	accounts, e := r.Ctx.Inst().Query.Accounts(ctx, model.AccountFilter{
		Query: string(ctx.QueryArgs().Peek("query")),
		Skip:  skip,
		Take:  take,
	})
	if e != nil {
		return errors.From(e)
	}

	return ctx.JSON(rest.OK, accounts)
}
