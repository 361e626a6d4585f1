package accounts

import (
	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/internal/global"
	"github.com/seventv/tracker/internal/rest/rest"
)

type accountRoute struct {
	Ctx global.Context
}

func newAccountRoute(gCtx global.Context) rest.Route {
	return &accountRoute{gCtx}
}

func (r *accountRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/{account.id}",
		Method: rest.GET,
		Children: []rest.Route{
			newActivityRoute(r.Ctx),
		},
	}
}

func (r *accountRoute) Handler(ctx *rest.Ctx) rest.APIError {
	id, err := ctx.UserValue("account.id").Int64()
	if err != nil {
		return errors.From(err)
	}

	account, err := r.Ctx.Inst().Query.AccountByID(ctx, id)
	if err != nil {
		return errors.From(err)
	}

	return ctx.JSON(rest.OK, account)
}
