package routes

import (
	"time"

	"github.com/seventv/tracker/internal/global"
	"github.com/seventv/tracker/internal/rest/rest"
	"github.com/seventv/tracker/internal/rest/v1/routes/accounts"
	"github.com/seventv/tracker/internal/rest/v1/routes/activity"
)

type Route struct {
	Ctx     global.Context
	started time.Time
}

func New(gCtx global.Context) rest.Route {
	return &Route{
		Ctx:     gCtx,
		started: time.Now(),
	}
}

func (r *Route) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/v1",
		Method: rest.GET,
		Children: []rest.Route{
			accounts.New(r.Ctx),
			activity.New(r.Ctx),
		},
	}
}

func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	return ctx.JSON(rest.OK, &Response{
		Online: true,
		Uptime: int64(time.Since(r.started) / time.Second),
	})
}

type Response struct {
	Online bool  `json:"online"`
	Uptime int64 `json:"uptime"`
}
