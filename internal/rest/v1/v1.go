package v1

import (
	"github.com/seventv/tracker/internal/global"
	"github.com/seventv/tracker/internal/rest/rest"
	"github.com/seventv/tracker/internal/rest/v1/routes"
)

func API(gCtx global.Context) rest.Route {
	return routes.New(gCtx)
}
