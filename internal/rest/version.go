package rest

import (
	"runtime/debug"

	"github.com/fasthttp/router"
	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/internal/global"
	"github.com/seventv/tracker/internal/rest/rest"
	v1 "github.com/seventv/tracker/internal/rest/v1"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func (s *HttpServer) V1(gCtx global.Context) {
	s.traverseRoutes(v1.API(gCtx), s.router)
}

func (s *HttpServer) SetupHandlers() {
	s.router.NotFound = s.getErrorHandler(
		errors.ErrUnknownRoute().SetFields(errors.Fields{
			"message": "The API endpoint requested does not exist",
		}),
	)

	s.router.PanicHandler = func(ctx *fasthttp.RequestCtx, i interface{}) {
		err := "Something went wrong"
		switch x := i.(type) {
		case error:
			err += ": " + x.Error()
		case string:
			err += ": " + x
		}

		zap.S().Errorw("panic occured",
			"panic", i,
			"stack", string(debug.Stack()),
		)

		s.getErrorHandler(
			errors.ErrInternalServerError().SetFields(errors.Fields{
				"panic": err,
			}),
		)(ctx)
	}
}

func (s *HttpServer) traverseRoutes(r rest.Route, parentGroup Router) {
	c := r.Config()

	// Compose the full request URI (prefixing with parent, if any)
	group := parentGroup.Group(c.URI)
	l := zap.S().With(
		"group", group,
		"method", c.Method,
	)

	group.Handle(string(c.Method), "", func(ctx *fasthttp.RequestCtx) {
		rctx := &rest.Ctx{RequestCtx: ctx}

		handlers := make([]rest.Middleware, len(c.Middleware)+1)
		copy(handlers, c.Middleware)
		handlers[len(handlers)-1] = r.Handler

		for _, h := range handlers {
			if err := h(rctx); err != nil {
				rctx.Error(err)

				return
			}
		}
	})
	l.Debug("Route registered")

	for _, child := range c.Children {
		s.traverseRoutes(child, group)
	}
}

func (s *HttpServer) getErrorHandler(err rest.APIError) func(ctx *fasthttp.RequestCtx) {
	return func(ctx *fasthttp.RequestCtx) {
		(&rest.Ctx{RequestCtx: ctx}).Error(err)
	}
}

type Router interface {
	Group(path string) *router.Group
	Handle(method, path string, handler fasthttp.RequestHandler)
}
