package rest

import (
	"fmt"
	"net"
	"time"

	"github.com/fasthttp/router"
	"github.com/seventv/tracker/internal/global"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type HttpServer struct {
	router *router.Router
}

func New(gCtx global.Context) error {
	port := gCtx.Config().Http.Port
	if port == 0 {
		port = 80
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", gCtx.Config().Http.Addr, port))
	if err != nil {
		return err
	}

	return Serve(gCtx, listener)
}

// Serve runs the REST API on the given listener until the global context is canceled.
func Serve(gCtx global.Context, listener net.Listener) error {
	s := HttpServer{
		router: router.New(),
	}

	s.SetupHandlers()
	s.V1(gCtx)

	srv := &fasthttp.Server{
		Handler:         s.handler(gCtx),
		ReadTimeout:     time.Second * 60,
		IdleTimeout:     time.Second * 10,
		LogAllErrors:    true,
		CloseOnShutdown: true,
	}

	go func() {
		<-gCtx.Done()
		_ = srv.Shutdown()
	}()

	return srv.Serve(listener)
}

func (s *HttpServer) handler(gCtx global.Context) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		defer func() {
			if err := recover(); err != nil {
				zap.S().Errorw("panic in rest request handler",
					"panic", err,
					"status", ctx.Response.StatusCode(),
					"duration", time.Since(start)/time.Millisecond,
					"method", string(ctx.Method()),
					"path", string(ctx.Path()),
				)
			} else {
				zap.S().Debugw("rest request",
					"status", ctx.Response.StatusCode(),
					"duration", time.Since(start)/time.Millisecond,
					"method", string(ctx.Method()),
					"path", string(ctx.Path()),
				)
			}
		}()

		ctx.Response.Header.Set("Access-Control-Allow-Headers", "*")
		ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")

		if name := gCtx.Config().K8S.PodName; name != "" {
			ctx.Response.Header.Set("X-Pod-Name", name)
		}

		if ctx.IsOptions() {
			return
		}

		ctx.Response.Header.Set("Content-Type", "application/json")
		s.router.Handler(ctx)
	}
}
