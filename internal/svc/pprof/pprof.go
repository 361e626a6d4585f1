package pprof

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/seventv/tracker/internal/global"
	"go.uber.org/zap"
)

// New serves the runtime profiler on its own bind until the global context is canceled.
func New(gCtx global.Context) <-chan struct{} {
	done := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	srv := &http.Server{
		Addr:              gCtx.Config().PProf.Bind,
		Handler:           mux,
		ReadHeaderTimeout: time.Second * 10,
	}

	go func() {
		defer close(done)
		zap.S().Infow("pprof enabled",
			"bind", srv.Addr,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalw("pprof failed to listen",
				"error", err,
			)
		}
	}()

	go func() {
		<-gCtx.Done()
		_ = srv.Close()
	}()

	return done
}
