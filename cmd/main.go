package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/bugsnag/panicwrap"
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/data/mutate"
	"github.com/seventv/tracker/data/query"
	"github.com/seventv/tracker/internal/configure"
	"github.com/seventv/tracker/internal/externalapis"
	"github.com/seventv/tracker/internal/global"
	"github.com/seventv/tracker/internal/health"
	"github.com/seventv/tracker/internal/monitoring"
	"github.com/seventv/tracker/internal/rest"
	"github.com/seventv/tracker/internal/svc/aggregate"
	"github.com/seventv/tracker/internal/svc/events"
	"github.com/seventv/tracker/internal/svc/ingest"
	"github.com/seventv/tracker/internal/svc/limiter"
	"github.com/seventv/tracker/internal/svc/mongo"
	"github.com/seventv/tracker/internal/svc/poller"
	"github.com/seventv/tracker/internal/svc/pprof"
	"github.com/seventv/tracker/internal/svc/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	Version = "development"
	Unix    = ""
	Time    = "unknown"
	User    = "unknown"
)

func init() {
	if i, err := strconv.Atoi(Unix); err == nil {
		Time = time.Unix(int64(i), 0).Format(time.RFC3339)
	}
}

func main() {
	config := configure.New()

	exitStatus, err := panicwrap.BasicWrap(func(s string) {
		zap.S().Errorw("panic detected",
			"panic", s,
		)
	})
	if err != nil {
		zap.S().Errorw("failed to setup panic handler",
			"error", err,
		)
		os.Exit(2)
	}

	if exitStatus >= 0 {
		os.Exit(exitStatus)
	}

	if !config.NoHeader {
		zap.S().Info("Presence Tracker")
		zap.S().Infof("Version: %s", Version)
		zap.S().Infof("build.Time: %s", Time)
		zap.S().Infof("build.User: %s", User)
	}

	zap.S().Debugf("MaxProcs: %d", runtime.GOMAXPROCS(0))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	gCtx, cancel := global.WithCancel(global.New(context.Background(), config))

	{
		ctx, cancel := context.WithTimeout(gCtx, time.Second*15)
		gCtx.Inst().Mongo, err = mongo.Setup(ctx, mongo.SetupOptions{
			URI:    config.Mongo.URI,
			DB:     config.Mongo.DB,
			Direct: config.Mongo.Direct,
		})
		cancel()

		if err != nil {
			zap.S().Fatalw("failed to setup mongo handler",
				"error", err,
			)
		}

		gCtx.Inst().Query = query.New(gCtx.Inst().Mongo)
		gCtx.Inst().Mutate = mutate.New(gCtx.Inst().Mongo)
	}

	{
		gCtx.Inst().Prometheus = prometheus.New(prometheus.Options{
			Labels: config.Monitoring.Labels.ToPrometheus(),
		})
	}

	if config.Nats.URL != "" {
		gCtx.Inst().Events, err = events.New(events.Options{
			URL:     config.Nats.URL,
			Subject: config.Nats.Subject,
		})
		if err != nil {
			zap.S().Fatalw("failed to setup nats handler",
				"error", err,
			)
		}
	} else {
		gCtx.Inst().Events = events.NewNoop()
	}

	{
		gCtx.Inst().Limiter = limiter.New(limiter.Options{
			MinInterval: config.Presence.MinInterval,
			WaitTimeout: config.Presence.WaitTimeout,
		})

		gCtx.Inst().Presence = externalapis.NewPresenceClient(externalapis.PresenceOptions{
			BaseURL:     config.Presence.APIURL,
			AccessToken: config.Presence.AccessToken,
			Version:     config.Presence.Version,
			BatchSize:   config.Presence.BatchSize,
			Timeout:     config.Presence.RequestTimeout,
			Limiter:     gCtx.Inst().Limiter,
		})
	}

	{
		gCtx.Inst().Ingest = ingest.New(ingest.Options{
			Reader:    gCtx.Inst().Query,
			Writer:    gCtx.Inst().Mutate,
			Source:    gCtx.Inst().Presence,
			Directory: gCtx.Inst().Query,
			Events:    gCtx.Inst().Events,
			Metrics:   gCtx.Inst().Prometheus,
		})

		gCtx.Inst().Aggregate = aggregate.New(aggregate.Options{
			Reader:         gCtx.Inst().Query,
			Directory:      gCtx.Inst().Query,
			Metrics:        gCtx.Inst().Prometheus,
			HistoryEpoch:   config.HistoryEpoch(),
			Workers:        config.Aggregation.Workers,
			OnlineLookback: config.Aggregation.OnlineLookback,
		})

		gCtx.Inst().Modelizer = model.NewInstance()
	}

	wg := sync.WaitGroup{}

	if gCtx.Config().Health.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-health.New(gCtx)
		}()
	}
	if gCtx.Config().Monitoring.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-monitoring.New(gCtx)
		}()
	}

	if gCtx.Config().PProf.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-pprof.New(gCtx)
		}()
	}

	if gCtx.Config().Poller.Enabled {
		p := poller.New(poller.Options{
			Runner:   gCtx.Inst().Ingest,
			Interval: config.Poller.Interval,
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-p.Start(gCtx)
		}()
	}

	done := make(chan struct{})
	go func() {
		<-sig
		cancel()
		go func() {
			select {
			case <-time.After(time.Minute):
			case <-sig:
			}
			zap.S().Fatal("force shutdown")
		}()

		zap.S().Info("shutting down")

		wg.Wait()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		if err := multierr.Combine(
			gCtx.Inst().Events.Close(),
			gCtx.Inst().Mongo.Close(ctx),
		); err != nil {
			zap.S().Errorw("failed to close resources",
				"error", err,
			)
		}

		close(done)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := rest.New(gCtx); err != nil {
			zap.S().Fatalw("rest failed",
				"error", err,
			)
		}
	}()

	zap.S().Info("running")

	<-done

	zap.S().Info("shutdown")
	os.Exit(0)
}
