package rest

import (
	"context"
	"net"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/configure"
	"github.com/seventv/tracker/internal/global"
	"github.com/seventv/tracker/internal/instance"
	"github.com/seventv/tracker/internal/rest/rest"
	"github.com/seventv/tracker/internal/svc/aggregate"
	"github.com/seventv/tracker/internal/testutil"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func setup(t *testing.T) *fasthttp.Client {
	store := testutil.NewMemoryStore(model.Account{ID: 7, FirstName: "Ivan", LastName: "Petrov"})
	store.Seed(
		model.LogEntry{AccountID: 7, Presence: model.Online(model.PlatformFullSite), LastSeen: 100},
		model.LogEntry{AccountID: 7, Presence: model.Offline(), LastSeen: 200},
	)

	cfg := configure.Default()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gCtx := global.WithInstances(ctx, &cfg, &instance.Instances{
		Aggregate: aggregate.New(aggregate.Options{
			Reader:       store,
			Directory:    store,
			HistoryEpoch: time.Unix(0, 0),
			Workers:      2,
		}),
		Modelizer: model.NewInstance(),
	})

	ln := fasthttputil.NewInmemoryListener()
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		_ = Serve(gCtx, ln)
	}()

	return &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}
}

func get(t *testing.T, c *fasthttp.Client, uri string, v interface{}) int {
	t.Helper()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(res)

	req.SetRequestURI("http://tracker" + uri)

	testutil.IsNil(t, c.Do(req, res), "request")
	testutil.IsNil(t, jsoniter.Unmarshal(res.Body(), v), "decode body")

	return res.StatusCode()
}

func TestPeriodRoute(t *testing.T) {
	c := setup(t)

	var stats model.PeriodStatsModel
	status := get(t, c, "/v1/accounts/7/activity?from=0&to=1000", &stats)

	testutil.Assert(t, 200, status, "status")
	testutil.Assert(t, int64(100), stats.TotalSeconds, "total")
	testutil.Assert(t, 1, stats.VisitsCount, "visits")
	testutil.Assert(t, "Ivan Petrov", stats.Name, "name")
	testutil.Assert(t, 1, len(stats.Platforms), "platforms")
	testutil.Assert(t, "FULL_SITE", stats.Platforms[0].Platform, "platform")
}

func TestRouteErrors(t *testing.T) {
	c := setup(t)

	tests := []struct {
		name string
		uri  string
		err  errors.APIError
	}{
		{"invalid window", "/v1/accounts/7/activity?from=1000&to=1000", model.ErrInvalidWindow()},
		{"unknown account", "/v1/accounts/99999/activity?from=0&to=1000", model.ErrAccountNotFound()},
		{"bad account id", "/v1/accounts/abc/activity", errors.ErrBadInt()},
		{"bad query", "/v1/activity?from=yesterday", errors.ErrBadInt()},
		{"unknown route", "/v2/nothing", errors.ErrUnknownRoute()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var body rest.APIErrorResponse

			status := get(t, c, test.uri, &body)
			testutil.Assert(t, test.err.ExpectedHTTPStatus(), status, "status")
			testutil.Assert(t, test.err.Code(), body.ErrorCode, "error code")
		})
	}
}

func TestHistoryAndListingRoutes(t *testing.T) {
	c := setup(t)

	var history model.DetailedStatsModel
	testutil.Assert(t, 200, get(t, c, "/v1/accounts/7/activity/history", &history), "history status")
	testutil.Assert(t, int64(100), history.TotalSeconds, "history total")
	testutil.Assert(t, 1, history.VisitsFromSite, "site visits")

	var listing []model.ListingEntryModel
	testutil.Assert(t, 200, get(t, c, "/v1/activity?from=0&to=1000", &listing), "listing status")
	testutil.Assert(t, 1, len(listing), "listing length")
	testutil.Assert(t, int64(100), listing[0].TotalSeconds, "listing total")
}
