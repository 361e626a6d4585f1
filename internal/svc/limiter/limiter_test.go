package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/testutil"
)

func TestAwaitSpacesRequests(t *testing.T) {
	l := New(Options{
		MinInterval: time.Millisecond * 50,
		WaitTimeout: time.Second,
	})

	ctx := context.Background()
	start := time.Now()

	testutil.IsNil(t, l.Await(ctx), "first slot")
	testutil.IsNil(t, l.Await(ctx), "second slot")

	testutil.Assert(t, true, time.Since(start) >= time.Millisecond*40, "second request waited")
}

func TestAwaitTimeout(t *testing.T) {
	l := New(Options{
		MinInterval: time.Hour,
		WaitTimeout: time.Millisecond * 20,
	})

	ctx := context.Background()

	testutil.IsNil(t, l.Await(ctx), "first slot")

	err := l.Await(ctx)
	testutil.Assert(t, true, errors.Compare(err, model.ErrUpstreamUnavailable()), "timeout surfaces upstream unavailable")
}

func TestInstancesAreIndependent(t *testing.T) {
	a := New(Options{MinInterval: time.Hour, WaitTimeout: time.Millisecond * 10})
	b := New(Options{MinInterval: time.Hour, WaitTimeout: time.Millisecond * 10})

	ctx := context.Background()

	testutil.IsNil(t, a.Await(ctx), "a first slot")
	testutil.IsNil(t, b.Await(ctx), "b is not throttled by a")
}
