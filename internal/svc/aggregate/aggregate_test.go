package aggregate

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/testutil"
)

func unix(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}

func newTestInstance(store *testutil.MemoryStore, now int64) Instance {
	return New(Options{
		Reader:       store,
		Directory:    store,
		HistoryEpoch: unix(0),
		Workers:      4,
		Now:          func() time.Time { return unix(now) },
	})
}

func TestPeriodStatistics(t *testing.T) {
	ctx := context.Background()

	store := testutil.NewMemoryStore(model.Account{ID: 7, FirstName: "Pavel", LastName: "Durov"})
	store.Seed(
		model.LogEntry{AccountID: 7, Presence: model.Online(model.PlatformFullSite), LastSeen: 0},
		model.LogEntry{AccountID: 7, Presence: model.Offline(), LastSeen: 100},
	)

	inst := newTestInstance(store, 1000)

	t.Run("basic session", func(t *testing.T) {
		stats, err := inst.PeriodStatistics(ctx, 7, unix(0), unix(200))
		testutil.IsNil(t, err, "period")
		testutil.Assert(t, testutil.Seconds(100), stats.Durations.Get(model.PlatformFullSite), "full site")
		testutil.Assert(t, testutil.Seconds(100), stats.Total, "total")
		testutil.Assert(t, 1, stats.VisitsCount, "visits")
		testutil.Assert(t, "Pavel Durov", stats.Account.Name(), "account")
		testutil.Assert(t, model.NoticeNone, stats.Notice, "notice")
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := inst.PeriodStatistics(ctx, 7, unix(100), unix(100))
		testutil.Assert(t, true, errors.Compare(err, model.ErrInvalidWindow()), "empty window")

		_, err = inst.PeriodStatistics(ctx, 7, unix(200), unix(100))
		testutil.Assert(t, true, errors.Compare(err, model.ErrInvalidWindow()), "reversed window")
	})

	t.Run("unknown account", func(t *testing.T) {
		stats, err := inst.PeriodStatistics(ctx, 99999, unix(0), unix(200))
		testutil.Assert(t, true, errors.Compare(err, model.ErrAccountNotFound()), "not found")
		testutil.Assert(t, int64(0), stats.Account.ID, "no value")
	})

	t.Run("no activity in window", func(t *testing.T) {
		stats, err := inst.PeriodStatistics(ctx, 7, unix(500), unix(900))
		testutil.IsNil(t, err, "no activity is not an error")
		testutil.Assert(t, model.NoticeNoActivityInWindow, stats.Notice, "notice")
		testutil.Assert(t, time.Duration(0), stats.Total, "total")
	})

	t.Run("leading offline run is dropped", func(t *testing.T) {
		stats, err := inst.PeriodStatistics(ctx, 7, unix(50), unix(200))
		testutil.IsNil(t, err, "period")
		testutil.Assert(t, model.NoticeNoActivityInWindow, stats.Notice, "only an offline entry in window")
	})

	t.Run("from is clamped to the history epoch", func(t *testing.T) {
		clamped := New(Options{
			Reader:       store,
			Directory:    store,
			HistoryEpoch: unix(50),
		})

		stats, err := clamped.PeriodStatistics(ctx, 7, unix(0), unix(200))
		testutil.IsNil(t, err, "period")
		testutil.Assert(t, unix(50), stats.From, "from")
		testutil.Assert(t, time.Duration(0), stats.Total, "entries before the epoch are ignored")
	})

	t.Run("store failure", func(t *testing.T) {
		failing := testutil.NewMemoryStore(model.Account{ID: 7})
		failing.ReadErr = goerrors.New("connection reset")

		_, err := newTestInstance(failing, 1000).PeriodStatistics(ctx, 7, unix(0), unix(200))
		testutil.Assert(t, true, errors.Compare(err, model.ErrAggregationFailed()), "aggregation failed")
	})
}

func TestFullHistoryStatistics(t *testing.T) {
	ctx := context.Background()
	day := int64(24 * 60 * 60)

	store := testutil.NewMemoryStore(model.Account{ID: 1}, model.Account{ID: 2})
	store.Seed(
		model.LogEntry{AccountID: 1, Presence: model.Online(model.PlatformFullSite), LastSeen: day},
		model.LogEntry{AccountID: 1, Presence: model.Online(model.PlatformIPhone), LastSeen: day + 600},
		model.LogEntry{AccountID: 1, Presence: model.Offline(), LastSeen: day + 900},
		model.LogEntry{AccountID: 1, Presence: model.Online(model.PlatformFullSite), LastSeen: 3 * day},
		model.LogEntry{AccountID: 1, Presence: model.Offline(), LastSeen: 3*day + 300},
	)

	inst := newTestInstance(store, 10*day)

	t.Run("history", func(t *testing.T) {
		stats, err := inst.FullHistoryStatistics(ctx, 1)
		testutil.IsNil(t, err, "history")
		testutil.Assert(t, testutil.Seconds(900), stats.Durations.Get(model.PlatformFullSite), "full site")
		testutil.Assert(t, testutil.Seconds(300), stats.Durations.Get(model.PlatformIPhone), "iphone")
		testutil.Assert(t, testutil.Seconds(1200), stats.Total, "total")
		testutil.Assert(t, 3, stats.VisitsCount, "visits")
		testutil.Assert(t, 2, stats.VisitsFromSite, "site visits")
		testutil.Assert(t, 1, stats.VisitsFromApp, "app visits")
		testutil.Assert(t, 2, stats.AnalyzedDaysCount, "analyzed days")
		testutil.Assert(t, 2, stats.ActivityDaysCount, "activity days")
		testutil.Assert(t, testutil.Seconds(600), stats.AvgDailyTime, "average")
	})

	t.Run("empty history", func(t *testing.T) {
		stats, err := inst.FullHistoryStatistics(ctx, 2)
		testutil.IsNil(t, err, "empty history is not an error")
		testutil.Assert(t, model.NoticeNoActivityDaysYet, stats.Notice, "notice")
		testutil.Assert(t, time.Duration(0), stats.Total, "total")
		testutil.Assert(t, 0, stats.VisitsCount, "visits")
		testutil.Assert(t, 0, stats.ActivityDaysCount, "activity days")
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := inst.FullHistoryStatistics(ctx, 3)
		testutil.Assert(t, true, errors.Compare(err, model.ErrAccountNotFound()), "not found")
	})

	t.Run("store failure", func(t *testing.T) {
		failing := testutil.NewMemoryStore(model.Account{ID: 1})
		failing.ReadErr = goerrors.New("connection reset")

		_, err := newTestInstance(failing, 10*day).FullHistoryStatistics(ctx, 1)
		testutil.Assert(t, true, errors.Compare(err, model.ErrAggregationFailed()), "aggregation failed")
	})
}

func TestRankedActivityListing(t *testing.T) {
	ctx := context.Background()

	store := testutil.NewMemoryStore(
		model.Account{ID: 1, FirstName: "Boris", LastName: "B"},
		model.Account{ID: 2, FirstName: "Anna", LastName: "B"},
		model.Account{ID: 3, FirstName: "Anna", LastName: "A"},
		model.Account{ID: 4, FirstName: "Vera", LastName: "V"},
	)
	store.Seed(
		// account 4 is still online at the end of the window
		model.LogEntry{AccountID: 4, Presence: model.Online(model.PlatformIPhone), LastSeen: 500},
		model.LogEntry{AccountID: 1, Presence: model.Online(model.PlatformFullSite), LastSeen: 100},
		model.LogEntry{AccountID: 1, Presence: model.Offline(), LastSeen: 150},
		model.LogEntry{AccountID: 2, Presence: model.Online(model.PlatformFullSite), LastSeen: 100},
		model.LogEntry{AccountID: 2, Presence: model.Offline(), LastSeen: 150},
		model.LogEntry{AccountID: 3, Presence: model.Online(model.PlatformAndroid), LastSeen: 200},
		model.LogEntry{AccountID: 3, Presence: model.Offline(), LastSeen: 250},
	)

	t.Run("ordering and open session", func(t *testing.T) {
		result, err := newTestInstance(store, 1000).RankedActivityListing(ctx, model.AccountFilter{}, unix(0), unix(600))
		testutil.IsNil(t, err, "listing")
		testutil.Assert(t, 4, len(result), "length")

		testutil.Assert(t, int64(4), result[0].Account.ID, "longest first")
		testutil.Assert(t, testutil.Seconds(100), result[0].Total, "credited up to the window end")
		testutil.Assert(t, int64(3), result[1].Account.ID, "tie broken by first then last name")
		testutil.Assert(t, int64(2), result[2].Account.ID, "tie broken by first name")
		testutil.Assert(t, int64(1), result[3].Account.ID, "last")
		testutil.Assert(t, testutil.Seconds(50), result[3].Total, "total")
	})

	t.Run("open session closed at now", func(t *testing.T) {
		result, err := newTestInstance(store, 540).RankedActivityListing(ctx, model.AccountFilter{Query: "vera"}, unix(0), unix(600))
		testutil.IsNil(t, err, "listing")
		testutil.Assert(t, 1, len(result), "filtered")
		testutil.Assert(t, testutil.Seconds(40), result[0].Total, "credited up to now")
		testutil.Assert(t, true, result[0].CurrentlyOnline, "currently online")
	})

	t.Run("currently online only within lookback", func(t *testing.T) {
		later := 500 + int64(48*time.Hour/time.Second)

		result, err := newTestInstance(store, later).RankedActivityListing(ctx, model.AccountFilter{Query: "vera"}, unix(0), unix(600))
		testutil.IsNil(t, err, "listing")
		testutil.Assert(t, false, result[0].CurrentlyOnline, "stale online entry")
	})

	t.Run("invalid window fails before store access", func(t *testing.T) {
		failing := testutil.NewMemoryStore()
		failing.ReadErr = goerrors.New("should not be reached")

		_, err := newTestInstance(failing, 1000).RankedActivityListing(ctx, model.AccountFilter{}, unix(600), unix(600))
		testutil.Assert(t, true, errors.Compare(err, model.ErrInvalidWindow()), "invalid window")
	})

	t.Run("store failure", func(t *testing.T) {
		failing := testutil.NewMemoryStore(model.Account{ID: 1, FirstName: "Vera"})
		failing.ReadErr = goerrors.New("connection reset")

		_, err := newTestInstance(failing, 1000).RankedActivityListing(ctx, model.AccountFilter{}, unix(0), unix(600))
		testutil.Assert(t, true, errors.Compare(err, model.ErrAggregationFailed()), "aggregation failed")
	})

	t.Run("no accounts", func(t *testing.T) {
		result, err := newTestInstance(store, 1000).RankedActivityListing(ctx, model.AccountFilter{Query: "nobody"}, unix(0), unix(600))
		testutil.IsNil(t, err, "listing")
		testutil.Assert(t, 0, len(result), "empty")
	})
}
