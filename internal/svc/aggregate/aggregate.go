package aggregate

import (
	"context"
	"time"

	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/svc/prometheus"
)

type Instance interface {
	// PeriodStatistics computes per-platform online time of an account within [from, to].
	PeriodStatistics(ctx context.Context, accountID int64, from, to time.Time) (model.PeriodStats, error)
	// FullHistoryStatistics computes statistics over an account's entire trustworthy history.
	FullHistoryStatistics(ctx context.Context, accountID int64) (model.DetailedStats, error)
	// RankedActivityListing ranks accounts by their total online time within [from, to].
	RankedActivityListing(ctx context.Context, filter model.AccountFilter, from, to time.Time) ([]model.ListingEntry, error)
}

type LogReader interface {
	EntriesInRange(ctx context.Context, ids []int64, from, to int64) ([]model.LogEntry, error)
	LastEntrySince(ctx context.Context, ids []int64, since int64) (map[int64]model.LogEntry, error)
}

type Directory interface {
	Accounts(ctx context.Context, filter model.AccountFilter) ([]model.Account, error)
	AccountByID(ctx context.Context, id int64) (model.Account, error)
}

type Options struct {
	Reader    LogReader
	Directory Directory
	Metrics   prometheus.Instance

	// HistoryEpoch is the earliest point in time for which the log is considered reliable
	HistoryEpoch time.Time
	// Workers bounds the number of accounts aggregated concurrently in a listing
	Workers int
	// OnlineLookback is how far back a listing looks for an account's current presence
	OnlineLookback time.Duration
	Now            func() time.Time
}

type inst struct {
	reader         LogReader
	directory      Directory
	metrics        prometheus.Instance
	epoch          time.Time
	workers        int
	onlineLookback time.Duration
	now            func() time.Time
}

func New(opt Options) Instance {
	if opt.Metrics == nil {
		opt.Metrics = prometheus.New(prometheus.Options{})
	}

	if opt.Workers <= 0 {
		opt.Workers = 1
	}

	if opt.OnlineLookback <= 0 {
		opt.OnlineLookback = 24 * time.Hour
	}

	if opt.Now == nil {
		opt.Now = time.Now
	}

	return &inst{
		reader:         opt.Reader,
		directory:      opt.Directory,
		metrics:        opt.Metrics,
		epoch:          opt.HistoryEpoch.UTC(),
		workers:        opt.Workers,
		onlineLookback: opt.OnlineLookback,
		now:            opt.Now,
	}
}

// clampFrom moves the start of a window up to the history epoch.
func (inst *inst) clampFrom(from time.Time) time.Time {
	if from.Before(inst.epoch) {
		return inst.epoch
	}

	return from
}

func (inst *inst) observe(operation string, start time.Time) {
	inst.metrics.AggregationDuration(operation, time.Since(start))
}
