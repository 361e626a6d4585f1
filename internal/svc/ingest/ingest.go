package ingest

import (
	"context"
	"time"

	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/svc/events"
	"github.com/seventv/tracker/internal/svc/prometheus"
)

type Instance interface {
	// IngestSnapshots turns one poll into change-point entries and writes them in a single batch.
	IngestSnapshots(ctx context.Context, snapshots []model.Snapshot) (Result, error)
	// MarkAllUndefined closes every open session with an undefined entry.
	MarkAllUndefined(ctx context.Context) (Result, error)
	// Run polls the presence source for every tracked account and ingests the result.
	Run(ctx context.Context) (Result, error)
}

type LogReader interface {
	LastEntryPerAccount(ctx context.Context, ids []int64) (map[int64]model.LogEntry, error)
	LoggedAccountIDs(ctx context.Context) ([]int64, error)
}

type LogWriter interface {
	AppendEntries(ctx context.Context, entries []model.LogEntry) error
}

type Source interface {
	FetchSnapshots(ctx context.Context, ids []int64) ([]model.Snapshot, error)
}

type Directory interface {
	TrackedAccountIDs(ctx context.Context) ([]int64, error)
}

type Result struct {
	Written   int
	Skipped   int
	Unchanged int
	Notice    model.Notice
}

type Options struct {
	Reader    LogReader
	Writer    LogWriter
	Source    Source
	Directory Directory
	Events    events.Instance
	Metrics   prometheus.Instance
	Now       func() time.Time
}

type inst struct {
	reader    LogReader
	writer    LogWriter
	source    Source
	directory Directory
	events    events.Instance
	metrics   prometheus.Instance
	now       func() time.Time
}

func New(opt Options) Instance {
	if opt.Events == nil {
		opt.Events = events.NewNoop()
	}

	if opt.Metrics == nil {
		opt.Metrics = prometheus.New(prometheus.Options{})
	}

	if opt.Now == nil {
		opt.Now = time.Now
	}

	return &inst{
		reader:    opt.Reader,
		writer:    opt.Writer,
		source:    opt.Source,
		directory: opt.Directory,
		events:    opt.Events,
		metrics:   opt.Metrics,
		now:       opt.Now,
	}
}
