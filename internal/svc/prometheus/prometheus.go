package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Instance interface {
	Register(r prometheus.Registerer)

	IngestRun(result string)
	EntriesWritten(n int)
	UndefinedMarked(n int)
	PresenceFetchDuration(d time.Duration)
	AggregationDuration(operation string, d time.Duration)
}

type Options struct {
	Labels prometheus.Labels
}

func New(o Options) Instance {
	return &mon{
		ingestRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "tracker_ingest_runs_total",
			Help:        "The number of ingestion runs by result",
			ConstLabels: o.Labels,
		}, []string{"result"}),
		entriesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "tracker_ingest_entries_written_total",
			Help:        "The number of presence log entries written",
			ConstLabels: o.Labels,
		}),
		undefinedMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "tracker_undefined_entries_total",
			Help:        "The number of undefined entries written after a failed ingestion",
			ConstLabels: o.Labels,
		}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "tracker_presence_fetch_duration_seconds",
			Help:        "Time spent fetching snapshots from the presence source",
			ConstLabels: o.Labels,
			Buckets:     prometheus.DefBuckets,
		}),
		aggregationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "tracker_aggregation_duration_seconds",
			Help:        "Time spent computing activity statistics",
			ConstLabels: o.Labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

type mon struct {
	ingestRuns          *prometheus.CounterVec
	entriesWritten      prometheus.Counter
	undefinedMarked     prometheus.Counter
	fetchDuration       prometheus.Histogram
	aggregationDuration *prometheus.HistogramVec
}

func (m *mon) Register(r prometheus.Registerer) {
	r.MustRegister(
		m.ingestRuns,
		m.entriesWritten,
		m.undefinedMarked,
		m.fetchDuration,
		m.aggregationDuration,
	)
}

func (m *mon) IngestRun(result string) {
	m.ingestRuns.WithLabelValues(result).Inc()
}

func (m *mon) EntriesWritten(n int) {
	m.entriesWritten.Add(float64(n))
}

func (m *mon) UndefinedMarked(n int) {
	m.undefinedMarked.Add(float64(n))
}

func (m *mon) PresenceFetchDuration(d time.Duration) {
	m.fetchDuration.Observe(d.Seconds())
}

func (m *mon) AggregationDuration(operation string, d time.Duration) {
	m.aggregationDuration.WithLabelValues(operation).Observe(d.Seconds())
}
