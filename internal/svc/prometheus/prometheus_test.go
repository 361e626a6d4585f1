package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/seventv/tracker/internal/testutil"
)

func TestRegisterAndRecord(t *testing.T) {
	m := New(Options{Labels: prometheus.Labels{"pod": "a"}})

	r := prometheus.NewRegistry()
	m.Register(r)

	m.IngestRun("ok")
	m.EntriesWritten(3)
	m.UndefinedMarked(1)
	m.PresenceFetchDuration(time.Millisecond)
	m.AggregationDuration("period", time.Millisecond)

	families, err := r.Gather()
	testutil.IsNil(t, err, "gather")

	found := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if metric.GetCounter() != nil {
				found[f.GetName()] += metric.GetCounter().GetValue()
			}
		}
	}

	testutil.Assert(t, float64(1), found["tracker_ingest_runs_total"], "runs")
	testutil.Assert(t, float64(3), found["tracker_ingest_entries_written_total"], "written")
	testutil.Assert(t, float64(1), found["tracker_undefined_entries_total"], "undefined")
}
