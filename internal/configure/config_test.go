package configure

import (
	"testing"
	"time"

	"github.com/seventv/tracker/internal/testutil"
	"go.uber.org/zap"
)

func TestHistoryEpoch(t *testing.T) {
	c := Default()

	testutil.Assert(t, true, c.HistoryEpoch().Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), "default epoch")

	c.Aggregation.HistoryEpoch = "not a time"
	testutil.Assert(t, int64(0), c.HistoryEpoch().Unix(), "fallback epoch")
}

func TestParseLevel(t *testing.T) {
	testutil.Assert(t, zap.DebugLevel, parseLevel("debug"), "debug")
	testutil.Assert(t, zap.InfoLevel, parseLevel("verbose"), "unknown")
}

func TestLabels(t *testing.T) {
	l := Labels{{Key: "region", Value: "eu"}}

	testutil.Assert(t, "eu", l.ToPrometheus()["region"], "label value")
}
