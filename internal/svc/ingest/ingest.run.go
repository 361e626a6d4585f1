package ingest

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"go.uber.org/zap"
)

const (
	RunResultOK       = "ok"
	RunResultNoop     = "noop"
	RunResultUpstream = "upstream_unavailable"
	RunResultWrite    = "persistence_failure"
)

func (inst *inst) Run(ctx context.Context) (Result, error) {
	ids, err := inst.directory.TrackedAccountIDs(ctx)
	if err != nil {
		zap.S().Errorw("ingest, failed to list tracked accounts",
			"error", err,
		)

		inst.metrics.IngestRun(RunResultWrite)

		return Result{}, inst.compensate(ctx, err, model.ErrPersistenceFailure())
	}

	start := time.Now()
	snapshots, err := inst.source.FetchSnapshots(ctx, ids)

	inst.metrics.PresenceFetchDuration(time.Since(start))

	if err != nil {
		zap.S().Warnw("ingest, presence source unavailable",
			"accounts", len(ids),
			"error", err,
		)

		inst.metrics.IngestRun(RunResultUpstream)

		return Result{}, inst.compensate(ctx, err, model.ErrUpstreamUnavailable())
	}

	result, err := inst.IngestSnapshots(ctx, snapshots)
	if err != nil {
		inst.metrics.IngestRun(RunResultWrite)

		return result, inst.compensate(ctx, err, model.ErrPersistenceFailure())
	}

	if result.Written == 0 {
		inst.metrics.IngestRun(RunResultNoop)
	} else {
		inst.metrics.IngestRun(RunResultOK)
	}

	zap.S().Debugw("ingest, run complete",
		"written", result.Written,
		"skipped", result.Skipped,
		"unchanged", result.Unchanged,
		"notice", result.Notice,
	)

	return result, nil
}

// compensate marks open sessions as undefined after a failed run and returns the failure
// converted to the given kind. If the compensation fails too, both are returned as a
// *multierror.Error whose first element is the converted failure.
func (inst *inst) compensate(ctx context.Context, cause error, kind errors.APIError) error {
	var err error

	if errors.Compare(cause, kind) {
		err = cause
	} else {
		err = kind.SetDetail(cause.Error())
	}

	if _, mErr := inst.MarkAllUndefined(ctx); mErr != nil {
		zap.S().Errorw("ingest, failed to mark open sessions as undefined",
			"cause", cause,
			"error", mErr,
		)

		err = multierror.Append(err, mErr)
	}

	return err
}
