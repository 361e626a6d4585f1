package ingest

import (
	"context"

	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"go.uber.org/zap"
)

// MarkAllUndefined appends an undefined entry for every account whose last entry is online,
// so that a period in which presence could not be measured is never counted as active time.
//
// The undefined entry takes the later of the prior last_seen and the current time.
func (inst *inst) MarkAllUndefined(ctx context.Context) (Result, error) {
	result := Result{}

	ids, err := inst.reader.LoggedAccountIDs(ctx)
	if err != nil {
		zap.S().Errorw("ingest, failed to list logged accounts",
			"error", err,
		)

		return result, model.ErrPersistenceFailure().SetDetail(err.Error())
	}

	if len(ids) == 0 {
		result.Notice = model.NoticeLogEmpty

		return result, nil
	}

	last, err := inst.reader.LastEntryPerAccount(ctx, ids)
	if err != nil {
		zap.S().Errorw("ingest, failed to read last log entries",
			"accounts", len(ids),
			"error", err,
		)

		return result, model.ErrPersistenceFailure().SetDetail(err.Error())
	}

	now := inst.now().UTC()
	entries := []model.LogEntry{}

	for _, id := range ids {
		prior, ok := last[id]
		if !ok || !prior.Presence.IsOnline() {
			result.Unchanged++

			continue
		}

		lastSeen := now.Unix()
		if prior.LastSeen > lastSeen {
			lastSeen = prior.LastSeen
		}

		entries = append(entries, model.LogEntry{
			AccountID:  id,
			Presence:   model.Undefined(),
			LastSeen:   lastSeen,
			InsertedAt: now,
		})
	}

	if len(entries) == 0 {
		return result, nil
	}

	if err := inst.writer.AppendEntries(ctx, entries); err != nil {
		zap.S().Errorw("ingest, failed to write undefined entries",
			"count", len(entries),
			"error", err,
		)

		if errors.Compare(err, model.ErrPersistenceFailure()) {
			return result, err
		}

		return result, model.ErrPersistenceFailure().SetDetail(err.Error())
	}

	result.Written = len(entries)

	inst.metrics.UndefinedMarked(len(entries))
	inst.events.PublishEntries(entries)

	zap.S().Infow("ingest, marked open sessions as undefined",
		"count", len(entries),
	)

	return result, nil
}
