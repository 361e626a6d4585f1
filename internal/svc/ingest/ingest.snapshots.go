package ingest

import (
	"context"

	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"go.uber.org/zap"
)

func (inst *inst) IngestSnapshots(ctx context.Context, snapshots []model.Snapshot) (Result, error) {
	result := Result{}

	if len(snapshots) == 0 {
		result.Notice = model.NoticeNoAccounts

		return result, nil
	}

	ids := make([]int64, 0, len(snapshots))
	seen := make(map[int64]struct{}, len(snapshots))

	for _, s := range snapshots {
		if _, ok := seen[s.AccountID]; ok {
			continue
		}

		seen[s.AccountID] = struct{}{}
		ids = append(ids, s.AccountID)
	}

	last, err := inst.reader.LastEntryPerAccount(ctx, ids)
	if err != nil {
		zap.S().Errorw("ingest, failed to read last log entries",
			"accounts", len(ids),
			"error", err,
		)

		return result, model.ErrPersistenceFailure().SetDetail(err.Error())
	}

	if last == nil {
		last = make(map[int64]model.LogEntry)
	}

	now := inst.now().UTC()
	entries := []model.LogEntry{}

	for _, s := range snapshots {
		if !s.Observable() {
			result.Skipped++

			continue
		}

		presence := s.Presence()
		prior, ok := last[s.AccountID]

		if ok && prior.Presence.Equal(presence) {
			result.Unchanged++

			continue
		}

		// last_seen never goes backwards for an account
		lastSeen := *s.LastSeen
		if ok && prior.LastSeen > lastSeen {
			lastSeen = prior.LastSeen
		}

		e := model.LogEntry{
			AccountID:  s.AccountID,
			Presence:   presence,
			LastSeen:   lastSeen,
			InsertedAt: now,
		}

		entries = append(entries, e)
		last[s.AccountID] = e
	}

	if len(entries) == 0 {
		return result, nil
	}

	if err := inst.writer.AppendEntries(ctx, entries); err != nil {
		zap.S().Errorw("ingest, failed to write log entries",
			"count", len(entries),
			"error", err,
		)

		if errors.Compare(err, model.ErrPersistenceFailure()) {
			return result, err
		}

		return result, model.ErrPersistenceFailure().SetDetail(err.Error())
	}

	result.Written = len(entries)

	inst.metrics.EntriesWritten(len(entries))
	inst.events.PublishEntries(entries)

	return result, nil
}
