package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/seventv/tracker/data/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (inst *inst) RankedActivityListing(ctx context.Context, filter model.AccountFilter, from, to time.Time) ([]model.ListingEntry, error) {
	defer inst.observe("listing", time.Now())

	if !from.Before(to) {
		return nil, model.ErrInvalidWindow().SetDetail("from must be before to")
	}

	from = inst.clampFrom(from)
	now := inst.now().UTC()

	accounts, err := inst.directory.Accounts(ctx, filter)
	if err != nil {
		zap.S().Errorw("aggregate, failed to list accounts",
			"query", filter.Query,
			"error", err,
		)

		return nil, model.ErrAggregationFailed().SetDetail(err.Error())
	}

	if len(accounts) == 0 {
		return []model.ListingEntry{}, nil
	}

	ids := make([]int64, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}

	entries, err := inst.reader.EntriesInRange(ctx, ids, from.Unix(), to.Unix())
	if err != nil {
		zap.S().Errorw("aggregate, failed to read presence log",
			"accounts", len(ids),
			"from", from,
			"to", to,
			"error", err,
		)

		return nil, model.ErrAggregationFailed().SetDetail(err.Error())
	}

	current, err := inst.reader.LastEntrySince(ctx, ids, now.Add(-inst.onlineLookback).Unix())
	if err != nil {
		zap.S().Errorw("aggregate, failed to read current presence",
			"accounts", len(ids),
			"error", err,
		)

		return nil, model.ErrAggregationFailed().SetDetail(err.Error())
	}

	grouped := make(map[int64][]model.LogEntry, len(accounts))
	for _, e := range entries {
		grouped[e.AccountID] = append(grouped[e.AccountID], e)
	}

	closeAt := to
	if now.Before(closeAt) {
		closeAt = now
	}

	result := make([]model.ListingEntry, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(inst.workers)

	for i, a := range accounts {
		i, a := i, a
		slice := grouped[a.ID]
		last, hasLast := current[a.ID]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result[i] = listingEntry(a, slice, closeAt.Unix(), hasLast && last.Presence.IsOnline())

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.S().Errorw("aggregate, failed to compute listing",
			"accounts", len(accounts),
			"from", from,
			"to", to,
			"error", err,
		)

		return nil, model.ErrAggregationFailed().SetDetail(err.Error())
	}

	sortListing(result)

	return result, nil
}

// listingEntry aggregates a single account. It only reads its own slice of the log.
func listingEntry(account model.Account, entries []model.LogEntry, closeAt int64, online bool) model.ListingEntry {
	sortEntries(entries)

	return model.ListingEntry{
		Account:         account,
		Total:           simpleScan(entries, closeAt),
		CurrentlyOnline: online,
	}
}

func sortListing(v []model.ListingEntry) {
	sort.SliceStable(v, func(i, j int) bool {
		a, b := v[i], v[j]

		switch {
		case a.Total != b.Total:
			return a.Total > b.Total
		case a.Account.FirstName != b.Account.FirstName:
			return a.Account.FirstName < b.Account.FirstName
		case a.Account.LastName != b.Account.LastName:
			return a.Account.LastName < b.Account.LastName
		default:
			return a.Account.ID < b.Account.ID
		}
	})
}
