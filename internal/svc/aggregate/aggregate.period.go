package aggregate

import (
	"context"
	"time"

	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"go.uber.org/zap"
)

func (inst *inst) PeriodStatistics(ctx context.Context, accountID int64, from, to time.Time) (model.PeriodStats, error) {
	defer inst.observe("period", time.Now())

	if !from.Before(to) {
		return model.PeriodStats{}, model.ErrInvalidWindow().SetDetail("from must be before to")
	}

	from = inst.clampFrom(from)

	account, err := inst.account(ctx, accountID)
	if err != nil {
		return model.PeriodStats{}, err
	}

	entries, err := inst.reader.EntriesInRange(ctx, []int64{accountID}, from.Unix(), to.Unix())
	if err != nil {
		zap.S().Errorw("aggregate, failed to read presence log",
			"account_id", accountID,
			"from", from,
			"to", to,
			"error", err,
		)

		return model.PeriodStats{}, model.ErrAggregationFailed().SetDetail(err.Error())
	}

	result := model.PeriodStats{
		Account: account,
		From:    from.UTC(),
		To:      to.UTC(),
	}

	sortEntries(entries)

	trimmed := trimLeading(entries)
	if len(trimmed) == 0 {
		result.Notice = model.NoticeNoActivityInWindow

		return result, nil
	}

	result.Durations = platformScan(trimmed)
	result.Total = result.Durations.Total()
	result.VisitsCount, _, _ = countVisits(entries)

	return result, nil
}

// account resolves an account, distinguishing an unknown account from a directory failure.
func (inst *inst) account(ctx context.Context, accountID int64) (model.Account, error) {
	account, err := inst.directory.AccountByID(ctx, accountID)
	if err == nil {
		return account, nil
	}

	if errors.Compare(err, model.ErrAccountNotFound()) {
		return model.Account{}, model.ErrAccountNotFound().SetFields(errors.Fields{
			"account_id": accountID,
		})
	}

	zap.S().Errorw("aggregate, failed to resolve account",
		"account_id", accountID,
		"error", err,
	)

	return model.Account{}, model.ErrAggregationFailed().SetDetail(err.Error())
}
