package aggregate

import (
	"context"
	"time"

	"github.com/seventv/tracker/data/model"
	"go.uber.org/zap"
)

func (inst *inst) FullHistoryStatistics(ctx context.Context, accountID int64) (model.DetailedStats, error) {
	defer inst.observe("history", time.Now())

	account, err := inst.account(ctx, accountID)
	if err != nil {
		return model.DetailedStats{}, err
	}

	now := inst.now().UTC()

	entries, err := inst.reader.EntriesInRange(ctx, []int64{accountID}, inst.epoch.Unix(), now.Unix())
	if err != nil {
		zap.S().Errorw("aggregate, failed to read presence log",
			"account_id", accountID,
			"error", err,
		)

		return model.DetailedStats{}, model.ErrAggregationFailed().SetDetail(err.Error())
	}

	result := model.DetailedStats{
		Account: account,
	}

	if len(entries) == 0 {
		result.Notice = model.NoticeNoActivityDaysYet

		return result, nil
	}

	sortEntries(entries)

	result.Durations = platformScan(trimLeading(entries))
	result.Total = result.Durations.Total()
	result.VisitsCount, result.VisitsFromSite, result.VisitsFromApp = countVisits(entries)
	result.AnalyzedDaysCount, result.ActivityDaysCount = dayCounts(entries)

	if result.ActivityDaysCount > 0 {
		result.AvgDailyTime = result.Total / time.Duration(result.ActivityDaysCount)
	}

	return result, nil
}
