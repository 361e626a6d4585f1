package model

import "time"

// Modelizer converts engine results into their API representation.
type Modelizer interface {
	PeriodStats(v PeriodStats) PeriodStatsModel
	DetailedStats(v DetailedStats) DetailedStatsModel
	Listing(v []ListingEntry) []ListingEntryModel
}

type modelizer struct{}

func NewInstance() Modelizer {
	return &modelizer{}
}

func (x *modelizer) PeriodStats(v PeriodStats) PeriodStatsModel {
	return PeriodStatsModel{
		AccountID:    v.Account.ID,
		Name:         v.Account.Name(),
		From:         v.From.Unix(),
		To:           v.To.Unix(),
		TotalSeconds: seconds(v.Total),
		VisitsCount:  v.VisitsCount,
		Platforms:    x.platforms(v.Durations),
		Notice:       v.Notice,
	}
}

func (x *modelizer) DetailedStats(v DetailedStats) DetailedStatsModel {
	return DetailedStatsModel{
		AccountID:           v.Account.ID,
		Name:                v.Account.Name(),
		TotalSeconds:        seconds(v.Total),
		VisitsCount:         v.VisitsCount,
		VisitsFromSite:      v.VisitsFromSite,
		VisitsFromApp:       v.VisitsFromApp,
		AnalyzedDaysCount:   v.AnalyzedDaysCount,
		ActivityDaysCount:   v.ActivityDaysCount,
		AvgDailyTimeSeconds: seconds(v.AvgDailyTime),
		Platforms:           x.platforms(v.Durations),
		Notice:              v.Notice,
	}
}

func (x *modelizer) Listing(v []ListingEntry) []ListingEntryModel {
	result := make([]ListingEntryModel, len(v))

	for i, e := range v {
		result[i] = ListingEntryModel{
			AccountID:       e.Account.ID,
			FirstName:       e.Account.FirstName,
			LastName:        e.Account.LastName,
			TotalSeconds:    seconds(e.Total),
			CurrentlyOnline: e.CurrentlyOnline,
		}
	}

	return result
}

func (x *modelizer) platforms(d PlatformDurations) []PlatformTimeModel {
	nz := d.NonZero()
	result := make([]PlatformTimeModel, len(nz))

	for i, p := range nz {
		result[i] = PlatformTimeModel{
			Platform: p.String(),
			Seconds:  seconds(d[p]),
		}
	}

	return result
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
