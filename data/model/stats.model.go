package model

import "time"

type PeriodStats struct {
	Account     Account
	From        time.Time
	To          time.Time
	Durations   PlatformDurations
	Total       time.Duration
	VisitsCount int
	Notice      Notice
}

type DetailedStats struct {
	Account           Account
	Durations         PlatformDurations
	Total             time.Duration
	VisitsCount       int
	VisitsFromSite    int
	VisitsFromApp     int
	AnalyzedDaysCount int
	ActivityDaysCount int
	AvgDailyTime      time.Duration
	Notice            Notice
}

type ListingEntry struct {
	Account         Account
	Total           time.Duration
	CurrentlyOnline bool
}

type PlatformTimeModel struct {
	Platform string `json:"platform"`
	Seconds  int64  `json:"seconds"`
}

type PeriodStatsModel struct {
	AccountID    int64               `json:"account_id"`
	Name         string              `json:"name"`
	From         int64               `json:"from"`
	To           int64               `json:"to"`
	TotalSeconds int64               `json:"total_seconds"`
	VisitsCount  int                 `json:"visits_count"`
	Platforms    []PlatformTimeModel `json:"platforms"`
	Notice       Notice              `json:"notice,omitempty"`
}

type DetailedStatsModel struct {
	AccountID           int64               `json:"account_id"`
	Name                string              `json:"name"`
	TotalSeconds        int64               `json:"total_seconds"`
	VisitsCount         int                 `json:"visits_count"`
	VisitsFromSite      int                 `json:"visits_from_site"`
	VisitsFromApp       int                 `json:"visits_from_app"`
	AnalyzedDaysCount   int                 `json:"analyzed_days_count"`
	ActivityDaysCount   int                 `json:"activity_days_count"`
	AvgDailyTimeSeconds int64               `json:"avg_daily_time_seconds"`
	Platforms           []PlatformTimeModel `json:"platforms"`
	Notice              Notice              `json:"notice,omitempty"`
}

type ListingEntryModel struct {
	AccountID       int64  `json:"account_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	TotalSeconds    int64  `json:"total_seconds"`
	CurrentlyOnline bool   `json:"currently_online"`
}
