package aggregate

import (
	"sort"
	"time"

	"github.com/seventv/tracker/data/model"
)

// sortEntries orders entries by last_seen, keeping write order among equal values.
func sortEntries(entries []model.LogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastSeen < entries[j].LastSeen
	})
}

// trimLeading drops everything before the first online entry, as such a run cannot open a session.
func trimLeading(entries []model.LogEntry) []model.LogEntry {
	for i, e := range entries {
		if e.Presence.IsOnline() {
			return entries[i:]
		}
	}

	return nil
}

func countVisits(entries []model.LogEntry) (total, site, app int) {
	for _, e := range entries {
		if !e.Presence.IsOnline() {
			continue
		}

		total++

		switch e.Presence.Platform().DeviceClass() {
		case model.DeviceClassSite:
			site++
		case model.DeviceClassApp:
			app++
		}
	}

	return total, site, app
}

// closesSession reports whether the time between an online entry and cur counts as online time.
// An undefined entry means the gap was never measured.
func closesSession(prev, cur model.LogEntry) bool {
	return prev.Presence.IsOnline() && cur.Presence.Defined()
}

// platformScan credits each session to the platform the account was online on when it started.
// A platform switch without going offline ends one session and starts the next.
func platformScan(entries []model.LogEntry) model.PlatformDurations {
	var d model.PlatformDurations

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if !closesSession(prev, cur) {
			continue
		}

		d.Add(prev.Presence.Platform(), seconds(cur.LastSeen-prev.LastSeen))
	}

	return d
}

// simpleScan sums online time regardless of platform. A session still open at the end of the
// slice is closed at closeAt.
func simpleScan(entries []model.LogEntry, closeAt int64) time.Duration {
	if n := len(entries); n > 0 {
		last := entries[n-1]
		if last.Presence.IsOnline() && closeAt > last.LastSeen {
			entries = append(entries[:n:n], model.LogEntry{
				AccountID: last.AccountID,
				Presence:  model.Offline(),
				LastSeen:  closeAt,
			})
		}
	}

	var total time.Duration

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if !closesSession(prev, cur) {
			continue
		}

		total += seconds(cur.LastSeen - prev.LastSeen)
	}

	return total
}

func utcDate(unix int64) time.Time {
	t := time.Unix(unix, 0).UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayCounts returns the number of whole days between the first and last entry's date,
// and the number of distinct dates with at least one entry. Entries must be sorted.
func dayCounts(entries []model.LogEntry) (analyzed, active int) {
	if len(entries) == 0 {
		return 0, 0
	}

	first := utcDate(entries[0].LastSeen)
	last := utcDate(entries[len(entries)-1].LastSeen)
	analyzed = int(last.Sub(first) / (24 * time.Hour))

	dates := make(map[time.Time]struct{})
	for _, e := range entries {
		dates[utcDate(e.LastSeen)] = struct{}{}
	}

	return analyzed, len(dates)
}

func seconds(n int64) time.Duration {
	return time.Duration(n) * time.Second
}
