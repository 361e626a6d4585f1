package model

import "time"

// Snapshot is the presence of one account as reported by a single poll.
type Snapshot struct {
	AccountID int64
	Online    bool
	Platform  Platform
	// LastSeen is nil when the account can't be observed (deactivated, banned or restricted)
	LastSeen *int64
}

func (s Snapshot) Observable() bool {
	return s.LastSeen != nil
}

func (s Snapshot) Presence() Presence {
	if s.Online {
		return Online(s.Platform)
	}

	return Offline()
}

// LogEntry is one change-point in an account's presence log. Entries are never modified once written.
type LogEntry struct {
	ID         string
	AccountID  int64
	Presence   Presence
	LastSeen   int64
	InsertedAt time.Time
}

func (e LogEntry) LastSeenTime() time.Time {
	return time.Unix(e.LastSeen, 0).UTC()
}
