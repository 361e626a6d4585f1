package events

import (
	"testing"
	"time"

	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/testutil"
)

func TestEncodeEntry(t *testing.T) {
	b, err := EncodeEntry(model.LogEntry{
		ID:         "abc",
		AccountID:  7,
		Presence:   model.Online(model.PlatformIPad),
		LastSeen:   100,
		InsertedAt: time.Unix(101, 0).UTC(),
	})
	testutil.IsNil(t, err, "encode")

	var p EntryPayload
	testutil.IsNil(t, json.Unmarshal(b, &p), "decode")

	testutil.Assert(t, int64(7), p.AccountID, "account")
	testutil.Assert(t, "ONLINE", p.State, "state")
	testutil.Assert(t, "IPAD", p.Platform, "platform")
	testutil.Assert(t, int64(100), p.LastSeen, "last seen")
}

func TestNoop(t *testing.T) {
	p := NewNoop()

	p.PublishEntries([]model.LogEntry{{AccountID: 1}})
	testutil.Assert(t, true, p.Connected(), "noop is always connected")
	testutil.IsNil(t, p.Close(), "close")
}
