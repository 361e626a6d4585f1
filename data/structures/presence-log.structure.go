package structures

import (
	"time"

	"github.com/seventv/tracker/data/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PresenceLogEntry is the stored form of a log entry.
//
// Online is null for undefined entries, in which case Platform is always 0.
type PresenceLogEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	AccountID  int64              `bson:"account_id"`
	Online     *bool              `bson:"online"`
	Platform   uint8              `bson:"platform"`
	LastSeen   int64              `bson:"last_seen"`
	InsertedAt time.Time          `bson:"inserted_at"`
}

func NewPresenceLogEntry(e model.LogEntry) PresenceLogEntry {
	doc := PresenceLogEntry{
		AccountID:  e.AccountID,
		LastSeen:   e.LastSeen,
		InsertedAt: e.InsertedAt.UTC(),
	}

	if e.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(e.ID); err == nil {
			doc.ID = oid
		}
	}

	switch e.Presence.Kind() {
	case model.PresenceKindOnline:
		online := true
		doc.Online = &online
		doc.Platform = uint8(e.Presence.Platform())
	case model.PresenceKindOffline:
		online := false
		doc.Online = &online
	}

	return doc
}

func (x PresenceLogEntry) ToModel() model.LogEntry {
	var presence model.Presence

	switch {
	case x.Online == nil:
		presence = model.Undefined()
	case *x.Online:
		presence = model.Online(model.Platform(x.Platform))
	default:
		presence = model.Offline()
	}

	e := model.LogEntry{
		AccountID:  x.AccountID,
		Presence:   presence,
		LastSeen:   x.LastSeen,
		InsertedAt: x.InsertedAt.UTC(),
	}

	if !x.ID.IsZero() {
		e.ID = x.ID.Hex()
	}

	return e
}
