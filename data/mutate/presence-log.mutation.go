package mutate

import (
	"context"
	"time"

	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/data/structures"
	"github.com/seventv/tracker/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AppendEntries writes a batch of log entries. Either every entry is written or none is.
// Entries without an id are given one in place.
func (m *Mutate) AppendEntries(ctx context.Context, entries []model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	w := make([]mongo.WriteModel, len(entries))

	// ids are assigned here so that callers can reference the written entries
	for i := range entries {
		if entries[i].InsertedAt.IsZero() {
			entries[i].InsertedAt = now
		}

		doc := structures.NewPresenceLogEntry(entries[i])
		if doc.ID.IsZero() {
			doc.ID = primitive.NewObjectID()
			entries[i].ID = doc.ID.Hex()
		}

		w[i] = &mongo.InsertOneModel{
			Document: doc,
		}
	}

	err := m.mongo.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return m.mongo.Collection(mongo.CollectionNamePresenceLog).BulkWrite(sc, w)
	})
	if err != nil {
		zap.S().Errorw("mongo, error while writing presence log entries",
			"count", len(entries),
			"error", err,
		)

		return model.ErrPersistenceFailure().SetDetail(err.Error())
	}

	return nil
}
