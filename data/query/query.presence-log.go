package query

import (
	"context"

	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/data/structures"
	"github.com/seventv/tracker/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// LastEntryPerAccount returns the most recently written entry of each given account.
// Accounts without entries are absent from the map.
func (q *Query) LastEntryPerAccount(ctx context.Context, ids []int64) (map[int64]model.LogEntry, error) {
	return q.lastEntries(ctx, bson.M{"account_id": bson.M{"$in": ids}})
}

// LastEntrySince is LastEntryPerAccount restricted to entries whose last_seen is at or after since.
func (q *Query) LastEntrySince(ctx context.Context, ids []int64, since int64) (map[int64]model.LogEntry, error) {
	return q.lastEntries(ctx, bson.M{
		"account_id": bson.M{"$in": ids},
		"last_seen":  bson.M{"$gte": since},
	})
}

func (q *Query) lastEntries(ctx context.Context, filter bson.M) (map[int64]model.LogEntry, error) {
	cur, err := q.mongo.Collection(mongo.CollectionNamePresenceLog).Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{
			{Key: "account_id", Value: 1},
			{Key: "inserted_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$account_id",
			"entry": bson.M{"$first": "$$ROOT"},
		}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$entry"}}},
	})
	if err != nil {
		zap.S().Errorw("mongo, failed to query last presence log entries",
			"error", err,
		)

		return nil, err
	}

	docs := []structures.PresenceLogEntry{}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make(map[int64]model.LogEntry, len(docs))
	for _, d := range docs {
		result[d.AccountID] = d.ToModel()
	}

	return result, nil
}

// EntriesInRange returns the entries of the given accounts whose last_seen falls in [from, to],
// ordered by last_seen and then write order.
func (q *Query) EntriesInRange(ctx context.Context, ids []int64, from, to int64) ([]model.LogEntry, error) {
	cur, err := q.mongo.Collection(mongo.CollectionNamePresenceLog).Find(ctx, bson.M{
		"account_id": bson.M{"$in": ids},
		"last_seen":  bson.M{"$gte": from, "$lte": to},
	}, options.Find().SetSort(bson.D{
		{Key: "last_seen", Value: 1},
		{Key: "_id", Value: 1},
	}))
	if err != nil {
		zap.S().Errorw("mongo, failed to query presence log range",
			"accounts", len(ids),
			"from", from,
			"to", to,
			"error", err,
		)

		return nil, err
	}

	docs := []structures.PresenceLogEntry{}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]model.LogEntry, len(docs))
	for i, d := range docs {
		result[i] = d.ToModel()
	}

	return result, nil
}

// LoggedAccountIDs returns every account with at least one log entry.
func (q *Query) LoggedAccountIDs(ctx context.Context) ([]int64, error) {
	values, err := q.mongo.Collection(mongo.CollectionNamePresenceLog).Distinct(ctx, "account_id", bson.M{})
	if err != nil {
		return nil, err
	}

	result := make([]int64, 0, len(values))

	for _, v := range values {
		switch t := v.(type) {
		case int64:
			result = append(result, t)
		case int32:
			result = append(result, int64(t))
		}
	}

	return result, nil
}
