package query

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/data/structures"
	"github.com/seventv/tracker/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Accounts lists tracked accounts, optionally filtered by a case-insensitive name fragment.
func (q *Query) Accounts(ctx context.Context, filter model.AccountFilter) ([]model.Account, error) {
	f := bson.M{"tracked": true}

	if s := strings.TrimSpace(filter.Query); s != "" {
		pattern := regexp.QuoteMeta(s)

		f["$or"] = bson.A{
			bson.M{"first_name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"last_name": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	opt := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if filter.Skip > 0 {
		opt.SetSkip(int64(filter.Skip))
	}

	if filter.Take > 0 {
		opt.SetLimit(int64(filter.Take))
	}

	cur, err := q.mongo.Collection(mongo.CollectionNameAccounts).Find(ctx, f, opt)
	if err != nil {
		return nil, err
	}

	docs := []structures.Account{}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]model.Account, len(docs))
	for i, d := range docs {
		result[i] = d.ToModel()

		q.c.Set(accountKey(d.ID), result[i], cache.DefaultExpiration)
	}

	return result, nil
}

// AccountByID looks up a single account, tracked or not.
func (q *Query) AccountByID(ctx context.Context, id int64) (model.Account, error) {
	if v, ok := q.c.Get(accountKey(id)); ok {
		return v.(model.Account), nil
	}

	doc := structures.Account{}

	err := q.mongo.Collection(mongo.CollectionNameAccounts).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return model.Account{}, model.ErrAccountNotFound().SetFields(errors.Fields{"account_id": id})
	} else if err != nil {
		return model.Account{}, err
	}

	a := doc.ToModel()
	q.c.Set(accountKey(id), a, cache.DefaultExpiration)

	return a, nil
}

// TrackedAccountIDs returns the ids of every account the poller should observe.
func (q *Query) TrackedAccountIDs(ctx context.Context) ([]int64, error) {
	cur, err := q.mongo.Collection(mongo.CollectionNameAccounts).Find(ctx, bson.M{"tracked": true},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}

	docs := []structures.Account{}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]int64, len(docs))
	for i, d := range docs {
		result[i] = d.ID
	}

	return result, nil
}

func accountKey(id int64) string {
	return fmt.Sprintf("account:%d", id)
}
