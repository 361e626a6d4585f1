package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type CollectionName string

const (
	CollectionNamePresenceLog CollectionName = "presence_log"
	CollectionNameAccounts    CollectionName = "accounts"
)

type (
	Pipeline        = mongo.Pipeline
	WriteModel      = mongo.WriteModel
	InsertOneModel  = mongo.InsertOneModel
	SessionContext  = mongo.SessionContext
	IndexModel      = mongo.IndexModel
	Cursor          = mongo.Cursor
	Collection      = mongo.Collection
	BulkWriteResult = mongo.BulkWriteResult
)

var ErrNoDocuments = mongo.ErrNoDocuments

type Instance interface {
	Collection(name CollectionName) *mongo.Collection
	WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type mongoInst struct {
	client *mongo.Client
	db     *mongo.Database
}

type SetupOptions struct {
	URI    string
	DB     string
	Direct bool
}

func Setup(ctx context.Context, opt SetupOptions) (Instance, error) {
	clientOptions := options.Client().ApplyURI(opt.URI).SetDirect(opt.Direct)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	database := client.Database(opt.DB)

	inst := &mongoInst{
		client: client,
		db:     database,
	}

	if err := inst.ensureIndexes(ctx); err != nil {
		zap.S().Warnw("mongo, failed to ensure indexes",
			"error", err,
		)
	}

	zap.S().Infow("mongo, ok",
		"db", opt.DB,
	)

	return inst, nil
}

func (i *mongoInst) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*30)
	defer cancel()

	_, err := i.Collection(CollectionNamePresenceLog).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "last_seen", Value: 1}}},
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "inserted_at", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = i.Collection(CollectionNameAccounts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "first_name", Value: 1}, {Key: "last_name", Value: 1}}},
	})

	return err
}

func (i *mongoInst) Collection(name CollectionName) *mongo.Collection {
	return i.db.Collection(string(name))
}

// WithTransaction runs fn inside a transaction, so its writes land together or not at all.
func (i *mongoInst) WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) error {
	session, err := i.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, fn)

	return err
}

func (i *mongoInst) Ping(ctx context.Context) error {
	return i.client.Ping(ctx, readpref.Primary())
}

func (i *mongoInst) Close(ctx context.Context) error {
	return i.client.Disconnect(ctx)
}
