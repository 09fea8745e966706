package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// IndexCreator is the part of mongo.IndexView used at startup.
type IndexCreator interface {
	CreateOne(ctx context.Context, model mongo.IndexModel, opts ...*options.CreateIndexesOptions) (string, error)
}

// EmailIndex is the unique index backing email uniqueness.
func EmailIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

// EnsureIndexes creates the unique email index. Creation is idempotent. A
// failure (typically missing privileges) is logged and swallowed so the
// service still starts without the email uniqueness guarantee.
func EnsureIndexes(ctx context.Context, indexes IndexCreator, logger *zap.Logger) bool {
	if logger == nil {
		logger = zap.NewNop()
	}

	name, err := indexes.CreateOne(ctx, EmailIndex())
	if err != nil {
		logger.Warn("could not create unique index on email", zap.Error(err))
		return false
	}

	logger.Info("index ensured", zap.String("index", name))
	return true
}
