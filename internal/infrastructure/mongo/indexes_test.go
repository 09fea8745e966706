package mongo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	mongoInfra "github.com/fastygo/users/internal/infrastructure/mongo"
)

type fakeIndexes struct {
	name  string
	err   error
	model mongo.IndexModel
}

func (f *fakeIndexes) CreateOne(_ context.Context, model mongo.IndexModel, _ ...*options.CreateIndexesOptions) (string, error) {
	f.model = model
	return f.name, f.err
}

func TestEnsureIndexes(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		indexes := &fakeIndexes{name: "email_1"}

		ok := mongoInfra.EnsureIndexes(context.Background(), indexes, zap.New(core))
		assert.True(t, ok)
		assert.Equal(t, bson.D{{Key: "email", Value: 1}}, indexes.model.Keys)
		require.NotNil(t, indexes.model.Options)
		require.NotNil(t, indexes.model.Options.Unique)
		assert.True(t, *indexes.model.Options.Unique)
		assert.Equal(t, 1, logs.FilterMessage("index ensured").Len())
	})

	t.Run("failure is only a warning", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		indexes := &fakeIndexes{err: errors.New("not authorized on demo_db to execute command")}

		ok := mongoInfra.EnsureIndexes(context.Background(), indexes, zap.New(core))
		assert.False(t, ok)

		entries := logs.FilterMessage("could not create unique index on email").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})
}
