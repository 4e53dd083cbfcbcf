package database

import (
	"errors"
	"testing"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/models"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestDocumentBackendLoad(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		doc, err := bson.Marshal(models.WarningLedger{Guilds: []models.GuildWarnings{{GuildID: "g"}}})
		require.NoError(mt, err)

		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "warnings"},
			{Key: "doc", Value: bson.Raw(doc)},
		}))

		var got models.WarningLedger
		require.NoError(mt, NewDocumentBackend(mt.Coll, time.Second).Load("warnings", &got))
		require.Len(mt, got.Guilds, 1)
		assert.Equal(mt, "g", got.Guilds[0].GuildID)
	})

	mt.Run("not found", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		var got models.WarningLedger
		err := NewDocumentBackend(mt.Coll, time.Second).Load("warnings", &got)
		assert.ErrorIs(mt, err, storage.ErrNotFound)
	})

	mt.Run("corrupt", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "warnings"},
			{Key: "doc", Value: bson.D{{Key: "guilds", Value: "not a list"}}},
		}))

		var got models.WarningLedger
		err := NewDocumentBackend(mt.Coll, time.Second).Load("warnings", &got)
		assert.True(mt, storage.IsCorrupt(err), "got %v", err)
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11600, Message: "shutting down"}))

		var got models.WarningLedger
		err := NewDocumentBackend(mt.Coll, time.Second).Load("warnings", &got)
		require.Error(mt, err)
		assert.False(mt, errors.Is(err, storage.ErrNotFound))
		assert.False(mt, storage.IsCorrupt(err))
	})
}

func TestDocumentBackendSave(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upsert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := NewDocumentBackend(mt.Coll, time.Second).Save("settings", models.GuildSettingsDocument{})
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 2, Message: "bad"}))

		err := NewDocumentBackend(mt.Coll, time.Second).Save("settings", models.GuildSettingsDocument{})
		assert.Error(mt, err)
	})
}
