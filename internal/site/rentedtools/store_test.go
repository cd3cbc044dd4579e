package rentedtools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"equipment-backend/internal/platform/docstore"
)

func TestMongoMarkReturned(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	ns := func(mt *mtest.T) string { return mt.DB.Name() + "." + docstore.RentedTools }

	mt.Run("first return wins", func(mt *mtest.T) {
		s := NewStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		assert.NoError(t, s.MarkReturned(context.Background(), "rt1", at))
	})

	mt.Run("second return conflicts", func(mt *mtest.T) {
		s := NewStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)
		assert.ErrorIs(t, s.MarkReturned(context.Background(), "rt1", at), ErrAlreadyReturned)
	})

	mt.Run("unknown id", func(mt *mtest.T) {
		s := NewStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch),
		)
		assert.ErrorIs(t, s.MarkReturned(context.Background(), "rt1", at), docstore.ErrNotFound)
	})
}
