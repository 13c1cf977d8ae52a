package store

import (
	"bytes"
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/matzehuels/dctree/pkg/errors"
)

const mockNS = DefaultMongoDatabase + "." + DefaultMongoCollection

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("miss", func(mt *mtest.T) {
		s := &MongoStore{client: mt.Client, coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch))

		data, hit, err := s.Get(ctx, "tree")
		if err != nil {
			mt.Fatalf("Get error on missing key: %v", err)
		}
		if hit || data != nil {
			mt.Error("missing key should be a nil miss")
		}
	})

	mt.Run("hit", func(mt *mtest.T) {
		s := &MongoStore{client: mt.Client, coll: mt.Coll}
		want := []byte{0, 1, 2, 0xff}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "tree"},
			{Key: "data", Value: want},
		}))

		data, hit, err := s.Get(ctx, "tree")
		if err != nil || !hit {
			mt.Fatalf("Get = hit %v, err %v; want hit", hit, err)
		}
		if !bytes.Equal(data, want) {
			mt.Errorf("Get = %v, want %v", data, want)
		}
	})

	mt.Run("expired", func(mt *mtest.T) {
		s := &MongoStore{client: mt.Client, coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "tree"},
				{Key: "data", Value: []byte("payload")},
				{Key: "expires_at", Value: time.Now().Add(-time.Minute)},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		data, hit, err := s.Get(ctx, "tree")
		if err != nil {
			mt.Fatalf("Get error: %v", err)
		}
		if hit || data != nil {
			mt.Error("expired entry should be a miss")
		}
	})

	mt.Run("set and delete", func(mt *mtest.T) {
		s := &MongoStore{client: mt.Client, coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		if err := s.Set(ctx, "tree", []byte("payload"), time.Hour); err != nil {
			mt.Fatalf("Set error: %v", err)
		}
		if err := s.Delete(ctx, "tree"); err != nil {
			mt.Fatalf("Delete error: %v", err)
		}
	})

	mt.Run("command error", func(mt *mtest.T) {
		s := &MongoStore{client: mt.Client, coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, _, err := s.Get(ctx, "tree")
		if !errors.Is(err, errors.ErrCodeStore) {
			mt.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeStore)
		}
	})
}
