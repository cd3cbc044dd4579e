package rentedtools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"equipment-backend/internal/platform/docstore"
)

type RentedTool struct {
	ID         string     `bson:"_id"`
	Name       string     `bson:"name"`
	RentedTo   string     `bson:"rentedTo"`
	RentStart  time.Time  `bson:"rentStart"`
	RentEnd    *time.Time `bson:"rentEnd,omitempty"`
	Project    string     `bson:"project"`
	ReturnedAt *time.Time `bson:"returnedAt,omitempty"`
}

func (t RentedTool) DocID() string { return t.ID }

func ByName(a, b RentedTool) bool { return a.Name < b.Name }

var ErrAlreadyReturned = errors.New("rented tool already returned")

// Store adds the return flag operations to the generic document store.
type Store interface {
	docstore.Store[RentedTool]
	// MarkReturned sets returnedAt only if it is unset. It fails with
	// ErrAlreadyReturned or docstore.ErrNotFound otherwise.
	MarkReturned(ctx context.Context, id string, at time.Time) error
	ClearReturned(ctx context.Context, id string) error
}

type mongoStore struct {
	*docstore.Collection[RentedTool]
}

func NewStore(db *mongo.Database) Store {
	return &mongoStore{
		Collection: docstore.NewCollection[RentedTool](db.Collection(docstore.RentedTools), bson.D{{Key: "name", Value: 1}}),
	}
}

func (s *mongoStore) MarkReturned(ctx context.Context, id string, at time.Time) error {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "returnedAt", Value: nil}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "returnedAt", Value: at}}}}
	res, err := s.Raw().UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mark rented tool %s returned: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	ok, err := s.Exists(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return ErrAlreadyReturned
	}
	return docstore.ErrNotFound
}

func (s *mongoStore) ClearReturned(ctx context.Context, id string) error {
	update := bson.D{{Key: "$unset", Value: bson.D{{Key: "returnedAt", Value: ""}}}}
	if _, err := s.Raw().UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update); err != nil {
		return fmt.Errorf("clear rented tool %s return: %w", id, err)
	}
	return nil
}
