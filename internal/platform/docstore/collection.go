package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// Document is implemented by every stored model. DocID is the "_id" value.
type Document interface {
	DocID() string
}

// Store is the persistence surface resource services depend on. Collection
// implements it over Mongo, docstoretest.Memory in memory.
type Store[T Document] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	FindByIDs(ctx context.Context, ids []string) ([]T, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, doc T) error
	Replace(ctx context.Context, doc T) error
	Delete(ctx context.Context, id string) (*T, error)
}

// Collection is a typed view over one Mongo collection keyed by string ids.
type Collection[T Document] struct {
	coll *mongo.Collection
	sort bson.D
}

// NewCollection wraps coll. List returns documents ordered by sort.
func NewCollection[T Document](coll *mongo.Collection, sort bson.D) *Collection[T] {
	return &Collection[T]{coll: coll, sort: sort}
}

func (c *Collection[T]) Raw() *mongo.Collection { return c.coll }

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	cur, err := c.coll.Find(ctx, bson.D{}, options.Find().SetSort(c.sort))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w", c.coll.Name(), id, err)
	}
	return &doc, nil
}

// FindByIDs returns the documents whose ids are in ids. Unknown ids are skipped.
func (c *Collection[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	out := []T{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := c.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, fmt.Errorf("find %s by ids: %w", c.coll.Name(), err)
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c *Collection[T]) Exists(ctx context.Context, id string) (bool, error) {
	return c.any(ctx, bson.D{{Key: "_id", Value: id}})
}

func (c *Collection[T]) Insert(ctx context.Context, doc T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert %s: %w", c.coll.Name(), err)
	}
	return nil
}

// Replace overwrites the whole document with doc.DocID().
func (c *Collection[T]) Replace(ctx context.Context, doc T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.DocID()}}, doc)
	if err != nil {
		return fmt.Errorf("replace %s %s: %w", c.coll.Name(), doc.DocID(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the document and returns what was stored.
func (c *Collection[T]) Delete(ctx context.Context, id string) (*T, error) {
	var doc T
	err := c.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete %s %s: %w", c.coll.Name(), id, err)
	}
	return &doc, nil
}

func (c *Collection[T]) any(ctx context.Context, filter bson.D) (bool, error) {
	n, err := c.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return n > 0, nil
}
