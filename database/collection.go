package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrNotFound is returned when no document matches.
var ErrNotFound = errors.New("document not found")

// Collection is the per-entity gateway the handlers depend on. T is the
// stored document type; its _id field must be tagged omitempty so the store
// assigns identifiers on insert.
type Collection[T any] interface {
	Insert(ctx context.Context, doc *T) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	Find(ctx context.Context, filter bson.M, skip, limit int64) ([]T, error)
	// UpdateByID overwrites every field of the document and returns the
	// matched count.
	UpdateByID(ctx context.Context, id bson.ObjectID, doc *T) (int64, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error)
}

// MongoCollection implements Collection over a driver collection.
type MongoCollection[T any] struct {
	col *mongo.Collection
}

func NewCollection[T any](s *Store, name string) *MongoCollection[T] {
	return &MongoCollection[T]{col: s.OpenCollection(name)}
}

func (m *MongoCollection[T]) Insert(ctx context.Context, doc *T) (bson.ObjectID, error) {
	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("insert into %s: %w", m.col.Name(), err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("insert into %s: unexpected id type %T", m.col.Name(), res.InsertedID)
	}
	return id, nil
}

func (m *MongoCollection[T]) FindByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	return m.FindOne(ctx, bson.M{"_id": id})
}

func (m *MongoCollection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := m.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", m.col.Name(), err)
	}
	return &doc, nil
}

// Find returns at most limit documents in store order. A limit of zero or
// less means no limit.
func (m *MongoCollection[T]) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]T, error) {
	opts := options.Find()
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", m.col.Name(), err)
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.col.Name(), err)
	}
	return items, nil
}

func (m *MongoCollection[T]) UpdateByID(ctx context.Context, id bson.ObjectID, doc *T) (int64, error) {
	res, err := m.col.UpdateByID(ctx, id, bson.M{"$set": doc})
	if err != nil {
		return 0, fmt.Errorf("update in %s: %w", m.col.Name(), err)
	}
	return res.MatchedCount, nil
}

func (m *MongoCollection[T]) DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error) {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", m.col.Name(), err)
	}
	return res.DeletedCount, nil
}
