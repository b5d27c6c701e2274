package feed

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSource reads a collection. Filter is evaluated on every load, so a
// date-relative window moves with the clock.
type MongoSource[T any] struct {
	Collection *mongo.Collection
	Filter     func() bson.M
	Sort       bson.D
}

func (s *MongoSource[T]) Load(ctx context.Context) ([]T, error) {
	filter := bson.M{}
	if s.Filter != nil {
		filter = s.Filter()
	}

	opts := options.Find()
	if len(s.Sort) > 0 {
		opts.SetSort(s.Sort)
	}

	cursor, err := s.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoSource[T]) Watch(ctx context.Context, resumeAfter bson.Raw) (ChangeStream, error) {
	opts := options.ChangeStream()
	if resumeAfter != nil {
		opts.SetResumeAfter(resumeAfter)
	}
	stream, err := s.Collection.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return nil, err
	}
	return stream, nil
}
