package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sportserrors "sportsclub/internal/sports/errors"
	"sportsclub/pkg/config"
	mongotx "sportsclub/pkg/db/mongo"
	"sportsclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Sports"
)

// ByName is the order sports are listed in.
var ByName = bson.D{{Key: "name", Value: 1}}

type SportRepository interface {
	Create(ctx context.Context, sport *model.Sport) error
	FindByID(ctx context.Context, id string) (*model.Sport, error)
	FindAll(ctx context.Context) ([]*model.Sport, error)
	FindActive(ctx context.Context) ([]*model.Sport, error)
	FindActiveByNameKey(ctx context.Context, nameKey string) (*model.Sport, error)
	Update(ctx context.Context, id string, price int, isActive bool) error
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoSportRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoSportRepository(cfg *config.Config) SportRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSportRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// Create relies on the partial unique index over active name keys; a
// duplicate key is reported as ErrDuplicateName.
func (r *mongoSportRepository) Create(ctx context.Context, sport *model.Sport) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	sport.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, sport)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return sportserrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to create sport: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sport.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSportRepository) FindByID(ctx context.Context, id string) (*model.Sport, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", sportserrors.ErrInvalidID, id)
	}

	var sport model.Sport
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&sport)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sportserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sport: %w", err)
	}

	return &sport, nil
}

func (r *mongoSportRepository) FindAll(ctx context.Context) ([]*model.Sport, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoSportRepository) FindActive(ctx context.Context) ([]*model.Sport, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

func (r *mongoSportRepository) find(ctx context.Context, filter bson.M) ([]*model.Sport, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(ByName))
	if err != nil {
		return nil, fmt.Errorf("failed to find sports: %w", err)
	}
	defer cursor.Close(ctx)

	sports := []*model.Sport{}
	if err = cursor.All(ctx, &sports); err != nil {
		return nil, fmt.Errorf("failed to decode sports: %w", err)
	}

	return sports, nil
}

func (r *mongoSportRepository) FindActiveByNameKey(ctx context.Context, nameKey string) (*model.Sport, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var sport model.Sport
	err := r.collection.FindOne(ctx, bson.M{"nameKey": nameKey, "isActive": true}).Decode(&sport)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sportserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sport by name: %w", err)
	}

	return &sport, nil
}

func (r *mongoSportRepository) Update(ctx context.Context, id string, price int, isActive bool) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", sportserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"price":    price,
			"isActive": isActive,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return sportserrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to update sport: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", sportserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoSportRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", sportserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete sport: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", sportserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoSportRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
