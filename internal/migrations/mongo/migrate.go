package mongo

import (
	"context"
	"fmt"
	"time"

	authrepo "sportsclub/internal/auth/repository"
	bookingrepo "sportsclub/internal/bookings/repository"
	"sportsclub/internal/migrations/mongo/validators"
	sportrepo "sportsclub/internal/sports/repository"
	"sportsclub/pkg/logger"
	"sportsclub/pkg/model"
	"sportsclub/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "sport", Value: 1},
			{Key: "date", Value: 1},
			{Key: "startTime", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "date", Value: 1},
			{Key: "startTime", Value: 1},
		}},
	}

	// Only one active sport may use a name; inactive duplicates are allowed.
	SportsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "nameKey", Value: 1}},
			Options: options.Index().
				SetName("active_name_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isActive": true}),
		},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "name", Value: 1}}},
	}

	// Locks left behind by a crashed request are removed by the TTL monitor.
	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	AdminsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
)

// DefaultSports are offered on a fresh install.
var DefaultSports = []string{
	"Table Tennis",
	"Box Cricket",
	"Swimming",
	"Volleyball",
	"Kabaddi",
	"Kho Kho",
	"Basketball",
}

type collectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func collections() []collectionDef {
	return []collectionDef{
		{Name: bookingrepo.CollectionName, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
		{Name: sportrepo.CollectionName, Indexes: SportsIndexes, Validator: validators.SportValidator},
		{Name: bookingrepo.LockCollectionName, Indexes: BookingLocksIndexes, Validator: validators.BookingLockValidator},
		{Name: authrepo.AdminCollectionName, Indexes: AdminsIndexes, Validator: validators.AdminValidator},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		log.Info("Collection already exists, updating validator", "collection", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			log.Warn("Failed updating validator", "collection", name, "error", err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}

// SeedSports inserts DefaultSports at the default price when no sport exists.
func SeedSports(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	coll := db.Collection(sportrepo.CollectionName)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count sports: %w", err)
	}
	if count > 0 {
		log.Info("Sports already present, skipping seed", "count", count)
		return nil
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]any, 0, len(DefaultSports))
	for _, name := range DefaultSports {
		docs = append(docs, model.Sport{
			Name:      name,
			NameKey:   sanitizer.NameKey(name),
			Price:     model.DefaultSportPrice,
			IsActive:  true,
			CreatedAt: now,
		})
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed sports: %w", err)
	}
	log.Info("Seeded default sports", "count", len(docs))
	return nil
}
