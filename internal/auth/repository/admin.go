package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	autherrors "sportsclub/internal/auth/errors"
	"sportsclub/pkg/config"
	mongotx "sportsclub/pkg/db/mongo"
	"sportsclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AdminCollectionName = "Admins"

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	// Upsert creates the admin or replaces its password hash.
	Upsert(ctx context.Context, email, passwordHash string) error
}

type mongoAdminRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAdminRepository(cfg *config.Config) AdminRepository {
	return &mongoAdminRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(AdminCollectionName),
	}
}

func (r *mongoAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var admin model.Admin
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, autherrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin, nil
}

func (r *mongoAdminRepository) Upsert(ctx context.Context, email, passwordHash string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"passwordHash": passwordHash},
		"$setOnInsert": bson.M{"email": email, "createdAt": time.Now().UTC().Truncate(time.Millisecond)},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert admin: %w", err)
	}
	return nil
}
