package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "sportsclub/internal/bookings/errors"
	"sportsclub/pkg/config"
	mongotx "sportsclub/pkg/db/mongo"
	"sportsclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Booking_locks"

// BookingLockRepository stores advisory locks. The unique _id makes a second
// Create fail while the first holder is active; a TTL index on expiresAt
// removes locks whose holder died.
type BookingLockRepository interface {
	Create(ctx context.Context, lock *model.BookingLock) error
	DeleteExpired(ctx context.Context, lockID string, now time.Time) (bool, error)
	Delete(ctx context.Context, lockID, owner string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// Create returns ErrLockHeld if the lock already exists.
func (r *mongoBookingLockRepository) Create(ctx context.Context, lock *model.BookingLock) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrLockHeld
		}
		return fmt.Errorf("failed to create booking lock: %w", err)
	}
	return nil
}

// DeleteExpired removes the lock only if it expired before now. The TTL
// monitor runs about once a minute, which is too coarse to rely on.
func (r *mongoBookingLockRepository) DeleteExpired(ctx context.Context, lockID string, now time.Time) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID, "expiresAt": bson.M{"$lt": now}})
	if err != nil {
		return false, fmt.Errorf("failed to reclaim booking lock: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// Delete releases a lock held by owner. A lock that was reclaimed by someone
// else is left alone.
func (r *mongoBookingLockRepository) Delete(ctx context.Context, lockID, owner string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID, "owner": owner}); err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	return nil
}
