package model

import "time"

// BookingLock is an advisory lock on one (sport, date) pair. Its _id is
// derived from the pair, so a second insert fails with a duplicate key while
// the first holder is still booking.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expires_at"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}
