package mongo

import (
	"testing"

	"sportsclub/pkg/sanitizer"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollectionsAreComplete(t *testing.T) {
	names := map[string]bool{}
	for _, def := range collections() {
		names[def.Name] = true
		assert.NotEmpty(t, def.Indexes, def.Name)
		assert.Contains(t, def.Validator, "$jsonSchema", def.Name)
	}
	assert.Equal(t, map[string]bool{"Bookings": true, "Sports": true, "Booking_locks": true, "Admins": true}, names)
}

func TestSportNameIndexIsPartialUnique(t *testing.T) {
	idx := SportsIndexes[0]
	assert.Equal(t, bson.D{{Key: "nameKey", Value: 1}}, idx.Keys)
	if assert.NotNil(t, idx.Options) {
		assert.True(t, *idx.Options.Unique)
		assert.Equal(t, bson.M{"isActive": true}, idx.Options.PartialFilterExpression)
	}
}

func TestBookingLockTTL(t *testing.T) {
	idx := BookingLocksIndexes[0]
	if assert.NotNil(t, idx.Options) && assert.NotNil(t, idx.Options.ExpireAfterSeconds) {
		assert.Equal(t, int32(0), *idx.Options.ExpireAfterSeconds)
	}
}

func TestDefaultSportsHaveDistinctKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range DefaultSports {
		key := sanitizer.NameKey(name)
		assert.False(t, seen[key], "duplicate default sport %s", name)
		seen[key] = true
	}
}
