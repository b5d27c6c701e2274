package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "sportsclub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute
	DefaultRateLimitBackend  = RateLimitBackendMemory

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultVenueName          = "Darwin School Sports Club"
	DefaultVenueTimezone      = "Asia/Kolkata"
	DefaultPhoneRegion        = "IN"
	DefaultBookingHorizonDays = 2
	DefaultBookingLockTTL     = 30 * time.Second

	DefaultSessionTTL = 12 * time.Hour

	DefaultKafkaEnabled       = false
	DefaultKafkaBookingsTopic = "sportsclub.bookings"
	DefaultKafkaSportsTopic   = "sportsclub.sports"
	DefaultKafkaDLQTopic      = "sportsclub.dlq"
	DefaultKafkaGroupID       = "sportsclub-notifier"

	DefaultOtelEnabled     = false
	DefaultOtelEndpoint    = "localhost:4317"
	DefaultOtelSampleRatio = 1.0
)

const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)
