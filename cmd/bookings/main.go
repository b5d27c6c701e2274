package main

import (
	"context"

	authhandler "sportsclub/internal/auth/handler"
	authrepo "sportsclub/internal/auth/repository"
	authservice "sportsclub/internal/auth/service"
	bookinghandler "sportsclub/internal/bookings/handler"
	bookingrepo "sportsclub/internal/bookings/repository"
	bookingservice "sportsclub/internal/bookings/service"
	bookingvalidator "sportsclub/internal/bookings/validator"
	"sportsclub/internal/events"
	"sportsclub/internal/health"
	"sportsclub/internal/scheduling"
	sporthandler "sportsclub/internal/sports/handler"
	sportrepo "sportsclub/internal/sports/repository"
	sportservice "sportsclub/internal/sports/service"
	sportvalidator "sportsclub/internal/sports/validator"
	"sportsclub/pkg/app"
	"sportsclub/pkg/config"
	"sportsclub/pkg/feed"
	kafka_config "sportsclub/pkg/kafka/config"
	"sportsclub/pkg/model"
	"sportsclub/pkg/tracing"

	"go.mongodb.org/mongo-driver/bson"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Bookings service")

	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.OtelEnabled,
		ServiceName:  ServiceName,
		OTLPEndpoint: cfg.OtelEndpoint,
		SampleRatio:  cfg.OtelSampleRatio,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to set up tracing", "error", err)
	}

	publisher := initPublisher(cfg)
	sportSnapshot, bookingSnapshot, unsubscribe := initFeeds(cfg)

	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	sportService := sportservice.NewSportService(
		sportrepo.NewMongoSportRepository(cfg),
		bookingRepo,
		sportSnapshot,
		publisher,
		sportvalidator.NewSportValidator(cfg.Log),
		cfg,
	)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		bookingrepo.NewBookingLockRepository(cfg),
		sportService,
		bookingSnapshot,
		publisher,
		bookingvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)

	if cfg.JWTSecret == "" {
		cfg.Log.Fatal("JWT_SECRET must be set for admin sign-in")
	}
	authService := authservice.NewAuthService(
		authrepo.NewMongoAdminRepository(cfg),
		authrepo.NewRedisSessionStore(cfg.Client.Redis),
		cfg,
	)
	authService.OnSessionChange(func(s *model.Session) {
		if s == nil {
			cfg.Log.Debug("Admin session ended")
			return
		}
		cfg.Log.Debug("Admin session started", "session_id", s.ID, "expires_at", s.ExpiresAt)
	})
	sessionHandler := authhandler.NewSessionHandler(authService, cfg.Log)

	healthHandler := health.NewHealthHandler(map[string]health.Check{
		"mongo": health.MongoCheck(cfg.Client.Mongo),
		"redis": health.RedisCheck(cfg.Client.Redis),
	}, cfg.Log)

	serverApp := app.NewApplication(ServiceName, cfg)
	serverApp.SetApp(
		healthHandler,
		sessionHandler,
		bookinghandler.NewBookingHandler(bookingService, sessionHandler.RequireAdmin, cfg.Log),
		sporthandler.NewSportHandler(sportService, sessionHandler.RequireAdmin, cfg.Log),
	)
	serverApp.OnShutdown(func(context.Context) { unsubscribe() })
	serverApp.OnShutdown(func(context.Context) {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	serverApp.OnShutdown(func(ctx context.Context) {
		if err := shutdownTracing(ctx); err != nil {
			cfg.Log.Error("Failed to flush traces", "error", err)
		}
	})
	serverApp.OnShutdown(func(context.Context) { cfg.GracefulShutdown() })
	serverApp.Run()
}

// initPublisher falls back to dropping events when Kafka is disabled or
// misconfigured; bookings never wait on it.
func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, domain events will not be published")
		return events.NopPublisher{}
	}

	kcfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Error("Invalid Kafka configuration, domain events will not be published", "error", err)
		return events.NopPublisher{}
	}
	kcfg.LogConfiguration(cfg.Log)

	publisher, err := events.NewKafkaPublisher(kcfg, cfg.KafkaBookingsTopic, cfg.KafkaSportsTopic, cfg.KafkaDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Error("Failed to create Kafka publisher, domain events will not be published", "error", err)
		return events.NopPublisher{}
	}
	return publisher
}

// initFeeds keeps in-process copies of sports and upcoming bookings. Change
// streams need a replica set; without one the services read the store
// directly.
func initFeeds(cfg *config.Config) (*feed.Snapshot[*model.Sport], *feed.Snapshot[*model.Booking], func()) {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	horizon := scheduling.NewHorizon(cfg.VenueLocation, cfg.BookingHorizonDays)

	sportSnapshot := feed.NewSnapshot[*model.Sport]()
	bookingSnapshot := feed.NewSnapshot[*model.Booking]()

	sportFeed := feed.New[*model.Sport](&feed.MongoSource[*model.Sport]{
		Collection: db.Collection(sportrepo.CollectionName),
		Sort:       sportrepo.ByName,
	}, "sports", cfg.Log)

	bookingFeed := feed.New[*model.Booking](&feed.MongoSource[*model.Booking]{
		Collection: db.Collection(bookingrepo.CollectionName),
		Filter: func() bson.M {
			return bson.M{"date": bson.M{"$gte": scheduling.FormatDate(horizon.Today())}}
		},
		Sort: bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
	}, "bookings", cfg.Log)

	ctx := context.Background()
	var unsubscribers []feed.Unsubscribe

	if unsub, err := sportFeed.Subscribe(ctx, sportSnapshot.Set); err != nil {
		cfg.Log.Warn("Sports feed unavailable, reading sports from the store", "error", err)
	} else {
		unsubscribers = append(unsubscribers, unsub)
	}

	if unsub, err := bookingFeed.Subscribe(ctx, bookingSnapshot.Set); err != nil {
		cfg.Log.Warn("Bookings feed unavailable, skipping snapshot pre-check", "error", err)
	} else {
		unsubscribers = append(unsubscribers, unsub)
	}

	return sportSnapshot, bookingSnapshot, func() {
		for _, unsub := range unsubscribers {
			unsub()
		}
	}
}
