package main

import (
	"context"
	"time"

	authrepo "sportsclub/internal/auth/repository"
	authservice "sportsclub/internal/auth/service"
	mongoMigration "sportsclub/internal/migrations/mongo"
	"sportsclub/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)

	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	if cfg.SeedSports {
		if err := mongoMigration.SeedSports(ctx, db, cfg.Log); err != nil {
			cfg.Log.Fatal("Sport seeding failed", "error", err)
		}
	}

	seedAdmin(ctx, cfg)
	cfg.Log.Info("Migration completed successfully")
}

// seedAdmin creates the admin account, or resets its password, from
// ADMIN_EMAIL and ADMIN_PASSWORD.
func seedAdmin(ctx context.Context, cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		cfg.Log.Info("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return
	}
	if len(cfg.AdminPassword) < 8 {
		cfg.Log.Fatal("ADMIN_PASSWORD must be at least 8 characters")
	}

	hash, err := authservice.HashPassword(cfg.AdminPassword)
	if err != nil {
		cfg.Log.Fatal("Failed to hash admin password", "error", err)
	}

	email := authservice.NormalizeEmail(cfg.AdminEmail)
	if err := authrepo.NewMongoAdminRepository(cfg).Upsert(ctx, email, hash); err != nil {
		cfg.Log.Fatal("Failed to seed admin", "error", err)
	}
	cfg.Log.Info("Admin account ready", "email", email)
}
