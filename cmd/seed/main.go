package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openfleet/carrental/internal/adapters/database"
	"github.com/openfleet/carrental/internal/domain/entities"
	"github.com/openfleet/carrental/internal/infrastructure/clients/postgres"
	"github.com/openfleet/carrental/internal/infrastructure/observability"
	"github.com/openfleet/carrental/pkg/auth"
	"github.com/openfleet/carrental/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS user_details (
	user_id        TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	full_name      TEXT,
	address        TEXT,
	phone          TEXT,
	marital_status TEXT
);

CREATE TABLE IF NOT EXISTS cars (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	brand         TEXT NOT NULL,
	image_url     TEXT NOT NULL DEFAULT '',
	price_per_day TEXT NOT NULL,
	rating        DOUBLE PRECISION NOT NULL DEFAULT 0,
	description   TEXT NOT NULL DEFAULT '',
	available     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	username          TEXT NOT NULL,
	car_id            TEXT NOT NULL,
	car_name          TEXT NOT NULL,
	car_brand         TEXT NOT NULL,
	car_price_per_day TEXT NOT NULL,
	start_date        TIMESTAMPTZ NOT NULL,
	end_date          TIMESTAMPTZ NOT NULL,
	total_cost        DOUBLE PRECISION NOT NULL,
	status            TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id);
CREATE INDEX IF NOT EXISTS idx_cars_brand ON cars(brand);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	observability.InitLogger("carrental-seed", cfg.Server.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema")
	}
	log.Info().Msg("schema ensured")

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				bookings,
				user_details,
				cars,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	carRepo := database.NewCarAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	// 1. Seed admin account
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
		log.Warn().Msg("ADMIN_PASSWORD not set, using default credentials")
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	admin := &entities.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		Email:        "admin@openfleet.dev",
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Warn().Err(err).Msg("failed to create admin user (may already exist)")
	} else {
		log.Info().Str("email", admin.Email).Msg("admin user created")
	}

	// 2. Seed catalog
	cars := []entities.Car{
		{
			ID: uuid.New().String(), Name: "Model 3", Brand: "Tesla",
			PricePerDay: "$120/day", Rating: 4.8, Available: true,
			Description: "Electric sedan with autopilot and a 350 mile range.",
			ImageURL:    "https://images.openfleet.dev/cars/tesla-model-3.jpg",
		},
		{
			ID: uuid.New().String(), Name: "Corolla", Brand: "Toyota",
			PricePerDay: "$45/day", Rating: 4.4, Available: true,
			Description: "Reliable compact sedan, great fuel economy.",
			ImageURL:    "https://images.openfleet.dev/cars/toyota-corolla.jpg",
		},
		{
			ID: uuid.New().String(), Name: "Civic", Brand: "Honda",
			PricePerDay: "$50/day", Rating: 4.5, Available: true,
			Description: "Sporty compact with modern safety features.",
			ImageURL:    "https://images.openfleet.dev/cars/honda-civic.jpg",
		},
		{
			ID: uuid.New().String(), Name: "Mustang GT", Brand: "Ford",
			PricePerDay: "$150/day", Rating: 4.7, Available: true,
			Description: "Iconic muscle car with a 5.0L V8.",
			ImageURL:    "https://images.openfleet.dev/cars/ford-mustang.jpg",
		},
		{
			ID: uuid.New().String(), Name: "X5", Brand: "BMW",
			PricePerDay: "$180/day", Rating: 4.6, Available: true,
			Description: "Luxury midsize SUV with all wheel drive.",
			ImageURL:    "https://images.openfleet.dev/cars/bmw-x5.jpg",
		},
		{
			ID: uuid.New().String(), Name: "Wrangler", Brand: "Jeep",
			PricePerDay: "$95/day", Rating: 4.3, Available: true,
			Description: "Off-road icon, removable top, 4x4.",
			ImageURL:    "https://images.openfleet.dev/cars/jeep-wrangler.jpg",
		},
		{
			ID: uuid.New().String(), Name: "Camry", Brand: "Toyota",
			PricePerDay: "$55/day", Rating: 4.5, Available: false,
			Description: "Comfortable midsize sedan for longer trips.",
			ImageURL:    "https://images.openfleet.dev/cars/toyota-camry.jpg",
		},
		{
			ID: uuid.New().String(), Name: "A4", Brand: "Audi",
			PricePerDay: "$130/day", Rating: 4.6, Available: true,
			Description: "Premium compact sedan with quattro drive.",
			ImageURL:    "https://images.openfleet.dev/cars/audi-a4.jpg",
		},
	}

	seeded := 0
	for i := range cars {
		car := cars[i]
		car.CreatedAt = time.Now()
		car.UpdatedAt = time.Now()
		if err := carRepo.Create(ctx, &car); err != nil {
			log.Warn().Err(err).Str("name", car.Name).Msg("failed to create car")
			continue
		}
		seeded++
	}

	log.Info().Int("cars", seeded).Msg("seeding complete")
}
