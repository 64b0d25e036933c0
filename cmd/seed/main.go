// Command seed provisions the test identity. Accounts are created out-of-band
// by design: the API has no registration endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/geotrace/geolocation-api/internal/core/domain"
	"github.com/geotrace/geolocation-api/internal/infrastructure/config"
	mongodb "github.com/geotrace/geolocation-api/internal/infrastructure/db/mongo"
	"github.com/geotrace/geolocation-api/pkg/logger"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	email := os.Getenv("SEED_EMAIL")
	if email == "" {
		email = "test@example.com"
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}

	now := time.Now().UTC()
	user, err := repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			log.Info().Str("email", email).Msg("seed user already exists, nothing to do")
			return
		}
		log.Fatal().Err(err).Msg("failed to create seed user")
	}

	log.Info().Str("id", user.ID).Str("email", user.Email).Msg("seed user created")
	// The plaintext is printed once so the operator can log in; it is never
	// stored anywhere.
	fmt.Printf("login credentials: %s / %s\n", email, password)
}
