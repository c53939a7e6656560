// seed-admin creates or updates the warehouse owner account (username:
// JCASTI15). Safe to run repeatedly; an existing account gets its
// password reset and its role restored to owner.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
//
// OWNER_USERNAME, OWNER_EMAIL and OWNER_PASSWORD override the defaults.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/josecastillovelasquez23456-dot/warehouse-mro/config"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/models"
)

const (
	defaultOwnerUsername = "JCASTI15"
	defaultOwnerEmail    = "jcastillo@warehouse-mro.local"
	defaultOwnerPassword = "Almacen#2025"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	username := envOr("OWNER_USERNAME", defaultOwnerUsername)
	email := envOr("OWNER_EMAIL", defaultOwnerEmail)
	password := envOr("OWNER_PASSWORD", defaultOwnerPassword)

	if err := models.UpsertOwner(ctx, username, email, password); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed owner user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded owner user: username=%q (role=owner)\n", username)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
