// Seed creates a demo user with a handful of items. Run from project root: go run ./scripts/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"todo-web/internal/config"
	"todo-web/internal/database"
	"todo-web/internal/models"
	"todo-web/internal/password"
	"todo-web/internal/repository"

	"github.com/joho/godotenv"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo1234"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Get()
	db, err := database.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "DB connection failed:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	hash, err := password.NewHasher(cfg.PasswordIterations).Hash(demoPassword)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Hash failed:", err)
		os.Exit(1)
	}
	users := repository.NewUsers(db)
	u, err := users.Create(ctx, "Demo", demoEmail, hash)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		fmt.Println("Demo user already exists:", demoEmail)
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Create user failed:", err)
		os.Exit(1)
	}

	items := repository.NewItems(db)
	now := time.Now().Truncate(time.Minute)
	for i, name := range []string{"Buy milk", "Book dentist", "Renew passport", "Water plants"} {
		it := &models.Item{
			OwnerID:     u.ID,
			ListName:    name,
			StartDate:   now.Add(time.Duration(i*36) * time.Hour),
			DateCreated: now,
		}
		if err := items.Create(ctx, it); err != nil {
			fmt.Fprintln(os.Stderr, "Create item failed:", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Seeded %s / %s with 4 items\n", demoEmail, demoPassword)
}
