package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/o6b7/travelbond/internal/config"
	"github.com/o6b7/travelbond/internal/database"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/search"
	"github.com/o6b7/travelbond/internal/seed"
)

func main() {
	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "dev":
		seedDev()
	case "clean":
		cleanSeed()
	default:
		fmt.Println("Usage: seed [dev|clean]")
		fmt.Println("  dev   - Seed development database with realistic data")
		fmt.Println("  clean - Remove all data (use with caution)")
		os.Exit(1)
	}
}

func connect() {
	driver, dsn := config.DatabaseFromEnv()
	if err := database.Initialize(driver, dsn, false); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Database connected")
}

func seedDev() {
	log.Println("Seeding development database...")
	connect()
	defer database.Close()

	existing, err := repository.New(database.DB).Users.Count(context.Background())
	if err != nil {
		log.Fatalf("Failed to count users: %v", err)
	}
	if existing > 0 && os.Getenv("SEED_FORCE") != "true" {
		log.Printf("Database already has %d users, skipping. Run 'seed clean' first or set SEED_FORCE=true", existing)
		return
	}

	seeder := seed.NewSeeder(database.DB)

	if url := os.Getenv("ELASTICSEARCH_URL"); url != "" {
		client, err := search.NewClient(url)
		if err == nil {
			err = client.EnsureIndices(context.Background())
		}
		if err != nil {
			log.Printf("Elasticsearch unavailable, skipping indexing: %v", err)
		} else {
			seeder.SetIndexer(client)
			log.Println("Seeded events and groups will be indexed")
		}
	}

	if err := seeder.SeedDev(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Development database seeded. Every account's password is %q", seed.DefaultPassword)
}

func cleanSeed() {
	log.Println("Cleaning seed data...")
	connect()
	defer database.Close()

	if err := seed.NewSeeder(database.DB).Clean(context.Background()); err != nil {
		log.Fatalf("Clean failed: %v", err)
	}

	log.Println("Seed data cleaned successfully")
}
