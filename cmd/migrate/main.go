package main

import (
	"fmt"
	"log"
	"os"

	"github.com/o6b7/travelbond/internal/config"
	"github.com/o6b7/travelbond/internal/database"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		runMigrationsUp()
	default:
		fmt.Println("Usage: migrate [up]")
		fmt.Println("  up - Create or update all tables and indexes")
		os.Exit(1)
	}
}

func runMigrationsUp() {
	driver, dsn := config.DatabaseFromEnv()
	log.Printf("Connecting to %s database...", driver)

	if err := database.Initialize(driver, dsn, false); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	log.Println("Running migrations...")
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("All migrations completed successfully")
}
