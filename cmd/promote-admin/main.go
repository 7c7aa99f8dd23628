package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/o6b7/travelbond/internal/config"
	"github.com/o6b7/travelbond/internal/database"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
)

func main() {
	email := flag.String("email", "", "Email address of user to promote to admin")
	revoke := flag.Bool("revoke", false, "Revoke admin privileges instead of granting")
	flag.Parse()

	if *email == "" {
		fmt.Println("Usage: promote-admin -email=user@example.com [-revoke]")
		os.Exit(2)
	}

	driver, dsn := config.DatabaseFromEnv()
	if err := database.Initialize(driver, dsn, false); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	user, err := repository.NewUserRepository(database.DB).GetByEmail(context.Background(), *email)
	if errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("User not found: %s", *email)
	} else if err != nil {
		log.Fatalf("Failed to look up user: %v", err)
	}

	grant := !*revoke
	if user.IsAdmin == grant {
		fmt.Printf("Nothing to do: %s already has is_admin=%t\n", user.Username, grant)
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_admin", grant).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if grant {
		fmt.Printf("Admin privileges granted to %s (%s)\n", user.Username, user.Email)
	} else {
		fmt.Printf("Admin privileges revoked for %s (%s)\n", user.Username, user.Email)
	}
	fmt.Println("The user must log in again for the change to take effect")
}
