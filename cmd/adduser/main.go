// cmd/adduser/main.go
// Creates or updates a user profile in the database.
//
// Usage:
//
//	go run ./cmd/adduser -email admin@example.com -password testing -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/eventresults/auth"
	"github.com/padraicbc/eventresults/config"
	bundb "github.com/padraicbc/eventresults/db"
	"github.com/padraicbc/eventresults/models"
	"github.com/padraicbc/eventresults/store"
)

func main() {
	email := flag.String("email", "", "email address (required)")
	password := flag.String("password", "", "plain-text password (required)")
	role := flag.String("role", string(models.RoleUser), "user or admin")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}
	r, ok := models.ParseRole(*role)
	if !ok {
		log.Fatalf("unknown role %q, want user or admin", *role)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables:", err)
	}

	p := &models.UserProfile{
		Email:        *email,
		Role:         r,
		PasswordHash: hash,
	}
	if err := store.New(db).SaveProfile(ctx, p); err != nil {
		log.Fatal("save profile:", err)
	}

	fmt.Printf("profile %s (%s) saved as %s\n", p.Email, p.UserID, p.Role)
}
