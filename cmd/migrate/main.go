// Command migrate creates or updates the portal schema and optionally seeds
// an admin account.
package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"placement-portal/config"
	"placement-portal/models"
	"placement-portal/services"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var (
		adminEmail    string
		adminName     string
		adminPassword string
	)
	flag.StringVar(&adminEmail, "admin-email", "", "email of the admin account to create or reset (optional)")
	flag.StringVar(&adminName, "admin-name", "Placement Cell", "display name for the seeded admin")
	flag.StringVar(&adminPassword, "admin-password", "", "password for the seeded admin")
	flag.Parse()

	cfg := config.Load()
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal("Schema migration failed:", err)
	}
	log.Println("Schema migration completed")

	if strings.TrimSpace(adminEmail) == "" {
		return
	}
	if adminPassword == "" {
		log.Fatal("-admin-password is required with -admin-email")
	}

	admin, err := services.NewAdminService(db).EnsureAdmin(context.Background(), adminEmail, adminName, adminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin %s: %v", adminEmail, err)
	}
	log.Printf("Admin %s (id %d) is ready", admin.Email, admin.ID)
}
