// Command seed populates the database with a default admin and a handful
// of demo assets across two bases. Safe to run repeatedly.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/milassets/backend/auth"
	"github.com/milassets/backend/database"
	"github.com/milassets/backend/models"
)

func strptr(s string) *string { return &s }

var sampleAssets = []models.Asset{
	{Name: "Humvee M1151", Type: models.AssetTypeVehicle, SerialNumber: strptr("VH-ALPHA-001"), Quantity: 4, Base: "Alpha"},
	{Name: "M4 Carbine", Type: models.AssetTypeWeapon, SerialNumber: strptr("WP-ALPHA-014"), Quantity: 120, Base: "Alpha"},
	{Name: "5.56mm Rounds", Type: models.AssetTypeAmmunition, Quantity: 50000, Base: "Alpha"},
	{Name: "Night Vision Goggles", Type: models.AssetTypeEquipment, SerialNumber: strptr("EQ-BRAVO-007"), Quantity: 30, Base: "Bravo", Status: models.StatusMaintenance},
	{Name: "Transport Truck", Type: models.AssetTypeVehicle, SerialNumber: strptr("VH-BRAVO-002"), Quantity: 2, Base: "Bravo"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := seedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedAssets(db); err != nil {
		log.Fatalf("Failed to seed assets: %v", err)
	}

	fmt.Println("Seeding completed.")
}

func seedAdmin(db *gorm.DB) error {
	username := os.Getenv("SEED_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme1"
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Printf("Admin user %q already exists, skipping\n", username)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     username,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         models.RoleAdmin,
		Base:         "HQ",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	fmt.Printf("Created admin user %q\n", username)
	return nil
}

func seedAssets(db *gorm.DB) error {
	created := 0
	for _, asset := range sampleAssets {
		var count int64
		if err := db.Model(&models.Asset{}).
			Where("name = ? AND base = ?", asset.Name, asset.Base).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if asset.Status == "" {
			asset.Status = models.StatusAvailable
		}
		if err := db.Create(&asset).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return err
		}
		created++
	}
	fmt.Printf("Created %d assets\n", created)
	return nil
}
