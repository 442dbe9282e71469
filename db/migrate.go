package db

import (
	"fmt"
	"log"

	"github.com/sbayrealty/brokerage-backend/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Lead{},
		&models.LeadActivity{},
		&models.Appointment{},
		&models.Property{},
		&models.PropertyCalendar{},
		&models.AvailabilityRule{},
		&models.BlockedDate{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
