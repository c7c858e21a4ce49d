package database

import (
	"fmt"
	"log"

	config "github.com/mwangi254/medibook/configs"
	"github.com/mwangi254/medibook/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Availability{},
		&models.AvailabilityDay{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminPhone := config.Config("ADMIN_PHONE")
	adminPin := config.Config("ADMIN_PIN")

	var count int64
	err := DB.Model(&models.User{}).Where("phone = ?", adminPhone).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPin, err := bcrypt.GenerateFromPassword([]byte(adminPin), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin PIN: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Phone:    adminPhone,
		Pin:      string(hashedPin),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
