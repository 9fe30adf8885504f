package database

import (
	"fmt"
	"log"

	"github.com/sowani/salon-api/internal/config"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/pkg/utils"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// People
		&entity.Customer{},
		&entity.Staff{},

		// Ticket catalog and holdings
		&entity.TicketPlan{},
		&entity.CustomerTicket{},
		&entity.TicketPayment{},
		&entity.LimitedOffer{},
		&entity.LimitedTicketPurchase{},

		// Payment tree
		&entity.Payment{},
		&entity.PaymentOption{},

		// System entities
		&entity.StoreSettings{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the store settings row and an initial staff member
// so a fresh install can log in.
func SeedDefaultData(db *gorm.DB, defaultPIN string) error {
	log.Println("Seeding default data...")

	var settings entity.StoreSettings
	if err := db.First(&settings).Error; err != nil {
		hash, err := utils.HashPIN(defaultPIN)
		if err != nil {
			return fmt.Errorf("failed to hash default PIN: %w", err)
		}
		settings = entity.StoreSettings{
			PrinterType: "display",
			PINHash:     hash,
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create store settings: %v", err)
		} else {
			log.Println("Store settings created with the default PIN, rotate it before going live")
		}
	}

	staffName := viper.GetString("SEED_STAFF_NAME")
	if staffName != "" {
		var existing entity.Staff
		if err := db.Where("name = ?", staffName).First(&existing).Error; err != nil {
			staff := entity.Staff{Name: staffName, Active: true}
			if err := db.Create(&staff).Error; err != nil {
				log.Printf("Warning: failed to create staff %s: %v", staffName, err)
			} else {
				log.Printf("Staff member created: %s", staffName)
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
