package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sowani/salon-api/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Customer{},
		&entity.Staff{},
		&entity.TicketPlan{},
		&entity.CustomerTicket{},
		&entity.TicketPayment{},
		&entity.LimitedOffer{},
		&entity.LimitedTicketPurchase{},
		&entity.Payment{},
		&entity.PaymentOption{},
		&entity.StoreSettings{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
