package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreSettings is the single-row application settings record: receipt
// header fields, printer transport configuration and the staff PIN hash.
// Readers merge it over built-in defaults; a missing or corrupt row is
// treated as "use defaults", never an error.
type StoreSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Receipt header
	ShopName    string `gorm:"size:255" json:"shop_name"`
	ShopMessage string `gorm:"size:255" json:"shop_message"`

	// Printer transport. PrinterType is "network" or "display".
	PrinterType string `gorm:"size:20" json:"printer_type"`
	PrinterIP   string `gorm:"size:64" json:"printer_ip"`
	PrinterPort int    `gorm:"default:0" json:"printer_port"`

	// PINHash is the bcrypt hash of the staff PIN. Never serialized.
	PINHash string `gorm:"size:255;column:pin_hash" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}
