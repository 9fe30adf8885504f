package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LimitedOffer is a time-bounded bundled catalog entry, structurally similar
// to a ticket plan but sold at a special price during a window.
type LimitedOffer struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	ServiceName  string         `gorm:"size:255" json:"service_name"`
	Sessions     int            `gorm:"not null" json:"sessions"`
	SpecialPrice int64          `gorm:"not null" json:"special_price"`
	StartDate    *time.Time     `gorm:"type:date" json:"start_date,omitempty"`
	EndDate      *time.Time     `gorm:"type:date" json:"end_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new limited offer
func (o *LimitedOffer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LimitedOffer model
func (LimitedOffer) TableName() string {
	return "limited_offers"
}

// LimitedTicketPurchase is a customer's purchase of a limited offer. A
// customer may purchase the same offer more than once; readers pick the most
// recent purchase by purchase date.
type LimitedTicketPurchase struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OfferID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"offer_id"`
	CustomerID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	TotalSessions     int            `gorm:"not null" json:"total_sessions"`
	SessionsRemaining int            `gorm:"not null" json:"sessions_remaining"`
	PurchasePrice     int64          `gorm:"not null" json:"purchase_price"`
	PurchaseDate      time.Time      `gorm:"type:date;not null;index" json:"purchase_date"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Offer    LimitedOffer `gorm:"foreignKey:OfferID" json:"offer,omitempty"`
	Customer Customer     `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new limited ticket purchase
func (p *LimitedTicketPurchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LimitedTicketPurchase model
func (LimitedTicketPurchase) TableName() string {
	return "limited_ticket_purchases"
}
