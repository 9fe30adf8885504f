package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/enum"
	"gorm.io/gorm"
)

// TicketPlan is a catalog entry for a multi-session ticket.
type TicketPlan struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	ServiceName string         `gorm:"size:255" json:"service_name"`
	Sessions    int            `gorm:"not null" json:"sessions"`
	Price       int64          `gorm:"not null" json:"price"`
	// ValidityMonths of 0 means the ticket never expires.
	ValidityMonths int            `gorm:"default:0" json:"validity_months"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ticket plan
func (p *TicketPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TicketPlan model
func (TicketPlan) TableName() string {
	return "ticket_plans"
}

// CustomerTicket is a customer's purchased multi-session ticket.
// SessionsRemaining is only ever mutated through the repository's
// compare-and-swap operations.
type CustomerTicket struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	PlanID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"plan_id"`
	TotalSessions     int            `gorm:"not null" json:"total_sessions"`
	SessionsRemaining int            `gorm:"not null" json:"sessions_remaining"`
	PurchasePrice     int64          `gorm:"not null" json:"purchase_price"`
	ExpiryDate        *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	PurchaseDate      time.Time      `gorm:"type:date;not null" json:"purchase_date"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer Customer   `gorm:"foreignKey:CustomerID" json:"-"`
	Plan     TicketPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// BeforeCreate generates a UUID before creating a new customer ticket
func (t *CustomerTicket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerTicket model
func (CustomerTicket) TableName() string {
	return "customer_tickets"
}

// TicketPayment is one row of the append-only settlement ledger. TicketID
// points at a customer ticket or a limited offer purchase depending on
// TicketType.
type TicketPayment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TicketID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"ticket_id"`
	TicketType  enum.TicketType `gorm:"size:20;not null;default:'regular'" json:"ticket_type"`
	Amount      int64           `gorm:"not null" json:"amount"`
	StaffID     *uuid.UUID      `gorm:"type:uuid" json:"staff_id,omitempty"`
	PaymentDate time.Time       `gorm:"type:date;not null" json:"payment_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new ticket payment
func (tp *TicketPayment) BeforeCreate(tx *gorm.DB) error {
	if tp.ID == uuid.Nil {
		tp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TicketPayment model
func (TicketPayment) TableName() string {
	return "ticket_payments"
}
