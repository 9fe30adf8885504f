package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment is one node of a transaction tree. A tree is at most three levels
// deep: the root, children linked through RelatedPaymentID, and grandchildren
// linked to a child. Rows are immutable once persisted; cancellation is a
// soft delete.
type Payment struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	RelatedPaymentID *uuid.UUID       `gorm:"type:uuid;index" json:"related_payment_id,omitempty"`
	CustomerID       *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	StaffID          *uuid.UUID       `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	MenuName         string           `gorm:"size:255" json:"menu_name"`
	PaymentType      enum.PaymentType `gorm:"size:50;not null;default:'normal'" json:"payment_type"`

	// Kind is the authoritative classification, decided at creation time.
	// The legacy boolean flags below are still written for compatibility
	// with existing reporting queries.
	Kind               enum.PaymentKind `gorm:"size:50;not null;index" json:"kind"`
	IsTicketPurchase   bool             `gorm:"default:false" json:"is_ticket_purchase"`
	IsRemainingPayment bool             `gorm:"default:false" json:"is_remaining_payment"`

	TicketID       *uuid.UUID `gorm:"type:uuid;index" json:"ticket_id,omitempty"`
	LimitedOfferID *uuid.UUID `gorm:"type:uuid;index" json:"limited_offer_id,omitempty"`

	// Amounts are integer yen.
	TotalAmount     int64 `gorm:"default:0" json:"total_amount"`
	CashAmount      int64 `gorm:"default:0" json:"cash_amount"`
	CardAmount      int64 `gorm:"default:0" json:"card_amount"`
	DiscountAmount  int64 `gorm:"default:0" json:"discount_amount"`
	ServiceSubtotal int64 `gorm:"default:0" json:"service_subtotal"`
	// PaymentAmount is the amount applied by a remaining-balance settlement.
	PaymentAmount int64 `gorm:"default:0" json:"payment_amount"`

	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null;default:'cash'" json:"payment_method"`

	// Point-in-time snapshots taken when the row was written.
	SessionsAtPayment *int   `json:"sessions_at_payment,omitempty"`
	BalanceAtPayment  *int64 `json:"balance_at_payment,omitempty"`

	PaymentDate time.Time      `gorm:"type:date;not null;index" json:"payment_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Staff    *Staff          `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Options  []PaymentOption `gorm:"foreignKey:PaymentID" json:"options,omitempty"`
	Children []Payment       `gorm:"foreignKey:RelatedPaymentID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// PaymentOption is an add-on line sold with the root payment.
type PaymentOption struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"payment_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Price     int64          `gorm:"default:0" json:"price"`
	IsFree    bool           `gorm:"default:false" json:"is_free"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment option
func (o *PaymentOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentOption model
func (PaymentOption) TableName() string {
	return "payment_options"
}
