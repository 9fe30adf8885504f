package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/enum"
)

// TicketContext is the reference data needed to interpret a ticket node in a
// payment tree: catalog names plus the live session/balance state.
type TicketContext struct {
	TicketID          uuid.UUID  `json:"ticket_id"`
	PlanName          string     `json:"plan_name"`
	ServiceName       string     `json:"service_name"`
	TotalSessions     int        `json:"total_sessions"`
	SessionsRemaining int        `json:"sessions_remaining"`
	PurchasePrice     int64      `json:"purchase_price"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	TotalPaid         int64      `json:"total_paid"`
}

// RemainingBalance is the purchase price minus everything settled so far.
func (c TicketContext) RemainingBalance() int64 {
	b := c.PurchasePrice - c.TotalPaid
	if b < 0 {
		return 0
	}
	return b
}

// OfferContext is the equivalent reference data for a limited offer. When the
// customer has never purchased the offer, SessionsRemaining is nil and the
// balance is zero (a synthesized zero-state, not an error).
type OfferContext struct {
	OfferID           uuid.UUID `json:"offer_id"`
	OfferName         string    `json:"offer_name"`
	ServiceName       string    `json:"service_name"`
	TotalSessions     int       `json:"total_sessions"`
	SessionsRemaining *int      `json:"sessions_remaining"`
	PurchasePrice     int64     `json:"purchase_price"`
	RemainingBalance  int64     `json:"remaining_balance"`
}

// TicketPurchaseLine is one ticket or offer purchase surfaced on a receipt.
type TicketPurchaseLine struct {
	Name              string     `json:"name"`
	ServiceName       string     `json:"service_name"`
	TotalSessions     int        `json:"total_sessions"`
	SessionsRemaining int        `json:"sessions_remaining"`
	Price             int64      `json:"price"`
	PaidAmount        int64      `json:"paid_amount"`
	RemainingBalance  int64      `json:"remaining_balance"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
}

// TicketUseLine is one ticket or offer session consumption on a receipt.
// SessionsRemaining is nil for a synthesized offer context.
type TicketUseLine struct {
	Name              string     `json:"name"`
	ServiceName       string     `json:"service_name"`
	SessionsRemaining *int       `json:"sessions_remaining"`
	TotalSessions     int        `json:"total_sessions"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	RemainingBalance  int64      `json:"remaining_balance"`
	RemainingPayment  int64      `json:"remaining_payment"`
	IsLimited         bool       `json:"is_limited"`
}

// ReceiptOptionLine is a paid or free add-on on the root sale.
type ReceiptOptionLine struct {
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	IsFree bool   `json:"is_free"`
}

// ReceiptView is the canonical derived summary of a transaction tree. It is
// never persisted; it is rebuilt from the tree on every read and feeds both
// the JSON export and the two receipt renderings.
type ReceiptView struct {
	PaymentID    uuid.UUID `json:"payment_id"`
	PaymentDate  time.Time `json:"payment_date"`
	CustomerName string    `json:"customer_name,omitempty"`
	StaffName    string    `json:"staff_name,omitempty"`
	MenuName     string    `json:"menu_name,omitempty"`

	TicketPurchases []TicketPurchaseLine `json:"ticket_purchases"`
	TicketUses      []TicketUseLine      `json:"ticket_uses"`
	Options         []ReceiptOptionLine  `json:"options"`

	ServiceSubtotal int64              `json:"service_subtotal"`
	DiscountAmount  int64              `json:"discount_amount"`
	Total           int64              `json:"total"`
	CashAmount      int64              `json:"cash_amount"`
	CardAmount      int64              `json:"card_amount"`
	PaymentMethod   enum.PaymentMethod `json:"payment_method"`
}
