package request

// SelectionRequest is the cart's optional single selection: a menu item, a
// coupon, or a limited offer purchase (offer_id set).
type SelectionRequest struct {
	MenuName       string `json:"menu_name"`
	PaymentType    string `json:"payment_type" binding:"omitempty,oneof=normal coupon ticket limited limited_offer"`
	Price          int64  `json:"price" binding:"min=0"`
	OfferID        string `json:"offer_id" binding:"omitempty,uuid"`
	UseImmediately bool   `json:"use_immediately"`
}

// TicketUseRequest consumes one session from a customer ticket
type TicketUseRequest struct {
	TicketID string `json:"ticket_id" binding:"required,uuid"`
}

// OfferUseRequest consumes one session from a limited offer
type OfferUseRequest struct {
	OfferID string `json:"offer_id" binding:"required,uuid"`
}

// PurchaseRequest buys a new ticket (plan_id) or limited offer (offer_id)
type PurchaseRequest struct {
	PlanID         string `json:"plan_id" binding:"omitempty,uuid"`
	OfferID        string `json:"offer_id" binding:"omitempty,uuid"`
	PaymentAmount  int64  `json:"payment_amount" binding:"min=0"`
	UseImmediately bool   `json:"use_immediately"`
}

// SettlementRequest pays down outstanding balance on a ticket or offer purchase
type SettlementRequest struct {
	TicketID   string `json:"ticket_id" binding:"required,uuid"`
	TicketType string `json:"ticket_type" binding:"omitempty,oneof=regular limited"`
	Amount     int64  `json:"amount" binding:"required,min=1"`
}

// OptionRequest is a paid or free add-on sold with the selection
type OptionRequest struct {
	Name   string `json:"name" binding:"required"`
	Price  int64  `json:"price" binding:"min=0"`
	IsFree bool   `json:"is_free"`
}

// CheckoutRequest is the full checkout cart
type CheckoutRequest struct {
	CustomerID string `json:"customer_id" binding:"omitempty,uuid"`

	Selection   *SelectionRequest   `json:"selection"`
	TicketUses  []TicketUseRequest  `json:"ticket_uses"`
	OfferUses   []OfferUseRequest   `json:"offer_uses"`
	Purchases   []PurchaseRequest   `json:"purchases"`
	Settlements []SettlementRequest `json:"settlements"`
	Options     []OptionRequest     `json:"options"`

	PaymentMethod  string `json:"payment_method" binding:"omitempty,oneof=cash card mixed"`
	DiscountAmount int64  `json:"discount_amount" binding:"min=0"`
	ReceivedAmount int64  `json:"received_amount" binding:"min=0"`
	CashAmount     int64  `json:"cash_amount" binding:"min=0"`
	CardAmount     int64  `json:"card_amount" binding:"min=0"`

	PaymentDate string `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
}
