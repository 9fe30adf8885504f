package enum

// PaymentKind is the tagged classification of a payment tree node. It is
// decided once at creation time and persisted, so readers never have to
// re-derive the kind from flag combinations.
type PaymentKind string

const (
	// KindServiceSale is a plain service, coupon or limited-offer sale.
	KindServiceSale PaymentKind = "service_sale"
	// KindTicketPurchase buys sessions into a multi-session ticket.
	KindTicketPurchase PaymentKind = "ticket_purchase"
	// KindTicketUse consumes one session from a multi-session ticket.
	KindTicketUse PaymentKind = "ticket_use"
	// KindLimitedOfferUse consumes one session from a purchased limited offer.
	KindLimitedOfferUse PaymentKind = "limited_offer_use"
	// KindRemainingPayment settles outstanding balance on a ticket or offer.
	KindRemainingPayment PaymentKind = "remaining_payment"
)

// IsPurchase reports whether the node represents a ticket or offer purchase.
func (k PaymentKind) IsPurchase() bool {
	return k == KindTicketPurchase
}

// IsUse reports whether the node consumes a session.
func (k PaymentKind) IsUse() bool {
	return k == KindTicketUse || k == KindLimitedOfferUse
}
