package enum

// PaymentType is the catalog origin of a payment (what was sold), as opposed
// to PaymentKind which classifies the node's role in the transaction tree.
type PaymentType string

const (
	TypeNormal       PaymentType = "normal"
	TypeCoupon       PaymentType = "coupon"
	TypeTicket       PaymentType = "ticket"
	TypeLimitedOffer PaymentType = "limited_offer"
	// TypeLimited is a legacy alias for TypeLimitedOffer still accepted on input.
	TypeLimited PaymentType = "limited"
)

// IsLimitedOffer reports whether the type refers to a limited offer,
// accepting the legacy alias.
func (t PaymentType) IsLimitedOffer() bool {
	return t == TypeLimitedOffer || t == TypeLimited
}

// Normalize folds the legacy alias into the canonical value.
func (t PaymentType) Normalize() PaymentType {
	if t == TypeLimited {
		return TypeLimitedOffer
	}
	return t
}
