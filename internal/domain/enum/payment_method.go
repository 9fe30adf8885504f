package enum

// PaymentMethod is how a payment was tendered.
type PaymentMethod string

const (
	MethodCash  PaymentMethod = "cash"
	MethodCard  PaymentMethod = "card"
	MethodMixed PaymentMethod = "mixed"
)

// IsValid reports whether the method is one of the known tender methods.
func (m PaymentMethod) IsValid() bool {
	return m == MethodCash || m == MethodCard || m == MethodMixed
}

// MethodFor derives the method from cash/card totals: mixed iff both are
// positive, otherwise whichever is positive, defaulting to cash.
func MethodFor(cash, card int64) PaymentMethod {
	switch {
	case cash > 0 && card > 0:
		return MethodMixed
	case card > 0:
		return MethodCard
	default:
		return MethodCash
	}
}
