package enum

// TicketType distinguishes rows in the settlement ledger.
type TicketType string

const (
	TicketTypeRegular TicketType = "regular"
	TicketTypeLimited TicketType = "limited"
)
