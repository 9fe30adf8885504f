package entity

import "github.com/google/uuid"

// ChildBundle is a child payment together with its grandchildren. Trees are
// bounded at three levels, so the structure is explicit rather than recursive.
type ChildBundle struct {
	Payment       Payment
	Grandchildren []Payment
}

// TransactionTree is a fully loaded payment tree rooted at one payment.
type TransactionTree struct {
	Root     Payment
	Children []ChildBundle
}

// TicketIDs returns the distinct ticket ids across all three levels.
func (t *TransactionTree) TicketIDs() []uuid.UUID {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	add := func(id *uuid.UUID) {
		if id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	add(t.Root.TicketID)
	for _, c := range t.Children {
		add(c.Payment.TicketID)
		for i := range c.Grandchildren {
			add(c.Grandchildren[i].TicketID)
		}
	}
	return ids
}

// OfferIDs returns the distinct limited offer ids across all three levels.
func (t *TransactionTree) OfferIDs() []uuid.UUID {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	add := func(id *uuid.UUID) {
		if id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	add(t.Root.LimitedOfferID)
	for _, c := range t.Children {
		add(c.Payment.LimitedOfferID)
		for i := range c.Grandchildren {
			add(c.Grandchildren[i].LimitedOfferID)
		}
	}
	return ids
}
