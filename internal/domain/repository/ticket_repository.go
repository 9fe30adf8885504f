package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
)

// TicketRepository defines the interface for multi-session ticket operations.
//
// ConsumeSession and RestoreSession take the caller's last-seen remaining
// count and update with a compare-and-swap; a stale expectation returns
// ErrStaleState so concurrent checkouts against the same ticket cannot both
// apply.
type TicketRepository interface {
	CreatePurchase(ctx context.Context, ticket *entity.CustomerTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerTicket, error)
	GetPlanByID(ctx context.Context, id uuid.UUID) (*entity.TicketPlan, error)
	GetContexts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.TicketContext, error)
	ConsumeSession(ctx context.Context, id uuid.UUID, expectedRemaining int) error
	RestoreSession(ctx context.Context, id uuid.UUID, expectedRemaining int) error
	AppendSettlement(ctx context.Context, settlement *entity.TicketPayment) error
}
