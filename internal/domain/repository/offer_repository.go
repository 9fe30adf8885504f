package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
)

// OfferRepository defines the interface for limited offer operations.
//
// GetContexts resolves each offer against the customer's most recent purchase
// (latest purchase date wins); when no purchase exists a zero-state context is
// synthesized rather than omitted. Session mutations use the same
// compare-and-swap contract as TicketRepository.
type OfferRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LimitedOffer, error)
	GetContexts(ctx context.Context, ids []uuid.UUID, customerID uuid.UUID) (map[uuid.UUID]entity.OfferContext, error)
	CreatePurchase(ctx context.Context, purchase *entity.LimitedTicketPurchase) error
	GetLatestPurchase(ctx context.Context, offerID, customerID uuid.UUID) (*entity.LimitedTicketPurchase, error)
	ConsumeSession(ctx context.Context, purchaseID uuid.UUID, expectedRemaining int) error
	RestoreSession(ctx context.Context, purchaseID uuid.UUID, expectedRemaining int) error
}
