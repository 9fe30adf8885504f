package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/enum"
	domainRepo "github.com/sowani/salon-api/internal/domain/repository"
	"github.com/sowani/salon-api/pkg/apperror"
	"gorm.io/gorm"
)

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new limited offer repository
func NewOfferRepository(db *gorm.DB) domainRepo.OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LimitedOffer, error) {
	var offer entity.LimitedOffer
	err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &offer, err
}

func (r *offerRepository) GetContexts(ctx context.Context, ids []uuid.UUID, customerID uuid.UUID) (map[uuid.UUID]entity.OfferContext, error) {
	contexts := make(map[uuid.UUID]entity.OfferContext, len(ids))
	if len(ids) == 0 {
		return contexts, nil
	}

	var offers []entity.LimitedOffer
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&offers).Error
	if err != nil {
		return nil, err
	}

	for _, offer := range offers {
		purchase, err := r.GetLatestPurchase(ctx, offer.ID, customerID)
		if err != nil {
			return nil, err
		}

		c := entity.OfferContext{
			OfferID:       offer.ID,
			OfferName:     offer.Name,
			ServiceName:   offer.ServiceName,
			TotalSessions: offer.Sessions,
			PurchasePrice: offer.SpecialPrice,
		}
		if purchase != nil {
			remaining := purchase.SessionsRemaining
			c.SessionsRemaining = &remaining
			c.PurchasePrice = purchase.PurchasePrice

			paid, err := r.settledAmount(ctx, purchase.ID)
			if err != nil {
				return nil, err
			}
			if balance := purchase.PurchasePrice - paid; balance > 0 {
				c.RemainingBalance = balance
			}
		}
		contexts[offer.ID] = c
	}
	return contexts, nil
}

func (r *offerRepository) settledAmount(ctx context.Context, purchaseID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.TicketPayment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("ticket_id = ? AND ticket_type = ?", purchaseID, enum.TicketTypeLimited).
		Scan(&total).Error
	return total, err
}

func (r *offerRepository) CreatePurchase(ctx context.Context, purchase *entity.LimitedTicketPurchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// GetLatestPurchase returns the customer's most recent purchase of the offer,
// or nil when the customer has never purchased it. Ties on purchase date go
// to the most recently created row.
func (r *offerRepository) GetLatestPurchase(ctx context.Context, offerID, customerID uuid.UUID) (*entity.LimitedTicketPurchase, error) {
	var purchase entity.LimitedTicketPurchase
	err := r.db.WithContext(ctx).
		Where("offer_id = ? AND customer_id = ?", offerID, customerID).
		Order("purchase_date DESC, created_at DESC").
		First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *offerRepository) ConsumeSession(ctx context.Context, purchaseID uuid.UUID, expectedRemaining int) error {
	return r.swapSessions(ctx, purchaseID, expectedRemaining, expectedRemaining-1)
}

func (r *offerRepository) RestoreSession(ctx context.Context, purchaseID uuid.UUID, expectedRemaining int) error {
	return r.swapSessions(ctx, purchaseID, expectedRemaining, expectedRemaining+1)
}

func (r *offerRepository) swapSessions(ctx context.Context, purchaseID uuid.UUID, expected, next int) error {
	res := r.db.WithContext(ctx).Model(&entity.LimitedTicketPurchase{}).
		Where("id = ? AND sessions_remaining = ?", purchaseID, expected).
		Update("sessions_remaining", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrStaleState
	}
	return nil
}
