package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/enum"
	"github.com/sowani/salon-api/internal/domain/repository"
	"github.com/sowani/salon-api/pkg/apperror"
)

// PaymentService handles payment listing and cancellation
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	ticketRepo  repository.TicketRepository
	offerRepo   repository.OfferRepository
	log         *logrus.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	ticketRepo repository.TicketRepository,
	offerRepo repository.OfferRepository,
	log *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		ticketRepo:  ticketRepo,
		offerRepo:   offerRepo,
		log:         log,
	}
}

// List returns payments filtered by date, customer and staff
func (s *PaymentService) List(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	return s.paymentRepo.List(ctx, params)
}

// Cancel soft-deletes a payment. For session uses the consumed session is
// restored with a compare-and-swap, so a concurrent use of the same ticket
// cannot be silently overwritten.
func (s *PaymentService) Cancel(ctx context.Context, id uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}

	switch payment.Kind {
	case enum.KindTicketUse:
		if payment.TicketID != nil {
			ticket, err := s.ticketRepo.GetByID(ctx, *payment.TicketID)
			if err != nil {
				return err
			}
			if ticket != nil {
				if err := s.ticketRepo.RestoreSession(ctx, ticket.ID, ticket.SessionsRemaining); err != nil {
					return err
				}
			}
		}
	case enum.KindLimitedOfferUse:
		if payment.LimitedOfferID != nil && payment.CustomerID != nil {
			purchase, err := s.offerRepo.GetLatestPurchase(ctx, *payment.LimitedOfferID, *payment.CustomerID)
			if err != nil {
				return err
			}
			if purchase != nil {
				if err := s.offerRepo.RestoreSession(ctx, purchase.ID, purchase.SessionsRemaining); err != nil {
					return err
				}
			}
		}
	}

	s.log.WithField("payment_id", id).Info("payment cancelled")
	return s.paymentRepo.Delete(ctx, id)
}
