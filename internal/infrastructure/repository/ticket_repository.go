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

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) domainRepo.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) CreatePurchase(ctx context.Context, ticket *entity.CustomerTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerTicket, error) {
	var ticket entity.CustomerTicket
	err := r.db.WithContext(ctx).
		Preload("Plan").
		First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetPlanByID(ctx context.Context, id uuid.UUID) (*entity.TicketPlan, error) {
	var plan entity.TicketPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *ticketRepository) GetContexts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.TicketContext, error) {
	contexts := make(map[uuid.UUID]entity.TicketContext, len(ids))
	if len(ids) == 0 {
		return contexts, nil
	}

	var tickets []entity.CustomerTicket
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("id IN ?", ids).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}

	paid, err := r.totalPaid(ctx, ids, enum.TicketTypeRegular)
	if err != nil {
		return nil, err
	}

	for _, t := range tickets {
		contexts[t.ID] = entity.TicketContext{
			TicketID:          t.ID,
			PlanName:          t.Plan.Name,
			ServiceName:       t.Plan.ServiceName,
			TotalSessions:     t.TotalSessions,
			SessionsRemaining: t.SessionsRemaining,
			PurchasePrice:     t.PurchasePrice,
			ExpiryDate:        t.ExpiryDate,
			TotalPaid:         paid[t.ID],
		}
	}
	return contexts, nil
}

// totalPaid sums the settlement ledger per ticket id.
func (r *ticketRepository) totalPaid(ctx context.Context, ids []uuid.UUID, ticketType enum.TicketType) (map[uuid.UUID]int64, error) {
	type row struct {
		TicketID uuid.UUID
		Total    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&entity.TicketPayment{}).
		Select("ticket_id, COALESCE(SUM(amount), 0) AS total").
		Where("ticket_id IN ? AND ticket_type = ?", ids, ticketType).
		Group("ticket_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	paid := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		paid[r.TicketID] = r.Total
	}
	return paid, nil
}

func (r *ticketRepository) ConsumeSession(ctx context.Context, id uuid.UUID, expectedRemaining int) error {
	return r.swapSessions(ctx, id, expectedRemaining, expectedRemaining-1)
}

func (r *ticketRepository) RestoreSession(ctx context.Context, id uuid.UUID, expectedRemaining int) error {
	return r.swapSessions(ctx, id, expectedRemaining, expectedRemaining+1)
}

// swapSessions is an optimistic compare-and-swap: the update only applies
// when sessions_remaining still holds the caller's last-seen value.
func (r *ticketRepository) swapSessions(ctx context.Context, id uuid.UUID, expected, next int) error {
	res := r.db.WithContext(ctx).Model(&entity.CustomerTicket{}).
		Where("id = ? AND sessions_remaining = ?", id, expected).
		Update("sessions_remaining", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrStaleState
	}
	return nil
}

func (r *ticketRepository) AppendSettlement(ctx context.Context, settlement *entity.TicketPayment) error {
	return r.db.WithContext(ctx).Create(settlement).Error
}
