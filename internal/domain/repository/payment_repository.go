package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment tree data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]entity.Payment, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	Date       *time.Time
	CustomerID *uuid.UUID
	StaffID    *uuid.UUID
}
