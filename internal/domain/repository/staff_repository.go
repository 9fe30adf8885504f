package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
)

// StaffRepository defines the interface for staff lookups
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	ListActive(ctx context.Context) ([]entity.Staff, error)
}
