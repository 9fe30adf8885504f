package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/enum"
	domainRepo "github.com/sowani/salon-api/internal/domain/repository"
	"github.com/sowani/salon-api/pkg/pagination"
)

func TestPaymentTreeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	root := &entity.Payment{
		MenuName:    "カット",
		Kind:        enum.KindServiceSale,
		TotalAmount: 5000,
		CashAmount:  5000,
		PaymentDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Options: []entity.PaymentOption{
			{Name: "トリートメント", Price: 2000},
		},
	}
	if err := repo.Create(ctx, root); err != nil {
		t.Fatalf("create root: %v", err)
	}

	child := &entity.Payment{
		RelatedPaymentID: &root.ID,
		Kind:             enum.KindTicketPurchase,
		IsTicketPurchase: true,
		TotalAmount:      10000,
		PaymentDate:      root.PaymentDate,
	}
	if err := repo.Create(ctx, child); err != nil {
		t.Fatalf("create child: %v", err)
	}
	grandchild := &entity.Payment{
		RelatedPaymentID: &child.ID,
		Kind:             enum.KindTicketUse,
		PaymentDate:      root.PaymentDate,
	}
	if err := repo.Create(ctx, grandchild); err != nil {
		t.Fatalf("create grandchild: %v", err)
	}

	got, err := repo.GetByID(ctx, root.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != root.ID {
		t.Fatal("root not found")
	}
	if len(got.Options) != 1 {
		t.Errorf("options = %d, want 1", len(got.Options))
	}

	children, err := repo.GetChildren(ctx, root.ID)
	if err != nil {
		t.Fatalf("GetChildren: %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Fatalf("children = %+v, want exactly the linked child", children)
	}

	grandchildren, err := repo.GetChildren(ctx, child.ID)
	if err != nil {
		t.Fatalf("GetChildren(child): %v", err)
	}
	if len(grandchildren) != 1 || grandchildren[0].ID != grandchild.ID {
		t.Fatalf("grandchildren = %+v, want exactly one", grandchildren)
	}
}

func TestPaymentListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	staffID := uuid.New()
	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		p := &entity.Payment{
			CustomerID:  &customerID,
			StaffID:     &staffID,
			Kind:        enum.KindServiceSale,
			TotalAmount: int64(1000 * (i + 1)),
			PaymentDate: date,
		}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	other := &entity.Payment{
		Kind:        enum.KindServiceSale,
		TotalAmount: 9999,
		PaymentDate: date,
	}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("create: %v", err)
	}

	params := &domainRepo.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		CustomerID: &customerID,
	}
	payments, total, err := repo.List(ctx, params)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(payments) != 3 {
		t.Errorf("customer filter: total=%d len=%d, want 3/3", total, len(payments))
	}

	params = &domainRepo.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		StaffID:    &staffID,
	}
	_, total, err = repo.List(ctx, params)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("staff filter: total=%d, want 3", total)
	}
}

func TestPaymentListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		p := &entity.Payment{
			Kind:        enum.KindServiceSale,
			TotalAmount: int64(i),
			PaymentDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	params := &domainRepo.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{Page: 2, PerPage: 2},
	}
	payments, total, err := repo.List(ctx, params)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(payments) != 2 {
		t.Errorf("page size = %d, want 2", len(payments))
	}
}

func TestPaymentDeleteIsSoft(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := &entity.Payment{
		Kind:        enum.KindServiceSale,
		TotalAmount: 5000,
		PaymentDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Error("deleted payment still visible")
	}

	// The row survives for audit, only hidden by the soft delete.
	var count int64
	db.Unscoped().Model(&entity.Payment{}).Where("id = ?", p.ID).Count(&count)
	if count != 1 {
		t.Errorf("unscoped count = %d, want 1", count)
	}
}
