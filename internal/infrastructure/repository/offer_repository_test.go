package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/enum"
	"github.com/sowani/salon-api/pkg/apperror"
	"gorm.io/gorm"
)

func seedOffer(t *testing.T, db *gorm.DB) *entity.LimitedOffer {
	t.Helper()
	offer := &entity.LimitedOffer{Name: "夏季限定5回", ServiceName: "ヘッドスパ", Sessions: 5, SpecialPrice: 12000}
	if err := db.Create(offer).Error; err != nil {
		t.Fatalf("create offer: %v", err)
	}
	return offer
}

func TestOfferGetContextsZeroState(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOfferRepository(db)
	offer := seedOffer(t, db)

	ctxs, err := repo.GetContexts(context.Background(), []uuid.UUID{offer.ID}, uuid.New())
	if err != nil {
		t.Fatalf("GetContexts: %v", err)
	}

	c, ok := ctxs[offer.ID]
	if !ok {
		t.Fatal("a never-purchased offer must still get a context")
	}
	if c.SessionsRemaining != nil {
		t.Errorf("SessionsRemaining = %v, want nil", c.SessionsRemaining)
	}
	if c.RemainingBalance != 0 {
		t.Errorf("RemainingBalance = %d, want 0", c.RemainingBalance)
	}
	if c.OfferName != "夏季限定5回" || c.TotalSessions != 5 {
		t.Errorf("offer metadata not resolved: %+v", c)
	}
}

func TestOfferGetContextsWithPurchase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	offer := seedOffer(t, db)
	customerID := uuid.New()

	purchase := &entity.LimitedTicketPurchase{
		OfferID:           offer.ID,
		CustomerID:        customerID,
		TotalSessions:     5,
		SessionsRemaining: 3,
		PurchasePrice:     12000,
		PurchaseDate:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreatePurchase(ctx, purchase); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}
	err := db.Create(&entity.TicketPayment{
		TicketID:    purchase.ID,
		TicketType:  enum.TicketTypeLimited,
		Amount:      5000,
		PaymentDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}).Error
	if err != nil {
		t.Fatalf("create ledger row: %v", err)
	}

	ctxs, err := repo.GetContexts(ctx, []uuid.UUID{offer.ID}, customerID)
	if err != nil {
		t.Fatalf("GetContexts: %v", err)
	}
	c := ctxs[offer.ID]
	if c.SessionsRemaining == nil || *c.SessionsRemaining != 3 {
		t.Errorf("SessionsRemaining = %v, want 3", c.SessionsRemaining)
	}
	if c.RemainingBalance != 7000 {
		t.Errorf("RemainingBalance = %d, want 7000", c.RemainingBalance)
	}
}

func TestOfferLatestPurchaseWins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	offer := seedOffer(t, db)
	customerID := uuid.New()

	older := &entity.LimitedTicketPurchase{
		OfferID: offer.ID, CustomerID: customerID,
		TotalSessions: 5, SessionsRemaining: 0, PurchasePrice: 12000,
		PurchaseDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &entity.LimitedTicketPurchase{
		OfferID: offer.ID, CustomerID: customerID,
		TotalSessions: 5, SessionsRemaining: 5, PurchasePrice: 12000,
		PurchaseDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, p := range []*entity.LimitedTicketPurchase{older, newer} {
		if err := repo.CreatePurchase(ctx, p); err != nil {
			t.Fatalf("CreatePurchase: %v", err)
		}
	}

	got, err := repo.GetLatestPurchase(ctx, offer.ID, customerID)
	if err != nil {
		t.Fatalf("GetLatestPurchase: %v", err)
	}
	if got == nil || got.ID != newer.ID {
		t.Errorf("latest purchase = %v, want the newer one", got)
	}
}

func TestOfferLatestPurchaseOtherCustomerInvisible(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	offer := seedOffer(t, db)

	err := repo.CreatePurchase(ctx, &entity.LimitedTicketPurchase{
		OfferID: offer.ID, CustomerID: uuid.New(),
		TotalSessions: 5, SessionsRemaining: 5, PurchasePrice: 12000,
		PurchaseDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	got, err := repo.GetLatestPurchase(ctx, offer.ID, uuid.New())
	if err != nil {
		t.Fatalf("GetLatestPurchase: %v", err)
	}
	if got != nil {
		t.Errorf("another customer's purchase leaked: %+v", got)
	}
}

func TestOfferConsumeSessionCAS(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOfferRepository(db)
	ctx := context.Background()
	offer := seedOffer(t, db)
	customerID := uuid.New()

	purchase := &entity.LimitedTicketPurchase{
		OfferID: offer.ID, CustomerID: customerID,
		TotalSessions: 5, SessionsRemaining: 2, PurchasePrice: 12000,
		PurchaseDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreatePurchase(ctx, purchase); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	if err := repo.ConsumeSession(ctx, purchase.ID, 2); err != nil {
		t.Fatalf("ConsumeSession: %v", err)
	}
	if err := repo.ConsumeSession(ctx, purchase.ID, 2); !errors.Is(err, apperror.ErrStaleState) {
		t.Fatalf("err = %v, want ErrStaleState", err)
	}
	if err := repo.RestoreSession(ctx, purchase.ID, 1); err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}

	got, _ := repo.GetLatestPurchase(ctx, offer.ID, customerID)
	if got.SessionsRemaining != 2 {
		t.Errorf("SessionsRemaining = %d, want 2 after consume+restore", got.SessionsRemaining)
	}
}
