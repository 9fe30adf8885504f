package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
)

func TestIdempotencyKeyRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()
	staffID := uuid.New()

	ikey := &entity.IdempotencyKey{
		Key:          "checkout-abc",
		StaffID:      staffID,
		Endpoint:     "POST /checkouts",
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
	if err := repo.Create(ctx, ikey); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ikey.ID == uuid.Nil {
		t.Error("id not generated on create")
	}

	got, err := repo.GetByKey(ctx, "checkout-abc", staffID)
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got == nil || got.ResponseCode != 201 || got.ResponseBody != `{"success":true}` {
		t.Errorf("cached response not round-tripped: %+v", got)
	}

	// Keys are scoped per staff member.
	got, err = repo.GetByKey(ctx, "checkout-abc", uuid.New())
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got != nil {
		t.Errorf("another staff member's key leaked: %+v", got)
	}
}

func TestIdempotencyDeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()
	staffID := uuid.New()

	expired := &entity.IdempotencyKey{
		Key: "old", StaffID: staffID, Endpoint: "POST /checkouts",
		ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour),
	}
	fresh := &entity.IdempotencyKey{
		Key: "new", StaffID: staffID, Endpoint: "POST /checkouts",
		ResponseCode: 201, ExpiresAt: time.Now().Add(time.Hour),
	}
	for _, k := range []*entity.IdempotencyKey{expired, fresh} {
		if err := repo.Create(ctx, k); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}

	if got, _ := repo.GetByKey(ctx, "old", staffID); got != nil {
		t.Error("expired key survived cleanup")
	}
	if got, _ := repo.GetByKey(ctx, "new", staffID); got == nil {
		t.Error("live key removed by cleanup")
	}
}
