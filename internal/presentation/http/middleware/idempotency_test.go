package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
)

type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (f *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, staffID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := f.keys[key+"/"+staffID.String()]
	if !ok {
		return nil, nil
	}
	return ikey, nil
}

func (f *fakeIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	f.keys[ikey.Key+"/"+ikey.StaffID.String()] = ikey
	return nil
}

func (f *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

func newIdempotencyRouter(repo *fakeIdempotencyRepo, staffID uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/checkouts",
		func(c *gin.Context) { c.Set("staff_id", staffID) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		handler,
	)
	return r
}

func TestIdempotencyRejectsMissingKey(t *testing.T) {
	router := newIdempotencyRouter(newFakeIdempotencyRepo(), uuid.New(), func(c *gin.Context) {
		t.Error("handler must not run without an Idempotency-Key")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkouts", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	staffID := uuid.New()
	calls := 0
	router := newIdempotencyRouter(repo, staffID, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"success": true, "call": calls})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/checkouts", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "abc-123")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("request %d: status = %d, want 201", i, w.Code)
		}
		if i == 1 {
			if calls != 1 {
				t.Errorf("handler ran %d times, want 1", calls)
			}
			if w.Header().Get("X-Idempotency-Replayed") != "true" {
				t.Error("replayed response missing the replay header")
			}
			if !strings.Contains(w.Body.String(), `"call":1`) {
				t.Errorf("replay body = %s, want the first response", w.Body.String())
			}
		}
	}
}

func TestIdempotencyDistinctKeysNotReplayed(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	staffID := uuid.New()
	calls := 0
	router := newIdempotencyRouter(repo, staffID, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	for _, key := range []string{"key-1", "key-2"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/checkouts", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", key)
		router.ServeHTTP(w, req)
	}

	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}

func TestIdempotencyErrorResponsesNotCached(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	staffID := uuid.New()
	calls := 0
	router := newIdempotencyRouter(repo, staffID, func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/checkouts", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "retry-after-failure")
		router.ServeHTTP(w, req)
		if i == 1 && w.Code != http.StatusCreated {
			t.Errorf("retry status = %d, want 201 (failures must not be cached)", w.Code)
		}
	}

	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}

func TestIdempotencyExpiredKeyNotReplayed(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	staffID := uuid.New()
	repo.keys["old-key/"+staffID.String()] = &entity.IdempotencyKey{
		Key:          "old-key",
		StaffID:      staffID,
		ResponseCode: http.StatusCreated,
		ResponseBody: `{"success":true,"stale":true}`,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}

	calls := 0
	router := newIdempotencyRouter(repo, staffID, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkouts", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "old-key")
	router.ServeHTTP(w, req)

	if calls != 1 {
		t.Errorf("expired key replayed instead of re-running the handler")
	}
	if strings.Contains(w.Body.String(), "stale") {
		t.Error("stale cached body returned")
	}
}
