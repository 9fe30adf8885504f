package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sowani/salon-api/internal/config"
	"github.com/sowani/salon-api/internal/presentation/http/handler"
	"github.com/sowani/salon-api/pkg/utils"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{}
	cfg.App.Name = "salon-api"
	cfg.RateLimit.Requests = 100
	cfg.RateLimit.Duration = 60

	return Setup(&Handlers{
		Auth:     &handler.AuthHandler{},
		Checkout: &handler.CheckoutHandler{},
		Payment:  &handler.PaymentHandler{},
		Receipt:  &handler.ReceiptHandler{},
		Settings: &handler.SettingsHandler{},
	}, &Deps{
		JWTManager: utils.NewJWTManager("test-secret", time.Hour),
		Cfg:        cfg,
		Logger:     logger,
	})
}

func TestSetupHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestSetupProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/payments", "/api/v1/settings/printer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without a token: status = %d, want 401", path, w.Code)
		}
	}
}
