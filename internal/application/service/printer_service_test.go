package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/enum"
)

func newTestPrinter(settings *entity.StoreSettings, send SendFunc) (*PrinterService, *fakePaymentRepo) {
	paymentRepo := &fakePaymentRepo{}
	receiptService := NewReceiptService(paymentRepo, newFakeTicketRepo(), newFakeOfferRepo())
	settingsService := NewSettingsService(&fakeSettingsRepo{settings: settings}, testLogger())
	return NewPrinterService(receiptService, settingsService, send, testLogger()), paymentRepo
}

func seedPayment(repo *fakePaymentRepo) uuid.UUID {
	p := &entity.Payment{
		MenuName:    "カット",
		Kind:        enum.KindServiceSale,
		TotalAmount: 5000,
		CashAmount:  5000,
		PaymentDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.Create(context.Background(), p)
	return p.ID
}

func TestPrintReceiptDisplayMode(t *testing.T) {
	var sent bool
	svc, paymentRepo := newTestPrinter(nil, func([]byte, string, int, time.Duration) error {
		sent = true
		return nil
	})
	id := seedPayment(paymentRepo)

	result, err := svc.PrintReceipt(context.Background(), id)
	if err != nil {
		t.Fatalf("PrintReceipt: %v", err)
	}
	if result.Printed {
		t.Error("display mode must not report Printed")
	}
	if result.Markup == "" {
		t.Error("display mode must return the markup rendering")
	}
	if sent {
		t.Error("display mode must not touch the transport")
	}
}

func TestPrintReceiptNetworkSuccess(t *testing.T) {
	settings := &entity.StoreSettings{PrinterType: "network", PrinterIP: "192.168.1.50", PrinterPort: 9100}
	var gotHost string
	var gotPort int
	svc, paymentRepo := newTestPrinter(settings, func(data []byte, host string, port int, _ time.Duration) error {
		if len(data) == 0 {
			t.Error("empty print job")
		}
		gotHost, gotPort = host, port
		return nil
	})
	id := seedPayment(paymentRepo)

	result, err := svc.PrintReceipt(context.Background(), id)
	if err != nil {
		t.Fatalf("PrintReceipt: %v", err)
	}
	if !result.Printed || result.Markup != "" {
		t.Errorf("result = %+v, want Printed with no markup", result)
	}
	if gotHost != "192.168.1.50" || gotPort != 9100 {
		t.Errorf("sent to %s:%d", gotHost, gotPort)
	}
}

func TestPrintReceiptTransportFailureFallsBack(t *testing.T) {
	settings := &entity.StoreSettings{PrinterType: "network", PrinterIP: "192.168.1.50", PrinterPort: 9100}
	svc, paymentRepo := newTestPrinter(settings, func([]byte, string, int, time.Duration) error {
		return errors.New("connection refused")
	})
	id := seedPayment(paymentRepo)

	result, err := svc.PrintReceipt(context.Background(), id)
	if err != nil {
		t.Fatalf("transport failure must not surface: %v", err)
	}
	if result.Printed {
		t.Error("failed transmission reported as printed")
	}
	if result.Markup == "" {
		t.Error("fallback markup missing")
	}
}

func TestPrintReceiptUnknownPayment(t *testing.T) {
	svc, _ := newTestPrinter(nil, nil)

	if _, err := svc.PrintReceipt(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestTestPrintRequiresNetworkPrinter(t *testing.T) {
	svc, _ := newTestPrinter(nil, func([]byte, string, int, time.Duration) error { return nil })

	if err := svc.TestPrint(context.Background()); err == nil {
		t.Fatal("expected an error without a network printer")
	}
}

func TestTestPrintSurfacesTransportError(t *testing.T) {
	settings := &entity.StoreSettings{PrinterType: "network", PrinterIP: "192.168.1.50", PrinterPort: 9100}
	svc, _ := newTestPrinter(settings, func([]byte, string, int, time.Duration) error {
		return errors.New("connection refused")
	})

	if err := svc.TestPrint(context.Background()); err == nil {
		t.Fatal("test print must surface the transport error")
	}
}
