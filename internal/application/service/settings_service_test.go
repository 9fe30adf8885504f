package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/pkg/utils"
)

type fakeSettingsRepo struct {
	settings *entity.StoreSettings
	getErr   error
	saveErr  error
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.StoreSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, settings *entity.StoreSettings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.settings = settings
	return nil
}

func TestGetPrinterConfigDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, testLogger())

	cfg := svc.GetPrinterConfig(context.Background())

	want := DefaultPrinterConfig()
	if cfg != want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestGetPrinterConfigMergesOverride(t *testing.T) {
	repo := &fakeSettingsRepo{
		settings: &entity.StoreSettings{
			ShopName:    "Sowani 渋谷",
			PrinterType: "network",
			PrinterIP:   "192.168.1.50",
		},
	}
	svc := NewSettingsService(repo, testLogger())

	cfg := svc.GetPrinterConfig(context.Background())

	if cfg.ShopName != "Sowani 渋谷" {
		t.Errorf("ShopName = %q", cfg.ShopName)
	}
	if cfg.PrinterType != "network" || cfg.PrinterIP != "192.168.1.50" {
		t.Errorf("printer transport not merged: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.PrinterPort != 9100 {
		t.Errorf("PrinterPort = %d, want default 9100", cfg.PrinterPort)
	}
	if cfg.ShopMessage != DefaultPrinterConfig().ShopMessage {
		t.Errorf("ShopMessage = %q, want default", cfg.ShopMessage)
	}
}

func TestGetPrinterConfigIgnoresGarbage(t *testing.T) {
	repo := &fakeSettingsRepo{
		settings: &entity.StoreSettings{
			PrinterType: "fax",
			PrinterPort: -1,
		},
	}
	svc := NewSettingsService(repo, testLogger())

	cfg := svc.GetPrinterConfig(context.Background())

	if cfg.PrinterType != "display" {
		t.Errorf("PrinterType = %q, want display", cfg.PrinterType)
	}
	if cfg.PrinterPort != 9100 {
		t.Errorf("PrinterPort = %d, want 9100", cfg.PrinterPort)
	}
}

func TestGetPrinterConfigReadFailureDegradesToDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{getErr: errors.New("db down")}
	svc := NewSettingsService(repo, testLogger())

	cfg := svc.GetPrinterConfig(context.Background())
	if cfg != DefaultPrinterConfig() {
		t.Errorf("config = %+v, want defaults on read failure", cfg)
	}
}

func TestUpdatePrinterConfigPartial(t *testing.T) {
	repo := &fakeSettingsRepo{
		settings: &entity.StoreSettings{ShopName: "Sowani 渋谷", PrinterIP: "192.168.1.50"},
	}
	svc := NewSettingsService(repo, testLogger())

	ip := "10.0.0.9"
	cfg, err := svc.UpdatePrinterConfig(context.Background(), &UpdatePrinterConfigInput{PrinterIP: &ip})
	if err != nil {
		t.Fatalf("UpdatePrinterConfig: %v", err)
	}

	if cfg.PrinterIP != "10.0.0.9" {
		t.Errorf("PrinterIP = %q", cfg.PrinterIP)
	}
	if cfg.ShopName != "Sowani 渋谷" {
		t.Errorf("ShopName lost by a partial update: %q", cfg.ShopName)
	}
}

func TestUpdatePrinterConfigRejectsUnknownType(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, testLogger())

	bad := "fax"
	_, err := svc.UpdatePrinterConfig(context.Background(), &UpdatePrinterConfigInput{PrinterType: &bad})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if repo.settings != nil {
		t.Error("invalid update was persisted")
	}
}

func TestVerifyPIN(t *testing.T) {
	hash, err := utils.HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN: %v", err)
	}
	repo := &fakeSettingsRepo{settings: &entity.StoreSettings{PINHash: hash}}
	svc := NewSettingsService(repo, testLogger())
	ctx := context.Background()

	ok, err := svc.VerifyPIN(ctx, "1234")
	if err != nil || !ok {
		t.Errorf("VerifyPIN(correct) = %v, %v", ok, err)
	}
	ok, err = svc.VerifyPIN(ctx, "0000")
	if err != nil || ok {
		t.Errorf("VerifyPIN(wrong) = %v, %v", ok, err)
	}
}

func TestVerifyPINNoHashConfigured(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, testLogger())
	ok, err := svc.VerifyPIN(context.Background(), "1234")
	if err != nil {
		t.Fatalf("VerifyPIN: %v", err)
	}
	if ok {
		t.Error("an unset PIN must never verify")
	}
}

func TestRotatePIN(t *testing.T) {
	hash, _ := utils.HashPIN("1234")
	repo := &fakeSettingsRepo{settings: &entity.StoreSettings{PINHash: hash}}
	svc := NewSettingsService(repo, testLogger())
	ctx := context.Background()

	if err := svc.RotatePIN(ctx, "9999", "5678"); err == nil {
		t.Error("rotation with the wrong current PIN must fail")
	}
	if err := svc.RotatePIN(ctx, "1234", "12"); err == nil {
		t.Error("a PIN shorter than 4 digits must be rejected")
	}
	if err := svc.RotatePIN(ctx, "1234", "5678"); err != nil {
		t.Fatalf("RotatePIN: %v", err)
	}

	ok, _ := svc.VerifyPIN(ctx, "5678")
	if !ok {
		t.Error("new PIN does not verify after rotation")
	}
	ok, _ = svc.VerifyPIN(ctx, "1234")
	if ok {
		t.Error("old PIN still verifies after rotation")
	}
}
