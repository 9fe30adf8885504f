package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/repository"
	"github.com/sowani/salon-api/pkg/apperror"
	"github.com/sowani/salon-api/pkg/utils"
)

// SettingsService handles store settings: printer configuration and the
// staff PIN.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	log          *logrus.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, log *logrus.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// GetPrinterConfig returns the printer configuration: the persisted partial
// override merged over defaults. A read failure or corrupt row degrades to
// defaults with a warning, never an error.
func (s *SettingsService) GetPrinterConfig(ctx context.Context) PrinterConfig {
	cfg := DefaultPrinterConfig()

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.log.WithError(err).Warn("store settings unreadable, using printer defaults")
		return cfg
	}
	if settings == nil {
		return cfg
	}

	if settings.ShopName != "" {
		cfg.ShopName = settings.ShopName
	}
	if settings.ShopMessage != "" {
		cfg.ShopMessage = settings.ShopMessage
	}
	if settings.PrinterType == "network" || settings.PrinterType == "display" {
		cfg.PrinterType = settings.PrinterType
	}
	if settings.PrinterIP != "" {
		cfg.PrinterIP = settings.PrinterIP
	}
	if settings.PrinterPort > 0 {
		cfg.PrinterPort = settings.PrinterPort
	}
	return cfg
}

// UpdatePrinterConfigInput is a partial printer configuration override.
// Nil fields keep their current value.
type UpdatePrinterConfigInput struct {
	ShopName    *string
	ShopMessage *string
	PrinterType *string
	PrinterIP   *string
	PrinterPort *int
}

// UpdatePrinterConfig persists a partial override and returns the merged
// configuration.
func (s *SettingsService) UpdatePrinterConfig(ctx context.Context, input *UpdatePrinterConfigInput) (PrinterConfig, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return PrinterConfig{}, err
	}
	if settings == nil {
		settings = &entity.StoreSettings{}
	}

	if input.ShopName != nil {
		settings.ShopName = *input.ShopName
	}
	if input.ShopMessage != nil {
		settings.ShopMessage = *input.ShopMessage
	}
	if input.PrinterType != nil {
		if *input.PrinterType != "network" && *input.PrinterType != "display" {
			return PrinterConfig{}, apperror.NewValidationError([]apperror.FieldError{
				{Field: "printer_type", Message: "must be network or display"},
			})
		}
		settings.PrinterType = *input.PrinterType
	}
	if input.PrinterIP != nil {
		settings.PrinterIP = *input.PrinterIP
	}
	if input.PrinterPort != nil {
		settings.PrinterPort = *input.PrinterPort
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return PrinterConfig{}, err
	}
	return s.GetPrinterConfig(ctx), nil
}

// VerifyPIN checks a plain PIN against the stored hash.
func (s *SettingsService) VerifyPIN(ctx context.Context, pin string) (bool, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	if settings == nil || settings.PINHash == "" {
		return false, nil
	}
	return utils.CheckPIN(pin, settings.PINHash), nil
}

// RotatePIN replaces the staff PIN.
func (s *SettingsService) RotatePIN(ctx context.Context, currentPIN, newPIN string) error {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if settings == nil {
		settings = &entity.StoreSettings{}
	}

	if settings.PINHash != "" && !utils.CheckPIN(currentPIN, settings.PINHash) {
		return apperror.ErrInvalidCredentials
	}
	if len(newPIN) < 4 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "new_pin", Message: "must be at least 4 digits"},
		})
	}

	hash, err := utils.HashPIN(newPIN)
	if err != nil {
		return err
	}
	settings.PINHash = hash
	return s.settingsRepo.Save(ctx, settings)
}
