package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/repository"
	"github.com/sowani/salon-api/pkg/apperror"
	"github.com/sowani/salon-api/pkg/utils"
)

// AuthService exchanges the store PIN for a staff JWT
type AuthService struct {
	staffRepo       repository.StaffRepository
	settingsService *SettingsService
	jwtManager      *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	staffRepo repository.StaffRepository,
	settingsService *SettingsService,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		staffRepo:       staffRepo,
		settingsService: settingsService,
		jwtManager:      jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	StaffID uuid.UUID
	PIN     string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Staff       *entity.Staff
	AccessToken string
}

// Login verifies the store PIN and issues an access token for the staff member
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	ok, err := s.settingsService.VerifyPIN(ctx, input.PIN)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInvalidCredentials
	}

	staff, err := s.staffRepo.GetByID(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || !staff.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(staff.ID, staff.Name)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Staff:       staff,
		AccessToken: token,
	}, nil
}

// ListStaff returns the active staff members selectable on the login screen
func (s *AuthService) ListStaff(ctx context.Context) ([]entity.Staff, error) {
	return s.staffRepo.ListActive(ctx)
}
