package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/application/service"
	"github.com/sowani/salon-api/internal/presentation/http/dto/request"
	"github.com/sowani/salon-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges the store PIN for a staff access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		response.BadRequest(c, "Invalid staff ID format")
		return
	}

	out, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		StaffID: staffID,
		PIN:     req.PIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"staff":        out.Staff,
		"access_token": out.AccessToken,
	})
}

// ListStaff returns the active staff members selectable on the login screen
func (h *AuthHandler) ListStaff(c *gin.Context) {
	staff, err := h.authService.ListStaff(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff retrieved", staff)
}
