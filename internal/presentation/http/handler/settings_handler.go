package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sowani/salon-api/internal/application/service"
	"github.com/sowani/salon-api/internal/presentation/http/dto/request"
	"github.com/sowani/salon-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles store settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
	printerService  *service.PrinterService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService, printerService *service.PrinterService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		printerService:  printerService,
	}
}

// GetPrinter returns the merged printer configuration
func (h *SettingsHandler) GetPrinter(c *gin.Context) {
	config := h.settingsService.GetPrinterConfig(c.Request.Context())
	response.OK(c, "Printer settings retrieved", config)
}

// UpdatePrinter applies a partial printer settings override
func (h *SettingsHandler) UpdatePrinter(c *gin.Context) {
	var req request.UpdatePrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	config, err := h.settingsService.UpdatePrinterConfig(c.Request.Context(), &service.UpdatePrinterConfigInput{
		ShopName:    req.ShopName,
		ShopMessage: req.ShopMessage,
		PrinterType: req.PrinterType,
		PrinterIP:   req.PrinterIP,
		PrinterPort: req.PrinterPort,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Printer settings updated", config)
}

// TestPrint sends a short test page to the configured printer. Unlike
// receipt printing, transport failures are surfaced to the caller.
func (h *SettingsHandler) TestPrint(c *gin.Context) {
	if err := h.printerService.TestPrint(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Test page printed", nil)
}

// UpdatePIN rotates the store PIN
func (h *SettingsHandler) UpdatePIN(c *gin.Context) {
	var req request.UpdatePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.settingsService.RotatePIN(c.Request.Context(), req.CurrentPIN, req.NewPIN); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "PIN updated", nil)
}
