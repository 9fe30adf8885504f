package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/application/service"
	"github.com/sowani/salon-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	printerService *service.PrinterService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, printerService *service.PrinterService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		printerService: printerService,
	}
}

// Get returns the aggregated receipt view for a payment tree
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID format")
		return
	}

	view, err := h.receiptService.BuildReceiptView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved", view)
}

// Print renders the receipt and sends it to the configured printer. A
// transport failure still succeeds with the markup fallback.
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID format")
		return
	}

	result, err := h.printerService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt processed", result)
}
