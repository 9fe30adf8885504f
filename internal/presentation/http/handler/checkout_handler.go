package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/application/service"
	"github.com/sowani/salon-api/internal/domain/enum"
	"github.com/sowani/salon-api/internal/presentation/http/dto/request"
	"github.com/sowani/salon-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Create runs a checkout. Responds 201 when every line persisted and 207
// when the tree was created but some sub-requests failed.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	cart, err := buildCart(c, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), cart)
	if err != nil {
		response.Error(c, err)
		return
	}

	if len(result.LineErrors) > 0 {
		response.Success(c, http.StatusMultiStatus, "Checkout completed with errors", result)
		return
	}
	response.Created(c, "Checkout completed", result)
}

func buildCart(c *gin.Context, req *request.CheckoutRequest) (*service.CheckoutCart, error) {
	cart := &service.CheckoutCart{
		StaffID:        GetStaffID(c),
		Method:         enum.PaymentMethod(req.PaymentMethod),
		DiscountAmount: req.DiscountAmount,
		ReceivedAmount: req.ReceivedAmount,
		CashAmount:     req.CashAmount,
		CardAmount:     req.CardAmount,
	}

	if req.CustomerID != "" {
		id, err := parseID(req.CustomerID, "customer_id")
		if err != nil {
			return nil, err
		}
		cart.CustomerID = id
	}

	if req.PaymentDate != "" {
		// binding already checked the layout
		date, _ := time.Parse("2006-01-02", req.PaymentDate)
		cart.PaymentDate = date
	}

	if req.Selection != nil {
		sel := &service.SelectionLine{
			MenuName:       req.Selection.MenuName,
			PaymentType:    enum.PaymentType(req.Selection.PaymentType).Normalize(),
			Price:          req.Selection.Price,
			UseImmediately: req.Selection.UseImmediately,
		}
		if req.Selection.OfferID != "" {
			id, err := parseID(req.Selection.OfferID, "selection.offer_id")
			if err != nil {
				return nil, err
			}
			sel.OfferID = id
		}
		cart.Selection = sel
	}

	for _, u := range req.TicketUses {
		id, err := parseID(u.TicketID, "ticket_uses.ticket_id")
		if err != nil {
			return nil, err
		}
		cart.TicketUses = append(cart.TicketUses, service.TicketUseEntry{TicketID: *id})
	}

	for _, u := range req.OfferUses {
		id, err := parseID(u.OfferID, "offer_uses.offer_id")
		if err != nil {
			return nil, err
		}
		cart.OfferUses = append(cart.OfferUses, service.OfferUseEntry{OfferID: *id})
	}

	for _, p := range req.Purchases {
		line := service.PurchaseLine{
			PaymentAmount:  p.PaymentAmount,
			UseImmediately: p.UseImmediately,
		}
		if p.PlanID != "" {
			id, err := parseID(p.PlanID, "purchases.plan_id")
			if err != nil {
				return nil, err
			}
			line.PlanID = id
		}
		if p.OfferID != "" {
			id, err := parseID(p.OfferID, "purchases.offer_id")
			if err != nil {
				return nil, err
			}
			line.OfferID = id
		}
		cart.Purchases = append(cart.Purchases, line)
	}

	for _, sl := range req.Settlements {
		id, err := parseID(sl.TicketID, "settlements.ticket_id")
		if err != nil {
			return nil, err
		}
		ticketType := enum.TicketType(sl.TicketType)
		if ticketType == "" {
			ticketType = enum.TicketTypeRegular
		}
		cart.Settlements = append(cart.Settlements, service.SettlementLine{
			TicketID:   *id,
			TicketType: ticketType,
			Amount:     sl.Amount,
		})
	}

	for _, o := range req.Options {
		cart.Options = append(cart.Options, service.OptionLine{
			Name:   o.Name,
			Price:  o.Price,
			IsFree: o.IsFree,
		})
	}

	return cart, nil
}

func parseID(raw, field string) (*uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &invalidIDError{field: field}
	}
	return &id, nil
}

type invalidIDError struct {
	field string
}

func (e *invalidIDError) Error() string {
	return "Invalid UUID in " + e.field
}
