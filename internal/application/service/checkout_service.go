package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/enum"
	"github.com/sowani/salon-api/internal/domain/repository"
	"github.com/sowani/salon-api/pkg/apperror"
)

// SelectionLine is the cart's optional single selection: a menu item, a
// coupon, or a limited offer purchase (OfferID set).
type SelectionLine struct {
	MenuName       string
	PaymentType    enum.PaymentType
	Price          int64
	OfferID        *uuid.UUID
	UseImmediately bool
}

// TicketUseEntry consumes one session from a customer ticket.
type TicketUseEntry struct {
	TicketID uuid.UUID
}

// OfferUseEntry consumes one session from the customer's latest purchase of
// a limited offer. When no purchase exists the use is still recorded, with
// no session to decrement.
type OfferUseEntry struct {
	OfferID uuid.UUID
}

// PurchaseLine buys a new ticket (PlanID) or limited offer (OfferID),
// optionally consuming the first session immediately. PaymentAmount is what
// is paid now and may be less than the full price.
type PurchaseLine struct {
	PlanID         *uuid.UUID
	OfferID        *uuid.UUID
	PaymentAmount  int64
	UseImmediately bool
}

// SettlementLine pays down outstanding balance on a previously purchased
// ticket or offer. TicketID is the customer ticket id for regular tickets
// and the purchase record id for limited offers.
type SettlementLine struct {
	TicketID   uuid.UUID
	TicketType enum.TicketType
	Amount     int64
}

// OptionLine is a paid or free add-on sold with the selection.
type OptionLine struct {
	Name   string
	Price  int64
	IsFree bool
}

// CheckoutCart is the full checkout input.
type CheckoutCart struct {
	CustomerID *uuid.UUID
	StaffID    *uuid.UUID

	Selection   *SelectionLine
	TicketUses  []TicketUseEntry
	OfferUses   []OfferUseEntry
	Purchases   []PurchaseLine
	Settlements []SettlementLine
	Options     []OptionLine

	Method         enum.PaymentMethod
	DiscountAmount int64
	ReceivedAmount int64
	CashAmount     int64
	CardAmount     int64

	PaymentDate time.Time
}

// CheckoutResult reports the created tree root and any sub-requests that
// failed after persistence began. Callers retry only the failed lines.
type CheckoutResult struct {
	MainPaymentID uuid.UUID           `json:"main_payment_id"`
	Total         int64               `json:"total"`
	LineErrors    []apperror.LineError `json:"line_errors,omitempty"`
}

// CheckoutService classifies a cart into a scenario, validates tender, and
// issues the strictly sequential persistence calls that create the payment
// tree. Later calls need the root id produced by the first, so there is no
// parallel fan-out within one checkout.
type CheckoutService struct {
	paymentRepo repository.PaymentRepository
	ticketRepo  repository.TicketRepository
	offerRepo   repository.OfferRepository
	log         *logrus.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	paymentRepo repository.PaymentRepository,
	ticketRepo repository.TicketRepository,
	offerRepo repository.OfferRepository,
	log *logrus.Logger,
) *CheckoutService {
	return &CheckoutService{
		paymentRepo: paymentRepo,
		ticketRepo:  ticketRepo,
		offerRepo:   offerRepo,
		log:         log,
	}
}

// Checkout runs one checkout. Validation failures abort before any
// persistence call; once persistence begins, per-line failures are collected
// and the remaining lines are still attempted.
func (s *CheckoutService) Checkout(ctx context.Context, cart *CheckoutCart) (*CheckoutResult, error) {
	if cart.PaymentDate.IsZero() {
		cart.PaymentDate = time.Now()
	}
	if cart.Method == "" {
		cart.Method = enum.MethodCash
	}

	hasUse := len(cart.TicketUses) > 0 || len(cart.OfferUses) > 0

	switch {
	case len(cart.Purchases) > 0 && cart.Selection == nil && !hasUse:
		return s.purchaseOnly(ctx, cart)
	case len(cart.Settlements) > 0 && cart.Selection == nil && !hasUse && len(cart.Purchases) == 0:
		return s.settlementOnly(ctx, cart)
	case cart.Selection != nil || hasUse:
		return s.combined(ctx, cart)
	default:
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "cart", Message: "cart is empty"},
		})
	}
}

// purchaseOnly persists new ticket/offer purchase lines, linking all but the
// first to the first-created payment.
func (s *CheckoutService) purchaseOnly(ctx context.Context, cart *CheckoutCart) (*CheckoutResult, error) {
	var total int64
	for _, p := range cart.Purchases {
		total += p.PaymentAmount
	}
	if err := s.validateTender(cart, total); err != nil {
		return nil, err
	}

	allocLines := make([]AllocationLine, len(cart.Purchases))
	for i, p := range cart.Purchases {
		allocLines[i] = AllocationLine{ID: uuid.New(), Amount: p.PaymentAmount}
	}
	splits := Allocate(allocLines, cart.CashAmount, cart.CardAmount, cart.Method)

	result := &CheckoutResult{Total: total}
	var mainID *uuid.UUID
	for i, line := range cart.Purchases {
		id, err := s.persistPurchase(ctx, cart, line, splits[allocLines[i].ID], mainID)
		if err != nil {
			s.log.WithError(err).WithField("line", i).Warn("purchase line failed")
			result.LineErrors = append(result.LineErrors, apperror.NewLineError(i, "purchase", err))
			continue
		}
		if mainID == nil {
			mainID = &id
			result.MainPaymentID = id
		}
	}
	return result, nil
}

// settlementOnly persists each settlement as a dual record: a ledger append
// and a linked Payment row flagged as a remaining payment. The duplication is
// intentional; revenue reporting reads the Payment rows.
func (s *CheckoutService) settlementOnly(ctx context.Context, cart *CheckoutCart) (*CheckoutResult, error) {
	var total int64
	for _, l := range cart.Settlements {
		total += l.Amount
	}
	if err := s.validateTender(cart, total); err != nil {
		return nil, err
	}

	allocLines := make([]AllocationLine, len(cart.Settlements))
	for i, l := range cart.Settlements {
		allocLines[i] = AllocationLine{ID: uuid.New(), Amount: l.Amount}
	}
	splits := Allocate(allocLines, cart.CashAmount, cart.CardAmount, cart.Method)

	result := &CheckoutResult{Total: total}
	var mainID *uuid.UUID
	for i, line := range cart.Settlements {
		id, err := s.persistSettlement(ctx, cart, line, splits[allocLines[i].ID], mainID)
		if err != nil {
			s.log.WithError(err).WithField("line", i).Warn("settlement line failed")
			result.LineErrors = append(result.LineErrors, apperror.NewLineError(i, "settlement", err))
			continue
		}
		if mainID == nil {
			mainID = &id
			result.MainPaymentID = id
		}
	}
	return result, nil
}

// combined handles a selection and/or session uses, with optional purchase
// and settlement lines hanging off the root.
func (s *CheckoutService) combined(ctx context.Context, cart *CheckoutCart) (*CheckoutResult, error) {
	var base int64
	if cart.Selection != nil {
		base = cart.Selection.Price
	}

	var optionTotal int64
	for _, o := range cart.Options {
		if !o.IsFree {
			optionTotal += o.Price
		}
	}
	var purchaseTotal int64
	for _, p := range cart.Purchases {
		purchaseTotal += p.PaymentAmount
	}

	total := base + purchaseTotal + optionTotal - cart.DiscountAmount
	if total < 0 {
		total = 0
	}
	if err := s.validateTender(cart, total); err != nil {
		return nil, err
	}
	if err := s.validateUses(ctx, cart); err != nil {
		return nil, err
	}

	rootAmount := base + optionTotal - cart.DiscountAmount
	if rootAmount < 0 {
		rootAmount = 0
	}

	// One allocation across the root and every linked money line, so a
	// mixed tender is split proportionally over the whole transaction.
	rootAllocID := uuid.New()
	allocLines := []AllocationLine{{ID: rootAllocID, Amount: rootAmount}}
	settleAllocIDs := make([]uuid.UUID, len(cart.Settlements))
	for i, l := range cart.Settlements {
		settleAllocIDs[i] = uuid.New()
		allocLines = append(allocLines, AllocationLine{ID: settleAllocIDs[i], Amount: l.Amount})
	}
	purchaseAllocIDs := make([]uuid.UUID, len(cart.Purchases))
	for i, p := range cart.Purchases {
		purchaseAllocIDs[i] = uuid.New()
		allocLines = append(allocLines, AllocationLine{ID: purchaseAllocIDs[i], Amount: p.PaymentAmount})
	}
	splits := Allocate(allocLines, cart.CashAmount, cart.CardAmount, cart.Method)

	rootID, err := s.persistRoot(ctx, cart, rootAmount, total, splits[rootAllocID])
	if err != nil {
		return nil, err
	}
	result := &CheckoutResult{MainPaymentID: rootID, Total: total}

	// Additional uses beyond the one represented by the root.
	line := 0
	extraTicketUses := cart.TicketUses
	extraOfferUses := cart.OfferUses
	if cart.Selection == nil {
		if len(extraTicketUses) > 0 {
			extraTicketUses = extraTicketUses[1:]
		} else if len(extraOfferUses) > 0 {
			extraOfferUses = extraOfferUses[1:]
		}
	}
	for _, use := range extraTicketUses {
		if err := s.persistTicketUse(ctx, cart, use.TicketID, &rootID); err != nil {
			s.log.WithError(err).WithField("ticket_id", use.TicketID).Warn("ticket use failed")
			result.LineErrors = append(result.LineErrors, apperror.NewLineError(line, "ticket_use", err))
		}
		line++
	}
	for _, use := range extraOfferUses {
		if err := s.persistOfferUse(ctx, cart, use.OfferID, &rootID); err != nil {
			s.log.WithError(err).WithField("offer_id", use.OfferID).Warn("offer use failed")
			result.LineErrors = append(result.LineErrors, apperror.NewLineError(line, "offer_use", err))
		}
		line++
	}
	for i, l := range cart.Settlements {
		if _, err := s.persistSettlement(ctx, cart, l, splits[settleAllocIDs[i]], &rootID); err != nil {
			s.log.WithError(err).WithField("ticket_id", l.TicketID).Warn("settlement failed")
			result.LineErrors = append(result.LineErrors, apperror.NewLineError(line, "settlement", err))
		}
		line++
	}
	for i, p := range cart.Purchases {
		if _, err := s.persistPurchase(ctx, cart, p, splits[purchaseAllocIDs[i]], &rootID); err != nil {
			s.log.WithError(err).WithField("line", i).Warn("purchase failed")
			result.LineErrors = append(result.LineErrors, apperror.NewLineError(line, "purchase", err))
		}
		line++
	}
	return result, nil
}

// validateTender checks tender sufficiency once, up front. Nothing is
// persisted when it fails.
func (s *CheckoutService) validateTender(cart *CheckoutCart, total int64) error {
	var fieldErrors []apperror.FieldError
	if !cart.Method.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "payment_method", Message: "must be cash, card or mixed",
		})
	}
	switch cart.Method {
	case enum.MethodCash:
		if cart.ReceivedAmount < total {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "received_amount", Message: "received amount is below the total",
			})
		}
		cart.CashAmount = total
	case enum.MethodCard:
		cart.CardAmount = total
	case enum.MethodMixed:
		if cart.CashAmount+cart.CardAmount < total {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "cash_amount", Message: "cash and card together are below the total",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// validateUses confirms every referenced ticket exists and has sessions left
// before anything is written.
func (s *CheckoutService) validateUses(ctx context.Context, cart *CheckoutCart) error {
	var fieldErrors []apperror.FieldError
	for _, use := range cart.TicketUses {
		ticket, err := s.ticketRepo.GetByID(ctx, use.TicketID)
		if err != nil {
			return err
		}
		if ticket == nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "ticket_id", Message: "ticket " + use.TicketID.String() + " not found",
			})
			continue
		}
		if ticket.SessionsRemaining <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "ticket_id", Message: "ticket " + use.TicketID.String() + " has no sessions remaining",
			})
		}
	}
	for _, use := range cart.OfferUses {
		offer, err := s.offerRepo.GetByID(ctx, use.OfferID)
		if err != nil {
			return err
		}
		if offer == nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "offer_id", Message: "offer " + use.OfferID.String() + " not found",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// persistRoot creates the root payment: the selection if present, otherwise
// the first ticket or offer use.
func (s *CheckoutService) persistRoot(ctx context.Context, cart *CheckoutCart, rootAmount, total int64, split Split) (uuid.UUID, error) {
	if cart.Selection != nil {
		if cart.Selection.OfferID != nil {
			return s.persistOfferPurchaseRoot(ctx, cart, total, split)
		}
		return s.persistSaleRoot(ctx, cart, rootAmount, split)
	}
	if len(cart.TicketUses) > 0 {
		return s.persistTicketUseRoot(ctx, cart, cart.TicketUses[0].TicketID)
	}
	return s.persistOfferUseRoot(ctx, cart, cart.OfferUses[0].OfferID)
}

func (s *CheckoutService) persistSaleRoot(ctx context.Context, cart *CheckoutCart, rootAmount int64, split Split) (uuid.UUID, error) {
	sel := cart.Selection
	payment := &entity.Payment{
		CustomerID:      cart.CustomerID,
		StaffID:         cart.StaffID,
		MenuName:        sel.MenuName,
		PaymentType:     sel.PaymentType.Normalize(),
		Kind:            enum.KindServiceSale,
		TotalAmount:     rootAmount,
		CashAmount:      split.Cash,
		CardAmount:      split.Card,
		DiscountAmount:  cart.DiscountAmount,
		ServiceSubtotal: sel.Price,
		PaymentMethod:   cart.Method,
		PaymentDate:     cart.PaymentDate,
	}
	for _, o := range cart.Options {
		payment.Options = append(payment.Options, entity.PaymentOption{
			Name: o.Name, Price: o.Price, IsFree: o.IsFree,
		})
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return uuid.Nil, err
	}
	return payment.ID, nil
}

// persistOfferPurchaseRoot handles a limited offer purchased as the cart's
// selection: the purchase record, its ledger entry, and the root payment.
func (s *CheckoutService) persistOfferPurchaseRoot(ctx context.Context, cart *CheckoutCart, total int64, split Split) (uuid.UUID, error) {
	sel := cart.Selection
	id, err := s.persistPurchase(ctx, cart, PurchaseLine{
		OfferID:        sel.OfferID,
		PaymentAmount:  total,
		UseImmediately: sel.UseImmediately,
	}, split, nil)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *CheckoutService) persistTicketUseRoot(ctx context.Context, cart *CheckoutCart, ticketID uuid.UUID) (uuid.UUID, error) {
	return s.createTicketUse(ctx, cart, ticketID, nil)
}

func (s *CheckoutService) persistTicketUse(ctx context.Context, cart *CheckoutCart, ticketID uuid.UUID, relatedID *uuid.UUID) error {
	_, err := s.createTicketUse(ctx, cart, ticketID, relatedID)
	return err
}

// createTicketUse decrements the ticket with a compare-and-swap against the
// last-seen session count, then records the zero-amount use payment.
func (s *CheckoutService) createTicketUse(ctx context.Context, cart *CheckoutCart, ticketID uuid.UUID, relatedID *uuid.UUID) (uuid.UUID, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return uuid.Nil, err
	}
	if ticket == nil {
		return uuid.Nil, apperror.NewNotFoundError("Ticket")
	}

	// Snapshot the post-decrement count before the CAS call so it does not
	// depend on whether the repository mutates the loaded entity.
	remaining := ticket.SessionsRemaining - 1
	if err := s.ticketRepo.ConsumeSession(ctx, ticketID, ticket.SessionsRemaining); err != nil {
		return uuid.Nil, err
	}

	balance, err := s.ticketBalance(ctx, ticketID, ticket.PurchasePrice)
	if err != nil {
		return uuid.Nil, err
	}

	payment := &entity.Payment{
		RelatedPaymentID:  relatedID,
		CustomerID:        cart.CustomerID,
		StaffID:           cart.StaffID,
		MenuName:          ticket.Plan.Name,
		PaymentType:       enum.TypeTicket,
		Kind:              enum.KindTicketUse,
		TicketID:          &ticketID,
		PaymentMethod:     cart.Method,
		SessionsAtPayment: &remaining,
		BalanceAtPayment:  &balance,
		PaymentDate:       cart.PaymentDate,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return uuid.Nil, err
	}
	return payment.ID, nil
}

func (s *CheckoutService) persistOfferUseRoot(ctx context.Context, cart *CheckoutCart, offerID uuid.UUID) (uuid.UUID, error) {
	return s.createOfferUse(ctx, cart, offerID, nil)
}

func (s *CheckoutService) persistOfferUse(ctx context.Context, cart *CheckoutCart, offerID uuid.UUID, relatedID *uuid.UUID) error {
	_, err := s.createOfferUse(ctx, cart, offerID, relatedID)
	return err
}

// createOfferUse records a zero-amount limited offer use. When the customer
// has a purchase on record its sessions are decremented with a
// compare-and-swap; without one the use is still recorded, with no snapshot.
func (s *CheckoutService) createOfferUse(ctx context.Context, cart *CheckoutCart, offerID uuid.UUID, relatedID *uuid.UUID) (uuid.UUID, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return uuid.Nil, err
	}
	if offer == nil {
		return uuid.Nil, apperror.NewNotFoundError("Limited offer")
	}

	payment := &entity.Payment{
		RelatedPaymentID: relatedID,
		CustomerID:       cart.CustomerID,
		StaffID:          cart.StaffID,
		MenuName:         offer.Name,
		PaymentType:      enum.TypeLimitedOffer,
		Kind:             enum.KindLimitedOfferUse,
		LimitedOfferID:   &offerID,
		PaymentMethod:    cart.Method,
		PaymentDate:      cart.PaymentDate,
	}

	if cart.CustomerID != nil {
		purchase, err := s.offerRepo.GetLatestPurchase(ctx, offerID, *cart.CustomerID)
		if err != nil {
			return uuid.Nil, err
		}
		if purchase != nil {
			remaining := purchase.SessionsRemaining - 1
			if err := s.offerRepo.ConsumeSession(ctx, purchase.ID, purchase.SessionsRemaining); err != nil {
				return uuid.Nil, err
			}
			payment.SessionsAtPayment = &remaining
		}
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return uuid.Nil, err
	}
	return payment.ID, nil
}

// persistPurchase creates the catalog purchase record, the initial ledger
// entry, and the purchase-flagged payment. With UseImmediately set the
// purchase starts one session down and a zero-amount use payment is linked
// under the purchase payment.
func (s *CheckoutService) persistPurchase(ctx context.Context, cart *CheckoutCart, line PurchaseLine, split Split, relatedID *uuid.UUID) (uuid.UUID, error) {
	if cart.CustomerID == nil {
		return uuid.Nil, errors.New("customer is required for a ticket or offer purchase")
	}

	switch {
	case line.PlanID != nil:
		return s.persistTicketPurchase(ctx, cart, line, split, relatedID)
	case line.OfferID != nil:
		return s.persistLimitedPurchase(ctx, cart, line, split, relatedID)
	default:
		return uuid.Nil, errors.New("purchase line has neither a plan nor an offer")
	}
}

func (s *CheckoutService) persistTicketPurchase(ctx context.Context, cart *CheckoutCart, line PurchaseLine, split Split, relatedID *uuid.UUID) (uuid.UUID, error) {
	plan, err := s.ticketRepo.GetPlanByID(ctx, *line.PlanID)
	if err != nil {
		return uuid.Nil, err
	}
	if plan == nil {
		return uuid.Nil, apperror.NewNotFoundError("Ticket plan")
	}

	sessions := plan.Sessions
	if line.UseImmediately {
		sessions--
	}
	ticket := &entity.CustomerTicket{
		CustomerID:        *cart.CustomerID,
		PlanID:            plan.ID,
		TotalSessions:     plan.Sessions,
		SessionsRemaining: sessions,
		PurchasePrice:     plan.Price,
		PurchaseDate:      cart.PaymentDate,
	}
	if plan.ValidityMonths > 0 {
		expiry := cart.PaymentDate.AddDate(0, plan.ValidityMonths, 0)
		ticket.ExpiryDate = &expiry
	}
	if err := s.ticketRepo.CreatePurchase(ctx, ticket); err != nil {
		return uuid.Nil, err
	}

	if line.PaymentAmount > 0 {
		err = s.ticketRepo.AppendSettlement(ctx, &entity.TicketPayment{
			TicketID:    ticket.ID,
			TicketType:  enum.TicketTypeRegular,
			Amount:      line.PaymentAmount,
			StaffID:     cart.StaffID,
			PaymentDate: cart.PaymentDate,
		})
		if err != nil {
			return uuid.Nil, err
		}
	}

	balance := plan.Price - line.PaymentAmount
	payment := &entity.Payment{
		RelatedPaymentID:  relatedID,
		CustomerID:        cart.CustomerID,
		StaffID:           cart.StaffID,
		MenuName:          plan.Name,
		PaymentType:       enum.TypeTicket,
		Kind:              enum.KindTicketPurchase,
		IsTicketPurchase:  true,
		TicketID:          &ticket.ID,
		TotalAmount:       line.PaymentAmount,
		CashAmount:        split.Cash,
		CardAmount:        split.Card,
		PaymentMethod:     cart.Method,
		SessionsAtPayment: &sessions,
		BalanceAtPayment:  &balance,
		PaymentDate:       cart.PaymentDate,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return uuid.Nil, err
	}

	if line.UseImmediately {
		if err := s.createImmediateUse(ctx, cart, payment.ID, func(p *entity.Payment) {
			p.MenuName = plan.Name
			p.PaymentType = enum.TypeTicket
			p.Kind = enum.KindTicketUse
			p.TicketID = &ticket.ID
			p.SessionsAtPayment = &sessions
		}); err != nil {
			return payment.ID, err
		}
	}
	return payment.ID, nil
}

func (s *CheckoutService) persistLimitedPurchase(ctx context.Context, cart *CheckoutCart, line PurchaseLine, split Split, relatedID *uuid.UUID) (uuid.UUID, error) {
	offer, err := s.offerRepo.GetByID(ctx, *line.OfferID)
	if err != nil {
		return uuid.Nil, err
	}
	if offer == nil {
		return uuid.Nil, apperror.NewNotFoundError("Limited offer")
	}

	sessions := offer.Sessions
	if line.UseImmediately {
		sessions--
	}
	purchase := &entity.LimitedTicketPurchase{
		OfferID:           offer.ID,
		CustomerID:        *cart.CustomerID,
		TotalSessions:     offer.Sessions,
		SessionsRemaining: sessions,
		PurchasePrice:     offer.SpecialPrice,
		PurchaseDate:      cart.PaymentDate,
	}
	if err := s.offerRepo.CreatePurchase(ctx, purchase); err != nil {
		return uuid.Nil, err
	}

	if line.PaymentAmount > 0 {
		err = s.ticketRepo.AppendSettlement(ctx, &entity.TicketPayment{
			TicketID:    purchase.ID,
			TicketType:  enum.TicketTypeLimited,
			Amount:      line.PaymentAmount,
			StaffID:     cart.StaffID,
			PaymentDate: cart.PaymentDate,
		})
		if err != nil {
			return uuid.Nil, err
		}
	}

	balance := offer.SpecialPrice - line.PaymentAmount
	payment := &entity.Payment{
		RelatedPaymentID:  relatedID,
		CustomerID:        cart.CustomerID,
		StaffID:           cart.StaffID,
		MenuName:          offer.Name,
		PaymentType:       enum.TypeLimitedOffer,
		Kind:              enum.KindTicketPurchase,
		IsTicketPurchase:  true,
		LimitedOfferID:    &offer.ID,
		TotalAmount:       line.PaymentAmount,
		CashAmount:        split.Cash,
		CardAmount:        split.Card,
		PaymentMethod:     cart.Method,
		SessionsAtPayment: &sessions,
		BalanceAtPayment:  &balance,
		PaymentDate:       cart.PaymentDate,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return uuid.Nil, err
	}

	if line.UseImmediately {
		if err := s.createImmediateUse(ctx, cart, payment.ID, func(p *entity.Payment) {
			p.MenuName = offer.Name
			p.PaymentType = enum.TypeLimitedOffer
			p.Kind = enum.KindLimitedOfferUse
			p.LimitedOfferID = &offer.ID
			p.SessionsAtPayment = &sessions
		}); err != nil {
			return payment.ID, err
		}
	}
	return payment.ID, nil
}

// createImmediateUse links a zero-amount use payment under a purchase
// payment. When the purchase payment is itself linked under the checkout
// root, this is how three-level trees arise.
func (s *CheckoutService) createImmediateUse(ctx context.Context, cart *CheckoutCart, purchasePaymentID uuid.UUID, decorate func(*entity.Payment)) error {
	payment := &entity.Payment{
		RelatedPaymentID: &purchasePaymentID,
		CustomerID:       cart.CustomerID,
		StaffID:          cart.StaffID,
		PaymentMethod:    cart.Method,
		PaymentDate:      cart.PaymentDate,
	}
	decorate(payment)
	return s.paymentRepo.Create(ctx, payment)
}

// persistSettlement appends the ledger row and creates the linked
// remaining-payment Payment for the same amount.
func (s *CheckoutService) persistSettlement(ctx context.Context, cart *CheckoutCart, line SettlementLine, split Split, relatedID *uuid.UUID) (uuid.UUID, error) {
	err := s.ticketRepo.AppendSettlement(ctx, &entity.TicketPayment{
		TicketID:    line.TicketID,
		TicketType:  line.TicketType,
		Amount:      line.Amount,
		StaffID:     cart.StaffID,
		PaymentDate: cart.PaymentDate,
	})
	if err != nil {
		return uuid.Nil, err
	}

	ticketID := line.TicketID
	payment := &entity.Payment{
		RelatedPaymentID:   relatedID,
		CustomerID:         cart.CustomerID,
		StaffID:            cart.StaffID,
		PaymentType:        enum.TypeTicket,
		Kind:               enum.KindRemainingPayment,
		IsRemainingPayment: true,
		TicketID:           &ticketID,
		TotalAmount:        line.Amount,
		PaymentAmount:      line.Amount,
		CashAmount:         split.Cash,
		CardAmount:         split.Card,
		PaymentMethod:      cart.Method,
		PaymentDate:        cart.PaymentDate,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return uuid.Nil, err
	}
	return payment.ID, nil
}

// ticketBalance computes the outstanding balance from the settlement ledger.
func (s *CheckoutService) ticketBalance(ctx context.Context, ticketID uuid.UUID, purchasePrice int64) (int64, error) {
	ctxs, err := s.ticketRepo.GetContexts(ctx, []uuid.UUID{ticketID})
	if err != nil {
		return 0, err
	}
	if c, ok := ctxs[ticketID]; ok {
		return c.RemainingBalance(), nil
	}
	return purchasePrice, nil
}
