package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/enum"
	"github.com/sowani/salon-api/internal/domain/repository"
	"github.com/sowani/salon-api/pkg/apperror"
)

// ReceiptService reconstructs a reconciled transaction from a payment tree.
type ReceiptService struct {
	paymentRepo repository.PaymentRepository
	ticketRepo  repository.TicketRepository
	offerRepo   repository.OfferRepository
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	paymentRepo repository.PaymentRepository,
	ticketRepo repository.TicketRepository,
	offerRepo repository.OfferRepository,
) *ReceiptService {
	return &ReceiptService{
		paymentRepo: paymentRepo,
		ticketRepo:  ticketRepo,
		offerRepo:   offerRepo,
	}
}

// LoadTree fetches a root payment with its two generations of descendants.
func (s *ReceiptService) LoadTree(ctx context.Context, rootID uuid.UUID) (*entity.TransactionTree, error) {
	root, err := s.paymentRepo.GetByID(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	children, err := s.paymentRepo.GetChildren(ctx, root.ID)
	if err != nil {
		return nil, err
	}

	tree := &entity.TransactionTree{Root: *root}
	for _, child := range children {
		grandchildren, err := s.paymentRepo.GetChildren(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		tree.Children = append(tree.Children, entity.ChildBundle{
			Payment:       child,
			Grandchildren: grandchildren,
		})
	}
	return tree, nil
}

// BuildReceiptView loads the tree rooted at rootID, resolves ticket and offer
// contexts in one batch each, and aggregates everything into a ReceiptView.
func (s *ReceiptService) BuildReceiptView(ctx context.Context, rootID uuid.UUID) (*entity.ReceiptView, error) {
	tree, err := s.LoadTree(ctx, rootID)
	if err != nil {
		return nil, err
	}

	customerID := uuid.Nil
	if tree.Root.CustomerID != nil {
		customerID = *tree.Root.CustomerID
	}

	ticketCtxs, err := s.ticketRepo.GetContexts(ctx, tree.TicketIDs())
	if err != nil {
		return nil, err
	}
	offerCtxs, err := s.offerRepo.GetContexts(ctx, tree.OfferIDs(), customerID)
	if err != nil {
		return nil, err
	}

	return Aggregate(tree, ticketCtxs, offerCtxs), nil
}

// Aggregate turns a loaded tree plus resolved contexts into the canonical
// ReceiptView. It is a pure function of its inputs.
func Aggregate(
	tree *entity.TransactionTree,
	ticketCtxs map[uuid.UUID]entity.TicketContext,
	offerCtxs map[uuid.UUID]entity.OfferContext,
) *entity.ReceiptView {
	root := tree.Root

	view := &entity.ReceiptView{
		PaymentID:       root.ID,
		PaymentDate:     root.PaymentDate,
		MenuName:        root.MenuName,
		ServiceSubtotal: root.ServiceSubtotal,
		DiscountAmount:  root.DiscountAmount,
		TicketPurchases: []entity.TicketPurchaseLine{},
		TicketUses:      []entity.TicketUseLine{},
		Options:         []entity.ReceiptOptionLine{},
	}
	if root.Customer != nil {
		view.CustomerName = root.Customer.Name
	}
	if root.Staff != nil {
		view.StaffName = root.Staff.Name
	}
	for _, opt := range root.Options {
		view.Options = append(view.Options, entity.ReceiptOptionLine{
			Name:   opt.Name,
			Price:  opt.Price,
			IsFree: opt.IsFree,
		})
	}

	isTicketPurchase := root.IsTicketPurchase
	isTicketUse := root.TicketID != nil && !isTicketPurchase && !root.IsRemainingPayment
	isLimitedUse := root.PaymentType.IsLimitedOffer() && root.LimitedOfferID != nil && root.TotalAmount == 0

	total := root.TotalAmount

	switch {
	case isTicketPurchase:
		view.TicketPurchases = append(view.TicketPurchases, purchaseLine(root, ticketCtxs, offerCtxs))

	case isTicketUse:
		line := ticketUseLine(root, ticketCtxs)

		// The settlement rides on a child flagged is_remaining_payment;
		// fall back to the root's own payment amount when absent.
		remaining := root.PaymentAmount
		for _, c := range tree.Children {
			if c.Payment.IsRemainingPayment {
				remaining = c.Payment.PaymentAmount
				break
			}
		}
		line.RemainingPayment = remaining
		if remaining > 0 {
			total += remaining
		}
		view.TicketUses = append(view.TicketUses, line)

	case isLimitedUse:
		view.TicketUses = append(view.TicketUses, offerUseLine(root, offerCtxs))
	}

	for _, c := range tree.Children {
		child := c.Payment
		if child.IsTicketPurchase {
			view.TicketPurchases = append(view.TicketPurchases, purchaseLine(child, ticketCtxs, offerCtxs))
			total += child.TotalAmount
		} else if child.TicketID != nil && !child.IsRemainingPayment && !sameTicket(root.TicketID, child.TicketID) {
			view.TicketUses = append(view.TicketUses, ticketUseLine(child, ticketCtxs))
		}

		// Usage-type grandchildren are never surfaced; only purchases are.
		for _, gc := range c.Grandchildren {
			if gc.IsTicketPurchase {
				view.TicketPurchases = append(view.TicketPurchases, purchaseLine(gc, ticketCtxs, offerCtxs))
				total += gc.TotalAmount
			}
		}
	}

	var totalCash, totalCard int64
	forEachNode(tree, func(p entity.Payment) {
		if p.IsTicketPurchase {
			return
		}
		totalCash += p.CashAmount
		totalCard += p.CardAmount
	})

	view.Total = total
	view.CashAmount = totalCash
	view.CardAmount = totalCard
	view.PaymentMethod = enum.MethodFor(totalCash, totalCard)
	return view
}

func forEachNode(tree *entity.TransactionTree, fn func(entity.Payment)) {
	fn(tree.Root)
	for _, c := range tree.Children {
		fn(c.Payment)
		for _, gc := range c.Grandchildren {
			fn(gc)
		}
	}
}

func sameTicket(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}

// purchaseLine builds a ticketPurchases entry from a purchase-flagged node,
// preferring the node's point-in-time snapshots over the live context.
func purchaseLine(
	p entity.Payment,
	ticketCtxs map[uuid.UUID]entity.TicketContext,
	offerCtxs map[uuid.UUID]entity.OfferContext,
) entity.TicketPurchaseLine {
	line := entity.TicketPurchaseLine{
		Name:       p.MenuName,
		Price:      p.TotalAmount,
		PaidAmount: p.TotalAmount,
	}

	if p.TicketID != nil {
		if c, ok := ticketCtxs[*p.TicketID]; ok {
			line.Name = c.PlanName
			line.ServiceName = c.ServiceName
			line.TotalSessions = c.TotalSessions
			line.SessionsRemaining = c.SessionsRemaining
			line.Price = c.PurchasePrice
			line.RemainingBalance = c.RemainingBalance()
			line.ExpiryDate = c.ExpiryDate
		}
	} else if p.LimitedOfferID != nil {
		if c, ok := offerCtxs[*p.LimitedOfferID]; ok {
			line.Name = c.OfferName
			line.ServiceName = c.ServiceName
			line.TotalSessions = c.TotalSessions
			if c.SessionsRemaining != nil {
				line.SessionsRemaining = *c.SessionsRemaining
			}
			line.Price = c.PurchasePrice
			line.RemainingBalance = c.RemainingBalance
		}
	}

	if p.SessionsAtPayment != nil {
		line.SessionsRemaining = *p.SessionsAtPayment
	}
	if p.BalanceAtPayment != nil {
		line.RemainingBalance = *p.BalanceAtPayment
	}
	return line
}

func ticketUseLine(p entity.Payment, ticketCtxs map[uuid.UUID]entity.TicketContext) entity.TicketUseLine {
	line := entity.TicketUseLine{Name: p.MenuName}
	if p.TicketID != nil {
		if c, ok := ticketCtxs[*p.TicketID]; ok {
			remaining := c.SessionsRemaining
			line.Name = c.PlanName
			line.ServiceName = c.ServiceName
			line.SessionsRemaining = &remaining
			line.TotalSessions = c.TotalSessions
			line.ExpiryDate = c.ExpiryDate
			line.RemainingBalance = c.RemainingBalance()
		}
	}
	if p.SessionsAtPayment != nil {
		line.SessionsRemaining = p.SessionsAtPayment
	}
	if p.BalanceAtPayment != nil {
		line.RemainingBalance = *p.BalanceAtPayment
	}
	return line
}

func offerUseLine(p entity.Payment, offerCtxs map[uuid.UUID]entity.OfferContext) entity.TicketUseLine {
	line := entity.TicketUseLine{Name: p.MenuName, IsLimited: true}
	if p.LimitedOfferID != nil {
		if c, ok := offerCtxs[*p.LimitedOfferID]; ok {
			line.Name = c.OfferName
			line.ServiceName = c.ServiceName
			line.SessionsRemaining = c.SessionsRemaining
			line.TotalSessions = c.TotalSessions
			line.RemainingBalance = c.RemainingBalance
		}
	}
	if p.SessionsAtPayment != nil {
		line.SessionsRemaining = p.SessionsAtPayment
	}
	return line
}
