package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sowani/salon-api/pkg/apperror"
	"github.com/sowani/salon-api/pkg/printer"
)

// transportTimeout bounds the printer connect and write. On expiry the
// request falls back to the markup rendering, it does not fail.
const transportTimeout = 5 * time.Second

// SendFunc transmits one ESC/POS job to a network printer.
type SendFunc func(data []byte, host string, port int, timeout time.Duration) error

// PrinterService renders receipts and drives the thermal printer.
type PrinterService struct {
	receiptService  *ReceiptService
	settingsService *SettingsService
	send            SendFunc
	log             *logrus.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	receiptService *ReceiptService,
	settingsService *SettingsService,
	send SendFunc,
	log *logrus.Logger,
) *PrinterService {
	if send == nil {
		send = printer.Send
	}
	return &PrinterService{
		receiptService:  receiptService,
		settingsService: settingsService,
		send:            send,
		log:             log,
	}
}

// PrintResult reports whether the receipt reached the printer. When it did
// not, Markup carries the display rendering instead.
type PrintResult struct {
	Printed bool   `json:"printed"`
	Markup  string `json:"markup,omitempty"`
}

// PrintReceipt renders the payment's receipt and transmits it when a network
// printer is configured. Transport failures are logged and degrade to the
// markup rendering; the caller never sees them as errors.
func (s *PrinterService) PrintReceipt(ctx context.Context, paymentID uuid.UUID) (*PrintResult, error) {
	view, err := s.receiptService.BuildReceiptView(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	cfg := s.settingsService.GetPrinterConfig(ctx)

	if cfg.PrinterType != "network" || cfg.PrinterIP == "" {
		return &PrintResult{Markup: FormatReceiptMarkup(view, cfg)}, nil
	}

	data := FormatReceiptEscpos(view, cfg)
	if err := s.send(data, cfg.PrinterIP, cfg.PrinterPort, transportTimeout); err != nil {
		s.log.WithError(apperror.NewTransportError(err)).
			WithField("payment_id", paymentID).
			Warn("printer unreachable, falling back to markup")
		return &PrintResult{Markup: FormatReceiptMarkup(view, cfg)}, nil
	}
	return &PrintResult{Printed: true}, nil
}

// TestPrint sends a short test page. Unlike PrintReceipt this surfaces the
// transport error so the settings screen can show it.
func (s *PrinterService) TestPrint(ctx context.Context) error {
	cfg := s.settingsService.GetPrinterConfig(ctx)
	if cfg.PrinterType != "network" || cfg.PrinterIP == "" {
		return apperror.NewBadRequestError("No network printer configured")
	}

	doc := printer.NewDocument(receiptWidth)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(cfg.ShopName).
		SetBold(false).
		Text("PRINTER TEST").
		Text(time.Now().Format("2006/01/02 15:04")).
		FeedLines(3).
		PartialCut()

	if err := s.send(doc.Bytes(), cfg.PrinterIP, cfg.PrinterPort, 3*time.Second); err != nil {
		return apperror.NewBadRequestError("Printer unreachable: " + err.Error())
	}
	return nil
}
