package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/enum"
	"github.com/sowani/salon-api/pkg/printer"
)

// receiptWidth is the character-cell width of a 58mm thermal roll.
const receiptWidth = 32

// PrinterConfig is the merged printer/receipt configuration: a partial
// persisted override applied over these defaults.
type PrinterConfig struct {
	PrinterType string `json:"printer_type"` // "network" or "display"
	PrinterIP   string `json:"printer_ip"`
	PrinterPort int    `json:"printer_port"`
	ShopName    string `json:"shop_name"`
	ShopMessage string `json:"shop_message"`
}

// DefaultPrinterConfig returns the built-in configuration used when no
// override is persisted or the persisted row is unusable.
func DefaultPrinterConfig() PrinterConfig {
	return PrinterConfig{
		PrinterType: "display",
		PrinterPort: 9100,
		ShopName:    "Sowani ABBY",
		ShopMessage: "ご来店ありがとうございました",
	}
}

// receiptLine is one rendered line with its style, shared by both encodings
// so they cannot drift apart.
type receiptLine struct {
	text   string
	center bool
	bold   bool
	double bool
}

// FormatReceiptEscpos renders a ReceiptView as an ESC/POS control stream.
// Pure: the same view and config always produce identical bytes.
func FormatReceiptEscpos(view *entity.ReceiptView, cfg PrinterConfig) []byte {
	doc := printer.NewDocument(receiptWidth)

	for _, line := range buildReceiptLines(view, cfg) {
		align := printer.AlignLeft
		if line.center {
			align = printer.AlignCenter
		}
		doc.SetAlign(align)
		doc.SetBold(line.bold)
		if line.double {
			doc.SetFontSize(printer.FontDouble)
		} else {
			doc.SetFontSize(printer.FontNormal)
		}
		doc.Text(line.text)
	}

	doc.SetAlign(printer.AlignLeft).
		SetBold(false).
		SetFontSize(printer.FontNormal).
		FeedLines(3).
		PartialCut()
	return doc.Bytes()
}

// FormatReceiptMarkup renders a ReceiptView as fixed-width display text.
// Pure: the same view and config always produce an identical string.
func FormatReceiptMarkup(view *entity.ReceiptView, cfg PrinterConfig) string {
	var b strings.Builder
	for _, line := range buildReceiptLines(view, cfg) {
		text := line.text
		if line.center {
			text = centerText(text, receiptWidth)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

func buildReceiptLines(view *entity.ReceiptView, cfg PrinterConfig) []receiptLine {
	var lines []receiptLine
	add := func(l receiptLine) { lines = append(lines, l) }
	kv := func(key string, amount int64) {
		add(receiptLine{text: printer.PadLine(key, printer.FormatYen(amount), receiptWidth)})
	}
	sep := func() {
		add(receiptLine{text: strings.Repeat("-", receiptWidth)})
	}

	add(receiptLine{text: cfg.ShopName, center: true, bold: true, double: true})
	add(receiptLine{text: view.PaymentDate.Format("2006/01/02"), center: true})
	if view.CustomerName != "" {
		add(receiptLine{text: view.CustomerName + " 様"})
	}
	if view.StaffName != "" {
		add(receiptLine{text: "担当: " + view.StaffName})
	}
	sep()

	if view.MenuName != "" {
		kv(view.MenuName, view.ServiceSubtotal)
	}
	for _, opt := range view.Options {
		if opt.IsFree {
			add(receiptLine{text: printer.PadLine("  "+opt.Name, "無料", receiptWidth)})
		} else {
			kv("  "+opt.Name, opt.Price)
		}
	}

	for _, p := range view.TicketPurchases {
		add(receiptLine{text: "回数券購入", bold: true})
		kv(p.Name, p.Price)
		if p.ServiceName != "" {
			add(receiptLine{text: "  " + p.ServiceName})
		}
		add(receiptLine{text: printer.PadLine("  残り回数",
			sessionsText(&p.SessionsRemaining, p.TotalSessions), receiptWidth)})
		add(receiptLine{text: printer.PadLine("  有効期限", dateText(p.ExpiryDate), receiptWidth)})
		kv("  今回支払", p.PaidAmount)
		add(receiptLine{text: printer.PadLine("  残額", balanceText(p.RemainingBalance), receiptWidth)})
	}

	for _, u := range view.TicketUses {
		if u.IsLimited {
			add(receiptLine{text: "限定オファー使用", bold: true})
		} else {
			add(receiptLine{text: "回数券使用", bold: true})
		}
		add(receiptLine{text: u.Name})
		if u.ServiceName != "" {
			add(receiptLine{text: "  " + u.ServiceName})
		}
		add(receiptLine{text: printer.PadLine("  残り回数",
			sessionsText(u.SessionsRemaining, u.TotalSessions), receiptWidth)})
		add(receiptLine{text: printer.PadLine("  有効期限", dateText(u.ExpiryDate), receiptWidth)})
		if u.RemainingPayment > 0 {
			kv("  残金支払", u.RemainingPayment)
		}
		add(receiptLine{text: printer.PadLine("  残額", balanceText(u.RemainingBalance), receiptWidth)})
	}

	sep()
	if view.DiscountAmount > 0 {
		kv("割引", -view.DiscountAmount)
	}
	add(receiptLine{text: printer.PadLine("合計", printer.FormatYen(view.Total), receiptWidth), bold: true})

	switch view.PaymentMethod {
	case enum.MethodMixed:
		kv("現金", view.CashAmount)
		kv("カード", view.CardAmount)
	case enum.MethodCard:
		kv("カード", view.CardAmount)
	default:
		kv("現金", view.CashAmount)
	}

	if cfg.ShopMessage != "" {
		add(receiptLine{text: ""})
		add(receiptLine{text: cfg.ShopMessage, center: true})
	}
	return lines
}

func sessionsText(remaining *int, total int) string {
	if remaining == nil {
		return "-"
	}
	return strconv.Itoa(*remaining) + "/" + strconv.Itoa(total) + "回"
}

func dateText(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006/01/02")
}

func balanceText(balance int64) string {
	if balance <= 0 {
		return "支払完了"
	}
	return printer.FormatYen(balance)
}

func centerText(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
