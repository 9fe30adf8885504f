package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/entity"
	"github.com/sowani/salon-api/internal/domain/enum"
)

func sampleView() *entity.ReceiptView {
	expiry := time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	return &entity.ReceiptView{
		PaymentID:    uuid.New(),
		PaymentDate:  time.Date(2026, 8, 1, 15, 30, 0, 0, time.UTC),
		CustomerName: "山田花子",
		StaffName:    "佐藤",
		MenuName:     "カット＆カラー",
		TicketPurchases: []entity.TicketPurchaseLine{
			{
				Name:              "回数券10回",
				TotalSessions:     10,
				SessionsRemaining: 10,
				Price:             30000,
				PaidAmount:        10000,
				RemainingBalance:  20000,
				ExpiryDate:        &expiry,
			},
		},
		TicketUses: []entity.TicketUseLine{
			{
				Name:              "回数券5回",
				SessionsRemaining: intPtr(3),
				TotalSessions:     5,
				RemainingBalance:  0,
			},
		},
		Options: []entity.ReceiptOptionLine{
			{Name: "トリートメント", Price: 2000},
			{Name: "ドリンク", IsFree: true},
		},
		ServiceSubtotal: 12000,
		DiscountAmount:  1000,
		Total:           23000,
		CashAmount:      23000,
		PaymentMethod:   enum.MethodCash,
	}
}

func TestFormatReceiptMarkupDeterministic(t *testing.T) {
	view := sampleView()
	cfg := DefaultPrinterConfig()

	first := FormatReceiptMarkup(view, cfg)
	second := FormatReceiptMarkup(view, cfg)
	if first != second {
		t.Error("markup rendering is not deterministic")
	}
}

func TestFormatReceiptEscposDeterministic(t *testing.T) {
	view := sampleView()
	cfg := DefaultPrinterConfig()

	first := FormatReceiptEscpos(view, cfg)
	second := FormatReceiptEscpos(view, cfg)
	if !bytes.Equal(first, second) {
		t.Error("escpos rendering is not deterministic")
	}
}

func TestFormatReceiptMarkupContent(t *testing.T) {
	view := sampleView()
	cfg := DefaultPrinterConfig()

	markup := FormatReceiptMarkup(view, cfg)

	for _, want := range []string{
		cfg.ShopName,
		"2026/08/01",
		"山田花子 様",
		"担当: 佐藤",
		"回数券購入",
		"回数券使用",
		"¥30,000",
		"10/10回",
		"3/5回",
		"2027/02/01",
		"無料",
		"-¥1,000",
		"合計",
		"¥23,000",
		"現金",
		"支払完了",
		cfg.ShopMessage,
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q\n%s", want, markup)
		}
	}
}

func TestFormatReceiptMarkupPlaceholders(t *testing.T) {
	view := &entity.ReceiptView{
		PaymentDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		TicketUses: []entity.TicketUseLine{
			{Name: "夏季限定", IsLimited: true, SessionsRemaining: nil},
		},
		PaymentMethod: enum.MethodCash,
	}

	markup := FormatReceiptMarkup(view, DefaultPrinterConfig())

	if !strings.Contains(markup, "限定オファー使用") {
		t.Error("missing limited offer heading")
	}
	// Nil sessions and nil expiry render as a dash, never zero.
	if !strings.Contains(markup, "残り回数") || !strings.Contains(markup, "-") {
		t.Errorf("missing dash placeholders\n%s", markup)
	}
	if strings.Contains(markup, "0/0回") {
		t.Errorf("nil sessions rendered as a count\n%s", markup)
	}
}

func TestFormatReceiptMixedShowsBothInstruments(t *testing.T) {
	view := sampleView()
	view.PaymentMethod = enum.MethodMixed
	view.CashAmount = 10000
	view.CardAmount = 13000

	markup := FormatReceiptMarkup(view, DefaultPrinterConfig())

	if !strings.Contains(markup, "現金") || !strings.Contains(markup, "カード") {
		t.Errorf("mixed tender must list both instruments\n%s", markup)
	}
}

func TestSessionsText(t *testing.T) {
	if got := sessionsText(nil, 5); got != "-" {
		t.Errorf("sessionsText(nil) = %q, want -", got)
	}
	if got := sessionsText(intPtr(3), 10); got != "3/10回" {
		t.Errorf("sessionsText = %q, want 3/10回", got)
	}
}

func TestBalanceText(t *testing.T) {
	if got := balanceText(0); got != "支払完了" {
		t.Errorf("balanceText(0) = %q", got)
	}
	if got := balanceText(-100); got != "支払完了" {
		t.Errorf("balanceText(-100) = %q", got)
	}
	if got := balanceText(1500); got != "¥1,500" {
		t.Errorf("balanceText(1500) = %q", got)
	}
}

func TestCenterTextCJK(t *testing.T) {
	// Full-width characters occupy two cells, so the pad must halve.
	got := centerText("あい", 8)
	if got != "  あい" {
		t.Errorf("centerText = %q, want two leading spaces", got)
	}
	// Text wider than the line is returned untouched.
	wide := strings.Repeat("あ", 20)
	if got := centerText(wide, 8); got != wide {
		t.Errorf("oversized text was padded: %q", got)
	}
}
