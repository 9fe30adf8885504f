package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestPadLineASCII(t *testing.T) {
	got := PadLine("Total", "¥9,000", 32)
	if runewidth.StringWidth(got) != 32 {
		t.Errorf("line width = %d, want 32: %q", runewidth.StringWidth(got), got)
	}
	if !strings.HasPrefix(got, "Total") || !strings.HasSuffix(got, "¥9,000") {
		t.Errorf("PadLine = %q", got)
	}
}

func TestPadLineCJK(t *testing.T) {
	// 現金 is 4 cells, so the value must sit flush with the right edge.
	got := PadLine("現金", "¥9,000", 32)
	if runewidth.StringWidth(got) != 32 {
		t.Errorf("line width = %d, want 32: %q", runewidth.StringWidth(got), got)
	}
}

func TestPadLineOverflowKeepsOneSpace(t *testing.T) {
	got := PadLine(strings.Repeat("あ", 20), "¥123,456,789", 32)
	if !strings.Contains(got, " ") {
		t.Errorf("overflowing line lost its separator: %q", got)
	}
}

func TestDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(32)
	if got := doc.Bytes(); !bytes.HasPrefix(got, []byte{ESC, '@'}) {
		t.Errorf("document does not start with ESC @: % x", got[:2])
	}
}

func TestDocumentDefaultWidth(t *testing.T) {
	if w := NewDocument(0).Width(); w != 32 {
		t.Errorf("default width = %d, want 32", w)
	}
}

func TestDocumentTextAndCut(t *testing.T) {
	doc := NewDocument(32)
	doc.SetAlign(AlignCenter).SetBold(true).Text("テスト").PartialCut()

	got := doc.Bytes()
	if !bytes.Contains(got, []byte{ESC, 'a', 1}) {
		t.Error("missing center alignment command")
	}
	if !bytes.Contains(got, []byte{ESC, 'E', 1}) {
		t.Error("missing bold command")
	}
	if !bytes.Contains(got, []byte("テスト")) {
		t.Error("missing text payload")
	}
	if !bytes.HasSuffix(got, []byte{GS, 'V', 0x01}) {
		t.Error("missing partial cut at the end")
	}
}

func TestDocumentSeparator(t *testing.T) {
	doc := NewDocument(16)
	doc.Reset()
	doc.Separator('-')
	if !bytes.Contains(doc.Bytes(), []byte(strings.Repeat("-", 16))) {
		t.Error("separator does not span the document width")
	}
}

func TestFormatYen(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "¥0"},
		{100, "¥100"},
		{1000, "¥1,000"},
		{1234567, "¥1,234,567"},
		{-1000, "-¥1,000"},
	}
	for _, c := range cases {
		if got := FormatYen(c.in); got != c.want {
			t.Errorf("FormatYen(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
