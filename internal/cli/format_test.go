package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/backpack/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		symbol string
		v      float64
		want   string
	}{
		{"£", 0, "£0.00"},
		{"£", 17.5, "£17.50"},
		{"£", 1234.5, "£1,234.50"},
		{"$", 1000000, "$1,000,000.00"},
		{"€", -5, "-€5.00"},
		{"£", 0.005, "£0.01"},
		{"£", 2.999, "£3.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.symbol, tt.v); got != tt.want {
			t.Errorf("FormatMoney(%q, %v) = %q, want %q", tt.symbol, tt.v, got, tt.want)
		}
	}
}

func TestFormatMoneyShort(t *testing.T) {
	if got := FormatMoneyShort("£", 1234.5); got != "£1,235" {
		t.Errorf("FormatMoneyShort = %q", got)
	}
	if got := FormatMoneyShort("£", -40); got != "-£40" {
		t.Errorf("FormatMoneyShort negative = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercentAndDays(t *testing.T) {
	if got := FormatPercent(0.75); got != "75.0%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPct(35); got != "35.0%" {
		t.Errorf("FormatPct = %q", got)
	}
	if FormatDays(1) != "1 day" || FormatDays(12) != "12 days" {
		t.Errorf("FormatDays = %q / %q", FormatDays(1), FormatDays(12))
	}
	if got := FormatDelta("£", 10, 15); got != "-£5.00" {
		t.Errorf("FormatDelta = %q", got)
	}
	if got := FormatDelta("£", 15, 10); got != "+£5.00" {
		t.Errorf("FormatDelta over = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Dubrovnik", 5); got != "Dubr…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("Split", 10); got != "Split" {
		t.Errorf("Truncate short = %q", got)
	}
}

func TestRenderTable_AlignsMultibyte(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"Transport", "£15.00"},
			{"---"},
			{"Total", "£1,035.00"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("table has %d lines:\n%s", len(lines), out)
	}
	want := len([]rune(stripANSI(lines[0])))
	for i, line := range lines {
		if got := len([]rune(stripANSI(line))); got != want {
			t.Errorf("line %d width %d, want %d: %q", i, got, want, stripANSI(line))
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	got := stripANSI(RenderProgressBar(5, 10, 10))
	if got != "[█████░░░░░] 5/10" {
		t.Errorf("RenderProgressBar = %q", got)
	}
	if got := stripANSI(RenderProgressBar(12, 10, 4)); got != "[████] 12/10" {
		t.Errorf("RenderProgressBar overflow = %q", got)
	}
	if RenderProgressBar(1, 0, 10) != "" {
		t.Error("zero total should render nothing")
	}
}

func TestRenderStatus(t *testing.T) {
	got := stripANSI(RenderStatus(model.BudgetAssessment{Status: model.OverBudget, Over: 5}, "£"))
	if got != "Over budget by £5.00" {
		t.Errorf("RenderStatus = %q", got)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
