package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/backpack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func TestNiceStep(t *testing.T) {
	tests := []struct {
		peak float64
		want float64
	}{
		{100, 20},
		{50, 10},
		{7, 1},
		{350, 50},
	}
	for _, tt := range tests {
		if got := niceStep(tt.peak); got != tt.want {
			t.Errorf("niceStep(%v) = %v, want %v", tt.peak, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		1500:    "1.5k",
		2000:    "2k",
		3000000: "3M",
		45:      "45",
		0.5:     "0.50",
	}
	for v, want := range tests {
		if got := formatChartLabel(v); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestBarChart_FitsWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	values := make([]float64, 60)
	labels := make([]string, 60)
	for i := range values {
		values[i] = float64(i * 3)
		labels[i] = "D" + strings.Repeat("1", i%3)
	}
	out := BarChart(values, labels, theme.Active.Blue, 50, 8, nil)
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 50 {
			t.Errorf("line %d width %d exceeds 50", i, w)
		}
	}
}

func TestBarChart_NarrowFallsBackToSparkline(t *testing.T) {
	out := BarChart([]float64{1, 2, 3}, nil, theme.Active.Blue, 10, 8, nil)
	if strings.Contains(out, "│") {
		t.Errorf("narrow chart should be a sparkline, got %q", out)
	}
}

func TestCompletionDots(t *testing.T) {
	theme.SetActive("flexoki-dark")
	if got := lipgloss.Width(CompletionDots(0.6)); got != 5 {
		t.Errorf("width = %d, want 5", got)
	}
	if !strings.Contains(CompletionDots(1), "●●●●●") {
		t.Error("full score should render five filled dots")
	}
}

func TestProgressBar(t *testing.T) {
	theme.SetActive("flexoki-dark")
	out := ProgressBar(0.5, 10)
	if !strings.Contains(out, "50%") {
		t.Errorf("half bar missing percentage: %q", out)
	}
	if got := lipgloss.Width(ProgressBar(2, 10)); got != 15 {
		t.Errorf("clamped bar width = %d, want 15", got)
	}
}
