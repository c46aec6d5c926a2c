package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/backpack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// chartScale is the y-axis layout of a bar chart.
type chartScale struct {
	ceiling     float64
	rows        int
	rowsPerTick int
	labels      map[int]string // row -> tick label
	labelW      int
}

// newChartScale picks a round tick step so that at most height/2 ticks fit.
func newChartScale(peak float64, height int, format func(float64) string) chartScale {
	if peak <= 0 {
		peak = 1
	}
	step := niceStep(peak)
	maxTicks := max(height/2, 2)
	for math.Ceil(peak/step) > float64(maxTicks) {
		step *= 2
	}

	ticks := max(int(math.Round(math.Ceil(peak/step))), 1)
	s := chartScale{
		ceiling:     float64(ticks) * step,
		rowsPerTick: max(height/ticks, 2),
		labels:      make(map[int]string, ticks),
	}
	s.rows = s.rowsPerTick * ticks
	s.labelW = max(len(format(s.ceiling))+1, 4)
	for i := 1; i <= ticks; i++ {
		s.labels[i*s.rowsPerTick] = format(step * float64(i))
	}
	return s
}

// BarChart renders a vertical bar chart with a labelled y-axis. Values that
// do not fit the width at two columns per bar are sampled down. format
// renders axis values; nil uses plain numbers.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int, format func(float64) string) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	if format == nil {
		format = formatChartLabel
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	scale := newChartScale(peak, height, format)

	plotW := max(width-scale.labelW-1, 5)
	values, labels, barW, gap := fitBars(values, labels, plotW)
	n := len(values)
	axisLen := n*barW + max(0, n-1)*gap

	bg := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := scale.rows; row >= 1; row-- {
		top := scale.ceiling * float64(row) / float64(scale.rows)
		bottom := scale.ceiling * float64(row-1) / float64(scale.rows)

		// Upper rows get the brighter shade.
		barColor := color
		if float64(row)/float64(scale.rows) > 0.8 {
			barColor = t.AccentBright
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", scale.labelW, scale.labels[row])))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(bg.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := min(max(int((v-bottom)/(top-bottom)*8), 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(partial[idx]), barW)))
			default:
				b.WriteString(bg.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", scale.labelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n && n > 0 {
		b.WriteString("\n")
		b.WriteString(bg.Render(strings.Repeat(" ", scale.labelW+1)))
		b.WriteString(axisStyle.Render(placeLabels(labels, axisLen, barW+gap)))
	}
	return b.String()
}

// fitBars returns the values and labels to draw with their bar width and gap.
func fitBars(values []float64, labels []string, plotW int) ([]float64, []string, int, int) {
	n := len(values)
	if n == 1 {
		return values, labels, min(plotW, 6), 0
	}

	barW := (plotW - (n - 1)) / n
	if barW >= 2 {
		return values, labels, min(barW, 6), 1
	}

	// Too many bars: sample evenly, keeping the first and last.
	keep := max((plotW+1)/3, 2)
	sampled := make([]float64, keep)
	var sampledLabels []string
	if len(labels) == n {
		sampledLabels = make([]string, keep)
	}
	for i := range sampled {
		src := i * (n - 1) / (keep - 1)
		sampled[i] = values[src]
		if sampledLabels != nil {
			sampledLabels[i] = labels[src]
		}
	}
	return sampled, sampledLabels, 2, 1
}

// placeLabels lays out x-axis labels at stride columns, skipping any that
// would overlap. The last label is always attempted.
func placeLabels(labels []string, axisLen, stride int) string {
	buf := []byte(strings.Repeat(" ", axisLen))
	n := len(labels)
	step := max(1, (n*8)/(axisLen+1))

	lastEnd := -1
	put := func(pos int, lbl string) {
		if pos < 0 || pos <= lastEnd {
			return
		}
		end := min(pos+len(lbl), axisLen)
		if end-pos < min(3, len(lbl)) {
			return
		}
		copy(buf[pos:end], lbl[:end-pos])
		lastEnd = end
	}
	for i := 0; i < n-1; i += step {
		put(i*stride, labels[i])
	}
	if n > 0 {
		last := labels[n-1]
		pos := (n - 1) * stride
		if pos+len(last) > axisLen {
			pos = axisLen - len(last)
		}
		put(pos, last)
	}
	return strings.TrimRight(string(buf), " ")
}

// niceStep computes a round tick interval targeting about five ticks.
func niceStep(peak float64) float64 {
	rough := peak / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// HBar renders one labelled horizontal bar scaled against peak.
func HBar(label string, value, peak float64, labelW, barW int, color lipgloss.Color, amount string) string {
	t := theme.Active
	n := 0
	if peak > 0 {
		n = min(max(int(value/peak*float64(barW)), 0), barW)
	}
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pad := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		pad.Render(" ") +
		barStyle.Render(strings.Repeat("█", n)) +
		pad.Render(strings.Repeat(" ", barW-n+1)) +
		amountStyle.Render(amount)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
