package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
)

// TextOptions controls the plain-text itinerary.
type TextOptions struct {
	Symbol string // currency symbol, e.g. "£"
	Emoji  bool   // prefix lines with emoji markers
}

const tbd = "TBD"

// Text renders a trip as a plain-text itinerary.
func Text(t model.Trip, opts TextOptions) string {
	var b strings.Builder
	_ = WriteText(&b, t, opts)
	return b.String()
}

// WriteText writes the plain-text itinerary to w.
func WriteText(w io.Writer, t model.Trip, opts TextOptions) error {
	mark := func(emoji string) string {
		if opts.Emoji {
			return emoji + " "
		}
		return ""
	}
	orTBD := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return tbd
		}
		return s
	}
	money := func(v float64) string {
		return fmt.Sprintf("%s%.2f", opts.Symbol, v)
	}

	var b strings.Builder
	name := t.DisplayName()
	title := mark("🎒") + name
	fmt.Fprintf(&b, "%s\n%s\n\n", title, strings.Repeat("=", len([]rune(name))+4))

	for _, d := range t.Days {
		fmt.Fprintf(&b, "%sDay %d - %s\n", mark("📍"), d.DayNumber, orTBD(d.Location))
		fmt.Fprintf(&b, "%sDate: %s\n", mark("📅"), orTBD(d.Date.String()))
		fmt.Fprintf(&b, "%sTransport: %s from %s to %s\n", mark(d.TransportType.Emoji()),
			orTBD(string(d.TransportType)), orTBD(d.TransportFrom), orTBD(d.TransportTo))
		if d.TransportTime != "" {
			fmt.Fprintf(&b, "%sDeparture: %s\n", mark("⏰"), d.TransportTime)
		}
		fmt.Fprintf(&b, "%sAccommodation: %s", mark("🏨"), orTBD(string(d.AccommodationType)))
		if d.AccommodationName != "" {
			fmt.Fprintf(&b, " - %s", d.AccommodationName)
		}
		b.WriteString("\n")
		if d.Notes != "" {
			fmt.Fprintf(&b, "%sNotes: %s\n", mark("📝"), d.Notes)
		}
		fmt.Fprintf(&b, "%sDaily Cost: %s\n", mark("💰"), money(d.Cost()))
		b.WriteString(strings.Repeat("-", 40) + "\n\n")
	}

	fmt.Fprintf(&b, "%sTotal Trip Cost: %s\n", mark("💰"), money(pipeline.BasicCost(t.Days)))
	fmt.Fprintf(&b, "%sTotal Days: %d\n", mark("🎒"), len(t.Days))
	fmt.Fprintf(&b, "%sAverage Daily Cost: %s\n\n", mark("📊"), money(pipeline.AverageDailyCost(t.Days)))
	if opts.Emoji {
		b.WriteString("🌟 Have an amazing trip! Safe travels! 🎒\n")
	} else {
		b.WriteString("Have an amazing trip! Safe travels!\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
