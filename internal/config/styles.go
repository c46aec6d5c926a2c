package config

import (
	"sort"
	"strings"
	"unicode"
)

// FallbackDailyRate is the per-day estimate used when a travel style is unknown.
const FallbackDailyRate = 50.0

// StyleRate holds the typical daily spend range for a travel style.
type StyleRate struct {
	DailyLow  float64
	DailyHigh float64
}

// DailyMid returns the midpoint of the daily range.
func (r StyleRate) DailyMid() float64 {
	return (r.DailyLow + r.DailyHigh) / 2
}

// StyleTier names a travel style and its daily range.
type StyleTier struct {
	Name string
	Rate StyleRate
}

// StyleTable is an ordered set of travel style tiers.
type StyleTable []StyleTier

// DefaultStyles are the built-in travel style tiers.
var DefaultStyles = StyleTable{
	{Name: "Budget Backpacker", Rate: StyleRate{DailyLow: 25, DailyHigh: 40}},
	{Name: "Mid-range Explorer", Rate: StyleRate{DailyLow: 40, DailyHigh: 70}},
	{Name: "Comfort Traveller", Rate: StyleRate{DailyLow: 70, DailyHigh: 120}},
}

// NormalizeStyleName strips decoration from a travel-style label.
// e.g., "🎒 Budget Backpacker (£25-40/day)" -> "Budget Backpacker"
func NormalizeStyleName(raw string) string {
	if i := strings.IndexByte(raw, '('); i >= 0 {
		raw = raw[:i]
	}
	// Leading emoji and variation selectors are not part of the name.
	raw = strings.TrimLeftFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.TrimSpace(raw)
}

// Lookup returns the tier whose name the style label starts with.
// Matching ignores case, leading decoration and any trailing parenthetical.
// Returns a zero tier and false if no tier matches.
func (st StyleTable) Lookup(style string) (StyleTier, bool) {
	name := strings.ToLower(NormalizeStyleName(style))
	if name == "" {
		return StyleTier{}, false
	}
	for _, tier := range st {
		if strings.HasPrefix(name, strings.ToLower(tier.Name)) {
			return tier, true
		}
	}
	return StyleTier{}, false
}

// Names returns the tier names in table order.
func (st StyleTable) Names() []string {
	names := make([]string, len(st))
	for i, tier := range st {
		names[i] = tier.Name
	}
	return names
}

// LookupStyle finds a tier in the built-in table.
func LookupStyle(style string) (StyleTier, bool) {
	return DefaultStyles.Lookup(style)
}

// StyleTable returns the built-in tiers with the config's overrides applied.
// Overrides for unknown names add new tiers after the built-in ones.
func (c Config) StyleTable() StyleTable {
	table := make(StyleTable, len(DefaultStyles))
	copy(table, DefaultStyles)

	if len(c.Styles.Overrides) == 0 {
		return table
	}

	// Map iteration order is random; sort so added tiers are stable.
	names := make([]string, 0, len(c.Styles.Overrides))
	for name := range c.Styles.Overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		o := c.Styles.Overrides[name]
		idx := -1
		for i, tier := range table {
			if strings.EqualFold(tier.Name, name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			table = append(table, StyleTier{Name: name, Rate: StyleRate{
				DailyLow:  FallbackDailyRate,
				DailyHigh: FallbackDailyRate,
			}})
			idx = len(table) - 1
		}
		if o.DailyLow != nil {
			table[idx].Rate.DailyLow = *o.DailyLow
		}
		if o.DailyHigh != nil {
			table[idx].Rate.DailyHigh = *o.DailyHigh
		}
	}
	return table
}
