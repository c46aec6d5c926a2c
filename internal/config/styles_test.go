package config

import "testing"

func TestNormalizeStyleName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Budget Backpacker", "Budget Backpacker"},
		{"Budget Backpacker (£25-40/day)", "Budget Backpacker"},
		{"🎒 Budget Backpacker (£25-40/day)", "Budget Backpacker"},
		{"  Comfort Traveller  ", "Comfort Traveller"},
		{"(just a note)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeStyleName(tt.raw); got != tt.want {
			t.Errorf("NormalizeStyleName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestLookupStyle(t *testing.T) {
	tests := []struct {
		style   string
		want    string
		wantOK  bool
		wantMid float64
	}{
		{"Budget Backpacker (£25-40/day)", "Budget Backpacker", true, 32.5},
		{"Mid-range Explorer (£40-70/day)", "Mid-range Explorer", true, 55},
		{"🏨 Comfort Traveller (£70-120/day)", "Comfort Traveller", true, 95},
		{"budget backpacker", "Budget Backpacker", true, 32.5},
		{"Luxury", "", false, 0},
		{"", "", false, 0},
	}
	for _, tt := range tests {
		tier, ok := LookupStyle(tt.style)
		if ok != tt.wantOK {
			t.Fatalf("LookupStyle(%q) ok = %v, want %v", tt.style, ok, tt.wantOK)
		}
		if tier.Name != tt.want {
			t.Errorf("LookupStyle(%q) = %q, want %q", tt.style, tier.Name, tt.want)
		}
		if ok && tier.Rate.DailyMid() != tt.wantMid {
			t.Errorf("LookupStyle(%q) mid = %.2f, want %.2f", tt.style, tier.Rate.DailyMid(), tt.wantMid)
		}
	}
}

func TestStyleTable_Overrides(t *testing.T) {
	low := 20.0
	high := 30.0
	cfg := DefaultConfig()
	cfg.Styles.Overrides = map[string]StyleRateOverride{
		"budget backpacker": {DailyLow: &low},
		"Flashpacker":       {DailyLow: &low, DailyHigh: &high},
	}

	table := cfg.StyleTable()
	if len(table) != len(DefaultStyles)+1 {
		t.Fatalf("table len = %d, want %d", len(table), len(DefaultStyles)+1)
	}

	bb, ok := table.Lookup("Budget Backpacker")
	if !ok {
		t.Fatal("Budget Backpacker missing after override")
	}
	if bb.Rate.DailyLow != 20 || bb.Rate.DailyHigh != 40 {
		t.Errorf("Budget Backpacker rate = %+v, want {20 40}", bb.Rate)
	}

	fp, ok := table.Lookup("Flashpacker (new)")
	if !ok {
		t.Fatal("added Flashpacker tier not found")
	}
	if fp.Rate.DailyMid() != 25 {
		t.Errorf("Flashpacker mid = %.2f, want 25", fp.Rate.DailyMid())
	}

	// The built-in table must be untouched.
	if DefaultStyles[0].Rate.DailyLow != 25 {
		t.Errorf("DefaultStyles mutated: %+v", DefaultStyles[0].Rate)
	}
}

func TestCurrencySymbol(t *testing.T) {
	tests := map[string]string{
		"GBP": "£",
		"usd": "$",
		"EUR": "€",
		"JPY": "£",
		"":    "£",
	}
	for code, want := range tests {
		if got := CurrencySymbol(code); got != want {
			t.Errorf("CurrencySymbol(%q) = %q, want %q", code, got, want)
		}
	}
}
