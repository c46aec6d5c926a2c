package tui

import (
	"testing"

	"github.com/theirongolddev/backpack/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	n := len(components.Tabs)
	for active := 0; active < n; active++ {
		a := App{activeTab: active}
		pos := 0

		for i := 0; i < n; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < n-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("active=%d x past tabs -> tab=%d, want -1", active, got)
		}
	}
}

func tabWidthForTest(tabIdx, _ int) int {
	nameWidths := []int{
		len("Overview"),
		len("Days"),
		len("Budget"),
	}
	return nameWidths[tabIdx] + 2 // horizontal padding in tab renderer
}
