// Package layout holds the auto-layout strategies for the dashboard.
//
// Each strategy takes the visible widgets in their current display order and
// returns the same widgets keyed by id with a new Order. Strategies are pure:
// the input slice and its widgets are never modified, and applying a strategy
// twice in a row yields the same orders.
package layout

import (
	"cmp"
	"slices"

	"github.com/GregMSThompson/pbx-dashboard/internal/catalog"
	"github.com/GregMSThompson/pbx-dashboard/internal/models"
)

// Strategy names accepted by Lookup.
const (
	Grid       = "grid"
	Compact    = "compact"
	Vertical   = "vertical"
	Horizontal = "horizontal"
)

// Func assigns new orders to the given visible widgets.
type Func func(visible []models.Widget) map[string]models.Widget

var strategies = map[string]Func{
	Grid:       GridLayout,
	Compact:    CompactLayout,
	Vertical:   VerticalLayout,
	Horizontal: HorizontalLayout,
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Func, bool) {
	f, ok := strategies[name]
	return f, ok
}

// Names lists the known strategies.
func Names() []string {
	return []string{Grid, Compact, Vertical, Horizontal}
}

// widgets that span the full dashboard width
var fullWidth = map[string]bool{
	catalog.KPICards:       true,
	catalog.AIUsageSummary: true,
	catalog.SystemOverview: true,
}

// IsFullWidth reports whether id is rendered across the full dashboard width.
func IsFullWidth(id string) bool {
	return fullWidth[id]
}

var categoryPriority = []string{
	catalog.CategoryMetrics,
	catalog.CategoryAnalytics,
	catalog.CategoryAI,
	catalog.CategoryActivity,
	catalog.CategoryMonitoring,
	catalog.CategoryTools,
}

const unrankedPriority = 999

var verticalPriority = map[string]int{
	catalog.KPICards:           1,
	catalog.AIUsageSummary:     2,
	catalog.CallVolumeChart:    3,
	catalog.ActiveCallsMonitor: 4,
	catalog.RecentActivity:     5,
}

// GridLayout puts full-width widgets first, then everything else, keeping the
// existing relative order inside both groups.
func GridLayout(visible []models.Widget) map[string]models.Widget {
	wide, regular := splitFullWidth(visible)
	return assign(append(wide, regular...))
}

// CompactLayout groups widgets by category in a fixed category order.
// Widgets with an unlisted category go last in input order.
func CompactLayout(visible []models.Widget) map[string]models.Widget {
	seq := make([]models.Widget, 0, len(visible))
	listed := make(map[string]bool, len(categoryPriority))
	for _, c := range categoryPriority {
		listed[c] = true
		for _, w := range visible {
			if w.Category == c {
				seq = append(seq, w)
			}
		}
	}
	for _, w := range visible {
		if !listed[w.Category] {
			seq = append(seq, w)
		}
	}
	return assign(seq)
}

// VerticalLayout orders a single column by a fixed priority table, then by title.
func VerticalLayout(visible []models.Widget) map[string]models.Widget {
	seq := slices.Clone(visible)
	slices.SortStableFunc(seq, func(a, b models.Widget) int {
		if c := cmp.Compare(priorityOf(a.ID), priorityOf(b.ID)); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
	return assign(seq)
}

// HorizontalLayout alternates rows: one full-width widget, then up to three
// regular widgets, until both groups run out.
func HorizontalLayout(visible []models.Widget) map[string]models.Widget {
	wide, regular := splitFullWidth(visible)

	var rows [][]models.Widget
	for start := 0; start < len(regular); start += 3 {
		rows = append(rows, regular[start:min(start+3, len(regular))])
	}

	seq := make([]models.Widget, 0, len(visible))
	for i := 0; i < max(len(wide), len(rows)); i++ {
		if i < len(wide) {
			seq = append(seq, wide[i])
		}
		if i < len(rows) {
			seq = append(seq, rows[i]...)
		}
	}
	return assign(seq)
}

func splitFullWidth(visible []models.Widget) (wide, regular []models.Widget) {
	for _, w := range visible {
		if fullWidth[w.ID] {
			wide = append(wide, w)
		} else {
			regular = append(regular, w)
		}
	}
	return wide, regular
}

func priorityOf(id string) int {
	if p, ok := verticalPriority[id]; ok {
		return p
	}
	return unrankedPriority
}

func assign(seq []models.Widget) map[string]models.Widget {
	out := make(map[string]models.Widget, len(seq))
	for i, w := range seq {
		w.Order = i + 1
		out[w.ID] = w
	}
	return out
}
