package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GregMSThompson/pbx-dashboard/internal/catalog"
	"github.com/GregMSThompson/pbx-dashboard/internal/models"
)

func w(id, title, category string, order int) models.Widget {
	return models.Widget{ID: id, Title: title, Visible: true, Order: order, Category: category}
}

func orders(m map[string]models.Widget) map[string]int {
	out := make(map[string]int, len(m))
	for id, w := range m {
		out[id] = w.Order
	}
	return out
}

var sample = []models.Widget{
	w(catalog.CallVolumeChart, "Call Volume", catalog.CategoryAnalytics, 1),
	w(catalog.KPICards, "KPI Overview", catalog.CategoryMetrics, 2),
	w(catalog.QuickActions, "Quick Actions", catalog.CategoryTools, 3),
	w(catalog.AIUsageSummary, "AI Usage Summary", catalog.CategoryAI, 4),
	w(catalog.RecentActivity, "Recent Activity", catalog.CategoryActivity, 5),
	w(catalog.TopExtensions, "Top Extensions", catalog.CategoryMetrics, 6),
	w("custom", "Custom", "plugins", 7),
}

func TestGridLayout(t *testing.T) {
	got := orders(GridLayout(sample))
	want := map[string]int{
		catalog.KPICards:        1,
		catalog.AIUsageSummary:  2,
		catalog.CallVolumeChart: 3,
		catalog.QuickActions:    4,
		catalog.RecentActivity:  5,
		catalog.TopExtensions:   6,
		"custom":                7,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("grid orders (-want +got):\n%s", diff)
	}
}

func TestGridLayout_FullWidthFirst(t *testing.T) {
	got := GridLayout(sample)
	for id, a := range got {
		if !IsFullWidth(id) {
			continue
		}
		for other, b := range got {
			if !IsFullWidth(other) && a.Order >= b.Order {
				t.Errorf("full-width %s (%d) not before %s (%d)", id, a.Order, other, b.Order)
			}
		}
	}
}

func TestCompactLayout(t *testing.T) {
	got := orders(CompactLayout(sample))
	want := map[string]int{
		catalog.KPICards:        1,
		catalog.TopExtensions:   2,
		catalog.CallVolumeChart: 3,
		catalog.AIUsageSummary:  4,
		catalog.RecentActivity:  5,
		catalog.QuickActions:    6,
		"custom":                7,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("compact orders (-want +got):\n%s", diff)
	}
}

func TestVerticalLayout(t *testing.T) {
	got := orders(VerticalLayout(sample))
	want := map[string]int{
		catalog.KPICards:        1,
		catalog.AIUsageSummary:  2,
		catalog.CallVolumeChart: 3,
		catalog.RecentActivity:  4,
		// unranked, by title
		"custom":               5,
		catalog.QuickActions:  6,
		catalog.TopExtensions: 7,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vertical orders (-want +got):\n%s", diff)
	}
}

func TestHorizontalLayout(t *testing.T) {
	got := orders(HorizontalLayout(sample))
	// rows: kpiCards | callVolume, quickActions, recentActivity | aiUsage | topExtensions, custom
	want := map[string]int{
		catalog.KPICards:        1,
		catalog.CallVolumeChart: 2,
		catalog.QuickActions:    3,
		catalog.RecentActivity:  4,
		catalog.AIUsageSummary:  5,
		catalog.TopExtensions:   6,
		"custom":                7,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("horizontal orders (-want +got):\n%s", diff)
	}
}

func TestHorizontalLayout_MoreFullWidthThanRows(t *testing.T) {
	in := []models.Widget{
		w(catalog.KPICards, "KPI Overview", catalog.CategoryMetrics, 1),
		w(catalog.AIUsageSummary, "AI Usage Summary", catalog.CategoryAI, 2),
		w(catalog.SystemOverview, "System Overview", catalog.CategoryMonitoring, 3),
		w(catalog.QuickActions, "Quick Actions", catalog.CategoryTools, 4),
	}
	got := orders(HorizontalLayout(in))
	want := map[string]int{
		catalog.KPICards:       1,
		catalog.QuickActions:   2,
		catalog.AIUsageSummary: 3,
		catalog.SystemOverview: 4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("horizontal orders (-want +got):\n%s", diff)
	}
}

func TestLayouts_DoNotMutateInput(t *testing.T) {
	in := append([]models.Widget(nil), sample...)
	for _, name := range Names() {
		f, ok := Lookup(name)
		if !ok {
			t.Fatalf("strategy %s not registered", name)
		}
		f(in)
		if diff := cmp.Diff(sample, in); diff != "" {
			t.Fatalf("%s mutated its input (-want +got):\n%s", name, diff)
		}
	}
}

func TestLayouts_Idempotent(t *testing.T) {
	for _, name := range Names() {
		f, _ := Lookup(name)
		first := f(sample)

		again := make([]models.Widget, 0, len(first))
		for _, widget := range first {
			again = append(again, widget)
		}
		models.SortByOrder(again)

		second := f(again)
		if diff := cmp.Diff(orders(first), orders(second)); diff != "" {
			t.Errorf("%s not idempotent (-first +second):\n%s", name, diff)
		}
	}
}

func TestLayouts_Empty(t *testing.T) {
	for _, name := range Names() {
		f, _ := Lookup(name)
		if got := f(nil); len(got) != 0 {
			t.Errorf("%s on empty input returned %d entries", name, len(got))
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, ok := Lookup("masonry"); ok {
		t.Fatal("expected unknown strategy to be rejected")
	}
}
