package catalog

import "github.com/GregMSThompson/pbx-dashboard/internal/models"

// Category tags used by the widget picker.
const (
	CategoryMetrics    = "metrics"
	CategoryAnalytics  = "analytics"
	CategoryAI         = "ai"
	CategoryActivity   = "activity"
	CategoryMonitoring = "monitoring"
	CategoryTools      = "tools"

	// CategoryAll disables category filtering.
	CategoryAll = "all"
)

// Widget ids with special meaning to the layout algorithms.
const (
	KPICards           = "kpiCards"
	CallVolumeChart    = "callVolumeChart"
	TenantGrowthChart  = "tenantGrowthChart"
	AIUsageSummary     = "aiUsageSummary"
	RecentActivity     = "recentActivity"
	ActiveCallsMonitor = "activeCallsMonitor"
	TopExtensions      = "topExtensions"
	QuickActions       = "quickActions"
	SystemHealth       = "systemHealth"

	RevenueChart       = "revenueChart"
	CallQualityMetrics = "callQualityMetrics"
	AIProviderStatus   = "aiProviderStatus"
	SystemOverview     = "systemOverview"
	ServerStatus       = "serverStatus"
	BillingSummary     = "billingSummary"
	AuditLog           = "auditLog"
	NotesPad           = "notesPad"
)

var defaultWidgets = []models.Widget{
	{ID: KPICards, Title: "KPI Overview", Visible: true, Order: 1, Category: CategoryMetrics},
	{ID: CallVolumeChart, Title: "Call Volume", Visible: true, Order: 2, Category: CategoryAnalytics},
	{ID: TenantGrowthChart, Title: "Tenant Growth", Visible: true, Order: 3, Category: CategoryAnalytics},
	{ID: AIUsageSummary, Title: "AI Usage Summary", Visible: true, Order: 4, Category: CategoryAI},
	{ID: RecentActivity, Title: "Recent Activity", Visible: true, Order: 5, Category: CategoryActivity},
	{ID: ActiveCallsMonitor, Title: "Active Calls", Visible: true, Order: 6, Category: CategoryMonitoring},
	{ID: TopExtensions, Title: "Top Extensions", Visible: true, Order: 7, Category: CategoryMetrics},
	{ID: QuickActions, Title: "Quick Actions", Visible: true, Order: 8, Category: CategoryTools},
	{ID: SystemHealth, Title: "System Health", Visible: false, Order: 9, Category: CategoryMonitoring},
}

var optionalWidgets = []models.Widget{
	{ID: RevenueChart, Title: "Revenue Trend", Order: 10, Category: CategoryAnalytics},
	{ID: CallQualityMetrics, Title: "Call Quality", Order: 11, Category: CategoryMetrics},
	{ID: AIProviderStatus, Title: "AI Provider Status", Order: 12, Category: CategoryAI},
	{ID: SystemOverview, Title: "System Overview", Order: 13, Category: CategoryMonitoring},
	{ID: ServerStatus, Title: "Server Status", Order: 14, Category: CategoryMonitoring},
	{ID: BillingSummary, Title: "Billing Summary", Order: 15, Category: CategoryMetrics},
	{ID: AuditLog, Title: "Audit Log", Order: 16, Category: CategoryActivity},
	{ID: NotesPad, Title: "Notes", Order: 17, Category: CategoryTools},
}

// Defaults returns the widgets every dashboard starts with.
func Defaults() []models.Widget {
	return append([]models.Widget(nil), defaultWidgets...)
}

// Optional returns the extra widgets a user may add from the picker.
func Optional() []models.Widget {
	return append([]models.Widget(nil), optionalWidgets...)
}

// Build returns a fresh registry holding the default and optional widgets with
// their compiled-in values.
func Build() models.Registry {
	reg := make(models.Registry, len(defaultWidgets)+len(optionalWidgets))
	for _, w := range defaultWidgets {
		reg[w.ID] = w
	}
	for _, w := range optionalWidgets {
		reg[w.ID] = w
	}
	return reg
}

// Merge layers persisted state over the compiled-in catalog.
//
// Precedence, lowest to highest: default widgets, optional widgets, persisted
// widgets. Persisted values win field by field; a field the saved entry omits
// keeps the compiled-in value. Ids known only to the persisted state are kept,
// and ids known only to the catalog are filled in, so a saved registry never
// loses a widget added to the code after it was written.
func Merge(persisted models.SavedRegistry) models.Registry {
	reg := Build()
	for id, p := range persisted {
		if id == "" {
			continue
		}
		w := p.Apply(reg[id])
		w.ID = id
		reg[id] = w
	}
	return reg
}
