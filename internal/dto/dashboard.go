package dto

import "github.com/GregMSThompson/pbx-dashboard/internal/models"

// --- Request types ---

type ReorderWidgetsRequest struct {
	ActiveID string `json:"activeId"`
	OverID   string `json:"overId"`
}

type ApplyLayoutRequest struct {
	Layout string `json:"layout"`
}

type CustomizationModeRequest struct {
	Enabled bool `json:"enabled"`
}

type SelectCategoryRequest struct {
	Category string `json:"category"`
}

type SetMinimizedRequest struct {
	Minimized bool `json:"minimized"`
}

type DragStartRequest struct {
	WidgetID string `json:"widgetId"`
}

// DragEndRequest carries the widget the drag was released over; an empty
// OverID is a drop outside any widget.
type DragEndRequest struct {
	OverID string `json:"overId"`
}

// --- Response types ---

// DashboardView is the visible dashboard plus the session's editing state.
type DashboardView struct {
	Widgets           []models.Widget `json:"widgets"`
	CustomizationMode bool            `json:"customizationMode"`
	SelectedCategory  string          `json:"selectedCategory"`
}

// MutationResult reports whether an operation changed anything. Unknown ids,
// unknown layouts and invalid reorders come back with Changed=false.
type MutationResult struct {
	Changed   bool          `json:"changed"`
	Dashboard DashboardView `json:"dashboard"`
}

type AvailableWidgetsResponse struct {
	Category string          `json:"category"`
	Widgets  []models.Widget `json:"widgets"`
}

type WidgetVisibilityResponse struct {
	WidgetID string `json:"widgetId"`
	Visible  bool   `json:"visible"`
}

type WidgetMinimizedResponse struct {
	WidgetID  string `json:"widgetId"`
	Minimized bool   `json:"minimized"`
}

type DragStateResponse struct {
	ActiveID string `json:"activeId,omitempty"`
	Dragging bool   `json:"dragging"`
}
