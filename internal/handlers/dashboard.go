package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/pbx-dashboard/internal/dto"
	"github.com/GregMSThompson/pbx-dashboard/internal/middleware"
	"github.com/GregMSThompson/pbx-dashboard/internal/response"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, uid string) (dto.DashboardView, error)
	AvailableWidgets(ctx context.Context, uid, category string) (dto.AvailableWidgetsResponse, error)
	Categories(ctx context.Context, uid string) ([]string, error)
	Layouts(ctx context.Context) []string
	ToggleWidget(ctx context.Context, uid, widgetID string) (dto.MutationResult, error)
	AddWidget(ctx context.Context, uid, widgetID string) (dto.MutationResult, error)
	RemoveWidget(ctx context.Context, uid, widgetID string) (dto.MutationResult, error)
	IsWidgetVisible(ctx context.Context, uid, widgetID string) (dto.WidgetVisibilityResponse, error)
	ReorderWidgets(ctx context.Context, uid string, req dto.ReorderWidgetsRequest) (dto.MutationResult, error)
	ApplyLayout(ctx context.Context, uid string, req dto.ApplyLayoutRequest) (dto.MutationResult, error)
	ResetToDefaults(ctx context.Context, uid string) (dto.MutationResult, error)
	SetCustomizationMode(ctx context.Context, uid string, req dto.CustomizationModeRequest) (dto.DashboardView, error)
	SelectCategory(ctx context.Context, uid string, req dto.SelectCategoryRequest) (dto.DashboardView, error)
	SetMinimized(ctx context.Context, uid, widgetID string, req dto.SetMinimizedRequest) (dto.WidgetMinimizedResponse, error)
	Minimized(ctx context.Context, uid, widgetID string) (dto.WidgetMinimizedResponse, error)
	StartDrag(ctx context.Context, uid string, req dto.DragStartRequest) (dto.DragStateResponse, error)
	EndDrag(ctx context.Context, uid string, req dto.DragEndRequest) (dto.MutationResult, error)
	CancelDrag(ctx context.Context, uid string) (dto.DragStateResponse, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    DashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Get("/categories", h.GetCategories)
	r.Get("/layouts", h.GetLayouts)
	r.Post("/layout", h.ApplyLayout)
	r.Post("/reset", h.ResetToDefaults)
	r.Put("/mode", h.SetCustomizationMode)
	r.Put("/category", h.SelectCategory)

	r.Get("/widgets/available", h.GetAvailableWidgets) // must be before /{widgetId}
	r.Put("/widgets/reorder", h.ReorderWidgets)         // must be before /{widgetId}
	r.Post("/widgets/{widgetId}", h.AddWidget)
	r.Delete("/widgets/{widgetId}", h.RemoveWidget)
	r.Post("/widgets/{widgetId}/toggle", h.ToggleWidget)
	r.Get("/widgets/{widgetId}/visible", h.IsWidgetVisible)
	r.Get("/widgets/{widgetId}/minimized", h.GetMinimized)
	r.Put("/widgets/{widgetId}/minimized", h.SetMinimized)

	r.Post("/drag/start", h.StartDrag)
	r.Post("/drag/end", h.EndDrag)
	r.Post("/drag/cancel", h.CancelDrag)
	return r
}

func (h *dashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	view, err := h.DashboardSvc.GetDashboard(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *dashboardHandlers) GetAvailableWidgets(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	resp, err := h.DashboardSvc.AvailableWidgets(r.Context(), uid, r.URL.Query().Get("category"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	categories, err := h.DashboardSvc.Categories(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, categories)
}

// GetLayouts returns the names accepted by ApplyLayout.
func (h *dashboardHandlers) GetLayouts(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.DashboardSvc.Layouts(r.Context()))
}

func (h *dashboardHandlers) ToggleWidget(w http.ResponseWriter, r *http.Request) {
	h.widgetMutation(w, r, h.DashboardSvc.ToggleWidget)
}

func (h *dashboardHandlers) AddWidget(w http.ResponseWriter, r *http.Request) {
	h.widgetMutation(w, r, h.DashboardSvc.AddWidget)
}

func (h *dashboardHandlers) RemoveWidget(w http.ResponseWriter, r *http.Request) {
	h.widgetMutation(w, r, h.DashboardSvc.RemoveWidget)
}

func (h *dashboardHandlers) widgetMutation(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, uid, widgetID string) (dto.MutationResult, error)) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	res, err := op(r.Context(), uid, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) IsWidgetVisible(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	resp, err := h.DashboardSvc.IsWidgetVisible(r.Context(), uid, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) ReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderWidgetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.ReorderWidgets(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) ApplyLayout(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.ApplyLayout(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) ResetToDefaults(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.ResetToDefaults(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) SetCustomizationMode(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomizationModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	view, err := h.DashboardSvc.SetCustomizationMode(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *dashboardHandlers) SelectCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	view, err := h.DashboardSvc.SelectCategory(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *dashboardHandlers) GetMinimized(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	resp, err := h.DashboardSvc.Minimized(r.Context(), uid, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) SetMinimized(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.SetMinimizedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	resp, err := h.DashboardSvc.SetMinimized(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) StartDrag(w http.ResponseWriter, r *http.Request) {
	var req dto.DragStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	state, err := h.DashboardSvc.StartDrag(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, state)
}

func (h *dashboardHandlers) EndDrag(w http.ResponseWriter, r *http.Request) {
	var req dto.DragEndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.EndDrag(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) CancelDrag(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	state, err := h.DashboardSvc.CancelDrag(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, state)
}
