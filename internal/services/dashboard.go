package services

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/GregMSThompson/pbx-dashboard/internal/customization"
	"github.com/GregMSThompson/pbx-dashboard/internal/drag"
	"github.com/GregMSThompson/pbx-dashboard/internal/dto"
	"github.com/GregMSThompson/pbx-dashboard/internal/errs"
	"github.com/GregMSThompson/pbx-dashboard/internal/layout"
	"github.com/GregMSThompson/pbx-dashboard/internal/metrics"
	"github.com/GregMSThompson/pbx-dashboard/internal/models"
	"github.com/GregMSThompson/pbx-dashboard/internal/store"
	"github.com/GregMSThompson/pbx-dashboard/pkg/logger"
)

const (
	maxSessions = 10000
	sessionTTL  = 30 * time.Minute
)

// session is one user's customization store and drag gesture. The registry is
// refreshed from storage on every request, so the cache only carries editing
// state between requests; evicting a session loses nothing that was saved.
type session struct {
	prefs *customization.Store
	drag  *drag.Controller
}

type dashboardService struct {
	backend store.Backend

	mu       sync.Mutex
	sessions *expirable.LRU[string, *session]
}

func NewDashboardService(backend store.Backend) *dashboardService {
	onEvict := func(string, *session) { metrics.ActiveSessions.Dec() }
	return &dashboardService{
		backend:  backend,
		sessions: expirable.NewLRU(maxSessions, onEvict, sessionTTL),
	}
}

// session returns the user's session. A new session loads the registry; a
// cached one is refreshed so writes from other instances are not overwritten.
func (s *dashboardService) session(ctx context.Context, uid string) *session {
	s.mu.Lock()
	sess, ok := s.sessions.Get(uid)
	if !ok {
		prefs := customization.New(ctx, store.Namespace(s.backend, uid))
		sess = &session{prefs: prefs, drag: drag.NewController(prefs)}
		s.sessions.Add(uid, sess)
		metrics.ActiveSessions.Inc()
	}
	s.mu.Unlock()

	if ok {
		sess.prefs.Refresh(ctx)
	}
	if logger.IsDebugEnabled(ctx) {
		logger.FromContext(ctx).Debug("dashboard session",
			"cached", ok,
			"stale", sess.prefs.Stale(),
			"visible", len(sess.prefs.VisibleWidgets()))
	}
	return sess
}

func view(prefs *customization.Store) dto.DashboardView {
	return dto.DashboardView{
		Widgets:           prefs.VisibleWidgets(),
		CustomizationMode: prefs.CustomizationMode(),
		SelectedCategory:  prefs.SelectedCategory(),
	}
}

func result(changed bool, prefs *customization.Store) dto.MutationResult {
	return dto.MutationResult{Changed: changed, Dashboard: view(prefs)}
}

// --- Public service methods ---

func (s *dashboardService) GetDashboard(ctx context.Context, uid string) (dto.DashboardView, error) {
	return view(s.session(ctx, uid).prefs), nil
}

// AvailableWidgets lists the picker contents. A non-empty category also
// becomes the session's selected category.
func (s *dashboardService) AvailableWidgets(ctx context.Context, uid, category string) (dto.AvailableWidgetsResponse, error) {
	prefs := s.session(ctx, uid).prefs
	if category != "" {
		prefs.SetSelectedCategory(category)
	}
	return dto.AvailableWidgetsResponse{
		Category: prefs.SelectedCategory(),
		Widgets:  prefs.AvailableWidgets(),
	}, nil
}

func (s *dashboardService) Categories(ctx context.Context, uid string) ([]string, error) {
	return s.session(ctx, uid).prefs.Categories(), nil
}

func (s *dashboardService) Layouts(_ context.Context) []string {
	return layout.Names()
}

func (s *dashboardService) ToggleWidget(ctx context.Context, uid, widgetID string) (dto.MutationResult, error) {
	prefs := s.session(ctx, uid).prefs
	return result(prefs.ToggleWidget(ctx, widgetID), prefs), nil
}

func (s *dashboardService) AddWidget(ctx context.Context, uid, widgetID string) (dto.MutationResult, error) {
	prefs := s.session(ctx, uid).prefs
	return result(prefs.AddWidget(ctx, widgetID), prefs), nil
}

func (s *dashboardService) RemoveWidget(ctx context.Context, uid, widgetID string) (dto.MutationResult, error) {
	prefs := s.session(ctx, uid).prefs
	return result(prefs.RemoveWidget(ctx, widgetID), prefs), nil
}

func (s *dashboardService) IsWidgetVisible(ctx context.Context, uid, widgetID string) (dto.WidgetVisibilityResponse, error) {
	prefs := s.session(ctx, uid).prefs
	return dto.WidgetVisibilityResponse{WidgetID: widgetID, Visible: prefs.IsWidgetVisible(widgetID)}, nil
}

func (s *dashboardService) ReorderWidgets(ctx context.Context, uid string, req dto.ReorderWidgetsRequest) (dto.MutationResult, error) {
	if req.ActiveID == "" {
		return dto.MutationResult{}, errs.NewValidationError("activeId is required")
	}
	prefs := s.session(ctx, uid).prefs
	return result(prefs.ReorderWidgets(ctx, req.ActiveID, req.OverID), prefs), nil
}

func (s *dashboardService) ApplyLayout(ctx context.Context, uid string, req dto.ApplyLayoutRequest) (dto.MutationResult, error) {
	if req.Layout == "" {
		return dto.MutationResult{}, errs.NewValidationError("layout is required")
	}
	prefs := s.session(ctx, uid).prefs
	return result(prefs.ApplyAutoLayout(ctx, req.Layout), prefs), nil
}

func (s *dashboardService) ResetToDefaults(ctx context.Context, uid string) (dto.MutationResult, error) {
	prefs := s.session(ctx, uid).prefs
	prefs.ResetToDefaults(ctx)
	logger.FromContext(ctx).Info("dashboard reset to defaults")
	return result(true, prefs), nil
}

func (s *dashboardService) SetCustomizationMode(ctx context.Context, uid string, req dto.CustomizationModeRequest) (dto.DashboardView, error) {
	sess := s.session(ctx, uid)
	sess.prefs.SetCustomizationMode(req.Enabled)
	if !req.Enabled {
		// leaving edit mode abandons any drag in flight
		sess.drag.Cancel()
	}
	return view(sess.prefs), nil
}

func (s *dashboardService) SelectCategory(ctx context.Context, uid string, req dto.SelectCategoryRequest) (dto.DashboardView, error) {
	prefs := s.session(ctx, uid).prefs
	prefs.SetSelectedCategory(req.Category)
	return view(prefs), nil
}

func (s *dashboardService) SetMinimized(ctx context.Context, uid, widgetID string, req dto.SetMinimizedRequest) (dto.WidgetMinimizedResponse, error) {
	prefs := s.session(ctx, uid).prefs
	prefs.SetMinimized(ctx, widgetID, req.Minimized)
	return dto.WidgetMinimizedResponse{WidgetID: widgetID, Minimized: req.Minimized}, nil
}

func (s *dashboardService) Minimized(ctx context.Context, uid, widgetID string) (dto.WidgetMinimizedResponse, error) {
	prefs := s.session(ctx, uid).prefs
	return dto.WidgetMinimizedResponse{WidgetID: widgetID, Minimized: prefs.Minimized(ctx, widgetID)}, nil
}

// --- Drag gestures ---

func (s *dashboardService) StartDrag(ctx context.Context, uid string, req dto.DragStartRequest) (dto.DragStateResponse, error) {
	if req.WidgetID == "" {
		return dto.DragStateResponse{}, errs.NewValidationError("widgetId is required")
	}
	ctrl := s.session(ctx, uid).drag
	ctrl.Start(req.WidgetID)
	return dragState(ctrl), nil
}

func (s *dashboardService) EndDrag(ctx context.Context, uid string, req dto.DragEndRequest) (dto.MutationResult, error) {
	sess := s.session(ctx, uid)
	issued := sess.drag.End(ctx, req.OverID)
	return result(issued, sess.prefs), nil
}

func (s *dashboardService) CancelDrag(ctx context.Context, uid string) (dto.DragStateResponse, error) {
	ctrl := s.session(ctx, uid).drag
	ctrl.Cancel()
	return dragState(ctrl), nil
}

func dragState(ctrl *drag.Controller) dto.DragStateResponse {
	id, ok := ctrl.Active()
	return dto.DragStateResponse{ActiveID: id, Dragging: ok}
}

// Registry exposes a copy of the user's full registry for diagnostics and tests.
func (s *dashboardService) Registry(ctx context.Context, uid string) models.Registry {
	return s.session(ctx, uid).prefs.Registry()
}
