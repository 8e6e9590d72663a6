// Package customization owns a user's dashboard widget registry.
//
// A Store is the single source of truth for widget visibility and order. Every
// mutation writes the full registry through to a key-value store before
// returning. Storage problems are logged and counted but never returned: the
// in-memory registry stays authoritative for the rest of the session.
package customization

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/GregMSThompson/pbx-dashboard/internal/catalog"
	"github.com/GregMSThompson/pbx-dashboard/internal/errs"
	"github.com/GregMSThompson/pbx-dashboard/internal/layout"
	"github.com/GregMSThompson/pbx-dashboard/internal/metrics"
	"github.com/GregMSThompson/pbx-dashboard/internal/models"
	"github.com/GregMSThompson/pbx-dashboard/pkg/logger"
)

// StorageKey is the key holding the serialized registry.
const StorageKey = "dashboard-customization"

const minimizedKeyPrefix = "widget-minimized-"

// MinimizedKey returns the key holding the minimized flag of a widget.
func MinimizedKey(id string) string {
	return minimizedKeyPrefix + id
}

// KV is the durable key-value store a Store persists to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store holds one user's widget registry and editing session.
type Store struct {
	mu       sync.Mutex
	kv       KV
	registry models.Registry

	// stale is set while the saved registry cannot be read. Mutations still
	// apply in memory but are not written, so a read failure never replaces
	// the saved customization with defaults.
	stale bool
	// dirty is set when the last write failed and memory is ahead of storage.
	dirty bool

	// session state, never persisted
	customizationMode bool
	selectedCategory  string
}

// New loads the registry from kv, merged over the compiled-in catalog. A
// missing, unreadable or malformed saved registry is replaced by the catalog;
// New never fails.
func New(ctx context.Context, kv KV) *Store {
	reg, ok := load(ctx, kv)
	return &Store{
		kv:               kv,
		registry:         reg,
		stale:            !ok,
		selectedCategory: catalog.CategoryAll,
	}
}

// Refresh brings the registry up to date with storage. A store with an unsaved
// change retries the write instead of reading. When the read fails the current
// registry is kept and writes stay suspended until a later Refresh succeeds.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		s.persist(ctx)
		return
	}
	reg, ok := load(ctx, s.kv)
	if !ok {
		s.stale = true
		return
	}
	s.registry = reg
	s.stale = false
}

// Stale reports whether the saved registry could not be read.
func (s *Store) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// load reads and merges the saved registry. ok is false only when the backend
// failed; a missing or malformed value is a valid reason to use the catalog.
func load(ctx context.Context, kv KV) (reg models.Registry, ok bool) {
	log := logger.FromContext(ctx)

	raw, err := kv.Get(ctx, StorageKey)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			log.Debug("no saved dashboard customization, using defaults", "key", StorageKey)
			metrics.LoadFallbacks.WithLabelValues(metrics.ReasonMissing).Inc()
			return catalog.Build(), true
		}
		log.Warn("failed to load dashboard customization, using defaults", "key", StorageKey, "error", err)
		metrics.LoadFallbacks.WithLabelValues(metrics.ReasonBackend).Inc()
		return catalog.Build(), false
	}

	var persisted models.SavedRegistry
	if err := json.Unmarshal(raw, &persisted); err != nil {
		log.Warn("saved dashboard customization is malformed, using defaults", "key", StorageKey, "error", err)
		metrics.LoadFallbacks.WithLabelValues(metrics.ReasonMalformed).Inc()
		return catalog.Build(), true
	}
	return catalog.Merge(persisted), true
}

// persist writes the whole registry under StorageKey. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	if s.stale {
		logger.FromContext(ctx).Warn("saved dashboard customization unreadable, change kept in memory only", "key", StorageKey)
		metrics.PersistWrites.WithLabelValues("skipped").Inc()
		return
	}
	raw, err := json.Marshal(s.registry)
	if err == nil {
		err = s.kv.Set(ctx, StorageKey, raw)
	}
	s.dirty = err != nil
	if err != nil {
		logger.FromContext(ctx).Warn("failed to save dashboard customization", "key", StorageKey, "error", err)
		metrics.PersistWrites.WithLabelValues("failure").Inc()
		return
	}
	metrics.PersistWrites.WithLabelValues("success").Inc()
}

// ToggleWidget flips the visibility of id. Unknown ids are ignored.
func (s *Store) ToggleWidget(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.registry[id]
	if !ok {
		return false
	}
	w.Visible = !w.Visible
	s.registry[id] = w
	s.persist(ctx)
	return true
}

// AddWidget shows a widget already known to the registry. It never creates
// new ids.
func (s *Store) AddWidget(ctx context.Context, id string) bool {
	return s.setVisible(ctx, id, true)
}

// RemoveWidget hides id. The entry stays in the registry.
func (s *Store) RemoveWidget(ctx context.Context, id string) bool {
	return s.setVisible(ctx, id, false)
}

func (s *Store) setVisible(ctx context.Context, id string, visible bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.registry[id]
	if !ok {
		return false
	}
	w.Visible = visible
	s.registry[id] = w
	s.persist(ctx)
	return true
}

// ReorderWidgets moves activeID to the position overID holds in the visible
// sequence and renumbers every visible widget 1..n. A backward move lands
// before overID and a forward move lands after it. It does nothing when the
// ids are equal or either one is not visible.
func (s *Store) ReorderWidgets(ctx context.Context, activeID, overID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if activeID == overID {
		return false
	}
	seq := s.registry.Visible()
	from := slices.IndexFunc(seq, func(w models.Widget) bool { return w.ID == activeID })
	to := slices.IndexFunc(seq, func(w models.Widget) bool { return w.ID == overID })
	if from < 0 || to < 0 {
		return false
	}

	moved := seq[from]
	seq = slices.Delete(seq, from, from+1)
	seq = slices.Insert(seq, to, moved)

	for i, w := range seq {
		w.Order = i + 1
		s.registry[w.ID] = w
	}
	s.persist(ctx)
	return true
}

// ApplyAutoLayout reassigns the order of every visible widget using the named
// strategy. Unknown strategies are logged and ignored. Hidden widgets and all
// fields other than Order are left alone.
func (s *Store) ApplyAutoLayout(ctx context.Context, name string) bool {
	apply, ok := layout.Lookup(name)
	if !ok {
		logger.FromContext(ctx).Warn("unknown layout type", "layout", name)
		metrics.LayoutsApplied.WithLabelValues("unknown").Inc()
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, placed := range apply(s.registry.Visible()) {
		w, ok := s.registry[id]
		if !ok {
			continue
		}
		w.Order = placed.Order
		s.registry[id] = w
	}
	metrics.LayoutsApplied.WithLabelValues(name).Inc()
	s.persist(ctx)
	return true
}

// ResetToDefaults discards every customization and overwrites the saved state
// with the compiled-in catalog, even when the saved state was unreadable.
func (s *Store) ResetToDefaults(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry = catalog.Build()
	s.stale = false
	s.persist(ctx)
}

// VisibleWidgets returns the shown widgets in display order.
func (s *Store) VisibleWidgets() []models.Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Visible()
}

// AvailableWidgets returns hidden widgets in the selected category, sorted by title.
func (s *Store) AvailableWidgets() []models.Widget {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Widget, 0, len(s.registry))
	for _, w := range s.registry {
		if w.Visible {
			continue
		}
		if s.selectedCategory != catalog.CategoryAll && w.Category != s.selectedCategory {
			continue
		}
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b models.Widget) int {
		if c := cmp.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Categories returns the distinct non-empty categories across the registry.
// The result is sorted so responses are stable.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	for _, w := range s.registry {
		if w.Category != "" {
			seen[w.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// IsWidgetVisible reports whether id is shown. Unknown ids read as hidden.
func (s *Store) IsWidgetVisible(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry[id].Visible
}

// Registry returns a copy of the full registry.
func (s *Store) Registry() models.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Clone()
}

// SetCustomizationMode turns the dashboard's edit mode on or off.
func (s *Store) SetCustomizationMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customizationMode = enabled
}

// CustomizationMode reports whether edit mode is on.
func (s *Store) CustomizationMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customizationMode
}

// SetSelectedCategory sets the picker filter. An empty category means "all".
func (s *Store) SetSelectedCategory(category string) {
	if category == "" {
		category = catalog.CategoryAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCategory = category
}

// SelectedCategory returns the picker filter, "all" when unfiltered.
func (s *Store) SelectedCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCategory
}

// SetMinimized saves whether a widget is collapsed. The flag lives under its
// own key, independent of the registry, and a failed write is only logged.
func (s *Store) SetMinimized(ctx context.Context, id string, minimized bool) {
	raw, _ := json.Marshal(minimized)
	if err := s.kv.Set(ctx, MinimizedKey(id), raw); err != nil {
		logger.FromContext(ctx).Warn("failed to save widget minimized state", "key", MinimizedKey(id), "error", err)
		metrics.PersistWrites.WithLabelValues("failure").Inc()
		return
	}
	metrics.PersistWrites.WithLabelValues("success").Inc()
}

// Minimized reports whether a widget is collapsed. Missing or unreadable
// values read as false.
func (s *Store) Minimized(ctx context.Context, id string) bool {
	raw, err := s.kv.Get(ctx, MinimizedKey(id))
	if err != nil {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			logger.FromContext(ctx).Warn("failed to load widget minimized state", "key", MinimizedKey(id), "error", err)
		}
		return false
	}
	var minimized bool
	if err := json.Unmarshal(raw, &minimized); err != nil {
		logger.FromContext(ctx).Warn("widget minimized state is malformed", "key", MinimizedKey(id), "error", err)
		return false
	}
	return minimized
}
