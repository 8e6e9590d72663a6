package models

import (
	"cmp"
	"slices"
)

// Widget is a single dashboard panel as stored in a user's customization state.
// Order is relative among visible widgets; zero means unset and sorts first.
type Widget struct {
	ID       string `firestore:"id" json:"id"`
	Title    string `firestore:"title" json:"title"`
	Visible  bool   `firestore:"visible" json:"visible"`
	Order    int    `firestore:"order" json:"order"`
	Category string `firestore:"category" json:"category"`
}

// Registry maps widget id to widget state for every widget a user knows about,
// visible or not.
type Registry map[string]Widget

// Clone returns a shallow copy; Widget has no reference fields so this is a deep copy.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for id, w := range r {
		out[id] = w
	}
	return out
}

// Visible returns the visible widgets sorted by order, ties broken by id.
func (r Registry) Visible() []Widget {
	out := make([]Widget, 0, len(r))
	for _, w := range r {
		if w.Visible {
			out = append(out, w)
		}
	}
	SortByOrder(out)
	return out
}

// SortByOrder sorts widgets ascending by Order, then by ID.
func SortByOrder(widgets []Widget) {
	slices.SortStableFunc(widgets, func(a, b Widget) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// WidgetPatch is a widget as read back from storage. A nil field was absent
// from the saved JSON and keeps its compiled-in value.
type WidgetPatch struct {
	ID       *string `json:"id"`
	Title    *string `json:"title"`
	Visible  *bool   `json:"visible"`
	Order    *int    `json:"order"`
	Category *string `json:"category"`
}

// Apply overlays the fields present in p onto w.
func (p WidgetPatch) Apply(w Widget) Widget {
	if p.ID != nil {
		w.ID = *p.ID
	}
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Visible != nil {
		w.Visible = *p.Visible
	}
	if p.Order != nil {
		w.Order = *p.Order
	}
	if p.Category != nil {
		w.Category = *p.Category
	}
	return w
}

// SavedRegistry is the persisted form of a Registry.
type SavedRegistry map[string]WidgetPatch
