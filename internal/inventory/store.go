// Package inventory holds the session-local inventory state: items,
// categories, selection, and the active sort. All mutations are total
// functions: invalid input (missing id, empty name, the reserved category)
// is a silent no-op, never an error. Validation belongs to the caller.
package inventory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Rockhound-GO/Attic-Inventory/internal/domain"
)

// Store owns the item collection, the category set, the selection set, and
// the sort specification. Cascading mutations (category rename/delete) build
// the full next state before swapping it in, so a reader never observes a
// partially rewritten collection.
type Store struct {
	mu         sync.RWMutex
	items      []domain.Item
	categories []string
	selected   map[int64]struct{}
	sortKey    domain.SortKey
	sortDir    domain.SortDirection
	nextID     int64
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source. Tests use this to get
// deterministic CreatedAt values.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithCategories replaces the default starting category set. The reserved
// category is always present regardless of the given set.
func WithCategories(categories []string) Option {
	return func(s *Store) {
		s.categories = append([]string(nil), categories...)
	}
}

// New creates a store seeded with the default categories, sorted newest-first.
func New(opts ...Option) *Store {
	s := &Store{
		categories: domain.DefaultCategories(),
		selected:   make(map[int64]struct{}),
		sortKey:    domain.SortByCreatedAt,
		sortDir:    domain.SortDesc,
		nextID:     1,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !contains(s.categories, domain.CategoryMiscellaneous) {
		s.categories = append(s.categories, domain.CategoryMiscellaneous)
	}
	sort.Strings(s.categories)
	return s
}

// AddItem assigns a fresh id and the current timestamp to the draft and
// appends it to the collection. No validation is performed here.
func (s *Store) AddItem(draft domain.Draft) domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.Item{
		ID:        s.nextID,
		Name:      draft.Name,
		Category:  draft.Category,
		Value:     draft.Value,
		History:   draft.History,
		Photo:     draft.Photo,
		CreatedAt: s.now(),
		Status:    draft.Status,
	}
	s.nextID++
	s.items = append(s.items, item)
	return item
}

// Restore replaces the store's entire contents with a previously saved
// state. Fresh ids continue past the highest restored id. The selection set
// is cleared; the sort specification is untouched.
func (s *Store) Restore(items []domain.Item, categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]domain.Item(nil), items...)
	s.categories = append([]string(nil), categories...)
	if !contains(s.categories, domain.CategoryMiscellaneous) {
		s.categories = append(s.categories, domain.CategoryMiscellaneous)
	}
	sort.Strings(s.categories)

	s.selected = make(map[int64]struct{})
	s.nextID = 1
	for _, item := range s.items {
		if item.ID >= s.nextID {
			s.nextID = item.ID + 1
		}
	}
}

// RemoveItem deletes the item if present and evicts its id from the
// selection set. Absent ids are a no-op.
func (s *Store) RemoveItem(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	s.items = next
	delete(s.selected, id)
}

// UpdateItemStatus replaces the status of the matching item. Absent ids are
// a no-op.
func (s *Store) UpdateItemStatus(id int64, status domain.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			return
		}
	}
}

// UpdateItemCategory moves the matching item into category. Absent ids and
// categories outside the known set are a no-op.
func (s *Store) UpdateItemCategory(id int64, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !contains(s.categories, category) {
		return
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Category = category
			return
		}
	}
}

// AddCategory inserts name into the category set if it is non-empty and not
// already present. The set stays sorted.
func (s *Store) AddCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" || contains(s.categories, name) {
		return
	}
	s.categories = append(s.categories, name)
	sort.Strings(s.categories)
}

// RenameCategory renames oldName to newName and rewrites every item that
// referenced oldName. A rename to an existing name is a silent no-op, not a
// merge.
func (s *Store) RenameCategory(oldName, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newName == "" || contains(s.categories, newName) {
		return
	}
	if !contains(s.categories, oldName) {
		return
	}

	// Build both next collections, then publish together.
	nextCategories := make([]string, 0, len(s.categories))
	for _, c := range s.categories {
		if c == oldName {
			c = newName
		}
		nextCategories = append(nextCategories, c)
	}
	sort.Strings(nextCategories)

	nextItems := append([]domain.Item(nil), s.items...)
	for i := range nextItems {
		if nextItems[i].Category == oldName {
			nextItems[i].Category = newName
		}
	}

	s.categories = nextCategories
	s.items = nextItems
}

// DeleteCategory removes the category and reassigns its items to the
// reserved category. Deleting the reserved category is a no-op.
func (s *Store) DeleteCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == domain.CategoryMiscellaneous || !contains(s.categories, name) {
		return
	}

	nextCategories := make([]string, 0, len(s.categories))
	for _, c := range s.categories {
		if c != name {
			nextCategories = append(nextCategories, c)
		}
	}

	nextItems := append([]domain.Item(nil), s.items...)
	for i := range nextItems {
		if nextItems[i].Category == name {
			nextItems[i].Category = domain.CategoryMiscellaneous
		}
	}

	s.categories = nextCategories
	s.items = nextItems
}

// SetSort adopts key with its default direction, or flips the direction when
// key is already active. CreatedAt defaults to newest-first; name and value
// default to ascending.
func (s *Store) SetSort(key domain.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sortKey == key {
		if s.sortDir == domain.SortAsc {
			s.sortDir = domain.SortDesc
		} else {
			s.sortDir = domain.SortAsc
		}
		return
	}
	s.sortKey = key
	if key == domain.SortByCreatedAt {
		s.sortDir = domain.SortDesc
	} else {
		s.sortDir = domain.SortAsc
	}
}

// Sort reports the active sort specification.
func (s *Store) Sort() (domain.SortKey, domain.SortDirection) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortKey, s.sortDir
}

// SortedItems returns the items ordered by the active sort key. Ties keep
// their original relative order: the sort is stable and direction is applied
// by inverting the comparison, not by reversing afterwards.
func (s *Store) SortedItems() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]domain.Item(nil), s.items...)
	key, dir := s.sortKey, s.sortDir
	sort.SliceStable(out, func(i, j int) bool {
		c := compareItems(out[i], out[j], key)
		if dir == domain.SortDesc {
			c = -c
		}
		return c < 0
	})
	return out
}

// Items returns the items in insertion order.
func (s *Store) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Item(nil), s.items...)
}

// Item returns the item with the given id, or false when absent.
func (s *Store) Item(id int64) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.Item{}, false
}

// ItemCount returns the number of items.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Categories returns the sorted category set.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// ToggleSelected flips the item's membership in the selection set. Ids that
// do not reference a live item are a no-op, which keeps the selection a
// subset of existing ids.
func (s *Store) ToggleSelected(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	for _, item := range s.items {
		if item.ID == id {
			s.selected[id] = struct{}{}
			return
		}
	}
}

// ToggleSelectAll clears the selection when every item is already selected,
// otherwise selects exactly the current item set. The decision is recomputed
// live at call time.
func (s *Store) ToggleSelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selected) == len(s.items) {
		s.selected = make(map[int64]struct{})
		return
	}
	next := make(map[int64]struct{}, len(s.items))
	for _, item := range s.items {
		next[item.ID] = struct{}{}
	}
	s.selected = next
}

// ClearSelection empties the selection set.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[int64]struct{})
}

// SelectedIDs returns the selected item ids in ascending order.
func (s *Store) SelectedIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsSelected reports whether the item is in the selection set.
func (s *Store) IsSelected(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[id]
	return ok
}

// SelectedCount returns the size of the selection set.
func (s *Store) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

// AllSelected reports whether every item is selected and at least one item
// exists.
func (s *Store) AllSelected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) > 0 && len(s.selected) == len(s.items)
}

// BulkDelete removes every selected item and clears the selection.
func (s *Store) BulkDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if _, ok := s.selected[item.ID]; !ok {
			next = append(next, item)
		}
	}
	s.items = next
	s.selected = make(map[int64]struct{})
}

// BulkUpdateStatus sets status on every selected item and clears the
// selection, even when nothing was selected.
func (s *Store) BulkUpdateStatus(status domain.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if _, ok := s.selected[s.items[i].ID]; ok {
			s.items[i].Status = status
		}
	}
	s.selected = make(map[int64]struct{})
}

// BulkUpdateCategory reassigns every selected item to category and clears
// the selection. An unknown category reassigns nothing, so items never
// reference a label outside the category set, but the selection is cleared
// either way; callers must not assume selection survives a bulk action.
func (s *Store) BulkUpdateCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.categories, category) {
		for i := range s.items {
			if _, ok := s.selected[s.items[i].ID]; ok {
				s.items[i].Category = category
			}
		}
	}
	s.selected = make(map[int64]struct{})
}

func compareItems(a, b domain.Item, key domain.SortKey) int {
	switch key {
	case domain.SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case domain.SortByValue:
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func contains(set []string, name string) bool {
	for _, c := range set {
		if c == name {
			return true
		}
	}
	return false
}
