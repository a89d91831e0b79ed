package inventory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rockhound-GO/Attic-Inventory/internal/domain"
)

var photo = []byte{0xff, 0xd8, 0xff, 0xd9} // minimal JPEG marker pair

// testClock hands out strictly increasing timestamps.
func testClock() func() time.Time {
	t := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func draft(name, category string, value float64) domain.Draft {
	return domain.Draft{
		Name:     name,
		Category: category,
		Value:    value,
		Photo:    photo,
		Status:   domain.StatusToSort,
	}
}

func TestAddItemAssignsIDAndTimestamp(t *testing.T) {
	s := New(WithClock(testClock()))

	a := s.AddItem(draft("Rocking chair", "Furniture", 75))
	b := s.AddItem(draft("Vinyl records", "Keepsakes", 200))

	assert.NotZero(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, b.CreatedAt.After(a.CreatedAt))
	assert.Equal(t, domain.StatusToSort, a.Status)
}

func TestRemoveItem_AbsentIDIsNoOp(t *testing.T) {
	s := New()
	s.AddItem(draft("Lamp", "Furniture", 10))

	s.RemoveItem(999)
	assert.Equal(t, 1, s.ItemCount())
}

func TestUpdateItemStatus(t *testing.T) {
	s := New()
	item := s.AddItem(draft("Lamp", "Furniture", 10))

	s.UpdateItemStatus(item.ID, domain.StatusDone)
	got, ok := s.Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDone, got.Status)

	// absent id: nothing changes
	s.UpdateItemStatus(999, domain.StatusToValue)
	got, _ = s.Item(item.ID)
	assert.Equal(t, domain.StatusDone, got.Status)
}

func TestSelectionAlwaysSubsetOfItems(t *testing.T) {
	s := New()
	a := s.AddItem(draft("A", "Tools", 1))
	b := s.AddItem(draft("B", "Tools", 2))
	c := s.AddItem(draft("C", "Tools", 3))

	s.ToggleSelected(a.ID)
	s.ToggleSelected(b.ID)
	s.ToggleSelected(c.ID)
	s.ToggleSelected(12345) // not an item, must not enter the set
	assert.Equal(t, 3, s.SelectedCount())

	s.RemoveItem(b.ID)
	assert.Equal(t, []int64{a.ID, c.ID}, s.SelectedIDs())

	live := map[int64]bool{}
	for _, item := range s.Items() {
		live[item.ID] = true
	}
	for _, id := range s.SelectedIDs() {
		assert.True(t, live[id], "selected id %d no longer exists", id)
	}
}

func TestAddCategory(t *testing.T) {
	s := New()
	before := len(s.Categories())

	s.AddCategory("Instruments")
	assert.Contains(t, s.Categories(), "Instruments")

	// duplicates and empty names are ignored
	s.AddCategory("Instruments")
	s.AddCategory("")
	assert.Len(t, s.Categories(), before+1)

	// set stays sorted after insertion
	cats := s.Categories()
	for i := 1; i < len(cats); i++ {
		assert.LessOrEqual(t, cats[i-1], cats[i])
	}
}

func TestRenameCategory_CascadesToItems(t *testing.T) {
	s := New()
	a := s.AddItem(draft("Saw", "Tools", 15))
	b := s.AddItem(draft("Novel", "Books", 5))

	s.RenameCategory("Tools", "Workshop")

	assert.NotContains(t, s.Categories(), "Tools")
	assert.Contains(t, s.Categories(), "Workshop")

	got, _ := s.Item(a.ID)
	assert.Equal(t, "Workshop", got.Category)
	got, _ = s.Item(b.ID)
	assert.Equal(t, "Books", got.Category)
}

func TestRenameCategory_ExistingTargetIsNoOp(t *testing.T) {
	s := New()
	a := s.AddItem(draft("Saw", "Tools", 15))
	before := s.Categories()

	// Rename to an existing name must not merge; state is unchanged.
	s.RenameCategory("Tools", "Books")

	assert.Equal(t, before, s.Categories())
	got, _ := s.Item(a.ID)
	assert.Equal(t, "Tools", got.Category)
}

func TestRenameCategory_EmptyOrUnknown(t *testing.T) {
	s := New()
	before := s.Categories()

	s.RenameCategory("Tools", "")
	s.RenameCategory("NoSuch", "Whatever")

	assert.Equal(t, before, s.Categories())
}

func TestDeleteCategory_ReassignsToMiscellaneous(t *testing.T) {
	s := New()
	a := s.AddItem(draft("Saw", "Tools", 15))

	s.DeleteCategory("Tools")

	assert.NotContains(t, s.Categories(), "Tools")
	got, _ := s.Item(a.ID)
	assert.Equal(t, domain.CategoryMiscellaneous, got.Category)
}

func TestDeleteCategory_MiscellaneousIsProtected(t *testing.T) {
	s := New()
	s.DeleteCategory(domain.CategoryMiscellaneous)
	assert.Contains(t, s.Categories(), domain.CategoryMiscellaneous)
}

func TestSetSort_DefaultsAndToggle(t *testing.T) {
	s := New(WithClock(testClock()))
	one := s.AddItem(draft("chair", "Furniture", 75))
	two := s.AddItem(draft("records", "Keepsakes", 200))

	ids := func() []int64 {
		var out []int64
		for _, item := range s.SortedItems() {
			out = append(out, item.ID)
		}
		return out
	}

	// value adopts ascending by default
	s.SetSort(domain.SortByValue)
	assert.Equal(t, []int64{one.ID, two.ID}, ids())

	// same key again flips direction
	s.SetSort(domain.SortByValue)
	assert.Equal(t, []int64{two.ID, one.ID}, ids())

	// createdAt adopts descending by default
	s.SetSort(domain.SortByCreatedAt)
	assert.Equal(t, []int64{two.ID, one.ID}, ids())
}

func TestSortedItems_NameIsCaseInsensitive(t *testing.T) {
	s := New()
	b := s.AddItem(draft("banjo", "Keepsakes", 1))
	a := s.AddItem(draft("Accordion", "Keepsakes", 1))

	s.SetSort(domain.SortByName)
	got := s.SortedItems()
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)
}

func TestSortedItems_TiesAreStableUnderBothDirections(t *testing.T) {
	s := New()
	// All equal on value; insertion order must survive a direction flip.
	var want []int64
	for i := 0; i < 5; i++ {
		item := s.AddItem(draft(fmt.Sprintf("item-%d", i), "Tools", 50))
		want = append(want, item.ID)
	}

	s.SetSort(domain.SortByValue)
	var asc []int64
	for _, item := range s.SortedItems() {
		asc = append(asc, item.ID)
	}
	assert.Equal(t, want, asc)

	s.SetSort(domain.SortByValue) // flip to descending
	var desc []int64
	for _, item := range s.SortedItems() {
		desc = append(desc, item.ID)
	}
	assert.Equal(t, want, desc, "equal-key items must keep insertion order in both directions")
}

func TestToggleSelectAll_Involution(t *testing.T) {
	s := New()
	a := s.AddItem(draft("A", "Tools", 1))
	s.AddItem(draft("B", "Tools", 2))
	s.ToggleSelected(a.ID)

	before := s.SelectedIDs()
	s.ToggleSelectAll()
	assert.True(t, s.AllSelected())
	s.ToggleSelectAll()
	assert.Equal(t, 0, s.SelectedCount())

	// a partial selection round-trips to empty, not to the partial set;
	// double-toggle from empty is the identity
	s.ToggleSelectAll()
	s.ToggleSelectAll()
	assert.Empty(t, s.SelectedIDs())
	_ = before
}

func TestToggleSelectAll_EmptyStore(t *testing.T) {
	s := New()
	s.ToggleSelectAll()
	assert.Equal(t, 0, s.SelectedCount())
	assert.False(t, s.AllSelected())
}

func TestBulkDelete(t *testing.T) {
	s := New()
	a := s.AddItem(draft("A", "Tools", 1))
	b := s.AddItem(draft("B", "Tools", 2))
	c := s.AddItem(draft("C", "Tools", 3))

	s.ToggleSelected(a.ID)
	s.ToggleSelected(c.ID)
	s.BulkDelete()

	assert.Equal(t, 1, s.ItemCount())
	_, ok := s.Item(b.ID)
	assert.True(t, ok)
	assert.Equal(t, 0, s.SelectedCount())
}

func TestBulkUpdateStatus_ClearsSelectionEvenWhenEmpty(t *testing.T) {
	s := New()
	s.AddItem(draft("A", "Tools", 1))

	s.BulkUpdateStatus(domain.StatusDone)
	assert.Equal(t, 0, s.SelectedCount())

	got := s.Items()[0]
	assert.Equal(t, domain.StatusToSort, got.Status, "unselected items must not change")
}

func TestBulkUpdateStatus(t *testing.T) {
	s := New()
	a := s.AddItem(draft("A", "Tools", 1))
	b := s.AddItem(draft("B", "Tools", 2))

	s.ToggleSelected(a.ID)
	s.BulkUpdateStatus(domain.StatusToValue)

	got, _ := s.Item(a.ID)
	assert.Equal(t, domain.StatusToValue, got.Status)
	got, _ = s.Item(b.ID)
	assert.Equal(t, domain.StatusToSort, got.Status)
	assert.Equal(t, 0, s.SelectedCount())
}

func TestRestore(t *testing.T) {
	s := New()
	s.AddItem(draft("Stale", "Tools", 1))
	s.ToggleSelectAll()

	restored := []domain.Item{
		{ID: 7, Name: "Chair", Category: "Furniture", Photo: photo, Status: domain.StatusDone},
	}
	s.Restore(restored, []string{"Furniture"})

	assert.Equal(t, 1, s.ItemCount())
	assert.Equal(t, 0, s.SelectedCount(), "selection must not survive a restore")
	assert.Contains(t, s.Categories(), domain.CategoryMiscellaneous,
		"the reserved category is always present")

	// fresh ids continue past the highest restored id
	next := s.AddItem(draft("New", "Furniture", 2))
	assert.Equal(t, int64(8), next.ID)
}

func TestBulkUpdateCategory(t *testing.T) {
	s := New()
	a := s.AddItem(draft("A", "Tools", 1))
	b := s.AddItem(draft("B", "Books", 2))

	s.ToggleSelected(a.ID)
	s.ToggleSelected(b.ID)
	s.BulkUpdateCategory("Keepsakes")

	for _, item := range s.Items() {
		assert.Equal(t, "Keepsakes", item.Category)
	}
	assert.Equal(t, 0, s.SelectedCount())

	// a label outside the category set must never reach an item, but the
	// selection is still cleared: it never survives a bulk action
	s.ToggleSelected(a.ID)
	s.BulkUpdateCategory("NoSuchCategory")
	got, _ := s.Item(a.ID)
	assert.Equal(t, "Keepsakes", got.Category)
	assert.Equal(t, 0, s.SelectedCount())
}
