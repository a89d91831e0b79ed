package domain

import "time"

// Status is an item's place in the cataloging workflow.
type Status string

const (
	StatusToSort       Status = "To Sort"
	StatusToPhotograph Status = "To Photograph"
	StatusToValue      Status = "To Value"
	StatusDone         Status = "Done"
)

// Statuses lists every workflow status in order.
func Statuses() []Status {
	return []Status{StatusToSort, StatusToPhotograph, StatusToValue, StatusDone}
}

// CategoryMiscellaneous is the reserved fallback category. It can never be
// deleted; items whose category is removed are reassigned to it.
const CategoryMiscellaneous = "Miscellaneous"

// DefaultCategories returns the category set a fresh inventory starts with.
func DefaultCategories() []string {
	return []string{
		"Antiques", "Books", "Clothing", "Electronics",
		"Furniture", "Keepsakes", "Tools", CategoryMiscellaneous,
	}
}

// Item is one cataloged physical object.
type Item struct {
	ID        int64
	Name      string
	Category  string
	Value     float64
	History   string
	Photo     []byte // encoded JPEG, required
	CreatedAt time.Time
	Status    Status
}

// Draft is the caller-supplied portion of a new item. The store fills in ID
// and CreatedAt. The form is responsible for validation; the store trusts the
// draft's shape.
type Draft struct {
	Name     string
	Category string
	Value    float64
	History  string
	Photo    []byte
	Status   Status
}

// SortKey selects the field sorted views order by.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByCreatedAt SortKey = "createdAt"
	SortByValue     SortKey = "value"
)

// SortDirection is the direction applied to the active sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)
