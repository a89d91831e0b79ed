package tui

import (
	"io"
	"log/slog"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rockhound-GO/Attic-Inventory/internal/capture"
	"github.com/Rockhound-GO/Attic-Inventory/internal/capture/fakecam"
	"github.com/Rockhound-GO/Attic-Inventory/internal/domain"
	"github.com/Rockhound-GO/Attic-Inventory/internal/inventory"
)

func newTestModel(t *testing.T) (Model, *fakecam.Device) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dev := fakecam.New()
	store := inventory.New()
	pipeline := capture.New(dev, logger)
	return New(store, pipeline, nil, nil, logger), dev
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// press sends one key and runs any resulting command synchronously.
func press(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, cmd := m.Update(key(s))
	model := next.(Model)
	for cmd != nil {
		next, cmd = model.Update(cmd())
		model = next.(Model)
	}
	return model
}

func addItem(m Model, name string, value float64) {
	m.store.AddItem(domain.Draft{
		Name:     name,
		Category: domain.CategoryMiscellaneous,
		Value:    value,
		Photo:    []byte{0xff, 0xd8},
		Status:   domain.StatusToSort,
	})
}

func TestNewItemFlowCapturesAndSaves(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "n")
	require.Equal(t, ModeCapture, m.mode)
	require.Equal(t, capture.StateStreaming, m.pipeline.State())

	m = press(t, m, "c")
	require.Equal(t, capture.StateCaptured, m.pipeline.State())

	m = press(t, m, "enter")
	require.Equal(t, ModeForm, m.mode)

	m = press(t, m, "Lamp")
	m = press(t, m, "enter")

	assert.Equal(t, ModeList, m.mode)
	assert.Equal(t, capture.StateIdle, m.pipeline.State())
	require.Equal(t, 1, m.store.ItemCount())
	item := m.store.Items()[0]
	assert.Equal(t, "Lamp", item.Name)
	assert.NotEmpty(t, item.Photo)
}

func TestFormRejectsEmptyName(t *testing.T) {
	m, _ := newTestModel(t)
	m.mode = ModeForm

	m = press(t, m, "enter")

	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, 0, m.store.ItemCount())
	assert.NotEmpty(t, m.flash)
}

func TestFormRejectsNegativeValue(t *testing.T) {
	m, _ := newTestModel(t)
	m.mode = ModeForm
	m.form.name = "Lamp"
	m.form.value = "-5"

	m = press(t, m, "enter")

	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, 0, m.store.ItemCount())
	assert.NotEmpty(t, m.flash)
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	got := truncate("Großmutters Porzellanvase", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Großmutte…", got)

	assert.Equal(t, "Vase", truncate("Vase", 10))
}

func TestEscFromCaptureStopsCamera(t *testing.T) {
	m, dev := newTestModel(t)

	m = press(t, m, "n")
	require.Equal(t, capture.StateStreaming, m.pipeline.State())

	m = press(t, m, "esc")
	assert.Equal(t, ModeList, m.mode)
	assert.Equal(t, capture.StateIdle, m.pipeline.State())
	assert.Zero(t, dev.OpenStreams())
}

func TestListSelectionAndBulkStatus(t *testing.T) {
	m, _ := newTestModel(t)
	addItem(m, "Chair", 75)
	addItem(m, "Records", 200)

	m = press(t, m, " ")
	m = press(t, m, "j")
	m = press(t, m, " ")
	require.Equal(t, 2, m.store.SelectedCount())

	m = press(t, m, "4")
	assert.Zero(t, m.store.SelectedCount())
	for _, item := range m.store.Items() {
		assert.Equal(t, domain.StatusDone, item.Status)
	}
}

func TestSortKeysToggleDirection(t *testing.T) {
	m, _ := newTestModel(t)
	addItem(m, "Chair", 75)
	addItem(m, "Records", 200)

	m = press(t, m, "v")
	sortKey, dir := m.store.Sort()
	require.Equal(t, domain.SortByValue, sortKey)
	require.Equal(t, domain.SortAsc, dir)

	m = press(t, m, "v")
	_, dir = m.store.Sort()
	assert.Equal(t, domain.SortDesc, dir)
	assert.Equal(t, "Records", m.store.SortedItems()[0].Name)
}

func TestCategoryScreenAssignsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	addItem(m, "Chair", 75)

	m = press(t, m, " ")
	m = press(t, m, "c")
	require.Equal(t, ModeCategories, m.mode)

	// First row is "Antiques" in the sorted default set.
	m = press(t, m, "enter")
	assert.Equal(t, ModeList, m.mode)
	assert.Equal(t, "Antiques", m.store.Items()[0].Category)
	assert.Zero(t, m.store.SelectedCount())
}

func TestCategoryScreenAddAndDelete(t *testing.T) {
	m, _ := newTestModel(t)
	m.mode = ModeCategories

	m = press(t, m, "a")
	for _, r := range "Radios" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	assert.Contains(t, m.store.Categories(), "Radios")

	// Cursor still on the first row; deleting it drops "Antiques".
	m = press(t, m, "x")
	assert.NotContains(t, m.store.Categories(), "Antiques")
	assert.Contains(t, m.store.Categories(), domain.CategoryMiscellaneous)
}
