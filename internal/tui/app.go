// Package tui is the terminal front end. It is deliberately thin view glue:
// every piece of inventory or camera behavior lives in the inventory and
// capture packages, and this package only routes key presses into their
// operations and renders the results. It is also the one place where the two
// subsystems meet: a captured photo is handed from the pipeline into the
// store's add operation.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rockhound-GO/Attic-Inventory/internal/capture"
	"github.com/Rockhound-GO/Attic-Inventory/internal/export"
	"github.com/Rockhound-GO/Attic-Inventory/internal/inventory"
	"github.com/Rockhound-GO/Attic-Inventory/internal/vision"
)

// Mode is the current screen.
type Mode int

const (
	ModeList Mode = iota
	ModeCapture
	ModeForm
	ModeCategories
)

// cameraUpdatedMsg signals that a pipeline operation finished and the view
// should re-read the pipeline's state.
type cameraUpdatedMsg struct{}

// suggestionMsg carries the vision result for the captured photo.
type suggestionMsg struct {
	suggestion *vision.Suggestion
	err        error
}

// Model is the root bubbletea model.
type Model struct {
	store     *inventory.Store
	pipeline  *capture.Pipeline
	suggester vision.Suggester // nil when no vision backend is configured
	exporter  *export.PhotoExporter
	logger    *slog.Logger

	mode   Mode
	width  int
	height int
	cursor int
	flash  string

	form       formModel
	categories categoriesModel
}

// New creates the root model. suggester and exporter may be nil.
func New(store *inventory.Store, pipeline *capture.Pipeline, suggester vision.Suggester, exporter *export.PhotoExporter, logger *slog.Logger) Model {
	return Model{
		store:     store,
		pipeline:  pipeline,
		suggester: suggester,
		exporter:  exporter,
		logger:    logger,
		mode:      ModeList,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case cameraUpdatedMsg:
		return m, nil
	case suggestionMsg:
		return m.handleSuggestion(msg)
	case tea.KeyMsg:
		m.flash = ""
		switch m.mode {
		case ModeCapture:
			return m.updateCapture(msg)
		case ModeForm:
			return m.updateForm(msg)
		case ModeCategories:
			return m.updateCategories(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.mode {
	case ModeCapture:
		return m.viewCapture()
	case ModeForm:
		return m.viewForm()
	case ModeCategories:
		return m.viewCategories()
	default:
		return m.viewList()
	}
}

// startCameraCmd runs a pipeline start off the update loop; the device may
// block on acquisition.
func (m Model) startCameraCmd(facing capture.Facing) tea.Cmd {
	p := m.pipeline
	return func() tea.Msg {
		p.Start(context.Background(), facing)
		return cameraUpdatedMsg{}
	}
}

func (m Model) captureCmd() tea.Cmd {
	p := m.pipeline
	return func() tea.Msg {
		p.CapturePhoto(context.Background())
		return cameraUpdatedMsg{}
	}
}

func (m Model) switchCameraCmd() tea.Cmd {
	p := m.pipeline
	return func() tea.Msg {
		p.SwitchCamera(context.Background())
		return cameraUpdatedMsg{}
	}
}

func (m Model) retakeCmd() tea.Cmd {
	p := m.pipeline
	return func() tea.Msg {
		p.Retake(context.Background())
		return cameraUpdatedMsg{}
	}
}

func (m Model) suggestCmd(photo []byte) tea.Cmd {
	s := m.suggester
	return func() tea.Msg {
		suggestion, err := s.Suggest(context.Background(), photo, "image/jpeg")
		return suggestionMsg{suggestion: suggestion, err: err}
	}
}

func (m Model) handleSuggestion(msg suggestionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("vision suggestion failed", "error", msg.err)
		m.flash = "No suggestion available"
		return m, nil
	}
	m.form.applySuggestion(msg.suggestion, m.store.Categories())
	m.flash = "Suggestion applied: " + msg.suggestion.Name
	return m, nil
}

// clampCursor keeps the cursor on a live row after items come and go.
func (m *Model) clampCursor() {
	n := m.store.ItemCount()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
