package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rockhound-GO/Attic-Inventory/internal/capture"
	"github.com/Rockhound-GO/Attic-Inventory/internal/domain"
	"github.com/Rockhound-GO/Attic-Inventory/internal/vision"
)

const (
	fieldName = iota
	fieldCategory
	fieldValue
	fieldHistory
	fieldStatus
	fieldCount
)

// formModel holds the draft for a new item. Name, value and history are free
// text; category and status cycle through the known sets with left/right.
type formModel struct {
	focus    int
	name     string
	category int
	value    string
	history  string
	status   int
}

func newFormModel() formModel {
	return formModel{}
}

// applySuggestion fills empty fields from a vision result. Typed input wins
// over the model's guess.
func (f *formModel) applySuggestion(s *vision.Suggestion, categories []string) {
	if s == nil {
		return
	}
	if f.name == "" {
		f.name = s.Name
	}
	if f.value == "" && s.Value > 0 {
		f.value = strconv.FormatFloat(s.Value, 'f', 2, 64)
	}
	if f.history == "" {
		f.history = s.Note
	}
	for i, c := range categories {
		if strings.EqualFold(c, s.Category) {
			f.category = i
			break
		}
	}
}

func (m Model) updateCapture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "q":
		m.pipeline.Stop()
		m.mode = ModeList

	case "c", "enter":
		switch m.pipeline.State() {
		case capture.StateStreaming:
			return m, m.captureCmd()
		case capture.StateCaptured:
			m.mode = ModeForm
		case capture.StateError, capture.StateIdle:
			return m, m.startCameraCmd(m.pipeline.Facing())
		}

	case "r":
		if m.pipeline.State() == capture.StateCaptured {
			return m, m.retakeCmd()
		}

	case "f":
		if m.pipeline.State() == capture.StateStreaming && m.pipeline.CanSwitchCamera() {
			return m, m.switchCameraCmd()
		}

	case "+", "=":
		if z := m.pipeline.Zoom(); z.Available {
			m.pipeline.SetZoom(math.Min(z.Max, z.Level+z.Step))
		}
	case "-":
		if z := m.pipeline.Zoom(); z.Available {
			m.pipeline.SetZoom(math.Max(z.Min, z.Level-z.Step))
		}

	case "g":
		if m.suggester != nil && m.pipeline.State() == capture.StateCaptured {
			m.flash = "Asking for a suggestion…"
			return m, m.suggestCmd(m.pipeline.Photo())
		}
	}

	return m, nil
}

func (m Model) viewCapture() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Capture"))
	b.WriteString("\n\n")

	switch m.pipeline.State() {
	case capture.StateIdle:
		b.WriteString(dimStyle.Render("Camera off. Press c to start.\n"))
	case capture.StateStreaming:
		b.WriteString(fmt.Sprintf("Streaming from the %s camera.\n", m.pipeline.Facing()))
		if z := m.pipeline.Zoom(); z.Available {
			b.WriteString(dimStyle.Render(fmt.Sprintf("Zoom %.1fx (%.1f–%.1f, +/- to adjust)\n", z.Level, z.Min, z.Max)))
		}
		if m.pipeline.CanSwitchCamera() {
			b.WriteString(dimStyle.Render("f switches cameras\n"))
		}
	case capture.StateCaptured:
		b.WriteString(selectedStyle.Render(fmt.Sprintf("Photo captured (%d bytes).\n", len(m.pipeline.Photo()))))
	case capture.StateError:
		b.WriteString(errorStyle.Render(m.pipeline.Err()) + "\n")
	}

	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString(flashStyle.Render(m.flash) + "\n")
	}
	switch m.pipeline.State() {
	case capture.StateCaptured:
		hint := "enter details · r retake · esc cancel"
		if m.suggester != nil {
			hint = "g suggest · " + hint
		}
		b.WriteString(dimStyle.Render(hint))
	case capture.StateStreaming:
		b.WriteString(dimStyle.Render("c capture · esc cancel"))
	default:
		b.WriteString(dimStyle.Render("c start camera · esc back"))
	}
	return b.String()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.form

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = ModeCapture

	case "tab", "down":
		f.focus = (f.focus + 1) % fieldCount
	case "shift+tab", "up":
		f.focus = (f.focus + fieldCount - 1) % fieldCount

	case "left":
		switch f.focus {
		case fieldCategory:
			f.category = cycle(f.category, -1, len(m.store.Categories()))
		case fieldStatus:
			f.status = cycle(f.status, -1, len(domain.Statuses()))
		}
	case "right":
		switch f.focus {
		case fieldCategory:
			f.category = cycle(f.category, 1, len(m.store.Categories()))
		case fieldStatus:
			f.status = cycle(f.status, 1, len(domain.Statuses()))
		}

	case "enter":
		return m.submitForm()

	case "backspace":
		if field := f.textField(); field != nil && *field != "" {
			runes := []rune(*field)
			*field = string(runes[:len(runes)-1])
		}

	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			if field := f.textField(); field != nil {
				*field += string(msg.Runes)
			}
		}
	}

	return m, nil
}

// textField returns the focused free-text field, or nil for the cycling ones.
func (f *formModel) textField() *string {
	switch f.focus {
	case fieldName:
		return &f.name
	case fieldValue:
		return &f.value
	case fieldHistory:
		return &f.history
	}
	return nil
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	name := strings.TrimSpace(f.name)
	if name == "" {
		m.flash = "A name is required"
		return m, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(f.value), 64)
	if err != nil && strings.TrimSpace(f.value) != "" {
		m.flash = "Value must be a number"
		return m, nil
	}
	if value < 0 {
		m.flash = "Value cannot be negative"
		return m, nil
	}

	categories := m.store.Categories()
	category := domain.CategoryMiscellaneous
	if f.category < len(categories) {
		category = categories[f.category]
	}

	item := m.store.AddItem(domain.Draft{
		Name:     name,
		Category: category,
		Value:    value,
		History:  strings.TrimSpace(f.history),
		Photo:    m.pipeline.Photo(),
		Status:   domain.Statuses()[f.status],
	})
	m.pipeline.Stop()
	m.mode = ModeList
	m.form = newFormModel()
	m.flash = fmt.Sprintf("Added %q", item.Name)
	m.clampCursor()
	return m, nil
}

func (m Model) viewForm() string {
	f := m.form
	categories := m.store.Categories()
	statuses := domain.Statuses()

	category := domain.CategoryMiscellaneous
	if f.category < len(categories) {
		category = categories[f.category]
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("New item"))
	b.WriteString("\n\n")
	b.WriteString(renderField("Name", f.name, f.focus == fieldName))
	b.WriteString(renderCycleField("Category", category, f.focus == fieldCategory))
	b.WriteString(renderField("Value", f.value, f.focus == fieldValue))
	b.WriteString(renderField("History", f.history, f.focus == fieldHistory))
	b.WriteString(renderCycleField("Status", string(statuses[f.status]), f.focus == fieldStatus))
	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString(flashStyle.Render(m.flash) + "\n")
	}
	b.WriteString(dimStyle.Render("tab next field · ←/→ cycle · enter save · esc back"))
	return b.String()
}

func renderField(label, value string, focused bool) string {
	line := fmt.Sprintf("%-10s %s", label+":", value)
	if focused {
		return focusedFieldStyle.Render(line+"▌") + "\n"
	}
	return line + "\n"
}

func renderCycleField(label, value string, focused bool) string {
	line := fmt.Sprintf("%-10s ‹ %s ›", label+":", value)
	if focused {
		return focusedFieldStyle.Render(line) + "\n"
	}
	return line + "\n"
}

func cycle(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
