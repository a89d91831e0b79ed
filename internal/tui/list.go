package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rockhound-GO/Attic-Inventory/internal/capture"
	"github.com/Rockhound-GO/Attic-Inventory/internal/domain"
)

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.store.SortedItems()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case "s":
		m.store.SetSort(domain.SortByName)
	case "v":
		m.store.SetSort(domain.SortByValue)
	case "t":
		m.store.SetSort(domain.SortByCreatedAt)

	case " ":
		if m.cursor < len(items) {
			m.store.ToggleSelected(items[m.cursor].ID)
		}
	case "a":
		m.store.ToggleSelectAll()
	case "esc":
		m.store.ClearSelection()

	case "1", "2", "3", "4":
		status := domain.Statuses()[int(msg.String()[0]-'1')]
		if m.store.SelectedCount() > 0 {
			m.store.BulkUpdateStatus(status)
			m.flash = fmt.Sprintf("Selected items set to %q", status)
		} else if m.cursor < len(items) {
			m.store.UpdateItemStatus(items[m.cursor].ID, status)
		}

	case "d":
		if n := m.store.SelectedCount(); n > 0 {
			m.store.BulkDelete()
			m.flash = fmt.Sprintf("Deleted %d items", n)
			m.clampCursor()
		}
	case "x":
		if m.cursor < len(items) {
			m.store.RemoveItem(items[m.cursor].ID)
			m.clampCursor()
		}

	case "c":
		m.mode = ModeCategories
		m.categories = newCategoriesModel()

	case "e":
		if m.exporter != nil && m.cursor < len(items) {
			path, err := m.exporter.Export(items[m.cursor])
			if err != nil {
				m.flash = "Export failed: " + err.Error()
			} else {
				m.flash = "Photo written to " + path
			}
		}

	case "n":
		m.mode = ModeCapture
		m.form = newFormModel()
		return m, m.startCameraCmd(capture.FacingEnvironment)
	}

	return m, nil
}

func (m Model) viewList() string {
	var b strings.Builder

	sortKey, sortDir := m.store.Sort()
	b.WriteString(titleStyle.Render("Attic Inventory"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d items · sort %s %s", m.store.ItemCount(), sortKey, sortDir)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("    %-28s %-14s %9s  %-13s", "Name", "Category", "Value", "Status")))
	b.WriteString("\n")

	items := m.store.SortedItems()
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  Nothing cataloged yet. Press n to add the first item.\n"))
	}
	for i, item := range items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		mark := "[ ]"
		if m.store.IsSelected(item.ID) {
			mark = selectedStyle.Render("[x]")
		}
		row := fmt.Sprintf("%-28s %-14s %9.2f  %-13s",
			truncate(item.Name, 28), truncate(item.Category, 14), item.Value, item.Status)
		if i == m.cursor {
			row = cursorStyle.Render(row)
		}
		b.WriteString(cursor + mark + " " + row + "\n")
	}

	b.WriteString("\n")
	if count := m.store.SelectedCount(); count > 0 {
		all := ""
		if m.store.AllSelected() {
			all = " (all)"
		}
		b.WriteString(selectedStyle.Render(fmt.Sprintf("%d selected%s · 1-4 status · d delete · c category\n", count, all)))
	}
	if m.flash != "" {
		b.WriteString(flashStyle.Render(m.flash) + "\n")
	}
	b.WriteString(dimStyle.Render("n new · space select · a all · s/v/t sort · x remove · e export · c categories · q quit"))
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
