package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rockhound-GO/Attic-Inventory/internal/domain"
)

type categoryEdit int

const (
	editNone categoryEdit = iota
	editAdd
	editRename
)

// categoriesModel is the category picker and editor. Enter assigns the
// highlighted category to the current selection (or the highlighted item when
// nothing is selected); a, r and x manage the category list itself.
type categoriesModel struct {
	cursor int
	edit   categoryEdit
	input  string
}

func newCategoriesModel() categoriesModel {
	return categoriesModel{}
}

func (m Model) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.categories.edit != editNone {
		return m.updateCategoryEdit(msg)
	}

	cats := m.store.Categories()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.mode = ModeList

	case "up", "k":
		if m.categories.cursor > 0 {
			m.categories.cursor--
		}
	case "down", "j":
		if m.categories.cursor < len(cats)-1 {
			m.categories.cursor++
		}

	case "enter":
		if m.categories.cursor >= len(cats) {
			break
		}
		category := cats[m.categories.cursor]
		if m.store.SelectedCount() > 0 {
			m.store.BulkUpdateCategory(category)
			m.flash = "Selected items moved to " + category
		} else {
			items := m.store.SortedItems()
			if m.cursor < len(items) {
				m.store.UpdateItemCategory(items[m.cursor].ID, category)
				m.flash = "Item moved to " + category
			}
		}
		m.mode = ModeList

	case "a":
		m.categories.edit = editAdd
		m.categories.input = ""
	case "r":
		if m.categories.cursor < len(cats) && cats[m.categories.cursor] != domain.CategoryMiscellaneous {
			m.categories.edit = editRename
			m.categories.input = cats[m.categories.cursor]
		}
	case "x":
		if m.categories.cursor < len(cats) {
			name := cats[m.categories.cursor]
			if name == domain.CategoryMiscellaneous {
				m.flash = domain.CategoryMiscellaneous + " cannot be removed"
				break
			}
			m.store.DeleteCategory(name)
			if m.categories.cursor >= len(m.store.Categories()) {
				m.categories.cursor--
			}
			m.flash = "Removed " + name
		}
	}

	return m, nil
}

func (m Model) updateCategoryEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.categories.edit = editNone
		m.categories.input = ""
	case "enter":
		name := strings.TrimSpace(m.categories.input)
		cats := m.store.Categories()
		switch m.categories.edit {
		case editAdd:
			if name != "" {
				m.store.AddCategory(name)
			}
		case editRename:
			if m.categories.cursor < len(cats) {
				m.store.RenameCategory(cats[m.categories.cursor], name)
			}
		}
		m.categories.edit = editNone
		m.categories.input = ""
	case "backspace":
		if m.categories.input != "" {
			runes := []rune(m.categories.input)
			m.categories.input = string(runes[:len(runes)-1])
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.categories.input += string(msg.Runes)
		}
	}
	return m, nil
}

func (m Model) viewCategories() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Categories"))
	b.WriteString("\n\n")

	for i, name := range m.store.Categories() {
		cursor := "  "
		row := name
		if i == m.categories.cursor {
			cursor = cursorStyle.Render("> ")
			row = cursorStyle.Render(name)
		}
		if name == domain.CategoryMiscellaneous {
			row += dimStyle.Render("  (default)")
		}
		b.WriteString(cursor + row + "\n")
	}

	b.WriteString("\n")
	switch m.categories.edit {
	case editAdd:
		b.WriteString(focusedFieldStyle.Render("New category: "+m.categories.input+"▌") + "\n")
	case editRename:
		b.WriteString(focusedFieldStyle.Render("Rename to: "+m.categories.input+"▌") + "\n")
	default:
		if count := m.store.SelectedCount(); count > 0 {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("enter assigns %d selected items\n", count)))
		}
		if m.flash != "" {
			b.WriteString(flashStyle.Render(m.flash) + "\n")
		}
		b.WriteString(dimStyle.Render("enter assign · a add · r rename · x delete · esc back"))
	}
	return b.String()
}
