package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gameflix/internal/storage"
)

// SavedModel shows the values games have persisted, such as best scores.
type SavedModel struct {
	store   storage.KV
	entries []storage.Entry
	err     error
	table   table.Model
	width   int
	height  int
}

// NewSavedModel loads the store's entries into a table.
func NewSavedModel(store storage.KV, width, height int) SavedModel {
	m := SavedModel{store: store, width: width, height: height}
	m.load()
	return m
}

func (m *SavedModel) load() {
	m.entries, m.err = nil, nil
	if m.store != nil {
		m.entries, m.err = m.store.List()
	}

	columns := []table.Column{
		{Title: "Key", Width: 24},
		{Title: "Value", Width: 12},
		{Title: "Updated", Width: 18},
	}
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{e.Key, e.Value, e.UpdatedAt.Local().Format("Jan 02 15:04")}
	}

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeRows, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	m.table.SetStyles(s)
}

// Resize lays the table out for a new terminal size.
func (m SavedModel) Resize(width, height int) SavedModel {
	m.width, m.height = width, height
	m.table.SetHeight(max(height-chromeRows, 3))
	return m
}

// Update forwards scrolling to the table.
func (m SavedModel) Update(msg tea.Msg) (SavedModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the saved data screen.
func (m SavedModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SAVED DATA"), m.width))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(subtleStyle.Render("Could not read saved data: " + m.err.Error()))
	case len(m.entries) == 0:
		b.WriteString(boxStyle.Render(subtleStyle.Italic(true).Padding(1, 2).
			Render("Nothing saved yet.\nA 2048 best score will show up here.")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("esc back • q quit"))
	return b.String()
}
