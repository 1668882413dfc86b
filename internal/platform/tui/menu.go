package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gameflix/internal/registry"
)

// Catalog layout constants
const (
	titleWidth    = 16
	categoryWidth = 16
	minDescWidth  = 20
	chromeRows    = 8 // title, subtitle, borders, help
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229"))

var subtleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241"))

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// CatalogModel lists the registered games grouped by category.
type CatalogModel struct {
	games  []registry.Info
	table  table.Model
	help   help.Model
	keys   KeyMap
	width  int
	height int
}

// NewCatalogModel creates a catalog sized for a width x height terminal.
func NewCatalogModel(keys KeyMap, width, height int) CatalogModel {
	m := CatalogModel{
		games:  registry.List(),
		help:   help.New(),
		keys:   keys,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

func (m CatalogModel) createTable() table.Model {
	descWidth := max(m.width-titleWidth-categoryWidth-12, minDescWidth)
	columns := []table.Column{
		{Title: "Category", Width: categoryWidth},
		{Title: "Game", Width: titleWidth},
		{Title: "Description", Width: descWidth},
	}

	rows := make([]table.Row, len(m.games))
	prev := ""
	for i, g := range m.games {
		category := ""
		if g.Category != prev {
			category = g.Category
			prev = g.Category
		}
		rows[i] = table.Row{category, g.Title, g.Description}
	}

	t := table.New(
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
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Resize lays the catalog out for a new terminal size, keeping the cursor.
func (m CatalogModel) Resize(width, height int) CatalogModel {
	cursor := m.table.Cursor()
	m.width, m.height = width, height
	m.help.Width = width
	m.table = m.createTable()
	m.table.SetCursor(cursor)
	return m
}

// Update forwards navigation to the table.
func (m CatalogModel) Update(msg tea.Msg) (CatalogModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the game under the cursor.
func (m CatalogModel) Selected() (registry.Info, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.games) {
		return registry.Info{}, false
	}
	return m.games[i], true
}

// View renders the catalog. notice is shown above the help line when set.
func (m CatalogModel) View(notice string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("G A M E F L I X"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render("Select a game"), m.width))
	b.WriteString("\n\n")

	if len(m.games) == 0 {
		b.WriteString(subtleStyle.Italic(true).Render("No games registered."))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if g, ok := m.Selected(); ok && g.Controls != "" {
		b.WriteString(subtleStyle.Render("Controls: " + g.Controls))
		b.WriteString("\n")
	}
	if notice != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(notice))
		b.WriteString("\n")
	}
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
