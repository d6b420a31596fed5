package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-ecology/internal/registry"
	"github.com/vovakirdan/tui-ecology/internal/storage"
)

// History browser layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the scenario sidebar
	sidebarWidth       = 20  // Width of scenario sidebar
	maxRuns            = 100 // Max runs to load per scenario
)

// allScenarios is the tab that lists runs of every scenario.
const allScenarios = ""

// HistoryKeyMap defines the key bindings for the run history browser.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Delete, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scenario"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scenario"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded runs,
// ranked by how long both species coexisted.
type HistoryModel struct {
	scenarios   []string // tab order, allScenarios first
	cursor      int
	store       *storage.Store
	runs        []storage.RunRecord
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	err         error
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a new history browser.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.scenarios = m.loadScenarios()
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// loadScenarios lists the registered scenarios plus any recorded only in the store.
func (m *HistoryModel) loadScenarios() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, info := range registry.List() {
		seen[info.ID] = true
		ids = append(ids, info.ID)
	}
	if m.store != nil {
		if stats, err := m.store.AllScenarioStats(); err == nil {
			for id := range stats {
				if !seen[id] {
					ids = append(ids, id)
				}
			}
		}
	}
	slices.Sort(ids)
	return append([]string{allScenarios}, ids...)
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 5},
		{Title: "Scenario", Width: 10},
		{Title: "Seed", Width: 8},
		{Title: "Grid", Width: 7},
		{Title: "Survived", Width: 9},
		{Title: "Final", Width: 10},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the runs of the selected scenario.
func (m *HistoryModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		m.runs, m.err = m.store.LongestCoexistence(m.scenarios[m.cursor], maxRuns)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		survived := fmt.Sprintf("%d", r.Survived())
		if r.ExtinctTick == 0 {
			survived += "+"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			r.Scenario,
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			survived,
			fmt.Sprintf("%d/%d", r.FinalPrey, r.FinalPredators),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.scenarios)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor - 1 + len(m.scenarios)) % len(m.scenarios)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if m.store != nil && len(m.runs) > 0 {
				m.err = m.store.DeleteRun(m.runs[m.table.Cursor()].ID)
				m.loadRuns()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the scenario of the current tab; empty means all.
func (m HistoryModel) Selected() string {
	return m.scenarios[m.cursor]
}

// Runs returns the runs shown in the table.
func (m HistoryModel) Runs() []storage.RunRecord {
	return m.runs
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("LONGEST COEXISTENCE - "+scenarioLabel(m.Selected()), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func scenarioLabel(id string) string {
	if id == allScenarios {
		return "all scenarios"
	}
	if s, err := registry.Create(id); err == nil {
		return s.Title()
	}
	return id
}

// renderWideLayout renders the table with a scenario sidebar.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenarios\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.scenarios {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := id
		if id == allScenarios {
			name = "all"
		}
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current scenario name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	name := m.Selected()
	if name == allScenarios {
		name = "all"
	}
	b.WriteString(centerText(fmt.Sprintf("< %s >", name), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nUse `ecosim run --record` to add one.")
	}

	return m.table.View()
}

// RunHistory runs the history browser until the user quits.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
