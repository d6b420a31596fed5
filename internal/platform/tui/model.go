package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-ecology/internal/core"
	"github.com/vovakirdan/tui-ecology/internal/ecosystem"
	"github.com/vovakirdan/tui-ecology/internal/sim"
)

// Glyphs drawn for each grid cell.
const (
	glyphEmpty    = '.'
	glyphPrey     = 'o'
	glyphPredator = 'O'
)

// hudLines is the number of rows drawn below the grid box.
const hudLines = 6

// minScreenW keeps the HUD readable on very small grids.
const minScreenW = 48

// Model is the Bubble Tea model that animates one simulation.
type Model struct {
	session  *sim.Session
	title    string
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	config   core.RuntimeConfig
	tickGen  int
	running  bool
	quitting bool
	err      error
}

// NewModel creates a viewer for session. The simulation starts paused.
func NewModel(session *sim.Session, title string, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	cfg.TickRate = core.Clamp(cfg.TickRate, core.MinTickRate, core.MaxTickRate)
	cfg.Seed = session.Config().Seed

	w, h := session.Engine().GridDimensions()
	cfg.ScreenW = max(w+2, minScreenW)
	cfg.ScreenH = h + 2 + hudLines

	return Model{
		session: session,
		title:   title,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		config:  cfg,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickGen, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.resize(msg.Width)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionToggle:
		if m.session.Extinct() {
			m.running = false
			return m, nil
		}
		m.running = !m.running

	case core.ActionStep:
		if !m.running {
			m.advance()
		}

	case core.ActionFaster:
		return m.setTickRate(m.config.TickRate * 2)

	case core.ActionSlower:
		return m.setTickRate(m.config.TickRate / 2)

	case core.ActionReset:
		m.running = false
		m.err = m.session.Reset()

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// resize widens the screen to the terminal so the sparklines use the full
// row. The grid box never shrinks below its own width.
func (m *Model) resize(termWidth int) {
	w, _ := m.session.Engine().GridDimensions()
	m.config.ScreenW = max(w+2, minScreenW, termWidth)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
}

// setTickRate changes the speed and restarts the tick chain at the new rate.
func (m Model) setTickRate(rate int) (tea.Model, tea.Cmd) {
	rate = core.Clamp(rate, core.MinTickRate, core.MaxTickRate)
	if rate == m.config.TickRate {
		return m, nil
	}
	m.config.TickRate = rate
	m.tickGen++
	return m, tickCmd(m.tickGen, rate)
}

// handleTick advances the simulation while running. The loop keeps ticking
// while paused so a later toggle resumes at the current rate.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.tickGen {
		return m, nil
	}
	if m.running {
		m.advance()
	}
	return m, tickCmd(m.tickGen, m.config.TickRate)
}

// advance runs one tick and pauses once a species is gone.
func (m *Model) advance() {
	if m.session.Extinct() {
		m.running = false
		return
	}
	m.session.Step()
	if m.session.Extinct() {
		m.running = false
	}
}

// Running reports whether the simulation is animating.
func (m Model) Running() bool {
	return m.running
}

// TickRate returns the current speed in ticks per second.
func (m Model) TickRate() int {
	return m.config.TickRate
}

// draw renders the grid and the HUD into the screen buffer.
func (m Model) draw() {
	s := m.screen
	s.Clear()

	engine := m.session.Engine()
	snap := engine.Snapshot()

	box := core.NewRect(0, 0, snap.Width+2, snap.Height+2)
	s.DrawBox(box, core.ColorDim)
	s.DrawText(2, 0, " "+m.title+" ", core.ColorBrightWhite)

	for y := range snap.Height {
		for x := range snap.Width {
			cell := snap.At(x, y)
			switch {
			case !cell.Occupied:
				s.SetCell(x+1, y+1, glyphEmpty, core.ColorGreen)
			case cell.View.Species == ecosystem.Predator:
				s.SetCell(x+1, y+1, glyphPredator, core.ColorOrange)
			default:
				s.SetCell(x+1, y+1, glyphPrey, core.ColorGray)
			}
		}
	}

	m.drawHUD(box.Bottom())
}

func (m Model) drawHUD(top int) {
	s := m.screen
	collector := m.session.Collector()
	prey, predators := m.session.Engine().Counts()

	state := fmt.Sprintf("paused  %d tps", m.config.TickRate)
	stateColor := core.ColorYellow
	if m.running {
		state = fmt.Sprintf("running %d tps", m.config.TickRate)
		stateColor = core.ColorGreen
	}
	s.DrawText(0, top, fmt.Sprintf("tick %-6d", m.session.Engine().Ticks()), core.ColorBrightWhite)
	s.DrawText(12, top, state, stateColor)
	s.DrawText(30, top, fmt.Sprintf("seed %d", m.config.Seed), core.ColorDim)

	last, ok := collector.Last()
	s.DrawText(0, top+1, fmt.Sprintf("prey      %5d", prey), core.ColorGray)
	s.DrawText(0, top+2, fmt.Sprintf("predators %5d", predators), core.ColorOrange)
	if ok {
		s.DrawText(16, top+1, fmt.Sprintf("energy %6.1f  births %d", last.PreyEnergyMean, last.PreyBirths), core.ColorDim)
		s.DrawText(16, top+2, fmt.Sprintf("energy %6.1f  births %d  kills %d", last.PredEnergyMean, last.PredatorBirths, last.Kills), core.ColorDim)
	}

	width := s.Width() - 6
	s.DrawText(0, top+3, "prey", core.ColorDim)
	s.DrawText(5, top+3, sparkline(collector.Series(ecosystem.Prey), width), core.ColorGray)
	s.DrawText(0, top+4, "pred", core.ColorDim)
	s.DrawText(5, top+4, sparkline(collector.Series(ecosystem.Predator), width), core.ColorOrange)

	switch {
	case m.err != nil:
		s.DrawText(0, top+5, m.err.Error(), core.ColorRed)
	case collector.ExtinctTick() > 0:
		s.DrawText(0, top+5, fmt.Sprintf("extinction after tick %d, press r to restart", collector.ExtinctTick()), core.ColorRed)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the given session.
func Run(session *sim.Session, title string, cfg core.RuntimeConfig) error {
	model := NewModel(session, title, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
