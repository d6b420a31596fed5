package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-ecology/internal/config"
	"github.com/vovakirdan/tui-ecology/internal/core"
	"github.com/vovakirdan/tui-ecology/internal/layout"
	"github.com/vovakirdan/tui-ecology/internal/registry"
	"github.com/vovakirdan/tui-ecology/internal/sim"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.ecosim/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Sim is the configuration every session starts from.
	Sim config.Config

	// Layout optionally replaces density seeding for every session.
	Layout *layout.Layout

	// Scenario skips the picker and starts every session with this preset.
	Scenario string

	// Title is shown on the grid border.
	Title string

	// VarySeed gives each session its own seed derived from Sim.Seed.
	VarySeed bool
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Sim:         config.DefaultConfig(),
		Title:       "ecosim",
	}
}

// SSHServer wraps a Wish SSH server. Every session runs its own simulation;
// nothing is shared between sessions.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	logger   *log.Logger
	sessions atomic.Int64
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "ecosim-ssh",
		})
	}

	// Reject a bad configuration before accepting connections
	if _, err := sim.New(cfg.Sim, cfg.Layout); err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".ecosim", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionConfig returns the simulation config for the n-th session.
func (s *SSHServer) sessionConfig(n int64) config.Config {
	cfg := s.config.Sim
	if s.config.VarySeed {
		cfg.Seed += n - 1
	}
	return cfg
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	n := s.sessions.Add(1)
	user := sshSession.User()
	start := func(scenario string) (Model, error) {
		simCfg := s.sessionConfig(n)
		if err := registry.Resolve(scenario, &simCfg); err != nil {
			return Model{}, err
		}
		session, err := sim.New(simCfg, s.config.Layout)
		if err != nil {
			return Model{}, err
		}
		title := s.config.Title
		if scenario != "" {
			title += " · " + scenario
		}
		s.logger.Debug("simulation started", "user", user, "scenario", scenario, "seed", simCfg.Seed)
		return NewModel(session, title, core.RuntimeConfig{TickRate: simCfg.Run.TickRate}), nil
	}

	if s.config.Scenario != "" || s.config.Layout != nil {
		model, err := start(s.config.Scenario)
		if err != nil {
			s.logger.Error("cannot start simulation", "user", user, "error", err)
			return nil, nil
		}
		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}

	return NewSessionModel(pty.Window.Width, start), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages one SSH session: scenario picker, then the viewer.
type SessionModel struct {
	menu     MenuModel
	viewer   *Model
	start    func(scenario string) (Model, error)
	err      error
	quitting bool
}

// NewSessionModel creates a session that starts with the scenario picker.
func NewSessionModel(width int, start func(scenario string) (Model, error)) SessionModel {
	return SessionModel{
		menu:  NewMenuModel(width),
		start: start,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.viewer != nil {
		next, cmd := m.viewer.Update(msg)
		if viewer, ok := next.(Model); ok {
			m.viewer = &viewer
		}
		return m, cmd
	}

	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The picker quits on selection; the session continues with the viewer.
	if selected := m.menu.Selected(); selected != nil {
		viewer, err := m.start(selected.ID)
		if err != nil {
			m.err = err
			m.menu = NewMenuModel(m.menu.width)
			return m, nil
		}
		m.viewer = &viewer
		return m, m.viewer.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.viewer != nil {
		return m.viewer.View()
	}
	if m.err != nil {
		return m.menu.View() + "\n" + centerText(m.err.Error(), m.menu.width)
	}
	return m.menu.View()
}
