package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/cedar/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/cedar/internal/assistant"
	"github.com/MrJamesThe3rd/cedar/internal/budget"
	"github.com/MrJamesThe3rd/cedar/internal/config"
	"github.com/MrJamesThe3rd/cedar/internal/importer"
	"github.com/MrJamesThe3rd/cedar/internal/logger"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
	txStore "github.com/MrJamesThe3rd/cedar/internal/transaction/store"
)

type screen int

const (
	screenMenu screen = iota
	screenDashboard
	screenAdd
	screenChat
	screenImport
	screenMedia
)

var menuItems = []struct {
	key    string
	screen screen
	label  string
}{
	{"1", screenDashboard, "Dashboard"},
	{"2", screenAdd, "Add Transaction"},
	{"3", screenChat, "Ask Cedar"},
	{"4", screenImport, "Import CSV"},
	{"5", screenMedia, "Media Studio"},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

type model struct {
	txService     *transaction.Service
	budgetService *budget.Service
	importService *importer.Service
	ai            *assistant.Client

	current screen
	active  view.View
	size    tea.WindowSizeMsg
}

func (m model) newView(s screen) view.View {
	switch s {
	case screenDashboard:
		return view.NewDashboardModel(m.txService, m.budgetService)
	case screenAdd:
		return view.NewAddModel(m.txService)
	case screenChat:
		return view.NewChatModel(m.ai, m.txService)
	case screenImport:
		return view.NewImportModel(m.importService)
	case screenMedia:
		return view.NewMediaModel(m.ai)
	}

	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == screenMenu {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.current = screenMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	m.active = next.(view.View)

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}

	for _, item := range menuItems {
		if msg.String() != item.key {
			continue
		}

		m.current = item.screen
		m.active = m.newView(item.screen)

		cmds := []tea.Cmd{m.active.Init()}
		if m.size.Width > 0 {
			size := m.size
			cmds = append(cmds, func() tea.Msg { return size })
		}

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m model) View() string {
	if m.current == screenMenu || m.active == nil {
		s := titleStyle.Render("Cedar") + "  " + helpStyle.Render("LBP / USD budget tracker") + "\n\n"
		for _, item := range menuItems {
			s += fmt.Sprintf("%s. %s\n", item.key, item.label)
		}

		return lipgloss.NewStyle().Padding(2).Render(s + "\nq. Quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingLeft(1).Render(titleStyle.Render(m.active.Title())),
		m.active.View(),
		lipgloss.NewStyle().PaddingLeft(1).Render(helpStyle.Render(m.active.ShortHelp())),
	)
}

// openLog sends logs to a file so they don't draw over the screen.
func openLog(cfg *config.Config) (zerolog.Logger, func()) {
	if cfg.Log.File == "" {
		return zerolog.Nop(), func() {}
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
		return zerolog.Nop(), func() {}
	}

	log := logger.NewWithWriter(f)
	if lvl, err := logger.ParseLevel(cfg.Log.Level); err == nil {
		log = log.Level(lvl)
	}

	return log.With().Str("app", cfg.App.Name).Str("ui", "tui").Logger(), func() { _ = f.Close() }
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log, closeLog := openLog(cfg)
	defer closeLog()

	ai, err := assistant.NewGemini(context.Background(), cfg.Assistant(), log)
	if err != nil {
		log.Error().Err(err).Msg("failed to create assistant")
		fmt.Fprintln(os.Stderr, "failed to create assistant:", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New())

	m := model{
		txService:     txSvc,
		budgetService: budget.NewService(txSvc),
		importService: importer.NewService(txSvc, log),
		ai:            ai,
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Error().Err(err).Msg("failed to run TUI")
		fmt.Fprintln(os.Stderr, "failed to run TUI:", err)
		closeLog()
		os.Exit(1)
	}
}
