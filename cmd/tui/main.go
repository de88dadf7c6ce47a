package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/theme"
)

type model struct {
	app    *app.App
	name   string
	styles *view.Styles

	current view.View
	status  string
}

type themeSavedMsg struct {
	err error
}

type menuItem struct {
	key   string
	label string
	open  func(m model) view.View
}

var menu = []menuItem{
	{"1", "Dashboard", func(m model) view.View { return view.NewDashboardModel(m.app.Ledger, time.Now, m.styles) }},
	{"2", "Add Expense", func(m model) view.View { return view.NewAddModel(m.app.Ledger, time.Now, m.styles) }},
	{"3", "Expenses", func(m model) view.View { return view.NewExpensesModel(m.app.Ledger, m.styles) }},
	{"4", "Budget", func(m model) view.View { return view.NewBudgetModel(m.app.Ledger, time.Now, m.styles) }},
	{"5", "Categories", func(m model) view.View { return view.NewCategoriesModel(m.app.Ledger, m.styles) }},
	{"6", "Import CSV", func(m model) view.View { return view.NewImportModel(m.app.ImportService, m.styles) }},
	{"7", "Export CSV", func(m model) view.View { return view.NewExportModel(m.app.ExportService, time.Now, m.styles) }},
}

func initialModel() (model, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return model{}, fmt.Errorf("loading config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file next to the data.
	logger, err := fileLogger(cfg)
	if err != nil {
		return model{}, err
	}

	slog.SetDefault(logger)

	ctx, cancel := view.DbCtx()
	defer cancel()

	a, err := app.New(ctx, cfg, logger, time.Now)
	if err != nil {
		return model{}, err
	}

	t, err := theme.Load(ctx, a.Store)
	if err != nil {
		slog.Warn("failed to load theme, using default", "error", err)
	}

	styles := view.NewStyles(t)

	return model{
		app:    a,
		name:   cfg.App.Name,
		styles: &styles,
	}, nil
}

func fileLogger(cfg *config.Config) (*slog.Logger, error) {
	if cfg.Store.Backend != config.BackendSQLite {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	path := filepath.Join(filepath.Dir(cfg.Store.SQLitePath), "tui.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	return slog.New(slog.NewTextHandler(f, nil)), nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) toggleTheme() (model, tea.Cmd) {
	next := m.styles.Theme.Toggle()
	*m.styles = view.NewStyles(next)

	return m, func() tea.Msg {
		ctx, cancel := view.DbCtx()
		defer cancel()

		return themeSavedMsg{err: theme.Save(ctx, m.app.Store, next)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "t":
				return m.toggleTheme()
			}

			for _, item := range menu {
				if item.key == msg.String() {
					m.current = item.open(m)
					m.status = ""

					return m, m.current.Init()
				}
			}

			return m, nil
		}

	case themeSavedMsg:
		if msg.err != nil {
			slog.Error("failed to save theme", "error", msg.err)
			m.status = "Theme could not be saved"
		}

		return m, nil

	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	if v, ok := next.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) View() string {
	s := m.styles

	if m.current != nil {
		return s.Page.Render(
			s.Title.Render(m.current.Title()) + "\n\n" +
				m.current.View() + "\n\n" +
				s.Muted.Render(m.current.ShortHelp()),
		)
	}

	body := s.Title.Render(m.name) + "\n\n"
	for _, item := range menu {
		body += fmt.Sprintf("%s. %s\n", item.key, item.label)
	}

	body += fmt.Sprintf("\nt. Theme: %s\nq. Quit", s.Theme)

	if m.status != "" {
		body += "\n\n" + s.Error.Render(m.status)
	}

	return s.Page.Render(body)
}

func main() {
	m, err := initialModel()
	if err != nil {
		slog.Error("failed to start TUI", "error", err)
		os.Exit(1)
	}
	defer m.app.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
