package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type dashboardMsg struct {
	dash aggregate.Dashboard
}

type DashboardModel struct {
	CommonModel
	ledger *ledger.Ledger
	now    func() time.Time

	bar    progress.Model
	dash   aggregate.Dashboard
	loaded bool
}

func NewDashboardModel(l *ledger.Ledger, now func() time.Time, styles *Styles) DashboardModel {
	return DashboardModel{
		CommonModel: CommonModel{Styles: styles},
		ledger:      l,
		now:         now,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.summarizeCmd()
}

func (m DashboardModel) summarizeCmd() tea.Cmd {
	return func() tea.Msg {
		snap := m.ledger.Snapshot()
		return dashboardMsg{dash: aggregate.Summarize(snap.Records(), snap.Budget(), m.now())}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.dash = msg.dash
		m.loaded = true
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-20, 20), 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.summarizeCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if !m.loaded {
		return "Loading..."
	}

	s := m.Styles
	d := m.dash

	var b strings.Builder

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Panel.Render(s.Muted.Render("Total spent")+"\n"+s.Title.Render(FormatAmount(d.Total))),
		s.Panel.Render(s.Muted.Render("This month")+"\n"+s.Title.Render(FormatAmount(d.ThisMonth))),
		s.Panel.Render(s.Muted.Render("This week")+"\n"+s.Title.Render(FormatAmount(d.ThisWeek))),
	)
	b.WriteString(cards + "\n\n")

	b.WriteString(s.Title.Render("Monthly budget") + "\n")
	fmt.Fprintf(&b, "%s of %s  ", FormatAmount(d.ThisMonth), FormatAmount(d.Budget))

	if d.Remaining < 0 {
		b.WriteString(s.Error.Render(FormatAmount(-d.Remaining) + " over budget"))
	} else {
		b.WriteString(s.Muted.Render(FormatAmount(d.Remaining) + " remaining"))
	}

	b.WriteString("\n")

	if d.HasProgress {
		b.WriteString(m.bar.ViewAs(d.Progress/100) + "\n")
	}

	if d.Warning {
		b.WriteString(s.Warning.Render(fmt.Sprintf("⚠ You have used %.0f%% of this month's budget", d.Progress)) + "\n")
	}

	b.WriteString("\n" + s.Title.Render("Recent transactions") + "\n")

	if len(d.Recent) == 0 {
		b.WriteString(s.Muted.Render("No expenses yet.") + "\n")
	}

	for _, e := range d.Recent {
		info := e.Category.Info()
		fmt.Fprintf(&b, "%s %-28s %-12s %12s\n", info.Icon, truncateText(e.Label(), 28), FormatDate(e.Date), FormatAmount(e.Amount))
	}

	b.WriteString("\n" + s.Title.Render("Spending by category") + "\n")

	for _, c := range d.Breakdown {
		info := c.Category.Info()
		fmt.Fprintf(&b, "%s %s %12s\n", info.Icon, s.categoryBadge(fmt.Sprintf("%-20s", info.Name), info.Color), FormatAmount(c.Amount))
	}

	return b.String()
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
