package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type budgetSaveMsg struct {
	err error
}

type BudgetModel struct {
	CommonModel
	ledger *ledger.Ledger
	now    func() time.Time

	month   Month
	bar     progress.Model
	form    *huh.Form
	amount  *string
	editing bool
	flash   flash
}

func NewBudgetModel(l *ledger.Ledger, now func() time.Time, styles *Styles) BudgetModel {
	return BudgetModel{
		CommonModel: CommonModel{Styles: styles},
		ledger:      l,
		now:         now,
		month:       MonthOf(now()),
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m BudgetModel) Title() string { return "Budget" }
func (m BudgetModel) ShortHelp() string {
	if m.editing {
		return "Enter: save | Esc: cancel"
	}

	return "Esc: back | ←/→: month | t: this month | e: edit budget"
}

func (m BudgetModel) Init() tea.Cmd {
	return nil
}

func (m BudgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetSaveMsg:
		m.editing = false
		m.form = nil

		if msg.err != nil {
			return m, m.flash.set(fmt.Sprintf("Error: %v", msg.err))
		}

		return m, m.flash.set("Budget updated")

	case clearFlashMsg:
		m.flash.clear(msg)
		return m, nil
	}

	if m.editing {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.month = m.month.Add(-1)
		case "right", "l":
			m.month = m.month.Add(1)
		case "t":
			m.month = MonthOf(m.now())
		case "e":
			return m.enterEditMode()
		}
	}

	return m, nil
}

func (m BudgetModel) enterEditMode() (tea.Model, tea.Cmd) {
	amount := m.ledger.Snapshot().Budget().String()
	m.amount = &amount
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("budget").
				Title("Monthly budget (₹)").
				Value(m.amount).
				Validate(func(s string) error {
					if err := validateAmount(s); err != nil {
						return err
					}

					if v, _ := expense.ParseMoney(s); v == 0 {
						return errors.New("budget must be greater than zero")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
	m.editing = true

	return m, m.form.Init()
}

func (m BudgetModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.editing = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		amount := *m.amount
		m.form = nil

		return m, func() tea.Msg {
			budget, err := expense.ParseMoney(amount)
			if err != nil {
				return budgetSaveMsg{err: err}
			}

			ctx, cancel := DbCtx()
			defer cancel()

			return budgetSaveMsg{err: m.ledger.SetBudget(ctx, budget)}
		}
	}

	return m, cmd
}

func (m BudgetModel) View() string {
	if m.editing {
		if m.form == nil {
			return "Saving..."
		}

		return m.form.View()
	}

	s := m.Styles
	snap := m.ledger.Snapshot()
	budget := snap.Budget()
	spent := aggregate.TotalInMonth(snap.Records(), m.month.Month, m.month.Year)
	remaining := aggregate.BudgetRemaining(budget, spent)

	var b strings.Builder

	b.WriteString(s.Title.Render("‹ "+m.month.String()+" ›") + "\n\n")
	fmt.Fprintf(&b, "Budget:    %s\n", FormatAmount(budget))
	fmt.Fprintf(&b, "Spent:     %s\n", FormatAmount(spent))

	if remaining < 0 {
		fmt.Fprintf(&b, "Remaining: %s\n", s.Error.Render(FormatAmount(remaining)))
	} else {
		fmt.Fprintf(&b, "Remaining: %s\n", FormatAmount(remaining))
	}

	if pct, ok := aggregate.BudgetProgressPercent(budget, spent); ok {
		fmt.Fprintf(&b, "\n%s %.1f%%\n", m.bar.ViewAs(pct/100), pct)

		if pct >= aggregate.WarningThreshold {
			b.WriteString(s.Warning.Render("⚠ Close to or over budget") + "\n")
		}
	}

	if m.flash.text != "" {
		b.WriteString("\n" + m.flash.text + "\n")
	}

	return b.String()
}
