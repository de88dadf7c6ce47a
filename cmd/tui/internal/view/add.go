package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type addResultMsg struct {
	created expense.Expense
	err     error
}

// AddModel is the quick-entry form. After a save the form resets for the
// next entry and a confirmation is shown for a few seconds.
type AddModel struct {
	CommonModel
	ledger *ledger.Ledger
	now    func() time.Time

	fields *expenseFields
	form   *huh.Form
	flash  flash
	err    error
	saving bool
}

func NewAddModel(l *ledger.Ledger, now func() time.Time, styles *Styles) AddModel {
	m := AddModel{
		CommonModel: CommonModel{Styles: styles},
		ledger:      l,
		now:         now,
	}
	m.reset()

	return m
}

func (m *AddModel) reset() {
	m.fields = newExpenseFields(expense.DateOf(m.now()))
	m.form = newExpenseForm("Add expense", m.fields)
}

func (m AddModel) Title() string     { return "Add Expense" }
func (m AddModel) ShortHelp() string { return "Enter: next/save | Esc: back" }

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addResultMsg:
		m.saving = false

		if msg.err != nil {
			m.err = msg.err
			m.form = newExpenseForm("Add expense", m.fields)
			return m, m.form.Init()
		}

		m.err = nil
		m.reset()
		text := fmt.Sprintf("Added %s for %s", msg.created.Label(), FormatAmount(msg.created.Amount))

		return m, tea.Batch(m.form.Init(), m.flash.set(text))

	case clearFlashMsg:
		m.flash.clear(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted && !m.saving {
		m.saving = true
		return m, m.saveCmd()
	}

	return m, cmd
}

func (m AddModel) saveCmd() tea.Cmd {
	fields := *m.fields

	return func() tea.Msg {
		params, err := fields.params()
		if err != nil {
			return addResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		created, err := m.ledger.Create(ctx, params)

		return addResultMsg{created: created, err: err}
	}
}

func (m AddModel) View() string {
	s := m.Styles
	view := m.form.View()

	if m.err != nil {
		view += "\n" + s.Error.Render(fmt.Sprintf("Could not save: %v", m.err))
	}

	if m.flash.text != "" {
		view += "\n" + s.Success.Render("✓ "+m.flash.text)
	}

	return view
}
