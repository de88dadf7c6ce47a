package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateSearch
	expensesStateEdit
	expensesStateDelete
	expensesStateSaving
)

type expensesRefreshMsg struct{}

type expensesSaveMsg struct {
	status string
	err    error
}

type ExpensesModel struct {
	CommonModel
	ledger *ledger.Ledger

	state  expensesState
	table  table.Model
	search textinput.Model
	rows   []expense.Expense

	// categoryIdx 0 means all categories, i selects Categories()[i-1].
	categoryIdx int
	sortIdx     int

	editing expense.Expense
	fields  *expenseFields
	form    *huh.Form
	confirm *bool

	flash flash
}

func NewExpensesModel(l *ledger.Ledger, styles *Styles) ExpensesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Category", Width: 20},
		{Title: "Amount", Width: 14},
		{Title: "Description", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(styles.tableStyles())

	search := textinput.New()
	search.Placeholder = "Search description or category"
	search.Prompt = "/ "
	search.CharLimit = 64

	return ExpensesModel{
		CommonModel: CommonModel{Styles: styles},
		ledger:      l,
		table:       t,
		search:      search,
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }
func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expensesStateSearch:
		return "Type to search | Enter/Esc: done"
	case expensesStateEdit, expensesStateDelete:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | /: search | c: category | s: sort | x: clear | e: edit | d: delete"
}

// Filter is the filter currently applied to the list.
func (m ExpensesModel) Filter() aggregate.Filter {
	f := aggregate.Filter{
		Search: m.search.Value(),
		Sort:   aggregate.SortKeys()[m.sortIdx],
	}

	if m.categoryIdx > 0 {
		f.Category = expense.Categories()[m.categoryIdx-1]
	}

	return f
}

func (m ExpensesModel) Init() tea.Cmd {
	return func() tea.Msg { return expensesRefreshMsg{} }
}

func (m *ExpensesModel) refresh() {
	m.rows = aggregate.FilterAndSort(m.ledger.Snapshot().Records(), m.Filter())

	rows := make([]table.Row, 0, len(m.rows))
	for _, e := range m.rows {
		info := e.Category.Info()
		rows = append(rows, table.Row{
			e.Date.String(),
			info.Icon + " " + info.Name,
			FormatAmount(e.Amount),
			e.Label(),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesRefreshMsg:
		m.refresh()
		return m, nil

	case expensesSaveMsg:
		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()
		m.refresh()

		if msg.err != nil {
			return m, m.flash.set(fmt.Sprintf("Error: %v", msg.err))
		}

		return m, m.flash.set(msg.status)

	case clearFlashMsg:
		m.flash.clear(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}

	switch m.state {
	case expensesStateSearch:
		return m.updateSearch(msg)
	case expensesStateEdit, expensesStateDelete:
		return m.updateForm(msg)
	case expensesStateSaving:
		return m, nil
	}

	return m.updateBrowse(msg)
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		case "/":
			m.state = expensesStateSearch
			m.table.Blur()
			return m, m.search.Focus()
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(expense.Categories()) + 1)
			m.refresh()
			return m, nil
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(aggregate.SortKeys())
			m.refresh()
			return m, nil
		case "x":
			m.search.SetValue("")
			m.categoryIdx = 0
			m.sortIdx = 0
			m.refresh()
			return m, nil
		case "e", "enter":
			return m.enterEditMode()
		case "d":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.state = expensesStateBrowse
			m.search.Blur()
			m.table.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()

	return m, cmd
}

func (m ExpensesModel) selected() (expense.Expense, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return expense.Expense{}, false
	}

	return m.rows[idx], true
}

func (m ExpensesModel) enterEditMode() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.editing = e
	m.fields = fieldsFrom(e)
	m.form = newExpenseForm("Edit expense", m.fields)
	m.state = expensesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.editing = e
	m.confirm = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s (%s)?", e.Label(), FormatAmount(e.Amount))).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirm),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = expensesStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		deleting := m.state == expensesStateDelete
		m.state = expensesStateSaving

		if deleting {
			return m, m.deleteCmd()
		}

		return m, m.saveCmd()
	}

	return m, cmd
}

func (m ExpensesModel) saveCmd() tea.Cmd {
	id := m.editing.ID
	fields := *m.fields

	return func() tea.Msg {
		params, err := fields.params()
		if err != nil {
			return expensesSaveMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, found, err := m.ledger.Update(ctx, id, params)
		if err != nil {
			return expensesSaveMsg{err: err}
		}

		if !found {
			return expensesSaveMsg{status: "Expense no longer exists"}
		}

		return expensesSaveMsg{status: "Expense updated"}
	}
}

func (m ExpensesModel) deleteCmd() tea.Cmd {
	if !*m.confirm {
		return func() tea.Msg { return expensesSaveMsg{status: "Nothing deleted"} }
	}

	id := m.editing.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.ledger.Delete(ctx, id); err != nil {
			return expensesSaveMsg{err: err}
		}

		return expensesSaveMsg{status: "Expense deleted"}
	}
}

func (m ExpensesModel) View() string {
	s := m.Styles

	switch m.state {
	case expensesStateEdit, expensesStateDelete:
		return m.form.View()
	case expensesStateSaving:
		return "Saving..."
	}

	f := m.Filter()

	category := "All"
	if f.Category != 0 {
		category = f.Category.String()
	}

	header := fmt.Sprintf("Category: %s | Sort: %s | %s | Total: %s",
		s.Accent.Render(category),
		s.Accent.Render(f.Sort.Label()),
		Pluralize(len(m.rows), "expense"),
		FormatAmount(aggregate.TotalAll(m.rows)),
	)

	view := m.search.View() + "\n" + header + "\n\n"

	if len(m.rows) == 0 {
		view += s.Muted.Render("No expenses match the current filters.") + "\n"
	} else {
		view += m.table.View() + "\n"
	}

	if m.flash.text != "" {
		view += "\n" + m.flash.text
	}

	return view
}
