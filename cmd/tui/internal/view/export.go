package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/export"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type exportResultMsg struct {
	path  string
	count int
	err   error
}

// exportFields holds the form bindings behind a pointer, see expenseFields.
type exportFields struct {
	path     string
	category expense.Category
	sort     aggregate.SortKey
}

type ExportModel struct {
	CommonModel
	exportService *export.Service
	now           func() time.Time

	state   exportState
	fields  *exportFields
	form    *huh.Form
	spinner spinner.Model
	result  exportResultMsg
}

func NewExportModel(svc *export.Service, now func() time.Time, styles *Styles) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Accent

	m := ExportModel{
		CommonModel:   CommonModel{Styles: styles},
		exportService: svc,
		now:           now,
		spinner:       s,
		fields:        &exportFields{path: "./exports", sort: aggregate.SortDateDesc},
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Export CSV" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.result = result

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildForm() *huh.Form {
	categories := []huh.Option[expense.Category]{huh.NewOption("All categories", expense.Category(0))}
	categories = append(categories, categoryOptions()...)

	sorts := make([]huh.Option[aggregate.SortKey], 0, len(aggregate.SortKeys()))
	for _, k := range aggregate.SortKeys() {
		sorts = append(sorts, huh.NewOption(k.Label(), k))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.fields.path),

			huh.NewSelect[expense.Category]().
				Key("category").
				Title("Category").
				Options(categories...).
				Value(&m.fields.category),

			huh.NewSelect[aggregate.SortKey]().
				Key("sort").
				Title("Order").
				Options(sorts...).
				Value(&m.fields.sort),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) runExportCmd() tea.Cmd {
	fields := *m.fields

	return func() tea.Msg {
		filter := aggregate.Filter{Category: fields.category, Sort: fields.sort}

		path, n, err := m.exportService.ExportFile(fields.path, filter, m.now())

		return exportResultMsg{path: path, count: n, err: err}
	}
}

func (m ExportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case exportStateForm:
		return style.Render(m.form.View())

	case exportStateExporting:
		return style.Render(fmt.Sprintf("%s Writing CSV...", m.spinner.View()))

	case exportStateResult:
		if m.result.err != nil {
			return style.Render(m.Styles.Error.Render(fmt.Sprintf("Error: %v", m.result.err)))
		}

		return style.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.Styles.Success.Bold(true).Render("Export Complete!"),
			"",
			fmt.Sprintf("Wrote %s to %s", Pluralize(m.result.count, "expense"), m.result.path),
		))
	}

	return ""
}
