package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// CategoriesModel lists every category with its running total, including
// categories that have no expenses yet.
type CategoriesModel struct {
	CommonModel
	ledger *ledger.Ledger
}

func NewCategoriesModel(l *ledger.Ledger, styles *Styles) CategoriesModel {
	return CategoriesModel{
		CommonModel: CommonModel{Styles: styles},
		ledger:      l,
	}
}

func (m CategoriesModel) Title() string     { return "Categories" }
func (m CategoriesModel) ShortHelp() string { return "Esc: back" }

func (m CategoriesModel) Init() tea.Cmd {
	return nil
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m, Back
	}

	return m, nil
}

func (m CategoriesModel) View() string {
	s := m.Styles
	totals := aggregate.CategoryTotals(m.ledger.Snapshot().Records(), expense.Categories())

	var b strings.Builder

	for _, t := range totals {
		info := t.Category.Info()
		fmt.Fprintf(&b, "%s %s %14s  %s\n",
			info.Icon,
			s.categoryBadge(fmt.Sprintf("%-20s", info.Name), info.Color),
			FormatAmount(t.Total),
			s.Muted.Render(Pluralize(t.Count, "transaction")),
		)
	}

	return b.String()
}
