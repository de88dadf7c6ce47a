package aggregate

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

type SortKey string

const (
	SortDateDesc   SortKey = "date-desc"
	SortDateAsc    SortKey = "date-asc"
	SortAmountDesc SortKey = "amount-desc"
	SortAmountAsc  SortKey = "amount-asc"
	SortCategory   SortKey = "category"
)

// SortKeys lists every supported key, default first.
func SortKeys() []SortKey {
	return []SortKey{SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc, SortCategory}
}

// ParseSortKey maps unknown or empty keys to SortDateDesc.
func ParseSortKey(s string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys(), key) {
		return key
	}

	return SortDateDesc
}

func (k SortKey) Label() string {
	switch k {
	case SortDateAsc:
		return "Date (Oldest)"
	case SortAmountDesc:
		return "Amount (High to Low)"
	case SortAmountAsc:
		return "Amount (Low to High)"
	case SortCategory:
		return "Category"
	default:
		return "Date (Newest)"
	}
}

// Filter narrows and orders a list of expenses. The zero Filter returns
// every record newest first.
type Filter struct {
	// Search matches case-insensitively against the description or the
	// category name.
	Search string
	// Category restricts to one category; zero means all.
	Category expense.Category
	Sort     SortKey
}

func FilterAndSort(records []expense.Expense, f Filter) []expense.Expense {
	fold := cases.Fold()
	needle := fold.String(f.Search)

	out := make([]expense.Expense, 0, len(records))

	for _, r := range records {
		if f.Category != 0 && r.Category != f.Category {
			continue
		}

		if needle != "" &&
			!strings.Contains(fold.String(r.Description), needle) &&
			!strings.Contains(fold.String(r.Category.String()), needle) {
			continue
		}

		out = append(out, r)
	}

	slices.SortStableFunc(out, compareFunc(ParseSortKey(string(f.Sort))))

	return out
}

func compareFunc(key SortKey) func(a, b expense.Expense) int {
	switch key {
	case SortDateAsc:
		return func(a, b expense.Expense) int { return a.Date.Compare(b.Date) }
	case SortAmountDesc:
		return func(a, b expense.Expense) int { return cmp.Compare(b.Amount, a.Amount) }
	case SortAmountAsc:
		return func(a, b expense.Expense) int { return cmp.Compare(a.Amount, b.Amount) }
	case SortCategory:
		c := collate.New(language.English)
		return func(a, b expense.Expense) int {
			return c.CompareString(a.Category.String(), b.Category.String())
		}
	default:
		return func(a, b expense.Expense) int { return b.Date.Compare(a.Date) }
	}
}
