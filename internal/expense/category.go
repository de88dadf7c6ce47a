package expense

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is one of the fixed expense categories. The zero value means
// "no category" and is never valid on a stored expense.
type Category int

const (
	FoodDining Category = iota + 1
	Transportation
	Shopping
	Entertainment
	BillsUtilities
	Healthcare
	Travel
	Other
)

// Info holds the static display metadata of a category.
type Info struct {
	Name  string
	Color string
	Icon  string
}

var categoryInfo = [...]Info{
	FoodDining:     {Name: "Food & Dining", Color: "#FF6B6B", Icon: "🍽️"},
	Transportation: {Name: "Transportation", Color: "#4ECDC4", Icon: "🚗"},
	Shopping:       {Name: "Shopping", Color: "#45B7D1", Icon: "🛒"},
	Entertainment:  {Name: "Entertainment", Color: "#96CEB4", Icon: "🎬"},
	BillsUtilities: {Name: "Bills & Utilities", Color: "#FFEAA7", Icon: "💡"},
	Healthcare:     {Name: "Healthcare", Color: "#DDA0DD", Icon: "🏥"},
	Travel:         {Name: "Travel", Color: "#98D8C8", Icon: "✈️"},
	Other:          {Name: "Other", Color: "#ADB5BD", Icon: "📦"},
}

func init() {
	if len(categoryInfo) != int(Other)+1 {
		panic("expense: category metadata table does not match the enumeration")
	}

	for _, c := range Categories() {
		info := categoryInfo[c]
		if info.Name == "" || info.Color == "" || info.Icon == "" {
			panic(fmt.Sprintf("expense: incomplete metadata for category %d", int(c)))
		}
	}
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		FoodDining,
		Transportation,
		Shopping,
		Entertainment,
		BillsUtilities,
		Healthcare,
		Travel,
		Other,
	}
}

// ParseCategory resolves a display name, ignoring case and surrounding space.
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for _, c := range Categories() {
		if strings.EqualFold(categoryInfo[c].Name, name) {
			return c, nil
		}
	}

	return 0, &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", name)}
}

func (c Category) Valid() bool {
	return c >= FoodDining && c <= Other
}

func (c Category) String() string {
	if !c.Valid() {
		return ""
	}

	return categoryInfo[c].Name
}

// Info returns the display metadata. Invalid categories get an empty Info.
func (c Category) Info() Info {
	if !c.Valid() {
		return Info{}
	}

	return categoryInfo[c]
}

func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal category: invalid value %d", int(c))
	}

	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("unmarshal category: %w", err)
	}

	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
