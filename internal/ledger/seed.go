package ledger

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

// DefaultBudget is used when no usable budget has been stored.
const DefaultBudget expense.Money = 150000

// seedParams are the sample expenses written on first load.
var seedParams = []struct {
	Params
	CreatedAt time.Time
}{
	{
		Params:    Params{Amount: 2550, Category: expense.FoodDining, Description: "Lunch at local cafe", Date: expense.NewDate(2025, time.August, 15)},
		CreatedAt: time.Date(2025, time.August, 15, 12, 30, 0, 0, time.UTC),
	},
	{
		Params:    Params{Amount: 4500, Category: expense.Transportation, Description: "Gas for car", Date: expense.NewDate(2025, time.August, 14)},
		CreatedAt: time.Date(2025, time.August, 14, 8, 15, 0, 0, time.UTC),
	},
	{
		Params:    Params{Amount: 12000, Category: expense.Shopping, Description: "Grocery shopping", Date: expense.NewDate(2025, time.August, 13)},
		CreatedAt: time.Date(2025, time.August, 13, 18, 45, 0, 0, time.UTC),
	},
	{
		Params:    Params{Amount: 1599, Category: expense.Entertainment, Description: "Movie ticket", Date: expense.NewDate(2025, time.August, 12)},
		CreatedAt: time.Date(2025, time.August, 12, 20, 0, 0, 0, time.UTC),
	},
	{
		Params:    Params{Amount: 8500, Category: expense.BillsUtilities, Description: "Internet bill", Date: expense.NewDate(2025, time.August, 10)},
		CreatedAt: time.Date(2025, time.August, 10, 10, 30, 0, 0, time.UTC),
	},
}
