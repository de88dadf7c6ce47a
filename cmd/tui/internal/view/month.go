package view

import (
	"fmt"
	"time"
)

// Month is a calendar month selection used by the budget screen.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Add moves the selection by n months, crossing year boundaries.
func (m Month) Add(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthOf(t)
}

func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}
