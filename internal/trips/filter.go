package trips

import "bikeshare/pkg/contracts/domain"

// Apply returns the rows of t matching sel: same month number unless the
// month is "all", and same weekday unless the day is "all". The table is
// only read.
func Apply(t *Table, sel domain.Selection) *View {
	month, byMonth := sel.MonthNumber()
	day, byDay := sel.Weekday()
	if !byMonth && !byDay {
		return t.All()
	}

	rows := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if byMonth && t.months[i] != month {
			continue
		}
		if byDay && t.weekdays[i] != day {
			continue
		}
		rows = append(rows, i)
	}

	return &View{table: t, rows: rows}
}
