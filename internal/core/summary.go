package core

// SummaryRow is the per-category aggregate over expenses.
type SummaryRow struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Total    Money  `json:"total"`
}

// Summarize counts and sums expenses per category by name, one row per
// category in the given order. Categories without expenses report zero.
// Expenses whose category is not in the list are not counted anywhere.
func Summarize(categories []Category, expenses []Expense) []SummaryRow {
	rows := make([]SummaryRow, 0, len(categories))
	for _, c := range categories {
		row := SummaryRow{Category: c.Name}
		for _, e := range expenses {
			if e.Category == c.Name {
				row.Count++
				row.Total = row.Total.Add(e.Amount)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// GrandTotal sums the totals of all rows.
func GrandTotal(rows []SummaryRow) Money {
	var total Money
	for _, r := range rows {
		total = total.Add(r.Total)
	}
	return total
}
