package storage

import (
	"context"
	"database/sql"
)

// Row types mirror the table columns; conversion to core types happens in
// the repository.
type (
	Category struct {
		CategoryID int64
		Name       string
	}

	ExpenseRow struct {
		ExpenseID   int64
		AmountCents int64
		Description sql.NullString
		Date        string
		Category    string
	}

	CategorySummaryRow struct {
		Category   string
		Count      int64
		TotalCents int64
	}

	CreateExpenseParams struct {
		AmountCents int64
		Description sql.NullString
		Date        string
		CategoryID  int64
	}

	UpdateExpenseParams struct {
		AmountCents int64
		Description sql.NullString
		Date        string
		CategoryID  int64
		ExpenseID   int64
	}
)

const listExpenses = `
SELECT e.expense_id, e.amount_cents, e.description, e.date, c.name AS category
FROM expenses e
JOIN categories c ON e.category_id = c.category_id
ORDER BY e.date DESC
`

func (q *Queries) ListExpenses(ctx context.Context) ([]ExpenseRow, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ExpenseRow
	for rows.Next() {
		var i ExpenseRow
		if err := rows.Scan(
			&i.ExpenseID,
			&i.AmountCents,
			&i.Description,
			&i.Date,
			&i.Category,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCategories = `
SELECT category_id, name FROM categories ORDER BY category_id
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		var i Category
		if err := rows.Scan(&i.CategoryID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCategoryIDByName = `
SELECT category_id FROM categories WHERE name = ?
`

func (q *Queries) GetCategoryIDByName(ctx context.Context, name string) (int64, error) {
	row := q.db.QueryRowContext(ctx, getCategoryIDByName, name)
	var categoryID int64
	err := row.Scan(&categoryID)
	return categoryID, err
}

const insertCategory = `
INSERT OR IGNORE INTO categories (name) VALUES (?)
`

// InsertCategory inserts a category unless one with the same name exists and
// reports how many rows were written (0 or 1).
func (q *Queries) InsertCategory(ctx context.Context, name string) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertCategory, name)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createExpense = `
INSERT INTO expenses (amount_cents, description, date, category_id) VALUES (?, ?, ?, ?)
`

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createExpense,
		arg.AmountCents,
		arg.Description,
		arg.Date,
		arg.CategoryID,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const updateExpense = `
UPDATE expenses SET amount_cents = ?, description = ?, date = ?, category_id = ? WHERE expense_id = ?
`

func (q *Queries) UpdateExpense(ctx context.Context, arg UpdateExpenseParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateExpense,
		arg.AmountCents,
		arg.Description,
		arg.Date,
		arg.CategoryID,
		arg.ExpenseID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteExpense = `
DELETE FROM expenses WHERE expense_id = ?
`

func (q *Queries) DeleteExpense(ctx context.Context, expenseID int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpense, expenseID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const categorySummary = `
SELECT c.name AS category,
       COUNT(e.expense_id) AS count,
       COALESCE(SUM(e.amount_cents), 0) AS total_cents
FROM categories c
LEFT JOIN expenses e ON c.category_id = e.category_id
GROUP BY c.category_id, c.name
ORDER BY c.category_id
`

func (q *Queries) CategorySummary(ctx context.Context) ([]CategorySummaryRow, error) {
	rows, err := q.db.QueryContext(ctx, categorySummary)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CategorySummaryRow
	for rows.Next() {
		var i CategorySummaryRow
		if err := rows.Scan(&i.Category, &i.Count, &i.TotalCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
