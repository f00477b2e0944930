package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"expenses/internal/core"

	_ "modernc.org/sqlite"
)

// DefaultCategories are seeded on first initialization.
var DefaultCategories = []string{
	"Food",
	"Transportation",
	"Housing",
	"Entertainment",
	"Utilities",
}

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite has a single writer; one connection keeps transactions from
	// tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return NewRepositoryWithDB(db), nil
}

// NewRepositoryWithDB wraps an already opened database without touching
// the schema.
func NewRepositoryWithDB(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping verifies the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// SeedCategories inserts each name that is not present yet and returns how
// many were added. Running it repeatedly is idempotent.
func (r *SQLiteRepository) SeedCategories(ctx context.Context, names []string) (int, error) {
	inserted := 0
	err := r.withTx(ctx, func(q *Queries) error {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			n, err := q.InsertCategory(ctx, name)
			if err != nil {
				return fmt.Errorf("insert category %q: %w", name, err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		slog.InfoContext(ctx, "Seeded categories", "inserted", inserted, "requested", len(names))
	}
	return inserted, nil
}

// ListExpenses returns every expense with its category name, newest date first.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	expenses := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		date, err := core.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", row.ExpenseID, err)
		}
		expenses = append(expenses, core.Expense{
			ID:          row.ExpenseID,
			Amount:      core.Money{Cents: row.AmountCents},
			Description: row.Description.String,
			Date:        date,
			Category:    row.Category,
		})
	}

	return expenses, nil
}

// ListCategories returns all categories.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]core.Category, len(rows))
	for i, c := range rows {
		categories[i] = core.Category{ID: c.CategoryID, Name: c.Name}
	}
	return categories, nil
}

// CreateExpense resolves the category name and inserts the expense in one
// transaction. An unknown category yields core.ErrCategoryNotFound.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, in core.ExpenseInput) (int64, error) {
	var id int64
	err := r.withTx(ctx, func(q *Queries) error {
		categoryID, err := resolveCategory(ctx, q, in.Category)
		if err != nil {
			return err
		}
		id, err = q.CreateExpense(ctx, CreateExpenseParams{
			AmountCents: in.Amount.Cents,
			Description: nullString(in.Description),
			Date:        in.Date.String(),
			CategoryID:  categoryID,
		})
		if err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		"amount_cents", in.Amount.Cents,
		"category", in.Category,
		"date", in.Date.String())

	return id, nil
}

// UpdateExpense overwrites every field of the expense with the given id and
// returns the number of rows changed. A missing id changes nothing and is
// not an error.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, id int64, in core.ExpenseInput) (int64, error) {
	var affected int64
	err := r.withTx(ctx, func(q *Queries) error {
		categoryID, err := resolveCategory(ctx, q, in.Category)
		if err != nil {
			return err
		}
		affected, err = q.UpdateExpense(ctx, UpdateExpenseParams{
			AmountCents: in.Amount.Cents,
			Description: nullString(in.Description),
			Date:        in.Date.String(),
			CategoryID:  categoryID,
			ExpenseID:   id,
		})
		if err != nil {
			return fmt.Errorf("update expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if affected == 0 {
		slog.WarnContext(ctx, "Update matched no expense", "id", id)
	}
	return affected, nil
}

// DeleteExpense removes the expense with the given id and returns the number
// of rows removed.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	affected, err := r.queries.DeleteExpense(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}

	if affected == 0 {
		slog.WarnContext(ctx, "Delete matched no expense", "id", id)
	} else {
		slog.InfoContext(ctx, "Expense deleted", "id", id)
	}
	return affected, nil
}

// Summary aggregates count and total per category in a single statement.
// Categories without expenses are included with zero count and total.
func (r *SQLiteRepository) Summary(ctx context.Context) ([]core.SummaryRow, error) {
	rows, err := r.queries.CategorySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("category summary: %w", err)
	}

	summary := make([]core.SummaryRow, len(rows))
	for i, row := range rows {
		summary[i] = core.SummaryRow{
			Category: row.Category,
			Count:    row.Count,
			Total:    core.Money{Cents: row.TotalCents},
		}
	}
	return summary, nil
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(r.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func resolveCategory(ctx context.Context, q *Queries, name string) (int64, error) {
	id, err := q.GetCategoryIDByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", core.ErrCategoryNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("get category %q: %w", name, err)
	}
	return id, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
