package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"expenses/internal/core"
)

// API is the subset of the expense API the screen uses. *client.Client
// satisfies it.
type API interface {
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	CreateExpense(ctx context.Context, in core.ExpenseInput) (int64, error)
	UpdateExpense(ctx context.Context, id int64, in core.ExpenseInput) error
	DeleteExpense(ctx context.Context, id int64) error
}

const requestTimeout = 15 * time.Second

// loadData fetches expenses and categories concurrently.
func (m Model) loadData() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var msg dataLoadedMsg
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			expenses, err := api.ListExpenses(gctx)
			msg.expenses = expenses
			return err
		})
		g.Go(func() error {
			categories, err := api.ListCategories(gctx)
			msg.categories = categories
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

// saveExpense creates or updates, then re-fetches the list in the same
// command. A failed re-fetch reports the whole save as failed.
func (m Model) saveExpense(editingID int64, in core.ExpenseInput) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msg := mutationDoneMsg{op: mutationCreate, id: editingID}
		if editingID > 0 {
			msg.op = mutationUpdate
			msg.err = api.UpdateExpense(ctx, editingID, in)
		} else {
			msg.id, msg.err = api.CreateExpense(ctx, in)
		}
		return refetch(ctx, api, msg)
	}
}

func (m Model) deleteExpense(id int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msg := mutationDoneMsg{op: mutationDelete, id: id, err: api.DeleteExpense(ctx, id)}
		return refetch(ctx, api, msg)
	}
}

func refetch(ctx context.Context, api API, msg mutationDoneMsg) mutationDoneMsg {
	if msg.err != nil {
		return msg
	}
	expenses, err := api.ListExpenses(ctx)
	if err != nil {
		msg.err = fmt.Errorf("reload expenses: %w", err)
		return msg
	}
	msg.expenses = expenses
	return msg
}
