package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"expenses/internal/amqp"
	"expenses/internal/core"
)

// Store is the persistence the service needs. *storage.SQLiteRepository
// satisfies it.
type Store interface {
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	CreateExpense(ctx context.Context, in core.ExpenseInput) (int64, error)
	UpdateExpense(ctx context.Context, id int64, in core.ExpenseInput) (int64, error)
	DeleteExpense(ctx context.Context, id int64) (int64, error)
	Summary(ctx context.Context) ([]core.SummaryRow, error)
	Ping(ctx context.Context) error
	Close() error
}

// EventPublisher announces expense changes. *amqp.Client satisfies it.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, id int64, op string) error
	Close() error
}

// ExpenseService orchestrates expense operations across the store and the
// optional event publisher.
type ExpenseService struct {
	storage   Store
	publisher EventPublisher
}

// NewExpenseService builds the service. publisher may be nil.
func NewExpenseService(storage Store, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		storage:   storage,
		publisher: publisher,
	}
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx)
}

func (s *ExpenseService) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.storage.ListCategories(ctx)
}

func (s *ExpenseService) Summary(ctx context.Context) ([]core.SummaryRow, error) {
	return s.storage.Summary(ctx)
}

func (s *ExpenseService) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

// CreateExpense validates and stores an expense, then announces it.
func (s *ExpenseService) CreateExpense(ctx context.Context, in core.ExpenseInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.CreateExpense(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, id, amqp.OpCreated)
	return id, nil
}

// UpdateExpense replaces all fields of an expense. Updating an id that does
// not exist is not an error; the returned count is 0.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id int64, in core.ExpenseInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	affected, err := s.storage.UpdateExpense(ctx, id, in)
	if err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}

	if affected > 0 {
		s.publish(ctx, id, amqp.OpUpdated)
	}
	return affected, nil
}

// DeleteExpense removes an expense. Deleting a missing id is not an error.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	affected, err := s.storage.DeleteExpense(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}

	if affected > 0 {
		s.publish(ctx, id, amqp.OpDeleted)
	}
	return affected, nil
}

// publish never fails the caller; the change is already committed.
func (s *ExpenseService) publish(ctx context.Context, id int64, op string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, id, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"id", id, "op", op, "error", err)
	}
}

// Close closes both storage and AMQP connections
func (s *ExpenseService) Close() error {
	var errs []error

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %w", errors.Join(errs...))
	}

	return nil
}
