package http

import (
	"errors"
	"fmt"
	"net/http"

	"expenses/internal/core"
	"expenses/internal/log"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.svc.ListExpenses(r.Context())
	if err != nil {
		s.writeServiceError(w, r, log.OpList, "", err)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	OK(expenses).Write(w)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.ListCategories(r.Context())
	if err != nil {
		s.writeServiceError(w, r, log.OpList, "", err)
		return
	}
	if categories == nil {
		categories = []core.Category{}
	}
	OK(categories).Write(w)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := s.svc.Summary(r.Context())
	if err != nil {
		s.writeServiceError(w, r, log.OpSummary, "", err)
		return
	}
	if rows == nil {
		rows = []core.SummaryRow{}
	}
	OK(rows).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	in := req.Input()
	id, err := s.svc.CreateExpense(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, in.Category, err)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Expense created",
		log.NewFields().
			WithOperation(log.OpCreate).
			WithExpense(id, in.Amount.String(), in.Category, in.Date.String()).
			ToSlice()...)

	OK(CreatedBody{ID: id}).Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := ParseExpenseID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	var req ExpenseRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	in := req.Input()
	if _, err := s.svc.UpdateExpense(r.Context(), id, in); err != nil {
		s.writeServiceError(w, r, log.OpUpdate, in.Category, err)
		return
	}

	Message("Updated successfully").Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := ParseExpenseID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	if _, err := s.svc.DeleteExpense(r.Context(), id); err != nil {
		s.writeServiceError(w, r, log.OpDelete, "", err)
		return
	}

	Message("Deleted successfully").Write(w)
}

// writeServiceError maps domain sentinels to client errors and everything
// else to 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op, category string, err error) {
	logger := log.FromContext(r.Context())
	fields := log.NewFields().WithOperation(op).WithError(err).ToSlice()

	switch {
	case errors.Is(err, core.ErrCategoryNotFound):
		logger.WarnContext(r.Context(), "Unknown category", fields...)
		NotFoundError(fmt.Sprintf("%s: %s", core.ErrCategoryNotFound, category)).Write(w)
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrMissingDate),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrDescriptionTooLong):
		logger.WarnContext(r.Context(), "Rejected expense input", fields...)
		BadRequestError(err.Error()).Write(w)
	default:
		logger.ErrorContext(r.Context(), "Expense operation failed", fields...)
		InternalServerError(err.Error()).Write(w)
	}
}
