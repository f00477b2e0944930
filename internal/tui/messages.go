package tui

import "expenses/internal/core"

// Data loading messages.
type dataLoadedMsg struct {
	err        error
	expenses   []core.Expense
	categories []core.Category
}

type mutation int

const (
	mutationCreate mutation = iota
	mutationUpdate
	mutationDelete
)

// mutationDoneMsg reports the outcome of a create, update or delete and
// carries the re-fetched list on success.
type mutationDoneMsg struct {
	err      error
	op       mutation
	id       int64
	expenses []core.Expense
}
