// Package tui is a single-screen terminal client for the expense API: a
// table of expenses, an add/edit form and a per-category summary.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"expenses/internal/core"
)

// State represents the current state of the screen.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFormOpen
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFormOpen:
		return "form-open"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Model holds the screen state.
type Model struct {
	api        API
	theme      Theme
	keymap     KeyMap
	help       help.Model
	form       formModel
	err        error
	expenses   []core.Expense
	categories []core.Category
	summary    []core.SummaryRow
	cursor     int
	width      int
	height     int
	state      State
	submitting bool
	quitting   bool
}

// New returns a model in the loading state.
func New(api API) Model {
	return Model{
		api:    api,
		theme:  DefaultTheme,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		form:   newForm(nil),
		state:  StateLoading,
	}
}

func (m Model) State() State { return m.state }

func (m Model) Expenses() []core.Expense { return m.expenses }

func (m Model) Summary() []core.SummaryRow { return m.summary }

// Err is the inline error currently shown, if any.
func (m Model) Err() error { return m.err }

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return m.loadData()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case dataLoadedMsg:
		m.state = StateReady
		if msg.err != nil {
			m.err = fmt.Errorf("failed to load data: %w", msg.err)
			return m, nil
		}
		m.err = nil
		m.setCategories(msg.categories)
		m.setExpenses(msg.expenses)
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case StateReady:
			return m.updateReady(msg)
		case StateFormOpen:
			return m.updateForm(msg)
		}
		return m, nil
	}

	if m.state == StateFormOpen {
		cmd := m.form.updateInput(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateReady(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.expenses)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Add):
		m.err = nil
		m.form.reset()
		m.state = StateFormOpen
		return m, m.form.setFocus(fieldAmount)

	case key.Matches(msg, m.keymap.Edit):
		selected, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.err = nil
		m.form.fill(selected)
		m.state = StateFormOpen
		return m, m.form.setFocus(fieldAmount)

	case key.Matches(msg, m.keymap.Delete):
		selected, ok := m.selected()
		if !ok || m.submitting {
			return m, nil
		}
		m.err = nil
		m.submitting = true
		return m, m.deleteExpense(selected.ID)

	case key.Matches(msg, m.keymap.Reload):
		return m, m.loadData()

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.form.reset()
		m.state = StateReady
		return m, nil

	case key.Matches(msg, m.keymap.Save):
		return m.submit()

	case key.Matches(msg, m.keymap.Submit):
		if m.form.focus == fieldCount-1 {
			return m.submit()
		}
		return m, m.form.setFocus(m.form.focus + 1)

	case key.Matches(msg, m.keymap.NextField):
		return m, m.form.setFocus(m.form.focus + 1)

	case key.Matches(msg, m.keymap.PrevField):
		return m, m.form.setFocus(m.form.focus - 1)
	}

	if m.form.focus == fieldCategory {
		switch {
		case key.Matches(msg, m.keymap.PrevCategory):
			m.form.cycleCategory(-1)
		case key.Matches(msg, m.keymap.NextCategory):
			m.form.cycleCategory(1)
		}
		return m, nil
	}

	return m, m.form.updateInput(msg)
}

// submit validates the form and dispatches create or update.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	in, err := m.form.input()
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	m.form.err = ""
	m.submitting = true
	return m, m.saveExpense(m.form.editingID, in)
}

func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.submitting = false

	if msg.err != nil {
		switch msg.op {
		case mutationDelete:
			m.err = fmt.Errorf("failed to delete expense: %w", msg.err)
		default:
			// The form stays open with the user's input.
			m.form.err = fmt.Sprintf("failed to save expense: %v", msg.err)
		}
		return m, nil
	}

	if msg.op != mutationDelete {
		m.form.reset()
		m.state = StateReady
	}
	m.setExpenses(msg.expenses)
	return m, nil
}

func (m *Model) setExpenses(expenses []core.Expense) {
	m.expenses = expenses
	if m.cursor >= len(expenses) {
		m.cursor = max(len(expenses)-1, 0)
	}
	m.summary = core.Summarize(m.categories, m.expenses)
}

func (m *Model) setCategories(categories []core.Category) {
	m.categories = categories
	m.form.setCategories(categories)
	m.summary = core.Summarize(m.categories, m.expenses)
}

func (m Model) selected() (core.Expense, bool) {
	if m.cursor < 0 || m.cursor >= len(m.expenses) {
		return core.Expense{}, false
	}
	return m.expenses[m.cursor], true
}
