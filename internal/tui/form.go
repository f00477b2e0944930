package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"expenses/internal/core"
)

type field int

const (
	fieldAmount field = iota
	fieldDescription
	fieldCategory
	fieldDate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldAmount:      "Amount",
	fieldDescription: "Description",
	fieldCategory:    "Category",
	fieldDate:        "Date",
}

// formModel holds the add/edit form. editingID is 0 when creating.
type formModel struct {
	amount      textinput.Model
	description textinput.Model
	date        textinput.Model
	categories  []core.Category
	categoryIdx int
	focus       field
	editingID   int64
	err         string
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Width = 30
	// Static cursor, so keystrokes never schedule blink timers.
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newForm(categories []core.Category) formModel {
	f := formModel{
		amount:      newTextInput("0.00", 16),
		description: newTextInput("optional", core.MaxDescriptionLength),
		date:        newTextInput(core.DateLayout, len(core.DateLayout)),
		categories:  categories,
	}
	f.reset()
	return f
}

// reset restores defaults: empty amount and description, the first
// category and today's date.
func (f *formModel) reset() {
	f.amount.SetValue("")
	f.description.SetValue("")
	f.date.SetValue(core.Today().String())
	f.categoryIdx = 0
	f.editingID = 0
	f.err = ""
	f.setFocus(fieldAmount)
}

// fill loads an existing expense for editing.
func (f *formModel) fill(e core.Expense) {
	f.reset()
	f.editingID = e.ID
	f.amount.SetValue(e.Amount.String())
	f.description.SetValue(e.Description)
	f.date.SetValue(e.Date.String())
	for i, c := range f.categories {
		if c.Name == e.Category {
			f.categoryIdx = i
			break
		}
	}
}

func (f *formModel) setCategories(categories []core.Category) {
	current := f.category()
	f.categories = categories
	f.categoryIdx = 0
	for i, c := range categories {
		if c.Name == current {
			f.categoryIdx = i
		}
	}
}

func (f formModel) category() string {
	if f.categoryIdx < 0 || f.categoryIdx >= len(f.categories) {
		return ""
	}
	return f.categories[f.categoryIdx].Name
}

func (f formModel) editing() bool {
	return f.editingID > 0
}

func (f *formModel) setFocus(target field) tea.Cmd {
	f.focus = (target + fieldCount) % fieldCount
	f.amount.Blur()
	f.description.Blur()
	f.date.Blur()

	switch f.focus {
	case fieldAmount:
		return f.amount.Focus()
	case fieldDescription:
		return f.description.Focus()
	case fieldDate:
		return f.date.Focus()
	}
	return nil
}

func (f *formModel) cycleCategory(delta int) {
	n := len(f.categories)
	if n == 0 {
		return
	}
	f.categoryIdx = ((f.categoryIdx+delta)%n + n) % n
}

// updateInput forwards a message to the focused text input.
func (f *formModel) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldAmount:
		f.amount, cmd = f.amount.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	}
	return cmd
}

var (
	errAmountRequired   = errors.New("amount is required")
	errCategoryRequired = errors.New("category is required")
	errDateRequired     = errors.New("date is required")
)

// input checks the required fields and parses them.
func (f formModel) input() (core.ExpenseInput, error) {
	rawAmount := strings.TrimSpace(f.amount.Value())
	if rawAmount == "" {
		return core.ExpenseInput{}, errAmountRequired
	}
	cents, err := core.ParseDecimalToCents(rawAmount)
	if err != nil {
		return core.ExpenseInput{}, err
	}

	category := f.category()
	if category == "" {
		return core.ExpenseInput{}, errCategoryRequired
	}

	rawDate := strings.TrimSpace(f.date.Value())
	if rawDate == "" {
		return core.ExpenseInput{}, errDateRequired
	}
	date, err := core.ParseDate(rawDate)
	if err != nil {
		return core.ExpenseInput{}, err
	}

	in := core.ExpenseInput{
		Amount:      core.Money{Cents: cents},
		Description: strings.TrimSpace(f.description.Value()),
		Category:    category,
		Date:        date,
	}
	return in, in.Validate()
}
