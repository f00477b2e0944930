package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"expenses/internal/core"
)

const (
	colDate        = 12
	colDescription = 32
	colCategory    = 16
	colAmount      = 12
	colCount       = 8
)

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state == StateLoading {
		return m.theme.Muted.Render("Loading...") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Expense Tracker"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.theme.Error.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.state == StateFormOpen {
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	}

	b.WriteString(m.renderExpenses())
	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")

	if m.state == StateFormOpen {
		b.WriteString(m.help.View(formKeys{m.keymap}))
	} else {
		b.WriteString(m.help.View(tableKeys{m.keymap}))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderForm() string {
	title := "Add New Expense"
	if m.form.editing() {
		title = "Edit Expense"
	}

	rows := []string{m.theme.Subtitle.Render(title), ""}
	for f := field(0); f < fieldCount; f++ {
		label := m.theme.Label
		if m.form.focus == f {
			label = m.theme.FocusLabel
		}
		rows = append(rows, label.Render(fieldLabels[f]+":")+m.fieldView(f))
	}

	if m.form.err != "" {
		rows = append(rows, "", m.theme.Error.Render(m.form.err))
	}
	if m.submitting {
		rows = append(rows, "", m.theme.Muted.Render("Saving..."))
	}
	return m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) fieldView(f field) string {
	switch f {
	case fieldAmount:
		return m.form.amount.View()
	case fieldDescription:
		return m.form.description.View()
	case fieldDate:
		return m.form.date.View()
	case fieldCategory:
		name := m.form.category()
		if name == "" {
			return m.theme.Muted.Render("no categories")
		}
		if m.form.focus == fieldCategory {
			return "‹ " + name + " ›"
		}
		return name
	}
	return ""
}

func (m Model) renderExpenses() string {
	header := m.theme.Header.Render(
		pad("Date", colDate) + pad("Description", colDescription) +
			pad("Category", colCategory) + padLeft("Amount", colAmount))

	lines := []string{header}
	if len(m.expenses) == 0 {
		lines = append(lines, m.theme.Muted.Render("No expenses yet. Press a to add one."))
	}
	for i, e := range m.expenses {
		row := pad(e.Date.String(), colDate) +
			pad(e.Description, colDescription) +
			pad(e.Category, colCategory) +
			padLeft(formatMoney(e.Amount), colAmount)
		style := m.theme.Cell
		if i == m.cursor && m.state == StateReady {
			style = m.theme.Selected
		}
		lines = append(lines, style.Render(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderSummary() string {
	lines := []string{
		m.theme.Subtitle.Render("Category Summary"),
		m.theme.Header.Render(pad("Category", colCategory) + padLeft("Total Amount", colAmount+2) + padLeft("Count", colCount)),
	}
	for _, row := range m.summary {
		lines = append(lines, m.theme.Cell.Render(
			pad(row.Category, colCategory)+
				padLeft(formatMoney(row.Total), colAmount+2)+
				padLeft(strconv.FormatInt(row.Count, 10), colCount)))
	}
	lines = append(lines, m.theme.Total.Render(
		pad("Total", colCategory)+padLeft(formatMoney(core.GrandTotal(m.summary)), colAmount+2)))
	return m.theme.SummaryBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func formatMoney(m core.Money) string {
	return "$" + m.String()
}

// pad truncates or right-pads s to width cells.
func pad(s string, width int) string {
	s = truncate(s, width-1)
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

func padLeft(s string, width int) string {
	s = truncate(s, width-1)
	return strings.Repeat(" ", max(width-lipgloss.Width(s), 0)) + s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 1 {
		return string(r[:max(width, 0)])
	}
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
