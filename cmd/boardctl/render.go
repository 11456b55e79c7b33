package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fastygo/taskboard/domain"
)

const columnWidth = 34

var (
	columnTitles = map[domain.Status]string{
		domain.StatusTodo:       "To Do",
		domain.StatusInProgress: "In Progress",
		domain.StatusDone:       "Done",
	}

	priorityColors = map[domain.Priority]lipgloss.Color{
		domain.PriorityHigh:   lipgloss.Color("196"),
		domain.PriorityMedium: lipgloss.Color("214"),
		domain.PriorityLow:    lipgloss.Color("34"),
	}

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(columnWidth)

	headerStyle  = lipgloss.NewStyle().Bold(true)
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("242"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func renderBoard(board domain.Board) string {
	columns := make([]string, 0, len(domain.Statuses))
	for _, status := range domain.Statuses {
		columns = append(columns, renderColumn(status, board.Columns[status], board.Counts[status]))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		renderSummary(board),
	)
}

func renderColumn(status domain.Status, cards []domain.Card, count int) string {
	lines := []string{headerStyle.Render(fmt.Sprintf("%s (%d)", columnTitles[status], count))}
	if len(cards) == 0 {
		lines = append(lines, mutedStyle.Render("no tasks"))
	}
	for _, card := range cards {
		lines = append(lines, renderCard(card))
	}
	return columnStyle.Render(strings.Join(lines, "\n"))
}

func renderCard(card domain.Card) string {
	title := card.Title
	if card.IsCompleted() {
		title = doneStyle.Render(title)
	}
	head := idStyle.Render(fmt.Sprintf("#%d", card.ID)) + " " + title

	meta := lipgloss.NewStyle().Foreground(priorityColors[card.Priority]).Render(string(card.Priority)) +
		mutedStyle.Render(" · "+string(card.Category))
	if !card.DueDate.IsZero() {
		due := "due " + card.DueDate.String()
		if card.Overdue {
			meta += " " + overdueStyle.Render(due+" overdue")
		} else {
			meta += mutedStyle.Render(" · " + due)
		}
	}
	return head + "\n  " + meta
}

func renderSummary(board domain.Board) string {
	s := board.Summary
	line := fmt.Sprintf("%s  total %d  completed %d  in progress %d",
		board.Today.String(), s.Total, s.Completed, s.InProgress)
	if s.Overdue > 0 {
		return mutedStyle.Render(line+"  ") + overdueStyle.Render(fmt.Sprintf("overdue %d", s.Overdue))
	}
	return mutedStyle.Render(line + "  overdue 0")
}

func renderOutcome(outcome domain.Outcome) string {
	if outcome.OK() {
		return okStyle.Render("✓ ") + outcome.Message
	}
	return failStyle.Render("✗ "+string(outcome.Kind)+": ") + outcome.Message
}
