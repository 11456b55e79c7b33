package transport

import "github.com/fastygo/taskboard/domain"

// TaskRequest is the add-task form as posted by the renderer.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     string `json:"dueDate"`
}

func (r TaskRequest) Input() domain.TaskInput {
	return domain.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Category:    r.Category,
		DueDate:     r.DueDate,
	}
}

// MoveRequest is a drag-and-drop drop onto a column.
type MoveRequest struct {
	Status string `json:"status"`
}
