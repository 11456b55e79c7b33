package domain

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Next returns the status one step forward. Done has no successor.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusTodo:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusDone, true
	}
	return s, false
}

// ParseStatus validates a raw column value.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.TrimSpace(value))
	if !s.Valid() {
		return "", WrapError(ErrCodeInvalidStatus, fmt.Sprintf("invalid status %q", value), ErrInvalidStatus)
	}
	return s, nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ParsePriority(value string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(value)))
	if !p.Valid() {
		return "", NewError(ErrCodeInvalid, fmt.Sprintf("invalid priority %q", value))
	}
	return p, nil
}

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

func ParseCategory(value string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(value)))
	if !c.Valid() {
		return "", NewError(ErrCodeInvalid, fmt.Sprintf("invalid category %q", value))
	}
	return c, nil
}

// Task is a single card on the board. JSON names match the persisted layout.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Category    Category  `json:"category"`
	DueDate     Date      `json:"dueDate"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusDone
}

// IsOverdue reports whether the task has a due date strictly before today and is not done.
func (t *Task) IsOverdue(today Date) bool {
	if t == nil || t.DueDate.IsZero() || t.Status == StatusDone {
		return false
	}
	return t.DueDate.Before(today)
}

// Validate checks the shape of a stored task.
func (t *Task) Validate() error {
	switch {
	case t.ID <= 0:
		return NewError(ErrCodeInvalid, fmt.Sprintf("invalid id %d", t.ID))
	case strings.TrimSpace(t.Title) == "":
		return ErrEmptyTitle
	case !t.Priority.Valid():
		return NewError(ErrCodeInvalid, fmt.Sprintf("task %d: invalid priority %q", t.ID, t.Priority))
	case !t.Category.Valid():
		return NewError(ErrCodeInvalid, fmt.Sprintf("task %d: invalid category %q", t.ID, t.Category))
	case !t.Status.Valid():
		return WrapError(ErrCodeInvalidStatus, fmt.Sprintf("task %d: invalid status %q", t.ID, t.Status), ErrInvalidStatus)
	}
	return nil
}

// Draft carries the validated fields of a task that has not been stored yet.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	Category    Category
	DueDate     Date
}

// TaskInput is the raw form payload, nothing validated yet.
type TaskInput struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Priority    string `json:"priority" yaml:"priority"`
	Category    string `json:"category" yaml:"category"`
	DueDate     string `json:"dueDate" yaml:"dueDate"`
}

// Draft validates the raw input. The title check lives in the store so that every add path
// enforces it; here only the enumerations and date are parsed.
func (in TaskInput) Draft() (Draft, error) {
	priority, err := ParsePriority(in.Priority)
	if err != nil {
		return Draft{}, err
	}
	category, err := ParseCategory(in.Category)
	if err != nil {
		return Draft{}, err
	}
	due, err := ParseDate(strings.TrimSpace(in.DueDate))
	if err != nil {
		return Draft{}, WrapError(ErrCodeInvalid, "invalid due date", err)
	}
	return Draft{
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		Category:    category,
		DueDate:     due,
	}, nil
}
