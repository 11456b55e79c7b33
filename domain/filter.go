package domain

import "strings"

// TaskFilter holds the active board filters. Zero values mean "no constraint".
type TaskFilter struct {
	Search   string
	Priority Priority
	Category Category
}

// ParseTaskFilter builds a filter from raw query values. Blank priority or category
// leaves that predicate off.
func ParseTaskFilter(search, priority, category string) (TaskFilter, error) {
	f := TaskFilter{Search: search}
	if strings.TrimSpace(priority) != "" {
		p, err := ParsePriority(priority)
		if err != nil {
			return TaskFilter{}, err
		}
		f.Priority = p
	}
	if strings.TrimSpace(category) != "" {
		c, err := ParseCategory(category)
		if err != nil {
			return TaskFilter{}, err
		}
		f.Category = c
	}
	return f, nil
}

// Matches applies all predicates with AND semantics.
func (f TaskFilter) Matches(t Task) bool {
	if query := strings.ToLower(strings.TrimSpace(f.Search)); query != "" {
		if !strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			return false
		}
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return true
}

// FilterTasks returns the tasks matching f, keeping their relative order.
// The result never aliases the input slice.
func FilterTasks(tasks []Task, f TaskFilter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
