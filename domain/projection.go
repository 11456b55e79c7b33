package domain

// Card is a task as shown in a column.
type Card struct {
	Task
	Overdue bool `json:"overdue"`
}

// Summary holds the headline counters. They are always computed from the whole board,
// never from the filtered view.
type Summary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
}

// Board is the read-only view model handed to renderers.
type Board struct {
	Today   Date              `json:"today"`
	Columns map[Status][]Card `json:"columns"`
	Counts  map[Status]int    `json:"counts"`
	Summary Summary           `json:"summary"`
}

// Project derives the board from the full task set and its filtered subset.
// Columns and counts follow filtered; Summary follows all.
func Project(all, filtered []Task, today Date) Board {
	board := Board{
		Today:   today,
		Columns: make(map[Status][]Card, len(Statuses)),
		Counts:  make(map[Status]int, len(Statuses)),
	}
	for _, s := range Statuses {
		board.Columns[s] = []Card{}
	}

	for _, t := range filtered {
		if !t.Status.Valid() {
			continue
		}
		board.Columns[t.Status] = append(board.Columns[t.Status], Card{Task: t, Overdue: t.IsOverdue(today)})
	}
	for _, s := range Statuses {
		board.Counts[s] = len(board.Columns[s])
	}

	board.Summary.Total = len(all)
	for _, t := range all {
		switch t.Status {
		case StatusDone:
			board.Summary.Completed++
		case StatusInProgress:
			board.Summary.InProgress++
		}
		if t.IsOverdue(today) {
			board.Summary.Overdue++
		}
	}
	return board
}
