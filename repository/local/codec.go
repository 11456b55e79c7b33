package local

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fastygo/taskboard/domain"
)

func encodeTasks(tasks []domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return json.Marshal(tasks)
}

// decodeTasks parses a snapshot and rejects anything that is not a well-formed task array.
// All failures are classified as ErrCodeDecode.
func decodeTasks(raw []byte) ([]domain.Task, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.NewError(domain.ErrCodeDecode, "board snapshot is not a task array")
	}

	var tasks []domain.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, domain.WrapError(domain.ErrCodeDecode, "board snapshot is malformed", err)
	}

	seen := make(map[int]struct{}, len(tasks))
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return nil, domain.WrapError(domain.ErrCodeDecode, fmt.Sprintf("board snapshot entry %d", i), err)
		}
		if _, dup := seen[tasks[i].ID]; dup {
			return nil, domain.NewError(domain.ErrCodeDecode, fmt.Sprintf("board snapshot has duplicate id %d", tasks[i].ID))
		}
		seen[tasks[i].ID] = struct{}{}
	}
	return tasks, nil
}
