package board

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fastygo/taskboard/domain"
)

//go:embed seed.yaml
var seedYAML []byte

type sampleFile struct {
	Tasks []sampleTask `yaml:"tasks"`
}

type sampleTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Priority    string `yaml:"priority"`
	Category    string `yaml:"category"`
	DueInDays   *int   `yaml:"dueInDays"`
	Status      string `yaml:"status"`
}

// sample is a validated seed entry ready for the store.
type sample struct {
	draft  domain.Draft
	status domain.Status
}

// loadSamples decodes the embedded sample board, resolving relative due dates against today.
func loadSamples(data []byte, today domain.Date) ([]sample, error) {
	var file sampleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode sample board: %w", err)
	}

	out := make([]sample, 0, len(file.Tasks))
	for i, st := range file.Tasks {
		draft, err := domain.TaskInput{
			Title:       st.Title,
			Description: st.Description,
			Priority:    st.Priority,
			Category:    st.Category,
		}.Draft()
		if err != nil {
			return nil, fmt.Errorf("sample task %d: %w", i, err)
		}
		if st.DueInDays != nil {
			draft.DueDate = today.AddDays(*st.DueInDays)
		}
		status, err := domain.ParseStatus(st.Status)
		if err != nil {
			return nil, fmt.Errorf("sample task %d: %w", i, err)
		}
		out = append(out, sample{draft: draft, status: status})
	}
	return out, nil
}
