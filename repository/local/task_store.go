package local

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/clock"
	"github.com/fastygo/taskboard/repository"
)

// DefaultKey is the storage key the board snapshot is written under.
const DefaultKey = "taskboard.tasks"

type TaskStore struct {
	kv     repository.KeyValueStore
	key    string
	clock  clock.Clock
	logger *zap.Logger

	mu     sync.RWMutex
	tasks  []domain.Task
	nextID int
}

// NewTaskStore returns an empty store. Call Load to read the persisted snapshot.
func NewTaskStore(kv repository.KeyValueStore, key string, clk clock.Clock, logger *zap.Logger) *TaskStore {
	if key == "" {
		key = DefaultKey
	}
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskStore{
		kv:     kv,
		key:    key,
		clock:  clk,
		logger: logger,
		nextID: 1,
	}
}

// Load replaces the in-memory collection with the persisted one. A missing key or an
// unreadable snapshot leaves the store empty; only storage I/O failures are returned.
func (s *TaskStore) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil && !errors.Is(err, repository.ErrKeyNotFound) {
		return domain.WrapError(domain.ErrCodeStorage, "read board snapshot", err)
	}

	var tasks []domain.Task
	if err == nil {
		tasks, err = decodeTasks(raw)
		if err != nil {
			s.logger.Warn("discarding unreadable board snapshot", zap.String("key", s.key), zap.Error(err))
			tasks = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.recomputeNextIDLocked()
	s.logger.Debug("board loaded", zap.Int("tasks", len(tasks)), zap.Int("next_id", s.nextID))
	return nil
}

func (s *TaskStore) Add(ctx context.Context, draft domain.Draft) (domain.Task, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return domain.Task{}, domain.ErrEmptyTitle
	}
	if !draft.Priority.Valid() || !draft.Category.Valid() {
		return domain.Task{}, domain.NewError(domain.ErrCodeInvalid, "priority and category are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := domain.Task{
		ID:          s.nextID,
		Title:       title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Category:    draft.Category,
		DueDate:     draft.DueDate,
		Status:      domain.StatusTodo,
		CreatedAt:   s.clock.Now(),
	}

	prev := s.tasks
	s.tasks = append(slices.Clip(prev), task)
	if err := s.persistLocked(ctx); err != nil {
		s.tasks = prev
		s.recomputeNextIDLocked()
		return domain.Task{}, err
	}
	return task, nil
}

// AddAll appends one task per draft with the matching final status and persists them in a
// single write. Either every task is stored or none is.
func (s *TaskStore) AddAll(ctx context.Context, drafts []domain.Draft, statuses []domain.Status) ([]domain.Task, error) {
	if len(drafts) != len(statuses) {
		return nil, domain.NewError(domain.ErrCodeInternal, fmt.Sprintf("%d drafts but %d statuses", len(drafts), len(statuses)))
	}
	for i, draft := range drafts {
		if strings.TrimSpace(draft.Title) == "" {
			return nil, domain.ErrEmptyTitle
		}
		if !draft.Priority.Valid() || !draft.Category.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "priority and category are required")
		}
		if !statuses[i].Valid() {
			return nil, domain.WrapError(domain.ErrCodeInvalidStatus, fmt.Sprintf("invalid status %q", statuses[i]), domain.ErrInvalidStatus)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	added := make([]domain.Task, 0, len(drafts))
	for i, draft := range drafts {
		added = append(added, domain.Task{
			ID:          s.nextID + i,
			Title:       strings.TrimSpace(draft.Title),
			Description: draft.Description,
			Priority:    draft.Priority,
			Category:    draft.Category,
			DueDate:     draft.DueDate,
			Status:      statuses[i],
			CreatedAt:   now,
		})
	}

	prev := s.tasks
	s.tasks = append(slices.Clip(prev), added...)
	if err := s.persistLocked(ctx); err != nil {
		s.tasks = prev
		s.recomputeNextIDLocked()
		return nil, err
	}
	return slices.Clone(added), nil
}

func (s *TaskStore) SetStatus(ctx context.Context, id int, status domain.Status) (domain.Task, error) {
	if !status.Valid() {
		return domain.Task{}, domain.WrapError(domain.ErrCodeInvalidStatus, fmt.Sprintf("invalid status %q", status), domain.ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Task{}, domain.NotFound(id)
	}

	previous := s.tasks[idx].Status
	s.tasks[idx].Status = status
	if err := s.persistLocked(ctx); err != nil {
		s.tasks[idx].Status = previous
		return domain.Task{}, err
	}
	return s.tasks[idx], nil
}

func (s *TaskStore) Remove(ctx context.Context, id int) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Task{}, domain.NotFound(id)
	}

	removed := s.tasks[idx]
	prev := s.tasks
	s.tasks = slices.Delete(slices.Clone(prev), idx, idx+1)
	if err := s.persistLocked(ctx); err != nil {
		s.tasks = prev
		s.recomputeNextIDLocked()
		return domain.Task{}, err
	}
	return removed, nil
}

func (s *TaskStore) Get(ctx context.Context, id int) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Task{}, domain.NotFound(id)
	}
	return s.tasks[idx], nil
}

// All returns a copy of the collection, oldest first.
func (s *TaskStore) All(ctx context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks), nil
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// NextID returns the id the next Add will assign.
func (s *TaskStore) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

func (s *TaskStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *TaskStore) persistLocked(ctx context.Context) error {
	payload, err := encodeTasks(s.tasks)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "encode board snapshot", err)
	}
	if err := s.kv.Put(ctx, s.key, payload); err != nil {
		s.logger.Error("board snapshot write failed", zap.String("key", s.key), zap.Error(err))
		return domain.WrapError(domain.ErrCodeStorage, "could not save the board", err)
	}
	s.recomputeNextIDLocked()
	return nil
}

// recomputeNextIDLocked derives the counter from the data rather than trusting a stored
// value, so a hand-edited snapshot can leave a gap but never a duplicate.
func (s *TaskStore) recomputeNextIDLocked() {
	maxID := 0
	for _, t := range s.tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	s.nextID = maxID + 1
}

func (s *TaskStore) indexLocked(id int) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID == id })
}

var _ repository.TaskRepository = (*TaskStore)(nil)
