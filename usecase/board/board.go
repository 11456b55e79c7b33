package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/clock"
	"github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/usecase"
)

// Options tune the façade. Latency delays each mutation before it starts, which the
// board UI uses to show a pending state.
type Options struct {
	Latency time.Duration
}

// UseCase is the mutation façade of the board. Operations are serialized: validation,
// mutation, persistence, invalidation and notification of one operation never
// interleave with another.
type UseCase struct {
	tasks    repository.TaskRepository
	notifier usecase.Notifier
	view     usecase.ViewInvalidator
	clock    clock.Clock
	logger   *zap.Logger
	opts     Options

	mu sync.Mutex
}

func New(
	tasks repository.TaskRepository,
	notifier usecase.Notifier,
	view usecase.ViewInvalidator,
	clk clock.Clock,
	logger *zap.Logger,
	opts Options,
) *UseCase {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		notifier: notifier,
		view:     view,
		clock:    clk,
		logger:   logger,
		opts:     opts,
	}
}

// AddTask validates raw form input and appends a new todo task.
func (uc *UseCase) AddTask(ctx context.Context, input domain.TaskInput) (domain.Outcome, error) {
	return uc.execute(ctx, "add", func(ctx context.Context) domain.Outcome {
		draft, err := input.Draft()
		if err != nil {
			return domain.OutcomeFromError(0, err)
		}
		task, err := uc.tasks.Add(ctx, draft)
		if err != nil {
			return domain.OutcomeFromError(0, err)
		}
		return domain.Outcome{
			Kind:    domain.OutcomeAdded,
			TaskID:  task.ID,
			Message: fmt.Sprintf("Task %q added", task.Title),
		}
	})
}

// Advance moves a task one column forward. Done tasks are left untouched.
func (uc *UseCase) Advance(ctx context.Context, id int) (domain.Outcome, error) {
	return uc.execute(ctx, "advance", func(ctx context.Context) domain.Outcome {
		task, err := uc.tasks.Get(ctx, id)
		if err != nil {
			return domain.OutcomeFromError(id, err)
		}
		next, ok := task.Status.Next()
		if !ok {
			return domain.Outcome{
				Kind:    domain.OutcomeUnchanged,
				TaskID:  id,
				Message: fmt.Sprintf("Task %q is already done", task.Title),
			}
		}
		if _, err := uc.tasks.SetStatus(ctx, id, next); err != nil {
			return domain.OutcomeFromError(id, err)
		}
		if next == domain.StatusDone {
			return domain.Outcome{
				Kind:    domain.OutcomeCompleted,
				TaskID:  id,
				Message: fmt.Sprintf("Task %q completed", task.Title),
			}
		}
		return domain.Outcome{
			Kind:    domain.OutcomeMoved,
			TaskID:  id,
			Message: fmt.Sprintf("Task %q moved to %s", task.Title, next),
		}
	})
}

// MoveToColumn sets the status directly, whatever the current one is.
func (uc *UseCase) MoveToColumn(ctx context.Context, id int, target string) (domain.Outcome, error) {
	return uc.execute(ctx, "move", func(ctx context.Context) domain.Outcome {
		status, err := domain.ParseStatus(target)
		if err != nil {
			return domain.OutcomeFromError(id, err)
		}
		task, err := uc.tasks.SetStatus(ctx, id, status)
		if err != nil {
			return domain.OutcomeFromError(id, err)
		}
		return domain.Outcome{
			Kind:    domain.OutcomeMoved,
			TaskID:  id,
			Message: fmt.Sprintf("Task %q moved to %s", task.Title, status),
		}
	})
}

func (uc *UseCase) DeleteTask(ctx context.Context, id int) (domain.Outcome, error) {
	return uc.execute(ctx, "delete", func(ctx context.Context) domain.Outcome {
		task, err := uc.tasks.Remove(ctx, id)
		if err != nil {
			return domain.OutcomeFromError(id, err)
		}
		return domain.Outcome{
			Kind:    domain.OutcomeDeleted,
			TaskID:  id,
			Message: fmt.Sprintf("Task %q deleted", task.Title),
		}
	})
}

// SeedSampleData fills an empty board with the embedded sample tasks.
func (uc *UseCase) SeedSampleData(ctx context.Context) (domain.Outcome, error) {
	return uc.execute(ctx, "seed", func(ctx context.Context) domain.Outcome {
		existing, err := uc.tasks.All(ctx)
		if err != nil {
			return domain.OutcomeFromError(0, err)
		}
		if len(existing) > 0 {
			return domain.OutcomeFromError(0, domain.ErrBoardNotEmpty)
		}

		samples, err := loadSamples(seedYAML, domain.DateOf(uc.clock.Now()))
		if err != nil {
			return domain.OutcomeFromError(0, domain.WrapError(domain.ErrCodeInternal, "sample board unavailable", err))
		}

		drafts := make([]domain.Draft, 0, len(samples))
		statuses := make([]domain.Status, 0, len(samples))
		for _, s := range samples {
			drafts = append(drafts, s.draft)
			statuses = append(statuses, s.status)
		}
		added, err := uc.tasks.AddAll(ctx, drafts, statuses)
		if err != nil {
			return domain.OutcomeFromError(0, err)
		}
		return domain.Outcome{
			Kind:    domain.OutcomeSeeded,
			Message: fmt.Sprintf("Added %d sample tasks", len(added)),
		}
	})
}

// Board projects the current tasks through filter for today's date.
func (uc *UseCase) Board(ctx context.Context, filter domain.TaskFilter) (domain.Board, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	all, err := uc.tasks.All(ctx)
	if err != nil {
		return domain.Board{}, err
	}
	return domain.Project(all, domain.FilterTasks(all, filter), domain.DateOf(uc.clock.Now())), nil
}

// Tasks returns every task, oldest first.
func (uc *UseCase) Tasks(ctx context.Context) ([]domain.Task, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.tasks.All(ctx)
}

// Refresh marks the view stale without touching the store, e.g. when the date rolls
// over and overdue flags change.
func (uc *UseCase) Refresh(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.view != nil {
		uc.view.Invalidate(ctx)
	}
}

// execute waits out the configured latency, then runs op atomically. Only the wait can
// be cancelled; once op starts it runs to completion with a non-cancellable context.
func (uc *UseCase) execute(ctx context.Context, name string, op func(ctx context.Context) domain.Outcome) (domain.Outcome, error) {
	if uc.opts.Latency > 0 {
		select {
		case <-uc.clock.After(uc.opts.Latency):
		case <-ctx.Done():
			return domain.Outcome{}, ctx.Err()
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	opCtx := context.WithoutCancel(ctx)
	outcome := op(opCtx)

	if outcome.Mutated() && uc.view != nil {
		uc.view.Invalidate(opCtx)
	}
	uc.logOutcome(opCtx, name, outcome)
	if uc.notifier != nil {
		uc.notifier.Notify(opCtx, outcome)
	}
	return outcome, nil
}

func (uc *UseCase) logOutcome(ctx context.Context, name string, outcome domain.Outcome) {
	log := logger.WithRequestID(ctx, uc.logger)
	fields := []zap.Field{
		zap.String("operation", name),
		zap.String("outcome", string(outcome.Kind)),
		zap.Int("task_id", outcome.TaskID),
	}
	switch {
	case outcome.Kind == domain.OutcomeStorageError:
		log.Error("board operation failed", append(fields, zap.String("message", outcome.Message))...)
	case !outcome.OK():
		log.Warn("board operation rejected", append(fields, zap.String("message", outcome.Message))...)
	default:
		log.Info("board operation applied", fields...)
	}
}
