package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// TaskRepository is the authoritative task collection. Every mutating call persists
// before it returns.
type TaskRepository interface {
	Load(ctx context.Context) error
	Add(ctx context.Context, draft domain.Draft) (domain.Task, error)
	AddAll(ctx context.Context, drafts []domain.Draft, statuses []domain.Status) ([]domain.Task, error)
	SetStatus(ctx context.Context, id int, status domain.Status) (domain.Task, error)
	Remove(ctx context.Context, id int) (domain.Task, error)
	Get(ctx context.Context, id int) (domain.Task, error)
	All(ctx context.Context) ([]domain.Task, error)
	Persist(ctx context.Context) error
}
