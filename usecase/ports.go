package usecase

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// Notifier receives the user-facing outcome of every façade operation
// (toasts, completion effects, CLI output).
type Notifier interface {
	Notify(ctx context.Context, outcome domain.Outcome)
}

// ViewInvalidator is told that the board projection is stale and must be re-derived.
type ViewInvalidator interface {
	Invalidate(ctx context.Context)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ctx context.Context, outcome domain.Outcome)

func (f NotifierFunc) Notify(ctx context.Context, outcome domain.Outcome) { f(ctx, outcome) }
