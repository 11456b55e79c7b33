package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_ShutdownReverseOrder(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"storage", "monitor", "http_server"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	assert.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"http_server", "monitor", "storage"}, order)
}

func TestManager_ShutdownJoinsErrors(t *testing.T) {
	m := New(time.Second, nil)
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	ran := 0
	m.Register("a", func(ctx context.Context) error { ran++; return errA })
	m.Register("ok", func(ctx context.Context) error { ran++; return nil })
	m.Register("b", func(ctx context.Context) error { ran++; return errB })

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, 3, ran)
}

func TestManager_ShutdownOnce(t *testing.T) {
	m := New(time.Second, nil)
	calls := 0
	m.Register("x", func(ctx context.Context) error { calls++; return nil })

	assert.NoError(t, m.Shutdown(context.Background()))
	assert.NoError(t, m.Shutdown(context.Background()))
	m.Register("late", func(ctx context.Context) error { calls++; return nil })
	assert.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestManager_HooksGetDeadline(t *testing.T) {
	m := New(50*time.Millisecond, nil)
	var hasDeadline bool
	m.Register("x", func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})
	assert.NoError(t, m.Shutdown(context.Background()))
	assert.True(t, hasDeadline)
}
