package local

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/infrastructure/localstorage"
	"github.com/fastygo/taskboard/pkg/clock"
)

var testNow = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*TaskStore, *localstorage.MemoryStore) {
	t.Helper()
	kv := localstorage.NewMemoryStore()
	store := NewTaskStore(kv, "", clock.NewFake(testNow), nil)
	require.NoError(t, store.Load(context.Background()))
	return store, kv
}

func draft(title string) domain.Draft {
	return domain.Draft{Title: title, Priority: domain.PriorityMedium, Category: domain.CategoryWork}
}

func TestTaskStore_AddAssignsSequentialIDs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t1, err := store.Add(ctx, draft("  first  "))
	require.NoError(t, err)
	assert.Equal(t, 1, t1.ID)
	assert.Equal(t, "first", t1.Title)
	assert.Equal(t, domain.StatusTodo, t1.Status)
	assert.Equal(t, testNow, t1.CreatedAt)

	t2, err := store.Add(ctx, draft("second"))
	require.NoError(t, err)
	assert.Equal(t, 2, t2.ID)

	_, err = store.Remove(ctx, t2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, store.NextID(), "next id follows the highest remaining id")
}

func TestTaskStore_AddRejectsEmptyTitle(t *testing.T) {
	store, kv := newTestStore(t)

	_, err := store.Add(context.Background(), draft("   "))
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Equal(t, 0, store.Len())

	size, _ := kv.Size()
	assert.Equal(t, 0, size, "nothing persisted")
}

func TestTaskStore_AddRejectsMissingEnums(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Add(context.Background(), domain.Draft{Title: "x"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Equal(t, 0, store.Len())
}

func TestTaskStore_SetStatus(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	task, _ := store.Add(ctx, draft("a"))

	updated, err := store.SetStatus(ctx, task.ID, domain.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status)

	_, err = store.SetStatus(ctx, 99, domain.StatusTodo)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	_, err = store.SetStatus(ctx, task.ID, "blocked")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidStatus))

	got, _ := store.Get(ctx, task.ID)
	assert.Equal(t, domain.StatusDone, got.Status)
}

func TestTaskStore_RemoveMissing(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	_, _ = store.Add(ctx, draft("keep"))

	_, err := store.Remove(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestTaskStore_LoadRoundTrip(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	d := draft("with due date")
	d.DueDate = domain.Date{Year: 2024, Month: time.June, Day: 12}
	d.Description = "details"
	_, err := store.Add(ctx, d)
	require.NoError(t, err)
	_, err = store.Add(ctx, draft("plain"))
	require.NoError(t, err)
	_, err = store.SetStatus(ctx, 2, domain.StatusInProgress)
	require.NoError(t, err)

	before, _ := store.All(ctx)

	reloaded := NewTaskStore(kv, "", clock.NewFake(testNow), nil)
	require.NoError(t, reloaded.Load(ctx))
	after, _ := reloaded.All(ctx)

	assert.Equal(t, before, after)
	assert.Equal(t, 3, reloaded.NextID())
}

func TestTaskStore_LoadUnreadableSnapshotStartsEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":       `{{{`,
		"object":         `{"tasks":[]}`,
		"bad status":     `[{"id":1,"title":"a","priority":"low","category":"work","status":"blocked"}]`,
		"zero id":        `[{"id":0,"title":"a","priority":"low","category":"work","status":"todo"}]`,
		"duplicate ids":  `[{"id":1,"title":"a","priority":"low","category":"work","status":"todo"},{"id":1,"title":"b","priority":"low","category":"work","status":"todo"}]`,
		"bad due date":   `[{"id":1,"title":"a","priority":"low","category":"work","status":"todo","dueDate":"tomorrow"}]`,
		"empty document": ``,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := localstorage.NewMemoryStore()
			require.NoError(t, kv.Put(ctx, DefaultKey, []byte(raw)))

			store := NewTaskStore(kv, "", clock.NewFake(testNow), nil)
			require.NoError(t, store.Load(ctx))
			assert.Equal(t, 0, store.Len())
			assert.Equal(t, 1, store.NextID())
		})
	}
}

func TestTaskStore_LoadRecomputesNextID(t *testing.T) {
	ctx := context.Background()
	kv := localstorage.NewMemoryStore()
	raw := `[{"id":7,"title":"edited by hand","priority":"high","category":"other","status":"todo","dueDate":null}]`
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte(raw)))

	store := NewTaskStore(kv, "", clock.NewFake(testNow), nil)
	require.NoError(t, store.Load(ctx))

	task, err := store.Add(ctx, draft("next"))
	require.NoError(t, err)
	assert.Equal(t, 8, task.ID)
}

func TestTaskStore_FailedWriteRollsBack(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()
	task, err := store.Add(ctx, draft("stable"))
	require.NoError(t, err)

	kv.FailWrites = errors.New("quota exceeded")

	_, err = store.Add(ctx, draft("lost"))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeStorage))
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 2, store.NextID())

	_, err = store.SetStatus(ctx, task.ID, domain.StatusDone)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeStorage))
	got, _ := store.Get(ctx, task.ID)
	assert.Equal(t, domain.StatusTodo, got.Status)

	_, err = store.Remove(ctx, task.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeStorage))
	assert.Equal(t, 1, store.Len())
}

func TestTaskStore_AllReturnsCopy(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	_, _ = store.Add(ctx, draft("original"))

	all, _ := store.All(ctx)
	all[0].Title = "mutated"

	got, _ := store.Get(ctx, 1)
	assert.Equal(t, "original", got.Title)
}

func TestEncodeTasks_EmptyIsArray(t *testing.T) {
	raw, err := encodeTasks(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	tasks, err := decodeTasks(raw)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskStore_AddKeepsDescriptionAsGiven(t *testing.T) {
	store, _ := newTestStore(t)

	d := draft("notes")
	d.Description = "  indented\nsecond line "
	task, err := store.Add(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "  indented\nsecond line ", task.Description)
}

func TestTaskStore_AddAll(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()
	_, err := store.Add(ctx, draft("existing"))
	require.NoError(t, err)

	added, err := store.AddAll(ctx,
		[]domain.Draft{draft("a"), draft("b"), draft("c")},
		[]domain.Status{domain.StatusTodo, domain.StatusInProgress, domain.StatusDone})
	require.NoError(t, err)
	require.Len(t, added, 3)
	assert.Equal(t, []int{2, 3, 4}, []int{added[0].ID, added[1].ID, added[2].ID})
	assert.Equal(t, domain.StatusDone, added[2].Status)
	assert.Equal(t, 5, store.NextID())

	reloaded := NewTaskStore(kv, "", clock.NewFake(testNow), nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, 4, reloaded.Len())
}

func TestTaskStore_AddAllIsAllOrNothing(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddAll(ctx,
		[]domain.Draft{draft("ok"), draft("  ")},
		[]domain.Status{domain.StatusTodo, domain.StatusTodo})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)

	_, err = store.AddAll(ctx, []domain.Draft{draft("ok")}, []domain.Status{"paused"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidStatus))

	kv.FailWrites = errors.New("quota exceeded")
	_, err = store.AddAll(ctx,
		[]domain.Draft{draft("a"), draft("b")},
		[]domain.Status{domain.StatusTodo, domain.StatusDone})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeStorage))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 1, store.NextID())
}
