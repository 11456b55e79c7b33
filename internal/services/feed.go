package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/clock"
	"github.com/fastygo/taskboard/usecase"
)

// FeedEntry is one outcome as seen by polling renderers.
type FeedEntry struct {
	Seq       uint64         `json:"seq"`
	Revision  uint64         `json:"revision"`
	Outcome   domain.Outcome `json:"outcome"`
	Timestamp time.Time      `json:"timestamp"`
}

// Feed bridges the façade to renderers that cannot receive callbacks. It keeps a bounded
// ring of recent outcomes and a view revision that changes on every invalidation, so a
// renderer polls /events and re-fetches the board when the revision moved.
type Feed struct {
	mu       sync.RWMutex
	entries  []FeedEntry
	capacity int
	seq      uint64
	revision uint64
	clock    clock.Clock
	logger   *zap.Logger
}

func NewFeed(capacity int, clk clock.Clock, logger *zap.Logger) *Feed {
	if capacity <= 0 {
		capacity = 256
	}
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		entries:  make([]FeedEntry, 0, capacity),
		capacity: capacity,
		clock:    clk,
		logger:   logger,
	}
}

// Notify records an outcome together with the view revision it produced.
func (f *Feed) Notify(ctx context.Context, outcome domain.Outcome) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.entries) == f.capacity {
		copy(f.entries, f.entries[1:])
		f.entries = f.entries[:len(f.entries)-1]
	}
	f.seq++
	f.entries = append(f.entries, FeedEntry{
		Seq:       f.seq,
		Revision:  f.revision,
		Outcome:   outcome,
		Timestamp: f.clock.Now(),
	})
}

// Invalidate bumps the view revision.
func (f *Feed) Invalidate(ctx context.Context) {
	f.mu.Lock()
	f.revision++
	rev := f.revision
	f.mu.Unlock()
	f.logger.Debug("board view invalidated", zap.Uint64("revision", rev))
}

// Revision returns the current view revision.
func (f *Feed) Revision() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.revision
}

// Seq returns the sequence number of the latest outcome.
func (f *Feed) Seq() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.seq
}

// Since returns the retained outcomes with a sequence number greater than seq, oldest first.
func (f *Feed) Since(seq uint64) []FeedEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]FeedEntry, 0)
	for _, e := range f.entries {
		if e.Seq > seq {
			out = append(out, e)
		}
	}
	return out
}

var (
	_ usecase.Notifier        = (*Feed)(nil)
	_ usecase.ViewInvalidator = (*Feed)(nil)
)
