package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/clock"
)

func TestFeed_SeqAndRevision(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFake(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	feed := NewFeed(8, clk, nil)

	feed.Invalidate(ctx)
	feed.Notify(ctx, domain.Outcome{Kind: domain.OutcomeAdded, TaskID: 1})
	feed.Notify(ctx, domain.Outcome{Kind: domain.OutcomeNotFound, TaskID: 5})

	assert.Equal(t, uint64(2), feed.Seq())
	assert.Equal(t, uint64(1), feed.Revision())

	entries := feed.Since(0)
	assert.Len(t, entries, 2)
	assert.Equal(t, uint64(1), entries[0].Revision)
	assert.Equal(t, clk.Now(), entries[0].Timestamp)

	later := feed.Since(1)
	assert.Len(t, later, 1)
	assert.Equal(t, domain.OutcomeNotFound, later[0].Outcome.Kind)

	assert.Empty(t, feed.Since(2))
	assert.NotNil(t, feed.Since(2))
}

func TestFeed_RingDropsOldest(t *testing.T) {
	ctx := context.Background()
	feed := NewFeed(3, nil, nil)
	for i := 1; i <= 5; i++ {
		feed.Notify(ctx, domain.Outcome{Kind: domain.OutcomeAdded, TaskID: i})
	}

	entries := feed.Since(0)
	assert.Len(t, entries, 3)
	assert.Equal(t, uint64(3), entries[0].Seq)
	assert.Equal(t, 5, entries[2].Outcome.TaskID)
}
