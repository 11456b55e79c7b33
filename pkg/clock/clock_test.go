package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_AfterFiresOnAdvance(t *testing.T) {
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	fake := NewFake(start)

	ch := fake.After(time.Second)
	assert.Equal(t, 1, fake.Waiters())

	fake.Advance(500 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("fired too early")
	default:
	}

	fake.Advance(500 * time.Millisecond)
	select {
	case got := <-ch:
		assert.Equal(t, start.Add(time.Second), got)
	default:
		t.Fatal("expected waiter to fire")
	}
	assert.Equal(t, 0, fake.Waiters())
}

func TestFake_AfterNonPositiveFiresImmediately(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))
	select {
	case <-fake.After(0):
	default:
		t.Fatal("expected immediate fire")
	}
}

func TestFake_Set(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))
	target := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	fake.Set(target)
	assert.Equal(t, target, fake.Now())
}
