package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProbe struct {
	err  error
	size int
}

func (p *fakeProbe) Ping(ctx context.Context) error { return p.err }
func (p *fakeProbe) Size() (int, error)             { return p.size, nil }

type fixedCount int

func (c fixedCount) Len() int { return int(c) }

func TestMonitor_Refresh(t *testing.T) {
	probe := &fakeProbe{size: 1}
	m := New(probe, fixedCount(3), 0, nil)

	assert.False(t, m.IsOnline(), "offline until the first probe")

	m.Refresh()
	status := m.GetStatus()
	assert.True(t, status.Storage)
	assert.Equal(t, 1, status.StorageKeys)
	assert.Equal(t, 3, status.Tasks)
	assert.False(t, status.LastCheck.IsZero())

	probe.err = errors.New("database not open")
	m.Refresh()
	assert.False(t, m.IsOnline())
	assert.Equal(t, "database not open", m.GetStatus().LastError)
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	m := New(&fakeProbe{}, nil, 0, nil)
	m.Start()
	m.Stop()
	m.Stop()
}
