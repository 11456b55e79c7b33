package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Probe is the storage backend as seen by the monitor.
type Probe interface {
	Ping(ctx context.Context) error
	Size() (int, error)
}

// TaskCounter reports how many tasks the in-memory store holds.
type TaskCounter interface {
	Len() int
}

// Monitor periodically checks that the local storage file is still readable so the
// health endpoint can report a broken disk before the next write fails.
type Monitor struct {
	probe Probe
	tasks TaskCounter

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(probe Probe, tasks TaskCounter, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		probe:    probe,
		tasks:    tasks,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Storage
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh runs one probe synchronously.
func (m *Monitor) Refresh() {
	status := Status{LastCheck: time.Now()}

	if m.probe != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := m.probe.Ping(ctx)
		cancel()
		if err != nil {
			status.LastError = err.Error()
		} else {
			status.Storage = true
		}
		if size, err := m.probe.Size(); err == nil {
			status.StorageKeys = size
		}
	}
	if m.tasks != nil {
		status.Tasks = m.tasks.Len()
	}

	m.mu.Lock()
	wasOnline := m.status.Storage
	m.status = status
	m.mu.Unlock()

	if wasOnline && !status.Storage {
		m.logger.Warn("local storage check failed", zap.String("error", status.LastError))
	}
}
