package tracker

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Record is one appended tracking entry.
type Record struct {
	Run        RunContext `json:"run"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Submission Submission `json:"submission"`
}

// Memory is an in-process append-only tracker, used in tests and as the
// store behind the tracker server.
type Memory struct {
	mutex   *sync.RWMutex
	records map[string]*Record
	order   []string
}

func NewMemory() *Memory {
	return &Memory{
		mutex:   new(sync.RWMutex),
		records: make(map[string]*Record),
		order:   make([]string, 0),
	}
}

func (m *Memory) BeginRun(ctx context.Context, experiment, name string) (RunContext, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	rc := RunContext{
		ID:         uuid.New().String(),
		Experiment: experiment,
	}
	m.records[rc.ID] = &Record{
		Run:    rc,
		Name:   name,
		Status: StatusRunning,
	}
	m.order = append(m.order, rc.ID)
	return rc, nil
}

func (m *Memory) LogRun(ctx context.Context, rc RunContext, sub Submission) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record, ok := m.records[rc.ID]
	if !ok {
		return fmt.Errorf("run '%s': %w", rc.ID, UnavailableErr)
	}
	record.Submission = sub
	return nil
}

func (m *Memory) EndRun(ctx context.Context, rc RunContext, status string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record, ok := m.records[rc.ID]
	if !ok {
		return fmt.Errorf("run '%s': %w", rc.ID, UnavailableErr)
	}
	record.Status = status
	return nil
}

// Records returns the appended entries in begin order.
func (m *Memory) Records() []Record {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.records[id])
	}
	return out
}
