package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ProcessTask tracks one asynchronous batch processing run.
type ProcessTask struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"` // "running", "done", "error", "cancelled"
	Total     int         `json:"total"`
	Current   int         `json:"current"`
	Document  string      `json:"document,omitempty"`
	Result    *BatchTally `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ProcessTaskService tracks the single in-flight background batch run.
// Starting a new run cancels any previous one.
type ProcessTaskService interface {
	Start(total int) (string, context.Context)
	Update(current int, document string)
	Complete(result BatchTally)
	Fail(err error)
	Get() *ProcessTask
	Cancel() bool
}

type processTaskManager struct {
	mu      sync.RWMutex
	current *ProcessTask
	cancel  context.CancelFunc
}

// NewProcessTaskService creates a new task tracker.
func NewProcessTaskService() ProcessTaskService {
	return &processTaskManager{}
}

func (m *processTaskManager) Start(total int) (string, context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Cancel any existing task
	if m.cancel != nil {
		m.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	id := uuid.New().String()
	m.current = &ProcessTask{
		ID:        id,
		Status:    "running",
		Total:     total,
		Current:   0,
		CreatedAt: time.Now(),
	}
	return id, ctx
}

func (m *processTaskManager) Update(current int, document string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Status == "running" {
		m.current.Current = current
		m.current.Document = document
	}
}

func (m *processTaskManager) Complete(result BatchTally) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.Status = "done"
		m.current.Result = &result
		m.current.Document = ""
	}
}

func (m *processTaskManager) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.Status = "error"
		m.current.Error = err.Error()
		m.current.Document = ""
	}
}

func (m *processTaskManager) Get() *ProcessTask {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil
	}

	// Return a copy
	task := *m.current
	if m.current.Result != nil {
		result := *m.current.Result
		task.Result = &result
	}
	return &task
}

func (m *processTaskManager) Cancel() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.Status != "running" {
		return false
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.current.Status = "cancelled"
	m.current.Document = ""
	return true
}
