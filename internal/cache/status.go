package cache

import "sync"

// MutationStatus is the pending/error state of a binding's writes.
type MutationStatus struct {
	Pending   int    `json:"pending"`
	LastError string `json:"last_error,omitempty"`
}

type mutations struct {
	mu     sync.Mutex
	status MutationStatus
}

func (m *mutations) begin() {
	m.mu.Lock()
	m.status.Pending++
	m.mu.Unlock()
}

func (m *mutations) end(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.Pending--
	if err != nil {
		m.status.LastError = err.Error()
	} else {
		m.status.LastError = ""
	}
}

func (m *mutations) snapshot() MutationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}
