package helpers

import "sync"

// ResolutionEvent is one recorded resolution
type ResolutionEvent struct {
	Source string
	Driver string
	Err    error
}

// MockRecorder is a test double for resolver.Recorder
type MockRecorder struct {
	mu          sync.Mutex
	Resolutions []ResolutionEvent
	FileReads   map[string]int
}

// NewMockRecorder creates a new mock recorder
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{FileReads: make(map[string]int)}
}

// RecordResolution stores the event
func (m *MockRecorder) RecordResolution(source string, driver string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resolutions = append(m.Resolutions, ResolutionEvent{Source: source, Driver: driver, Err: err})
}

// RecordTLSFileRead counts successful and failed reads per field
func (m *MockRecorder) RecordTLSFileRead(field string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FileReads[field]++
}

// ResolutionCount returns the number of recorded resolutions
func (m *MockRecorder) ResolutionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Resolutions)
}
