package capture

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// StaticSource serves a fixed frame. Used to compose the loops against
// a camera-free environment.
type StaticSource struct {
	mu     sync.RWMutex
	data   []byte
	active bool
}

func NewStaticSource(data []byte) *StaticSource {
	return &StaticSource{data: data}
}

func (s *StaticSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	return nil
}

func (s *StaticSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	return nil
}

func (s *StaticSource) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *StaticSource) Capture(ctx context.Context) (*Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		return nil, fmt.Errorf("source not active")
	}
	if len(s.data) == 0 {
		return nil, fmt.Errorf("no frame data")
	}
	data := make([]byte, len(s.data))
	copy(data, s.data)
	return &Frame{Data: data, Timestamp: time.Now()}, nil
}
