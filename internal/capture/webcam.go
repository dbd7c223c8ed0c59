package capture

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

type WebcamConfig struct {
	// URL of a snapshot endpoint returning one JPEG per GET, e.g. the
	// /shot.jpg route of an IP webcam.
	URL     string
	Timeout time.Duration
}

// WebcamSource captures frames from an IP webcam snapshot endpoint.
type WebcamSource struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger

	mu     sync.RWMutex
	active bool
}

func NewWebcamSource(cfg WebcamConfig, logger *slog.Logger) *WebcamSource {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &WebcamSource{
		httpClient: &http.Client{Timeout: timeout},
		url:        cfg.URL,
		logger:     logger.With("component", "webcam"),
	}
}

// Start probes the snapshot endpoint once. A dead camera is a device
// error surfaced to the caller; the source stays inactive.
func (s *WebcamSource) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, "GET", s.url, nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("camera unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("camera returned status %d", resp.StatusCode)
	}

	s.mu.Lock()
	s.active = true
	s.mu.Unlock()

	s.logger.Info("camera started", "url", s.url)
	return nil
}

func (s *WebcamSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		s.active = false
		s.logger.Info("camera stopped")
	}
	return nil
}

func (s *WebcamSource) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *WebcamSource) Capture(ctx context.Context) (*Frame, error) {
	if !s.Active() {
		return nil, fmt.Errorf("camera not active")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create snapshot request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapshot request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("camera returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty snapshot")
	}

	return &Frame{Data: data, Timestamp: time.Now()}, nil
}
