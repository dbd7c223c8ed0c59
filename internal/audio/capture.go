package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Capture accumulates recorder chunks for a single recording session
// and assembles them into one WAV blob.
type Capture struct {
	recorder Recorder
	logger   *slog.Logger

	mu      sync.Mutex
	chunks  [][]byte
	sink    func(pcm []byte)
	running bool
}

func NewCapture(recorder Recorder, logger *slog.Logger) *Capture {
	if logger == nil {
		logger = slog.Default()
	}
	return &Capture{
		recorder: recorder,
		logger:   logger.With("component", "capture"),
	}
}

// SetSink forwards every captured chunk to fn as it arrives, in
// addition to accumulating it for the blob.
func (c *Capture) SetSink(fn func(pcm []byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = fn
}

func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("capture already running")
	}
	c.running = true
	c.chunks = nil
	c.mu.Unlock()

	if err := c.recorder.Start(ctx, c.ingest); err != nil {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		return fmt.Errorf("start recorder: %w", err)
	}
	return nil
}

func (c *Capture) ingest(pcm []byte) {
	chunk := make([]byte, len(pcm))
	copy(chunk, pcm)

	c.mu.Lock()
	c.chunks = append(c.chunks, chunk)
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		sink(chunk)
	}
}

// Stop flushes the final chunk and releases the device. Repeated calls
// are no-ops, so every teardown path can call it safely.
func (c *Capture) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	c.mu.Unlock()

	if err := c.recorder.Stop(); err != nil {
		return fmt.Errorf("stop recorder: %w", err)
	}
	return nil
}

func (c *Capture) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Blob returns the captured audio as a WAV container, or nil when no
// audio was captured.
func (c *Capture) Blob() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, chunk := range c.chunks {
		total += len(chunk)
	}
	if total == 0 {
		return nil
	}

	pcm := make([]byte, 0, total)
	for _, chunk := range c.chunks {
		pcm = append(pcm, chunk...)
	}
	return WAVFromPCM(pcm, c.recorder.SampleRate())
}

// Duration reports the length of the captured audio.
func (c *Capture) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	bytes := 0
	for _, chunk := range c.chunks {
		bytes += len(chunk)
	}
	samples := bytes / 2
	return time.Duration(samples) * time.Second / time.Duration(c.recorder.SampleRate())
}
