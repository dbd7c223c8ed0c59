package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	defaultSampleRate    = 16000
	defaultChunkDuration = time.Second
)

// Recorder captures raw PCM audio from an input device.
type Recorder interface {
	// Start begins delivering chunks of 16-bit LE PCM to onChunk. The
	// callback owns each chunk slice.
	Start(ctx context.Context, onChunk func(pcm []byte)) error
	// Stop flushes any buffered audio through the callback, then
	// releases the device.
	Stop() error
	// SampleRate reports the delivery sample rate in Hz.
	SampleRate() int
}

// RecorderConfig configures the bundled device recorder.
type RecorderConfig struct {
	// Source is a path to a raw 16-bit LE PCM stream, such as an ALSA
	// loopback file or a FIFO. Empty produces generated silence.
	Source string
	// SourceRate is the sample rate of the source stream. Audio is
	// resampled when it differs from SampleRate.
	SourceRate    int
	SampleRate    int
	ChunkDuration time.Duration
}

// DeviceRecorder reads a raw PCM source on a fixed chunk cadence. With
// no source configured it emits silence, which keeps the rest of the
// recording pipeline exercisable on machines without a microphone.
type DeviceRecorder struct {
	cfg    RecorderConfig
	logger *slog.Logger

	mu      sync.Mutex
	file    *os.File
	stop    chan struct{}
	done    chan struct{}
	started bool
}

func NewDeviceRecorder(cfg RecorderConfig, logger *slog.Logger) *DeviceRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.SourceRate <= 0 {
		cfg.SourceRate = cfg.SampleRate
	}
	if cfg.ChunkDuration <= 0 {
		cfg.ChunkDuration = defaultChunkDuration
	}
	return &DeviceRecorder{
		cfg:    cfg,
		logger: logger.With("component", "recorder"),
	}
}

func (r *DeviceRecorder) SampleRate() int {
	return r.cfg.SampleRate
}

func (r *DeviceRecorder) Start(ctx context.Context, onChunk func(pcm []byte)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return fmt.Errorf("recorder already started")
	}

	var file *os.File
	if r.cfg.Source != "" {
		f, err := os.Open(r.cfg.Source)
		if err != nil {
			return fmt.Errorf("open audio source: %w", err)
		}
		file = f
	}

	r.file = file
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.started = true

	go r.run(file, onChunk, r.stop, r.done)

	r.logger.Debug("recorder started", "source", r.cfg.Source, "sample_rate", r.cfg.SampleRate)
	return nil
}

func (r *DeviceRecorder) run(file *os.File, onChunk func([]byte), stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.cfg.ChunkDuration)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			if partial := r.readChunk(file, time.Since(last)); len(partial) > 0 {
				onChunk(partial)
			}
			return
		case <-ticker.C:
			if chunk := r.readChunk(file, r.cfg.ChunkDuration); len(chunk) > 0 {
				onChunk(chunk)
			}
			last = time.Now()
		}
	}
}

func (r *DeviceRecorder) readChunk(file *os.File, d time.Duration) []byte {
	if d <= 0 {
		return nil
	}
	if d > r.cfg.ChunkDuration {
		d = r.cfg.ChunkDuration
	}

	samples := int(float64(r.cfg.SourceRate) * d.Seconds())
	if samples == 0 {
		return nil
	}

	// A drained or short-read source leaves zeroed samples behind,
	// matching a quiet microphone.
	buf := make([]byte, samples*2)
	if file != nil {
		_, _ = io.ReadFull(file, buf)
	}

	if r.cfg.SourceRate != r.cfg.SampleRate {
		return Int16ToPCMBytes(ResampleInt16(PCMBytesToInt16(buf), r.cfg.SourceRate, r.cfg.SampleRate))
	}
	return buf
}

func (r *DeviceRecorder) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = false
	stop, done := r.stop, r.done
	file := r.file
	r.file = nil
	r.mu.Unlock()

	close(stop)
	<-done

	if file != nil {
		if err := file.Close(); err != nil {
			return fmt.Errorf("close audio source: %w", err)
		}
	}
	return nil
}
