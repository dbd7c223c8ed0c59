package assist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/aeye/internal/capture"
	"github.com/eleven-am/aeye/internal/perception"
	"github.com/eleven-am/aeye/internal/speech"
)

const (
	defaultCaptureRetry = 500 * time.Millisecond
	defaultPacing       = 100 * time.Millisecond

	fallbackNarrative = "Sorry, I couldn't read the scene just now."
)

type LoopConfig struct {
	// CaptureRetry is the wait before retrying a failed frame capture.
	CaptureRetry time.Duration
	// Pacing is the delay between iterations, keeping the perception
	// service from being hammered back to back.
	Pacing time.Duration
}

func (c LoopConfig) normalized() LoopConfig {
	if c.CaptureRetry <= 0 {
		c.CaptureRetry = defaultCaptureRetry
	}
	if c.Pacing <= 0 {
		c.Pacing = defaultPacing
	}
	return c
}

// Loop drives the blocking narrate cycle: capture a frame, analyze it,
// speak the narrative to completion, then capture again. Exactly one
// cycle is in flight at a time, so the loop never narrates over itself
// and never drifts ahead of what it has already said.
type Loop struct {
	source     capture.Source
	perception perception.Service
	output     *speech.Output
	display    *DisplayState
	cfg        LoopConfig
	logger     *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewLoop(source capture.Source, svc perception.Service, output *speech.Output, display *DisplayState, cfg LoopConfig, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		source:     source,
		perception: svc,
		output:     output,
		display:    display,
		cfg:        cfg.normalized(),
		logger:     logger.With("component", "assist-loop"),
	}
}

// Start begins the cycle. Starting an already running loop is a no-op.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = true
	l.mu.Unlock()

	if !l.source.Active() {
		if err := l.source.Start(ctx); err != nil {
			l.mu.Lock()
			l.running = false
			l.mu.Unlock()
			return fmt.Errorf("start frame source: %w", err)
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	l.cancel = cancel
	l.mu.Unlock()

	l.display.SetState(StateCapturing)
	l.wg.Add(1)
	go l.run(runCtx)

	l.logger.Info("live assist started")
	return nil
}

// Stop halts the loop and any in-progress speech immediately. A
// perception call in flight is left to finish; its result is discarded.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	l.output.Stop()
	cancel()
	l.wg.Wait()

	l.display.SetState(StateIdle)
	l.output.Log().Reset()
	l.logger.Info("live assist stopped")
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) run(ctx context.Context) {
	defer l.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !l.source.Active() {
			l.selfHalt()
			return
		}

		l.display.SetState(StateCapturing)
		frame, err := l.source.Capture(ctx)
		if err != nil {
			// Retry the same iteration rather than advancing.
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.cfg.CaptureRetry):
			}
			continue
		}

		l.display.SetState(StateThinking)
		result, err := l.perception.LiveNarrate(ctx, frame.DataURL())
		if ctx.Err() != nil {
			return
		}

		var narrative string
		if err != nil {
			l.logger.Warn("narrate failed, using fallback", "error", err)
			narrative = fallbackNarrative
		} else {
			l.display.SetOverlay(result.Detections, result.TimingMs)
			narrative = result.Narrative
		}

		if narrative != "" && !l.output.Muted() {
			l.display.SetState(StateSpeaking)
			l.output.SpeakAndWait(ctx, narrative)
			if ctx.Err() != nil {
				return
			}
		}

		l.display.SetState(StateDone)
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.cfg.Pacing):
		}
	}
}

// selfHalt ends the loop when the frame source went away underneath it.
func (l *Loop) selfHalt() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	l.cancel = nil
	l.mu.Unlock()

	l.logger.Warn("frame source inactive, live assist halting")
	l.display.SetState(StateIdle)
	l.output.Log().Reset()
}
