package speech

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/aeye/internal/shared"
)

// Input supervises a SpeechToText engine. Recognizers self-terminate
// after a pause; while attached, Input restarts the engine so the
// stream keeps flowing. Detach disables the restart handler before the
// engine is told to stop, so shutdown never races a restart.
type Input struct {
	engine  SpeechToText
	backoff shared.BackoffConfig
	logger  *slog.Logger

	mu         sync.Mutex
	attached   bool
	running    bool
	onFragment func(TranscriptEvent)
}

func NewInput(engine SpeechToText, backoff shared.BackoffConfig, logger *slog.Logger) *Input {
	if logger == nil {
		logger = slog.Default()
	}
	return &Input{
		engine:  engine,
		backoff: backoff.Normalized(),
		logger:  logger.With("component", "speech-input"),
	}
}

func (i *Input) Start(ctx context.Context, onFragment func(TranscriptEvent)) error {
	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return fmt.Errorf("already listening")
	}
	i.attached = true
	i.running = true
	i.onFragment = onFragment
	i.mu.Unlock()

	if err := i.startEngine(ctx); err != nil {
		i.mu.Lock()
		i.attached = false
		i.running = false
		i.onFragment = nil
		i.mu.Unlock()
		return fmt.Errorf("start recognizer: %w", err)
	}
	return nil
}

func (i *Input) startEngine(ctx context.Context) error {
	cb := RecognizerCallbacks{
		OnTranscript: func(ev TranscriptEvent) {
			i.mu.Lock()
			fn := i.onFragment
			i.mu.Unlock()
			if fn != nil {
				fn(ev)
			}
		},
		OnEnd: func(err error) {
			if err != nil {
				i.logger.Warn("recognizer ended", "error", err)
			}
			i.mu.Lock()
			attached := i.attached
			if !attached {
				i.running = false
			}
			i.mu.Unlock()

			if attached {
				go i.restartLoop(ctx)
			}
		},
	}
	return i.engine.Start(ctx, cb)
}

func (i *Input) restartLoop(ctx context.Context) {
	delay := i.backoff.Initial

	for attempt := 0; attempt < i.backoff.MaxAttempts; attempt++ {
		i.mu.Lock()
		attached := i.attached
		i.mu.Unlock()
		if !attached {
			return
		}

		if err := i.startEngine(ctx); err != nil {
			i.logger.Warn("recognizer restart failed",
				"attempt", attempt+1,
				"max_attempts", i.backoff.MaxAttempts,
				"error", err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay = minDuration(delay*2, i.backoff.MaxDelay)
			continue
		}

		i.logger.Debug("recognizer restarted", "attempts", attempt+1)
		return
	}

	i.logger.Error("recognizer restart gave up", "attempts", i.backoff.MaxAttempts)
	i.mu.Lock()
	i.running = false
	i.mu.Unlock()
}

// SendAudio forwards captured PCM to the engine. Errors are the
// recognizer's problem, not the session's.
func (i *Input) SendAudio(pcm []byte) {
	if err := i.engine.SendAudio(pcm); err != nil {
		i.logger.Debug("recognizer rejected audio", "error", err)
	}
}

// Detach disables auto-restart without touching the engine.
func (i *Input) Detach() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.attached = false
}

// Stop detaches first, then stops the engine.
func (i *Input) Stop() error {
	i.mu.Lock()
	i.attached = false
	i.running = false
	i.onFragment = nil
	i.mu.Unlock()
	return i.engine.Stop()
}

func (i *Input) Listening() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
