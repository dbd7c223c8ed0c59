package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/aeye/internal/audio"
	"github.com/eleven-am/aeye/internal/dto"
	"github.com/eleven-am/aeye/internal/shared"
	"github.com/eleven-am/aeye/internal/speech"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusRecording  Status = "recording"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Session coordinates microphone capture and live transcription into
// exactly one finalized interaction. At most one recording is active at
// a time; starting a second is a caller error.
type Session struct {
	capture *audio.Capture
	input   *speech.Input
	backend Backend
	logger  *slog.Logger

	mu         sync.Mutex
	status     Status
	sessionID  string
	startedAt  time.Time
	transcript Transcript
	cancelRun  context.CancelFunc
}

func NewSession(capture *audio.Capture, input *speech.Input, backend Backend, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		capture: capture,
		input:   input,
		backend: backend,
		status:  StatusIdle,
		logger:  logger.With("component", "interaction"),
	}
}

// Start opens the microphone, starts the recognizer, and registers a
// session with the backend. A denied microphone aborts with nothing
// left running.
func (s *Session) Start(ctx context.Context) (*Ticket, error) {
	s.mu.Lock()
	if s.status == StatusRecording || s.status == StatusProcessing {
		id := s.sessionID
		s.mu.Unlock()
		return nil, fmt.Errorf("session %s still active: %w", id, shared.ErrConflict)
	}
	s.status = StatusRecording
	s.sessionID = ""
	s.transcript.Reset()
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancelRun = cancel
	s.mu.Unlock()

	if err := s.capture.Start(runCtx); err != nil {
		s.finish(StatusIdle)
		return nil, fmt.Errorf("microphone: %w", err)
	}

	if err := s.input.Start(runCtx, s.transcript.Apply); err != nil {
		if stopErr := s.capture.Stop(); stopErr != nil {
			s.logger.Warn("capture stop failed", "error", stopErr)
		}
		s.finish(StatusIdle)
		return nil, fmt.Errorf("recognizer: %w", err)
	}
	s.capture.SetSink(s.input.SendAudio)

	ticket, err := s.backend.StartSession(ctx)
	if err != nil {
		s.release()
		s.finish(StatusIdle)
		return nil, fmt.Errorf("open backend session: %w", err)
	}

	s.mu.Lock()
	s.sessionID = ticket.SessionID
	s.startedAt = ticket.StartedAt
	s.mu.Unlock()

	s.logger.Info("recording started", "session_id", ticket.SessionID)
	return ticket, nil
}

// Stop finalizes the recording: recognizer down first, transcript
// snapshot, final audio flush, then the backend submit. Resources are
// released before the submit, so a backend failure still leaves the
// microphone and recognizer free.
func (s *Session) Stop(ctx context.Context, faceImage string, saveAudio bool) (*dto.InteractionResultResponse, error) {
	s.mu.Lock()
	if s.status != StatusRecording {
		s.mu.Unlock()
		return nil, fmt.Errorf("no active recording: %w", shared.ErrConflict)
	}
	s.status = StatusProcessing
	sessionID := s.sessionID
	s.mu.Unlock()

	// Restart handler off before the engine stops, so shutdown never
	// races a restart.
	s.input.Detach()
	if err := s.input.Stop(); err != nil {
		s.logger.Debug("recognizer stop", "error", err)
	}

	transcript := s.transcript.Snapshot()

	s.capture.SetSink(nil)
	if err := s.capture.Stop(); err != nil {
		s.logger.Warn("capture stop failed", "error", err)
	}
	blob := s.capture.Blob()

	result, err := s.backend.StopSession(ctx, StopParams{
		SessionID:  sessionID,
		Audio:      blob,
		FaceImage:  faceImage,
		SaveAudio:  saveAudio,
		Transcript: transcript,
	})
	if err != nil {
		s.finish(StatusIdle)
		return nil, fmt.Errorf("finalize interaction: %w", err)
	}

	s.finish(StatusCompleted)
	s.logger.Info("recording stored",
		"session_id", sessionID,
		"person_id", result.PersonID,
		"new_person", result.IsNewPerson)
	return result, nil
}

// Cancel tears everything down without submitting. It always succeeds;
// cancelling when nothing is recording is a no-op.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.status != StatusRecording {
		s.mu.Unlock()
		return
	}
	s.status = StatusProcessing
	sessionID := s.sessionID
	s.mu.Unlock()

	s.release()
	s.finish(StatusCancelled)
	s.logger.Info("recording cancelled", "session_id", sessionID)
}

func (s *Session) release() {
	s.input.Detach()
	if err := s.input.Stop(); err != nil {
		s.logger.Debug("recognizer stop", "error", err)
	}
	s.capture.SetSink(nil)
	if err := s.capture.Stop(); err != nil {
		s.logger.Warn("capture stop failed", "error", err)
	}
}

func (s *Session) finish(status Status) {
	s.mu.Lock()
	if s.cancelRun != nil {
		s.cancelRun()
		s.cancelRun = nil
	}
	s.status = status
	s.mu.Unlock()
}

// Snapshot is the point-in-time session view the status endpoint
// serves.
type Snapshot struct {
	Status     Status
	SessionID  string
	Transcript string
	Duration   time.Duration
	Listening  bool
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	status := s.status
	sessionID := s.sessionID
	s.mu.Unlock()

	return Snapshot{
		Status:     status,
		SessionID:  sessionID,
		Transcript: s.transcript.Live(),
		Duration:   s.capture.Duration(),
		Listening:  s.input.Listening(),
	}
}

func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusRecording
}
