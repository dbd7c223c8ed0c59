package speech

import (
	"context"
	"log/slog"
	"sync"
)

// Output sequences speech through a TextToSpeech engine. Starting a
// new utterance supersedes the previous one and still releases its
// waiter; SpeakAndWait returns exactly once per call.
type Output struct {
	tts    TextToSpeech
	voice  string
	logger *slog.Logger
	log    *Log

	mu       sync.Mutex
	muted    bool
	gen      uint64
	inFlight bool
	cancel   context.CancelFunc
	onStart  func(LogEntry)
	onEnd    func()
}

func NewOutput(tts TextToSpeech, voice string, logger *slog.Logger) *Output {
	if logger == nil {
		logger = slog.Default()
	}
	return &Output{
		tts:    tts,
		voice:  voice,
		logger: logger.With("component", "speech-output"),
		log:    NewLog(),
	}
}

func (o *Output) SetCallbacks(onStart func(LogEntry), onEnd func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onStart = onStart
	o.onEnd = onEnd
}

func (o *Output) Log() *Log {
	return o.log
}

// Speak is fire-and-forget.
func (o *Output) Speak(text string) {
	o.begin(context.Background(), text)
}

// SpeakAndWait blocks until the utterance completes, errors, or is
// superseded by newer speech. Engine errors are logged here; the
// caller is always released.
func (o *Output) SpeakAndWait(ctx context.Context, text string) {
	done, uttCtx := o.begin(ctx, text)
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-uttCtx.Done():
	}
}

func (o *Output) begin(ctx context.Context, text string) (chan struct{}, context.Context) {
	if text == "" {
		return nil, nil
	}

	o.mu.Lock()
	if o.muted {
		o.mu.Unlock()
		return nil, nil
	}
	if o.inFlight && o.cancel != nil {
		o.cancel()
	}
	uttCtx, cancel := context.WithCancel(ctx)
	o.gen++
	myGen := o.gen
	o.cancel = cancel
	o.inFlight = true
	onStart := o.onStart
	o.mu.Unlock()

	entry := o.log.Append(text)
	if onStart != nil {
		onStart(entry)
	}

	done := make(chan struct{})
	var once sync.Once
	finish := func() {
		once.Do(func() {
			o.mu.Lock()
			current := o.gen == myGen
			if current {
				o.inFlight = false
				o.cancel = nil
			}
			onEnd := o.onEnd
			o.mu.Unlock()

			cancel()
			close(done)
			if current && onEnd != nil {
				onEnd()
			}
		})
	}

	utt := Utterance{Text: text, Voice: o.voice, Cancel: uttCtx.Done()}
	cb := SynthCallbacks{
		OnDone: finish,
		OnError: func(err error) {
			o.logger.Error("speech engine error", "error", err)
			finish()
		},
	}

	go func() {
		if err := o.tts.Synthesize(uttCtx, utt, cb); err != nil {
			o.logger.Error("speech synthesis failed", "error", err)
			finish()
		}
	}()

	return done, uttCtx
}

// Stop halts any in-progress utterance immediately.
func (o *Output) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.inFlight = false
}

// Mute silences future speech and halts the current utterance.
func (o *Output) Mute() {
	o.mu.Lock()
	o.muted = true
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.inFlight = false
	o.mu.Unlock()
}

func (o *Output) Unmute() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.muted = false
}

func (o *Output) Muted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.muted
}

func (o *Output) IsSpeaking() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}
