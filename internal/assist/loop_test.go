package assist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/eleven-am/aeye/internal/capture"
	"github.com/eleven-am/aeye/internal/perception"
	"github.com/eleven-am/aeye/internal/speech"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

type fakeSource struct {
	mu       sync.Mutex
	active   bool
	startErr error
	capErr   error
	captures int
}

func (f *fakeSource) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.active = true
	return nil
}

func (f *fakeSource) Stop() error {
	f.mu.Lock()
	f.active = false
	f.mu.Unlock()
	return nil
}

func (f *fakeSource) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *fakeSource) Capture(ctx context.Context) (*capture.Frame, error) {
	f.mu.Lock()
	f.captures++
	err := f.capErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &capture.Frame{Data: []byte("jpeg"), Timestamp: time.Now()}, nil
}

func (f *fakeSource) captureCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.captures
}

func (f *fakeSource) deactivate() {
	f.mu.Lock()
	f.active = false
	f.mu.Unlock()
}

type fakePerception struct {
	mu sync.Mutex

	narrateResult *perception.NarrateResult
	narrateErr    error
	narrateOnce   bool
	narrateBlock  chan struct{}
	narrates      int
	narrateMax    int
	narrateBusy   int

	detectResult *perception.DetectResult
	detectErr    error
	detectBlock  chan struct{}
	detects      int
	detectMax    int
	detectBusy   int

	ocrText     string
	ocrErr      error
	describeDet *perception.DescribeDetailedResult
	describeErr error
}

func (f *fakePerception) LiveNarrate(ctx context.Context, image string) (*perception.NarrateResult, error) {
	f.mu.Lock()
	f.narrates++
	n := f.narrates
	f.narrateBusy++
	if f.narrateBusy > f.narrateMax {
		f.narrateMax = f.narrateBusy
	}
	block := f.narrateBlock
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			f.narrateExit()
			return nil, ctx.Err()
		}
	}
	f.narrateExit()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.narrateErr != nil {
		return nil, f.narrateErr
	}
	res := *f.narrateResult
	if f.narrateOnce && n > 1 {
		res.Narrative = ""
	}
	return &res, nil
}

func (f *fakePerception) narrateExit() {
	f.mu.Lock()
	f.narrateBusy--
	f.mu.Unlock()
}

func (f *fakePerception) Detect(ctx context.Context, image string, ts time.Time) (*perception.DetectResult, error) {
	f.mu.Lock()
	f.detects++
	f.detectBusy++
	if f.detectBusy > f.detectMax {
		f.detectMax = f.detectBusy
	}
	block := f.detectBlock
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			f.detectExit()
			return nil, ctx.Err()
		}
	}
	f.detectExit()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detectErr != nil {
		return nil, f.detectErr
	}
	res := *f.detectResult
	return &res, nil
}

func (f *fakePerception) detectExit() {
	f.mu.Lock()
	f.detectBusy--
	f.mu.Unlock()
}

func (f *fakePerception) OCR(ctx context.Context, image string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ocrText, f.ocrErr
}

func (f *fakePerception) Describe(ctx context.Context, image string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.describeErr != nil {
		return "", f.describeErr
	}
	return f.describeDet.Description, nil
}

func (f *fakePerception) DescribeDetailed(ctx context.Context, image string) (*perception.DescribeDetailedResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	res := *f.describeDet
	return &res, nil
}

func (f *fakePerception) IsAvailable(ctx context.Context) bool { return true }

func (f *fakePerception) narrateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.narrates
}

func (f *fakePerception) narrateMaxBusy() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.narrateMax
}

func (f *fakePerception) detectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detects
}

func (f *fakePerception) detectMaxBusy() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detectMax
}

type fakeTTS struct {
	mu      sync.Mutex
	spoken  []string
	block   bool
	cancels int
}

func (f *fakeTTS) Synthesize(ctx context.Context, utt speech.Utterance, cb speech.SynthCallbacks) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, utt.Text)
	block := f.block
	f.mu.Unlock()

	if block {
		select {
		case <-utt.Cancel:
			f.mu.Lock()
			f.cancels++
			f.mu.Unlock()
			cb.OnError(errors.New("playback interrupted"))
			return nil
		case <-ctx.Done():
			cb.OnError(ctx.Err())
			return nil
		}
	}

	cb.OnDone()
	return nil
}

func (f *fakeTTS) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeTTS) spokenTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...)
}

func (f *fakeTTS) cancelCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancels
}

func newTestLoop(src *fakeSource, p *fakePerception, tts *fakeTTS, feed *Feed) (*Loop, *DisplayState, *speech.Output) {
	display := NewDisplayState(feed)
	output := speech.NewOutput(tts, "", testLogger())
	cfg := LoopConfig{CaptureRetry: 10 * time.Millisecond, Pacing: 5 * time.Millisecond}
	loop := NewLoop(src, p, output, display, cfg, testLogger())
	return loop, display, output
}

func recordStates(feed *Feed) (func() []LoopState, func()) {
	ch := feed.Subscribe()
	var mu sync.Mutex
	var states []LoopState
	done := make(chan struct{})

	go func() {
		defer close(done)
		for ev := range ch {
			if ev.Type != EventState {
				continue
			}
			if p, ok := ev.Payload.(StatePayload); ok {
				mu.Lock()
				states = append(states, p.State)
				mu.Unlock()
			}
		}
	}()

	get := func() []LoopState {
		mu.Lock()
		defer mu.Unlock()
		return append([]LoopState(nil), states...)
	}
	stop := func() {
		feed.Unsubscribe(ch)
		<-done
	}
	return get, stop
}

func TestLoop_PersonAheadScenario(t *testing.T) {
	src := &fakeSource{}
	p := &fakePerception{
		narrateResult: &perception.NarrateResult{
			Narrative: "Person ahead",
			Detections: []perception.Detection{{
				Label:      "person",
				Confidence: 0.9,
				BBox:       perception.BBox{X1: 0.4, Y1: 0.1, X2: 0.6, Y2: 0.9},
			}},
			TimingMs: 120,
		},
		narrateOnce: true,
	}
	tts := &fakeTTS{}
	feed := NewFeed(testLogger())
	getStates, stopRecording := recordStates(feed)
	loop, display, output := newTestLoop(src, p, tts, feed)

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	waitFor(t, 2*time.Second, func() bool {
		return output.Log().Len() == 1 && p.narrateCount() >= 2
	})

	entries := output.Log().Entries()
	if len(entries) != 1 || entries[0].Text != "Person ahead" {
		t.Fatalf("expected single 'Person ahead' log entry, got %+v", entries)
	}

	detections, latency := display.Overlay()
	if len(detections) != 1 || detections[0].Label != "person" {
		t.Fatalf("expected person detection in overlay, got %+v", detections)
	}
	if detections[0].BBox.X1 != 0.4 || detections[0].BBox.Y2 != 0.9 {
		t.Errorf("unexpected bbox: %+v", detections[0].BBox)
	}
	if latency != 120 {
		t.Errorf("expected latency 120, got %v", latency)
	}

	loop.Stop()
	stopRecording()

	states := getStates()
	want := []LoopState{StateCapturing, StateThinking, StateSpeaking, StateDone}
	if len(states) < len(want) {
		t.Fatalf("expected at least %d state transitions, got %v", len(want), states)
	}
	for i, s := range want {
		if states[i] != s {
			t.Fatalf("expected state sequence %v, got %v", want, states[:len(want)])
		}
	}

	if output.Log().Len() != 0 {
		t.Error("expected speech log reset after Stop")
	}
	if display.State() != StateIdle {
		t.Errorf("expected idle after Stop, got %s", display.State())
	}
}

func TestLoop_StartIdempotent(t *testing.T) {
	src := &fakeSource{}
	p := &fakePerception{narrateResult: &perception.NarrateResult{}}
	loop, _, _ := newTestLoop(src, p, &fakeTTS{}, nil)

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("second Start should be a no-op, got %v", err)
	}
	defer loop.Stop()

	waitFor(t, time.Second, func() bool { return p.narrateCount() >= 3 })
	if got := p.narrateMaxBusy(); got != 1 {
		t.Errorf("expected at most one narrate in flight, got %d", got)
	}
}

func TestLoop_NoConcurrentNarrates(t *testing.T) {
	src := &fakeSource{}
	p := &fakePerception{narrateResult: &perception.NarrateResult{Narrative: "ahead"}}
	loop, _, _ := newTestLoop(src, p, &fakeTTS{}, nil)

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return p.narrateCount() >= 5 })
	loop.Stop()

	if got := p.narrateMaxBusy(); got != 1 {
		t.Errorf("expected at most one narrate in flight, got %d", got)
	}
}

func TestLoop_StopHaltsSpeechImmediately(t *testing.T) {
	src := &fakeSource{}
	p := &fakePerception{narrateResult: &perception.NarrateResult{Narrative: "a long sentence"}}
	tts := &fakeTTS{block: true}
	loop, display, output := newTestLoop(src, p, tts, nil)

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return output.IsSpeaking() })

	start := time.Now()
	loop.Stop()
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Stop should halt speech immediately, took %v", elapsed)
	}

	if got := tts.cancelCount(); got < 1 {
		t.Error("expected the in-progress utterance to be cancelled")
	}
	if loop.Running() {
		t.Error("expected loop stopped")
	}
	if display.State() != StateIdle {
		t.Errorf("expected idle state, got %s", display.State())
	}
	if output.Log().Len() != 0 {
		t.Error("expected speech log reset on stop")
	}
}

func TestLoop_PerceptionFailureSpeaksFallbackAndContinues(t *testing.T) {
	src := &fakeSource{}
	p := &fakePerception{narrateErr: errors.New("service down")}
	tts := &fakeTTS{}
	loop, display, output := newTestLoop(src, p, tts, nil)

	display.SetOverlay([]perception.Detection{{Label: "chair"}}, 10)

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return output.Log().Len() >= 2 })
	loop.Stop()

	for _, text := range tts.spokenTexts() {
		if text != fallbackNarrative {
			t.Errorf("expected fallback narrative, got %q", text)
		}
	}

	detections, _ := display.Overlay()
	if len(detections) != 1 || detections[0].Label != "chair" {
		t.Errorf("expected overlay untouched on narrate failure, got %+v", detections)
	}
}

func TestLoop_CaptureFailureRetries(t *testing.T) {
	src := &fakeSource{capErr: errors.New("no frame")}
	p := &fakePerception{narrateResult: &perception.NarrateResult{}}
	loop, display, _ := newTestLoop(src, p, &fakeTTS{}, nil)

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return src.captureCount() >= 3 })

	if got := p.narrateCount(); got != 0 {
		t.Errorf("expected no narrate calls while capture fails, got %d", got)
	}
	if display.State() != StateCapturing {
		t.Errorf("expected capturing state during retries, got %s", display.State())
	}

	loop.Stop()
}

func TestLoop_DiscardsResultAfterStop(t *testing.T) {
	src := &fakeSource{}
	p := &fakePerception{
		narrateResult: &perception.NarrateResult{Narrative: "too late"},
		narrateBlock:  make(chan struct{}),
	}
	tts := &fakeTTS{}
	loop, display, _ := newTestLoop(src, p, tts, nil)

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return p.narrateCount() == 1 })

	loop.Stop()

	if got := tts.spokenTexts(); len(got) != 0 {
		t.Errorf("expected discarded result never spoken, got %v", got)
	}
	detections, _ := display.Overlay()
	if len(detections) != 0 {
		t.Errorf("expected overlay untouched by discarded result, got %+v", detections)
	}
}

func TestLoop_MutedSkipsSpeaking(t *testing.T) {
	src := &fakeSource{}
	p := &fakePerception{narrateResult: &perception.NarrateResult{Narrative: "ahead"}}
	tts := &fakeTTS{}
	feed := NewFeed(testLogger())
	getStates, stopRecording := recordStates(feed)
	loop, _, output := newTestLoop(src, p, tts, feed)

	output.Mute()

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return p.narrateCount() >= 3 })
	loop.Stop()
	stopRecording()

	if got := tts.spokenTexts(); len(got) != 0 {
		t.Errorf("expected nothing spoken while muted, got %v", got)
	}
	for _, s := range getStates() {
		if s == StateSpeaking {
			t.Error("loop must not enter speaking state while muted")
		}
	}
}

func TestLoop_SelfHaltsWhenSourceDies(t *testing.T) {
	src := &fakeSource{}
	p := &fakePerception{narrateResult: &perception.NarrateResult{}}
	loop, display, _ := newTestLoop(src, p, &fakeTTS{}, nil)

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, time.Second, func() bool { return p.narrateCount() >= 1 })

	src.deactivate()
	waitFor(t, 2*time.Second, func() bool { return !loop.Running() })

	if display.State() != StateIdle {
		t.Errorf("expected idle after self halt, got %s", display.State())
	}
}

func TestLoop_StartFailsWhenCameraUnavailable(t *testing.T) {
	src := &fakeSource{startErr: errors.New("denied")}
	p := &fakePerception{narrateResult: &perception.NarrateResult{}}
	loop, display, _ := newTestLoop(src, p, &fakeTTS{}, nil)

	if err := loop.Start(context.Background()); err == nil {
		t.Fatal("expected Start to surface camera error")
	}
	if loop.Running() {
		t.Error("expected loop not running after failed Start")
	}
	if display.State() != StateIdle {
		t.Errorf("expected idle state, got %s", display.State())
	}
}
