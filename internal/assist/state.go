package assist

import (
	"sync"

	"github.com/eleven-am/aeye/internal/perception"
)

// LoopState is the live assist loop's current phase.
type LoopState string

const (
	StateIdle      LoopState = "idle"
	StateCapturing LoopState = "capturing"
	StateThinking  LoopState = "thinking"
	StateSpeaking  LoopState = "speaking"
	StateDone      LoopState = "done"
)

// DisplayState is the shared read-model UI consumers poll: the loop
// phase plus the current overlay detections and their perception
// latency. Overlay writes replace the detection list wholesale, so a
// reader never observes a partial update.
type DisplayState struct {
	feed *Feed

	mu         sync.RWMutex
	state      LoopState
	detections []perception.Detection
	latencyMs  float64
}

func NewDisplayState(feed *Feed) *DisplayState {
	return &DisplayState{feed: feed, state: StateIdle}
}

func (d *DisplayState) SetState(state LoopState) {
	d.mu.Lock()
	changed := d.state != state
	d.state = state
	d.mu.Unlock()

	if changed && d.feed != nil {
		d.feed.Publish(Event{Type: EventState, Payload: StatePayload{State: state}})
	}
}

func (d *DisplayState) State() LoopState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

func (d *DisplayState) SetOverlay(detections []perception.Detection, latencyMs float64) {
	if detections == nil {
		detections = []perception.Detection{}
	}

	d.mu.Lock()
	d.detections = detections
	d.latencyMs = latencyMs
	d.mu.Unlock()

	if d.feed != nil {
		d.feed.Publish(Event{Type: EventOverlay, Payload: OverlayPayload{
			Detections: detections,
			LatencyMs:  latencyMs,
		}})
	}
}

// Overlay returns a copy of the current detection list and the last
// perception latency.
func (d *DisplayState) Overlay() ([]perception.Detection, float64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]perception.Detection(nil), d.detections...), d.latencyMs
}
