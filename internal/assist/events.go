package assist

import (
	"log/slog"
	"sync"

	"github.com/eleven-am/aeye/internal/perception"
	"github.com/eleven-am/aeye/internal/speech"
)

const (
	EventState   = "state"
	EventOverlay = "overlay"
	EventSpeech  = "speech"
)

// Event is one envelope on the assist feed.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type StatePayload struct {
	State LoopState `json:"state"`
}

type OverlayPayload struct {
	Detections []perception.Detection `json:"detections"`
	LatencyMs  float64                `json:"latency_ms"`
}

type SpeechPayload struct {
	Entry speech.LogEntry `json:"entry"`
}

// Feed fans assist events out to websocket subscribers.
type Feed struct {
	logger *slog.Logger

	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewFeed(logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		logger: logger.With("component", "assist-feed"),
		subs:   make(map[chan Event]struct{}),
	}
}

// Subscribe registers a consumer. The returned channel is closed by
// Unsubscribe.
func (f *Feed) Subscribe() chan Event {
	ch := make(chan Event, 64)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

func (f *Feed) Unsubscribe(ch chan Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[ch]; ok {
		delete(f.subs, ch)
		close(ch)
	}
}

// Publish delivers the event to every subscriber. A subscriber with a
// full buffer drops the event rather than blocking the publisher.
func (f *Feed) Publish(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- ev:
		default:
			f.logger.Warn("feed buffer full, dropping event", "type", ev.Type)
		}
	}
}

func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
