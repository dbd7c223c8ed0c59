package interaction

import (
	"strings"
	"sync"

	"github.com/eleven-am/aeye/internal/speech"
)

// Transcript reconciles recognizer fragments into one live string.
// Final fragments accumulate in arrival order; the newest interim
// fragment rides on top until the recognizer finalizes or replaces it.
type Transcript struct {
	mu      sync.Mutex
	final   strings.Builder
	interim string
}

func (t *Transcript) Apply(ev speech.TranscriptEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ev.IsPartial {
		t.interim = ev.Text
		return
	}
	t.final.WriteString(ev.Text)
	t.interim = ""
}

// Live is the accumulated final text plus the current interim fragment.
func (t *Transcript) Live() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.final.String() + t.interim
}

// Snapshot is the trimmed live transcript, falling back to the raw
// accumulator when trimming leaves nothing.
func (t *Transcript) Snapshot() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if live := strings.TrimSpace(t.final.String() + t.interim); live != "" {
		return live
	}
	return t.final.String()
}

func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.final.Reset()
	t.interim = ""
}
