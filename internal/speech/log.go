package speech

import (
	"sync"
	"time"
)

const maxLogEntries = 50

type LogEntry struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Log is the rolling record of spoken utterances, bounded to the most
// recent 50 entries.
type Log struct {
	mu      sync.RWMutex
	seq     int64
	entries []LogEntry
}

func NewLog() *Log {
	return &Log{entries: make([]LogEntry, 0, maxLogEntries)}
}

func (l *Log) Append(text string) LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := LogEntry{
		ID:        l.seq,
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	l.entries = append(l.entries, entry)
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
	return entry
}

// Entries returns a snapshot copy, oldest first.
func (l *Log) Entries() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}
