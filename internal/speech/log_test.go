package speech

import (
	"testing"
	"time"
)

func TestLog_Append(t *testing.T) {
	log := NewLog()

	entry := log.Append("hello")
	if entry.ID != 1 {
		t.Errorf("expected ID 1, got %d", entry.ID)
	}
	if entry.Text != "hello" {
		t.Errorf("expected text 'hello', got %s", entry.Text)
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("timestamp not RFC3339: %v", err)
	}
	if log.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", log.Len())
	}
}

func TestLog_BoundedAtFifty(t *testing.T) {
	log := NewLog()

	for i := 0; i < 52; i++ {
		log.Append("utterance")
	}

	if log.Len() != 50 {
		t.Fatalf("expected log to stabilize at 50 entries, got %d", log.Len())
	}

	entries := log.Entries()
	if entries[0].ID != 3 {
		t.Errorf("expected oldest surviving entry to be ID 3, got %d", entries[0].ID)
	}
	if entries[len(entries)-1].ID != 52 {
		t.Errorf("expected newest entry to be ID 52, got %d", entries[len(entries)-1].ID)
	}
}

func TestLog_EntriesReturnsCopy(t *testing.T) {
	log := NewLog()
	log.Append("one")

	entries := log.Entries()
	entries[0].Text = "mutated"

	if log.Entries()[0].Text != "one" {
		t.Error("mutating the snapshot must not affect the log")
	}
}

func TestLog_Reset(t *testing.T) {
	log := NewLog()
	log.Append("one")
	log.Append("two")

	log.Reset()
	if log.Len() != 0 {
		t.Errorf("expected empty log after Reset, got %d entries", log.Len())
	}

	// IDs keep increasing across resets.
	entry := log.Append("three")
	if entry.ID != 3 {
		t.Errorf("expected ID 3 after reset, got %d", entry.ID)
	}
}
