package shared

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

func NewID(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return prefix + hex.EncodeToString(b)
}

// BackoffConfig controls retry pacing for stream reconnects.
type BackoffConfig struct {
	Initial     time.Duration
	MaxAttempts int
	MaxDelay    time.Duration
}

// Normalized fills zero fields with defaults so callers can pass a
// partially configured value.
func (c BackoffConfig) Normalized() BackoffConfig {
	if c.Initial <= 0 {
		c.Initial = 100 * time.Millisecond
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 2 * time.Second
	}
	return c
}
