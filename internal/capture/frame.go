package capture

import (
	"encoding/base64"
	"time"
)

// Frame is one encoded JPEG snapshot. Frames live for a single loop
// iteration and are never persisted.
type Frame struct {
	Data      []byte
	Timestamp time.Time
}

// DataURL renders the frame the way the perception service expects it.
func (f *Frame) DataURL() string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(f.Data)
}
