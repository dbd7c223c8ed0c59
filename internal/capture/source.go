package capture

import "context"

// Source abstracts a video capture device producing still snapshots on
// demand. The device is exclusively owned by whoever started it.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Active() bool
	Capture(ctx context.Context) (*Frame, error)
}
