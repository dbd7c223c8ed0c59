package assist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/aeye/internal/capture"
	"github.com/eleven-am/aeye/internal/perception"
)

const defaultPollInterval = 200 * time.Millisecond

// Poller refreshes the overlay detections on a fixed cadence,
// independently of the narrate loop, and never produces speech. At
// most one detect call from the poller is outstanding; ticks that land
// while one is in flight are skipped. On failure the previous overlay
// stays in place.
type Poller struct {
	source     capture.Source
	perception perception.Service
	display    *DisplayState
	interval   time.Duration
	logger     *slog.Logger

	mu       sync.Mutex
	running  bool
	inFlight bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewPoller(source capture.Source, svc perception.Service, display *DisplayState, interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		source:     source,
		perception: svc,
		display:    display,
		interval:   interval,
		logger:     logger.With("component", "overlay-poller"),
	}
}

func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.wg.Add(1)
	go p.run(ctx)
}

func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	p.mu.Lock()
	if p.inFlight || !p.source.Active() {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer func() {
			p.mu.Lock()
			p.inFlight = false
			p.mu.Unlock()
			p.wg.Done()
		}()

		frame, err := p.source.Capture(ctx)
		if err != nil {
			p.logger.Debug("overlay capture failed", "error", err)
			return
		}

		result, err := p.perception.Detect(ctx, frame.DataURL(), frame.Timestamp)
		if err != nil {
			p.logger.Debug("overlay detect failed", "error", err)
			return
		}
		if ctx.Err() != nil {
			return
		}

		p.display.SetOverlay(result.Detections, result.TimingMs)
	}()
}
