package input

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/types"
)

// pumpBuffer holds roughly half a second of intents at the default poll rate
const pumpBuffer = 32

// Pump runs a Sampler on a fixed ticker and queues its intents for the
// UI goroutine. Navigation state is never touched from the pump goroutine.
type Pump struct {
	sampler  *Sampler
	interval time.Duration
	out      chan types.Intent
	logger   *zap.Logger
}

// NewPump creates a pump polling pollRate times per second
func NewPump(sampler *Sampler, pollRate int, logger *zap.Logger) *Pump {
	if pollRate <= 0 {
		pollRate = DefaultPollRate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pump{
		sampler:  sampler,
		interval: time.Second / time.Duration(pollRate),
		out:      make(chan types.Intent, pumpBuffer),
		logger:   logger,
	}
}

// Interval returns the polling period
func (p *Pump) Interval() time.Duration {
	return p.interval
}

// Run polls until ctx is cancelled. It always returns nil after
// cancellation so it can sit in an errgroup alongside other workers.
func (p *Pump) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Tick()
		}
	}
}

// Tick samples once and queues the results. Intents that do not fit in
// the buffer are dropped; the UI goroutine has stalled and stale input
// is worse than lost input.
func (p *Pump) Tick() {
	for _, intent := range p.sampler.Sample() {
		select {
		case p.out <- intent:
		default:
			p.logger.Warn("Dropping navigation intent", zap.Stringer("intent", intent))
		}
	}
}

// Drain returns every queued intent without blocking.
// Call from the UI goroutine once per frame.
func (p *Pump) Drain() []types.Intent {
	var intents []types.Intent
	for {
		select {
		case intent := <-p.out:
			intents = append(intents, intent)
		default:
			return intents
		}
	}
}
