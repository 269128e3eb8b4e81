// Package ticker drives per-frame updates with a measured, clamped delta.
package ticker

import (
	"context"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/skyhook/config"
)

// UpdateFunc receives the clamped seconds since the previous tick.
type UpdateFunc func(delta float64)

// Ticker calls its update functions once per Tick in insertion order. Deltas
// are measured between ticks and clamped to MaxDelta, so a stall never
// produces one huge step.
type Ticker struct {
	MaxDelta   float64
	BeforeTick func()
	AfterTick  func()

	mu      sync.Mutex
	updates []update
	nextID  int
	running bool
	last    time.Time
	now     func() time.Time
}

type update struct {
	id int
	fn UpdateFunc
}

func New(maxDelta float64) *Ticker {
	return &Ticker{
		MaxDelta: maxDelta,
		now:      time.Now,
	}
}

// Add registers fn and returns an id for Remove.
func (t *Ticker) Add(fn UpdateFunc) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.updates = append(t.updates, update{id: t.nextID, fn: fn})
	return t.nextID
}

// Remove unregisters an update. Unknown ids are ignored.
func (t *Ticker) Remove(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, u := range t.updates {
		if u.id == id {
			t.updates = append(t.updates[:i], t.updates[i+1:]...)
			return
		}
	}
}

// Start begins ticking. Starting a running ticker does nothing.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.last = t.now()
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
}

// Resume restarts a stopped ticker without counting the time it was stopped.
func (t *Ticker) Resume() {
	t.Start()
}

func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Tick runs one frame. It does nothing while stopped.
func (t *Ticker) Tick() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	now := t.now()
	delta := now.Sub(t.last).Seconds()
	t.last = now
	if delta > t.MaxDelta {
		delta = t.MaxDelta
	}
	if delta < 0 {
		delta = 0
	}
	updates := make([]update, len(t.updates))
	copy(updates, t.updates)
	before, after := t.BeforeTick, t.AfterTick
	t.mu.Unlock()

	if before != nil {
		before()
	}
	for _, u := range updates {
		u.fn(delta)
	}
	if after != nil {
		after()
	}
}

// Run starts the ticker and ticks at rate per second until ctx is done. A
// rate below one uses the configured tick rate.
func (t *Ticker) Run(ctx context.Context, rate int) {
	if rate < 1 {
		rate = cfg.Ticker.TickRate
	}
	t.Start()
	defer t.Stop()

	clock := time.NewTicker(time.Second / time.Duration(rate))
	defer clock.Stop()

	log.Printf("ticker started at %d ticks/second", rate)

	for {
		select {
		case <-ctx.Done():
			log.Println("ticker stopped")
			return
		case <-clock.C:
			t.Tick()
		}
	}
}
