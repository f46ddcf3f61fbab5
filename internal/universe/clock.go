// The simulation clock drives the weekly tick in wall time.
package universe

import (
	"log/slog"
	"sync"
	"time"
)

// Runner steps a universe forward one week per interval. Speed scales the
// interval; zero pauses without busy-waiting the CPU.
type Runner struct {
	Universe *Universe
	Interval time.Duration

	// MaxWeeks stops the runner after that many weeks; 0 means run until
	// Stop is called.
	MaxWeeks int

	// OnWeek receives each week's events after the tick completes.
	OnWeek func(week int, events []Event)

	mu      sync.Mutex
	speed   float64
	running bool
}

// NewRunner creates a runner at one week per interval, speed 1.
func NewRunner(u *Universe, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{Universe: u, Interval: interval, speed: 1}
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Speed returns the current interval multiplier.
func (r *Runner) Speed() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.speed
}

// SetSpeed changes the interval multiplier. Zero or below pauses the loop
// without stopping it.
func (r *Runner) SetSpeed(speed float64) {
	r.mu.Lock()
	r.speed = speed
	r.mu.Unlock()
}

func (r *Runner) setRunning(v bool) {
	r.mu.Lock()
	r.running = v
	r.mu.Unlock()
}

// Run drives the loop. Blocks until Stop is called or MaxWeeks elapse.
func (r *Runner) Run() {
	r.setRunning(true)
	slog.Info("simulation clock started",
		"week", r.Universe.Date.Week,
		"year", r.Universe.Date.Year,
		"active", r.Universe.ActiveCount(),
	)

	weeks := 0
	for r.Running() {
		speed := r.Speed()
		if speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		events := r.Universe.ProcessWeek()
		weeks++

		if r.OnWeek != nil {
			r.OnWeek(r.Universe.AbsWeek, events)
		}
		if r.MaxWeeks > 0 && weeks >= r.MaxWeeks {
			r.setRunning(false)
			break
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(r.Interval) / speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation clock stopped",
		"weeks_processed", weeks,
		"week", r.Universe.Date.Week,
		"year", r.Universe.Date.Year,
	)
}

// Stop halts the loop after the current week finishes.
func (r *Runner) Stop() {
	r.setRunning(false)
}
