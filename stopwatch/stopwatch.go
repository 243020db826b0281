// Package stopwatch provides lap/total timing for CLI progress reporting.
//
// It is a direct idiomatic translation of the original tool's
// Utils::Stopwatch helper: Start resets both the total and lap clocks, Stop
// reports total elapsed time, and Lap reports (and resets) the time since
// the previous lap without affecting the total.
package stopwatch

import "time"

// Stopwatch measures total and lap elapsed time. The zero value is not
// usable; call Start first.
type Stopwatch struct {
	start    time.Time
	lapStart time.Time
}

// Start resets the stopwatch to the current time.
func (s *Stopwatch) Start() {
	now := time.Now()
	s.start = now
	s.lapStart = now
}

// Stop returns the total elapsed time since Start. It does not reset the
// stopwatch and may be called repeatedly.
func (s *Stopwatch) Stop() time.Duration {
	return time.Since(s.start)
}

// Lap returns the elapsed time since the previous call to Start or Lap, and
// resets the lap clock. It does not affect the total reported by Stop.
func (s *Stopwatch) Lap() time.Duration {
	now := time.Now()
	d := now.Sub(s.lapStart)
	s.lapStart = now
	return d
}
