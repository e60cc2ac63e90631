package main

import (
	"math"
	"time"

	"vehicle-fusion-core/bus"
	"vehicle-fusion-core/carstate"
)

// A message is stale after this many of its nominal periods without a frame.
const staleAfterPeriods = 5.0

// Watchdog supervises one segment's declared message requirements. The
// decoder performs no timeout logic of its own; the loop feeds each cycle's
// table through here and invalidates the snapshot when anything required has
// gone silent too long.
type Watchdog struct {
	limits map[string]int // silent-cycle budget per message
	silent map[string]int
}

func NewWatchdog(reqs []carstate.MessageRequirement, cycle time.Duration) *Watchdog {
	w := &Watchdog{
		limits: make(map[string]int, len(reqs)),
		silent: make(map[string]int, len(reqs)),
	}
	for _, r := range reqs {
		if r.RateHz <= 0 {
			// Declared rate 0 means the message is legitimate but not
			// periodic (passive wiring); it cannot go stale.
			continue
		}
		period := 1.0 / r.RateHz
		limit := int(math.Ceil(staleAfterPeriods * period / cycle.Seconds()))
		if limit < 1 {
			limit = 1
		}
		w.limits[r.Message] = limit
	}
	return w
}

// Observe folds one cycle's table in and returns the messages currently
// beyond their silence budget. An empty result means the segment is fresh.
func (w *Watchdog) Observe(t *bus.Table) []string {
	var stale []string
	for msg, limit := range w.limits {
		if t.FrameCount(msg) > 0 {
			w.silent[msg] = 0
			continue
		}
		w.silent[msg]++
		if w.silent[msg] > limit {
			stale = append(stale, msg)
		}
	}
	return stale
}
