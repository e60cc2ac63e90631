package bus

import (
	"context"
	"sync"

	"go.einride.tech/can"
)

// Collector accumulates the frames one segment delivers between two control
// ticks into a Table. The receive goroutine ingests frames as they arrive;
// the cycle loop calls Swap at each tick to take the finished table and
// start a fresh one. Tables handed out by Swap are never written again.
type Collector struct {
	db *Database

	mu  sync.Mutex
	cur *Table
}

func NewCollector(db *Database) *Collector {
	return &Collector{db: db, cur: NewTable()}
}

// Ingest decodes one frame and folds its signals into the current cycle's
// table. Frames with IDs outside this segment's database are dropped.
func (c *Collector) Ingest(f can.Frame) {
	name, values, ok := c.db.DecodeFrame(f)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for sig, v := range values {
		c.cur.Set(name, sig, v)
	}
	c.cur.MarkFrame(name)
}

// Swap returns the table accumulated since the previous Swap and begins a
// new cycle.
func (c *Collector) Swap() *Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.cur
	c.cur = NewTable()
	return t
}

// Run reads frames from a receiver until the context is cancelled. Receive
// errors are reported through errf and the loop continues; a dead segment
// surfaces as staleness at the watchdog, not as a crash here.
func (c *Collector) Run(ctx context.Context, recv Receiver, errf func(error)) {
	for {
		frame, err := recv.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errf != nil {
				errf(err)
			}
			continue
		}
		c.Ingest(frame)
	}
}
