package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"vehicle-fusion-core/bus"
	"vehicle-fusion-core/carstate"
)

// rolling counter width of the command message
const commandCounterMod = 4

type segment struct {
	name      string
	collector *bus.Collector
	recv      bus.Receiver
	watchdog  *Watchdog
}

// Runner owns the 100 Hz fusion loop: it swaps each segment's accumulated
// signal table at every tick, decodes one snapshot, supervises staleness,
// and hands the result to telemetry. Cancel commands on a cancel-button
// edge are its only output, and only in active safety mode.
type Runner struct {
	log     *logrus.Logger
	decoder *carstate.Decoder
	cycle   time.Duration

	powertrain *segment
	gateway    *segment // nil on integrated topology
	loopback   *segment // nil when no loopback wired

	ptDB *bus.Database
	tx   bus.Transmitter // nil unless safety mode is active
	pub  *Publisher      // nil when telemetry is not configured

	ticks uint64
}

func (r *Runner) Run(ctx context.Context) error {
	for _, seg := range []*segment{r.powertrain, r.gateway, r.loopback} {
		if seg == nil {
			continue
		}
		seg := seg
		go seg.collector.Run(ctx, seg.recv, func(err error) {
			r.log.WithField("segment", seg.name).WithError(err).Error("receive failed")
		})
	}

	ticker := time.NewTicker(r.cycle)
	defer ticker.Stop()

	r.log.WithFields(logrus.Fields{
		"cycle":    r.cycle,
		"gateway":  r.gateway != nil,
		"loopback": r.loopback != nil,
	}).Info("fusion loop started")

	for {
		select {
		case <-ctx.Done():
			r.log.Warn("context cancelled; stopping fusion loop")
			return ctx.Err()
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	r.ticks++

	pt := r.powertrain.collector.Swap()
	var gw, loop *bus.Table
	if r.gateway != nil {
		gw = r.gateway.collector.Swap()
	}
	if r.loopback != nil {
		loop = r.loopback.collector.Swap()
	}

	snap := r.decoder.Decode(tableOrNil(pt), tableOrNil(gw), tableOrNil(loop))

	valid := true
	for _, seg := range []*segment{r.powertrain, r.gateway, r.loopback} {
		if seg == nil {
			continue
		}
		var t *bus.Table
		switch seg {
		case r.powertrain:
			t = pt
		case r.gateway:
			t = gw
		case r.loopback:
			t = loop
		}
		if stale := seg.watchdog.Observe(t); len(stale) > 0 {
			valid = false
			if r.ticks%100 == 0 {
				r.log.WithFields(logrus.Fields{
					"segment": seg.name,
					"stale":   stale,
				}).Warn("snapshot invalid: required messages silent")
			}
		}
	}

	r.handleButtons(ctx, snap)

	if r.pub != nil && valid {
		if err := r.pub.Publish(ctx, snap); err != nil {
			r.log.WithError(err).Debug("telemetry publish failed")
		}
	}

	if r.ticks%100 == 0 {
		r.log.WithFields(logrus.Fields{
			"v":        snap.Velocity,
			"a":        snap.Acceleration,
			"gear":     snap.Gear.String(),
			"cruise":   snap.Cruise.Enabled,
			"faulted":  snap.Cruise.Faulted,
			"echoSeen": snap.EchoSeen,
			"valid":    valid,
		}).Debug("cycle")
	}
}

// handleButtons derives press/release edges and issues the cancel command.
// A resume press while already holding at standstill is swallowed so it
// cannot nudge the setpoint, and no command goes out on a cycle the echo of
// a previous one was still visible.
func (r *Runner) handleButtons(ctx context.Context, snap carstate.Snapshot) {
	for _, ev := range carstate.ButtonEvents(snap) {
		if ev.Code == carstate.ButtonResAccel && ev.Pressed && snap.Cruise.Enabled && snap.Standstill {
			continue
		}
		r.log.WithFields(logrus.Fields{
			"code":    ev.Code,
			"pressed": ev.Pressed,
		}).Debug("button edge")

		if ev.Code == carstate.ButtonCancel && ev.Pressed {
			r.sendCancel(ctx, snap)
		}
	}
}

func (r *Runner) sendCancel(ctx context.Context, snap carstate.Snapshot) {
	if r.tx == nil || snap.EchoSeen {
		return
	}
	frame, err := r.ptDB.EncodeFrame(carstate.MsgSteeringButton, map[string]float64{
		carstate.SigButtonCode:     float64(carstate.ButtonCancel),
		carstate.SigRollingCounter: float64((snap.ButtonCounter + 1) % commandCounterMod),
	})
	if err != nil {
		r.log.WithError(err).Error("encode cancel command")
		return
	}
	if err := r.tx.WriteFrame(ctx, frame); err != nil {
		r.log.WithError(err).Error("transmit cancel command")
	}
}

// tableOrNil avoids handing the decoder a typed-nil interface value.
func tableOrNil(t *bus.Table) carstate.SignalTable {
	if t == nil {
		return nil
	}
	return t
}
