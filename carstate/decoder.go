package carstate

// SignalTable is one bus segment's extracted signal values for the current
// cycle, as produced by the raw-frame layer. Reads never fail: a message
// that did not arrive reads as zero, and staleness supervision belongs to
// the caller's watchdog (see Requirements).
type SignalTable interface {
	// Signal returns the latest value of a signal this cycle.
	Signal(message, signal string) float64
	// FrameCount reports how many frames of a message arrived this cycle.
	FrameCount(message string) int
}

// emptyTable stands in for segments a topology does not have.
type emptyTable struct{}

func (emptyTable) Signal(string, string) float64 { return 0 }
func (emptyTable) FrameCount(string) int         { return 0 }

// Standstill is judged on the raw wheel-speed mean, never the filter output.
const standstillEpsilon = 0.01

// Decoder fuses the per-cycle signal tables of up to three segments into
// one Snapshot. Each instance exclusively owns its filter state and
// diagnostic caches, so independent decoders (live, replay, simulation)
// never cross-contaminate. Exactly one Decode call may be in flight per
// instance.
type Decoder struct {
	cfg    Config
	gears  *GearRegistry
	speed  *SpeedEstimator
	cruise cruiseFunc

	buttonCode     int64
	prevButtonCode int64
	buttonCounter  int64
	echoCounter    int64
}

func NewDecoder(cfg Config, gears *GearRegistry) *Decoder {
	return &Decoder{
		cfg:    cfg,
		gears:  gears,
		speed:  NewSpeedEstimator(),
		cruise: cruiseFor(cfg),
	}
}

// Decode runs once per control tick and produces the cycle's snapshot.
// gw may be nil on an integrated topology; loop may be nil when no loopback
// segment is wired (replay). Decoding never fails: unrecognized codes
// degrade, absent messages read as zero and are the watchdog's problem.
func (d *Decoder) Decode(pt, gw, loop SignalTable) Snapshot {
	if gw == nil {
		gw = emptyTable{}
	}
	if loop == nil {
		loop = emptyTable{}
	}

	var snap Snapshot

	// Button edge tracking. Both the current and previous code are exposed
	// so the caller can detect press/release edges.
	d.prevButtonCode = d.buttonCode
	d.buttonCode = int64(pt.Signal(MsgSteeringButton, SigButtonCode))
	d.buttonCounter = int64(pt.Signal(MsgSteeringButton, SigRollingCounter))
	snap.ButtonCode = d.buttonCode
	snap.PrevButtonCode = d.prevButtonCode
	snap.ButtonCounter = d.buttonCounter

	// Command echo: any frame of the loopback message this cycle counts,
	// regardless of value. The counter of the latest frame is cached so the
	// actuation layer can avoid re-issuing a command that already echoed.
	snap.EchoSeen = loop.FrameCount(MsgSteeringCmd) > 0
	if snap.EchoSeen {
		d.echoCounter = int64(loop.Signal(MsgSteeringCmd, SigRollingCounter))
	}
	snap.EchoCounter = d.echoCounter

	// Kinematics. The estimator runs unconditionally every cycle to keep
	// its phase continuous.
	snap.WheelSpeeds = WheelSpeeds{
		FrontLeft:  pt.Signal(MsgWheelSpeedFront, SigWheelSpeedFL) * kphToMS,
		FrontRight: pt.Signal(MsgWheelSpeedFront, SigWheelSpeedFR) * kphToMS,
		RearLeft:   pt.Signal(MsgWheelSpeedRear, SigWheelSpeedRL) * kphToMS,
		RearRight:  pt.Signal(MsgWheelSpeedRear, SigWheelSpeedRR) * kphToMS,
	}
	snap.VelocityRaw = meanOf4(snap.WheelSpeeds.FrontLeft, snap.WheelSpeeds.FrontRight,
		snap.WheelSpeeds.RearLeft, snap.WheelSpeeds.RearRight)
	snap.Velocity, snap.Acceleration = d.speed.Update(snap.VelocityRaw)
	snap.Standstill = snap.VelocityRaw < standstillEpsilon

	// Gear. The manual-mode flag wins over the dictionary; a code the
	// dictionary does not know decodes to unknown, never an error.
	if pt.Signal(MsgGearSelector, SigManualMode) == 1 {
		snap.Gear = GearManualOverride
	} else {
		label, ok := d.gears.Label(int64(pt.Signal(MsgGearSelector, SigGearCode)))
		if ok {
			snap.Gear = ParseGear(label)
		} else {
			snap.Gear = GearUnknown
		}
	}

	snap.Brake, snap.BrakePressed = decodeBrake(d.cfg, pt)
	snap.Throttle, snap.ThrottlePressed = decodeThrottle(d.cfg, pt)

	// Steering.
	snap.SteeringAngle = pt.Signal(MsgSteeringAngle, SigSteeringAngle)
	snap.SteeringRate = pt.Signal(MsgSteeringAngle, SigSteeringRate)
	snap.SteeringTorque = pt.Signal(MsgSteeringStatus, SigDriverTorque)
	snap.SteeringTorqueEPS = pt.Signal(MsgSteeringStatus, SigEPSTorque)
	snap.SteeringPressed = absf(snap.SteeringTorque) > d.cfg.steerThreshold()
	epsStatus := int64(pt.Signal(MsgSteeringStatus, SigEPSTorqueStatus))
	snap.SteerFaultTemporary, snap.SteerFaultPermanent = steerFaults(epsStatus)

	// Body. Doors report 1 = open; the seatbelt signal has the inverted
	// sense, 0 = unlatched.
	snap.DoorOpen = pt.Signal(MsgDoorBeltStatus, SigFrontLeftDoor) == 1 ||
		pt.Signal(MsgDoorBeltStatus, SigFrontRightDoor) == 1 ||
		pt.Signal(MsgDoorBeltStatus, SigRearLeftDoor) == 1 ||
		pt.Signal(MsgDoorBeltStatus, SigRearRightDoor) == 1
	snap.SeatbeltUnlatched = pt.Signal(MsgDoorBeltStatus, SigDriverSeatBelt) == 0
	blinker := int64(pt.Signal(MsgTurnSignals, SigTurnSignals))
	snap.LeftBlinker = blinker == 1
	snap.RightBlinker = blinker == 2
	snap.ParkingBrake = pt.Signal(MsgIgnitionAlt, SigParkBrake) == 1
	snap.TractionDisabled = pt.Signal(MsgESPStatus, SigTractionOn) != 1

	// Cruise. The available bit is common to all variants; fitting the
	// interceptor repurposes the main-on signal, flipping its polarity.
	snap.Cruise = d.cruise(pt, gw)
	snap.Cruise.Available = pt.Signal(MsgEngineStatus, SigCruiseMainOn) != 0
	if d.cfg.GasInterceptor {
		snap.Cruise.Available = !snap.Cruise.Available
	}
	// Enabled implies available.
	snap.Cruise.Enabled = snap.Cruise.Enabled && snap.Cruise.Available

	// Forward sensing exists only behind a gateway; the stock FCW alert is
	// only published by the adaptive-capable variants.
	if d.cfg.Topology == TopologyForwardGateway {
		snap.StockAEB = gw.Signal(MsgAEBCmd, SigAEBActive) != 0
		if !d.cfg.ConventionalCruiseOnly {
			snap.StockFCW = gw.Signal(MsgACCStatus, SigFCWAlert) != 0
		}
	}

	return snap
}
