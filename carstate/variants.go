package carstate

import "math"

const kphToMS = 1.0 / 3.6

// Cruise status codes shared by the adaptive-capable variants.
const (
	AccStateOff        = 0
	AccStateActive     = 1
	AccStateFaulted    = 3
	AccStateStandstill = 4
)

// EPS torque-delivery status codes.
const (
	epsStatusInactive  = 0
	epsStatusActive    = 1
	epsStatusTempFault = 2
	epsStatusPermFault = 3
)

// Brake pressed thresholds, in the brake position signal's own unit. The
// integrated install matches the powertrain controller's own threshold; with
// a forward gateway the higher threshold lets a cancel issued while braking
// clear before the controller's fault path sees a conflict.
const (
	brakePressedThresholdIntegrated = 8.0
	brakePressedThresholdGateway    = 20.0
)

// Throttle constants. The interceptor reports raw ADC counts; the stock
// pedal signal is normalized by its full-scale value.
const (
	interceptorThrottleThreshold = 15.0
	throttleScale                = 254.0
	throttlePressedEpsilon       = 1e-5
)

// The gateway's cruise setpoint signal carries a fixed-point value the
// conventional-cruise setpoint does not.
const gatewaySetpointScale = 16.0

// Conventional-cruise-only policy. The controller on this variant reports
// status FAULTED at all times, so the code cannot be trusted for fault or
// standstill-hold; both are forced. Unverified upstream for this vehicle
// class; kept as named constants rather than silently corrected.
const (
	ccOnlyFaultPolicy      = false
	ccOnlyStandstillPolicy = false
)

// brakeThresholdFor returns the pressed threshold for a topology.
func brakeThresholdFor(t NetworkTopology) float64 {
	if t == TopologyForwardGateway {
		return brakePressedThresholdGateway
	}
	return brakePressedThresholdIntegrated
}

// decodeBrake reads the brake position and pressed state for a variant.
// On direct-drive transmissions a nonzero regen paddle is braking too.
func decodeBrake(cfg Config, pt SignalTable) (position float64, pressed bool) {
	position = pt.Signal(MsgAcceleratorPos, SigBrakePedalPos)
	pressed = position >= brakeThresholdFor(cfg.Topology)
	if cfg.Transmission == TransmissionDirectDrive {
		pressed = pressed || pt.Signal(MsgRegenPaddle, SigRegenPaddle) != 0
	}
	return position, pressed
}

// decodeThrottle reads the throttle fraction and pressed state. With the
// interceptor fitted the source is the mean of its two redundant channels;
// otherwise the stock pedal signal scaled to 0-1.
func decodeThrottle(cfg Config, pt SignalTable) (fraction float64, pressed bool) {
	if cfg.GasInterceptor {
		fraction = (pt.Signal(MsgGasInterceptor, SigInterceptorGas) +
			pt.Signal(MsgGasInterceptor, SigInterceptorGas2)) / 2.0
		return fraction, fraction > interceptorThrottleThreshold
	}
	fraction = pt.Signal(MsgAcceleratorPed2, SigAccelPedal) / throttleScale
	return fraction, fraction > throttlePressedEpsilon
}

// steerFaults maps the EPS status code to the two fault booleans. Exactly
// one code selects each, so they are mutually exclusive by construction.
func steerFaults(status int64) (temporary, permanent bool) {
	return status == epsStatusTempFault, status == epsStatusPermFault
}

// cruiseFunc decodes the variant-dependent part of the cruise state. The
// common available bit and its interceptor polarity flip stay with the
// decoder.
type cruiseFunc func(pt, gw SignalTable) CruiseState

// cruiseFor selects the cruise policy for a config at construction time.
func cruiseFor(cfg Config) cruiseFunc {
	if cfg.ConventionalCruiseOnly {
		return decodeCruiseConventional
	}
	if cfg.Topology == TopologyForwardGateway {
		return decodeCruiseAdaptiveGateway
	}
	return decodeCruiseAdaptive
}

// decodeCruiseConventional handles the conventional-cruise-only variant:
// enabled comes from the dedicated active bit, the setpoint from the cruise
// controller's own signal, and fault/standstill follow the forced policy.
func decodeCruiseConventional(pt, _ SignalTable) CruiseState {
	return CruiseState{
		Enabled:     pt.Signal(MsgEngineStatus, SigCruiseActive) == 1,
		Standstill:  ccOnlyStandstillPolicy,
		NonAdaptive: true,
		Faulted:     ccOnlyFaultPolicy,
		Setpoint:    pt.Signal(MsgCruiseControl, SigCruiseSetSpeed) * kphToMS,
	}
}

// decodeCruiseAdaptive reads the shared 4-state status code on the primary
// segment. Without a gateway there is no setpoint source.
func decodeCruiseAdaptive(pt, _ SignalTable) CruiseState {
	status := int64(pt.Signal(MsgAcceleratorPed2, SigCruiseStatus))
	return CruiseState{
		Enabled:    status != AccStateOff,
		Standstill: status == AccStateStandstill,
		Faulted:    status == AccStateFaulted,
	}
}

// decodeCruiseAdaptiveGateway adds the gateway-sourced setpoint, which needs
// the fixed-point scale-down on top of the unit conversion.
func decodeCruiseAdaptiveGateway(pt, gw SignalTable) CruiseState {
	cs := decodeCruiseAdaptive(pt, nil)
	if gw != nil {
		cs.Setpoint = gw.Signal(MsgACCStatus, SigACCSetpoint) / gatewaySetpointScale * kphToMS
	}
	return cs
}

func meanOf4(a, b, c, d float64) float64 {
	return (a + b + c + d) / 4.0
}

func absf(v float64) float64 { return math.Abs(v) }
