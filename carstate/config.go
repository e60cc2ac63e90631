package carstate

// NetworkTopology describes where the control hardware sits relative to the
// vehicle's forward-sensing module.
type NetworkTopology int

const (
	// TopologyIntegrated taps the powertrain segment directly.
	TopologyIntegrated NetworkTopology = iota
	// TopologyForwardGateway reaches the powertrain through the forward
	// camera module, which also exposes its own segment.
	TopologyForwardGateway
)

type Transmission int

const (
	TransmissionConventional Transmission = iota
	TransmissionDirectDrive
)

type SafetyMode int

const (
	SafetyPassive SafetyMode = iota
	SafetyNoOutput
	SafetyActive
)

// DefaultSteerTorqueThreshold is the driver-applied torque above which the
// wheel counts as held.
const DefaultSteerTorqueThreshold = 1.0

// Config fixes the vehicle variant at decoder construction. It is never
// mutated afterwards; callers are responsible for supplying a consistent
// combination (e.g. not asking for gateway-only signals on an integrated
// install).
type Config struct {
	Topology               NetworkTopology
	Transmission           Transmission
	GasInterceptor         bool
	ConventionalCruiseOnly bool
	Safety                 SafetyMode

	// SteerTorqueThreshold overrides DefaultSteerTorqueThreshold when > 0.
	SteerTorqueThreshold float64
}

func (c Config) steerThreshold() float64 {
	if c.SteerTorqueThreshold > 0 {
		return c.SteerTorqueThreshold
	}
	return DefaultSteerTorqueThreshold
}
