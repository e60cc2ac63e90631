package carstate

// MessageRequirement declares one message a configuration consumes from a
// segment, with the update rate an external watchdog should hold it to. The
// decoder itself never times anything out; a snapshot is only as valid as
// the watchdog says these messages are fresh.
type MessageRequirement struct {
	Message string
	RateHz  float64
}

// PowertrainRequirements lists the primary-segment messages a configuration
// needs, with their expected rates.
func PowertrainRequirements(cfg Config) []MessageRequirement {
	reqs := []MessageRequirement{
		{MsgTurnSignals, 1},
		{MsgGearSelector, 10},
		{MsgSteeringStatus, 10},
		{MsgESPStatus, 10},
		{MsgDoorBeltStatus, 10},
		{MsgIgnitionAlt, 10},
		{MsgWheelSpeedFront, 20},
		{MsgWheelSpeedRear, 20},
		{MsgAcceleratorPed2, 33},
		{MsgSteeringButton, 33},
		{MsgAcceleratorPos, 80},
		{MsgEngineStatus, 100},
		{MsgSteeringAngle, 100},
	}

	if cfg.ConventionalCruiseOnly {
		reqs = append(reqs, MessageRequirement{MsgCruiseControl, 10})
	}
	if cfg.Transmission == TransmissionDirectDrive {
		reqs = append(reqs, MessageRequirement{MsgRegenPaddle, 50})
	}
	if cfg.GasInterceptor {
		reqs = append(reqs, MessageRequirement{MsgGasInterceptor, 50})
	}
	return reqs
}

// GatewayRequirements lists the forward-gateway messages. Empty on an
// integrated topology, which has no such segment.
func GatewayRequirements(cfg Config) []MessageRequirement {
	if cfg.Topology != TopologyForwardGateway {
		return nil
	}
	reqs := []MessageRequirement{
		{MsgAEBCmd, 10},
		{MsgSteeringCmd, 10},
	}
	if !cfg.ConventionalCruiseOnly {
		reqs = append(reqs, MessageRequirement{MsgACCStatus, 25})
	}
	return reqs
}

// LoopbackRequirements lists the command-echo segment's messages. 10 Hz is
// the stock inactive rate; while commands are streaming the echo runs
// faster, so the declared rate is the slowest legitimate one. With safety
// mode no-output nothing is ever transmitted, so no echo can be required.
func LoopbackRequirements(cfg Config) []MessageRequirement {
	rate := 10.0
	if cfg.Safety == SafetyNoOutput {
		rate = 0
	}
	return []MessageRequirement{
		{MsgSteeringCmd, rate},
	}
}
