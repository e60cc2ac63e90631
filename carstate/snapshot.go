package carstate

// Gear is the decoded selector position.
type Gear int

const (
	GearUnknown Gear = iota
	GearPark
	GearReverse
	GearNeutral
	GearDrive
	GearSport
	GearLow
	GearBrake
	GearEco
	// GearManualOverride is forced whenever the selector's manual-mode flag
	// is set, regardless of the dictionary.
	GearManualOverride
)

func (g Gear) String() string {
	switch g {
	case GearPark:
		return "park"
	case GearReverse:
		return "reverse"
	case GearNeutral:
		return "neutral"
	case GearDrive:
		return "drive"
	case GearSport:
		return "sport"
	case GearLow:
		return "low"
	case GearBrake:
		return "brake"
	case GearEco:
		return "eco"
	case GearManualOverride:
		return "manual"
	default:
		return "unknown"
	}
}

type WheelSpeeds struct {
	FrontLeft  float64 `json:"fl"`
	FrontRight float64 `json:"fr"`
	RearLeft   float64 `json:"rl"`
	RearRight  float64 `json:"rr"`
}

type CruiseState struct {
	Available   bool    `json:"available"`
	Enabled     bool    `json:"enabled"`
	Standstill  bool    `json:"standstill"`
	NonAdaptive bool    `json:"nonAdaptive"`
	Faulted     bool    `json:"faulted"`
	Setpoint    float64 `json:"setpoint"` // m/s
}

// Snapshot is the fused vehicle state for one control cycle. It is built
// fresh on every Decode call and is read-only to its consumer; no field is
// carried over from the previous cycle except the diagnostic caches
// (previous button code, last echo counter) that exist for edge detection.
type Snapshot struct {
	WheelSpeeds  WheelSpeeds `json:"wheelSpeeds"`
	VelocityRaw  float64     `json:"vRaw"`  // m/s, mean of the four wheels
	Velocity     float64     `json:"v"`     // m/s, filtered
	Acceleration float64     `json:"a"`     // m/s^2, filtered
	Standstill   bool        `json:"standstill"`

	Gear Gear `json:"gear"`

	Brake        float64 `json:"brake"`
	BrakePressed bool    `json:"brakePressed"`

	Throttle        float64 `json:"throttle"`
	ThrottlePressed bool    `json:"throttlePressed"`

	SteeringAngle       float64 `json:"steeringAngle"` // deg
	SteeringRate        float64 `json:"steeringRate"`  // deg/s
	SteeringTorque      float64 `json:"steeringTorque"`
	SteeringTorqueEPS   float64 `json:"steeringTorqueEps"`
	SteeringPressed     bool    `json:"steeringPressed"`
	SteerFaultTemporary bool    `json:"steerFaultTemporary"`
	SteerFaultPermanent bool    `json:"steerFaultPermanent"`

	DoorOpen          bool `json:"doorOpen"`
	SeatbeltUnlatched bool `json:"seatbeltUnlatched"`
	LeftBlinker       bool `json:"leftBlinker"`
	RightBlinker      bool `json:"rightBlinker"`
	ParkingBrake      bool `json:"parkingBrake"`
	TractionDisabled  bool `json:"tractionDisabled"`

	Cruise CruiseState `json:"cruise"`

	// Forward sensing, populated only on a forward-gateway topology.
	StockFCW bool `json:"stockFcw"`
	StockAEB bool `json:"stockAeb"`

	// Diagnostics.
	ButtonCode     int64 `json:"buttonCode"`
	PrevButtonCode int64 `json:"prevButtonCode"`
	ButtonCounter  int64 `json:"buttonCounter"`
	EchoSeen       bool  `json:"echoSeen"`
	EchoCounter    int64 `json:"echoCounter"`
}
