package carstate

// Message and signal names as they appear in the vehicle's message
// dictionary. The decoder consumes already-extracted values keyed by these
// names; the same names drive the declared message requirements.
const (
	MsgWheelSpeedFront = "EBCMWheelSpdFront"
	MsgWheelSpeedRear  = "EBCMWheelSpdRear"
	MsgGearSelector    = "ECMPRDNL2"
	MsgAcceleratorPos  = "ECMAcceleratorPos"
	MsgAcceleratorPed2 = "AcceleratorPedal2"
	MsgRegenPaddle     = "EBCMRegenPaddle"
	MsgGasInterceptor  = "GAS_SENSOR"
	MsgSteeringAngle   = "PSCMSteeringAngle"
	MsgSteeringStatus  = "PSCMStatus"
	MsgDoorBeltStatus  = "BCMDoorBeltStatus"
	MsgTurnSignals     = "BCMTurnSignals"
	MsgIgnitionAlt     = "VehicleIgnitionAlt"
	MsgEngineStatus    = "ECMEngineStatus"
	MsgESPStatus       = "ESPStatus"
	MsgCruiseControl   = "ECMCruiseControl"
	MsgSteeringButton  = "ASCMSteeringButton"
	MsgSteeringCmd     = "ASCMLKASteeringCmd"
	MsgACCStatus       = "ASCMActiveCruiseControlStatus"
	MsgAEBCmd          = "AEBCmd"
)

const (
	SigWheelSpeedFL = "FLWheelSpd"
	SigWheelSpeedFR = "FRWheelSpd"
	SigWheelSpeedRL = "RLWheelSpd"
	SigWheelSpeedRR = "RRWheelSpd"

	SigGearCode   = "PRNDL2"
	SigManualMode = "ManualMode"

	SigBrakePedalPos = "BrakePedalPos"
	SigRegenPaddle   = "RegenPaddle"

	SigAccelPedal      = "AcceleratorPedal2"
	SigCruiseStatus    = "CruiseState"
	SigInterceptorGas  = "INTERCEPTOR_GAS"
	SigInterceptorGas2 = "INTERCEPTOR_GAS2"

	SigSteeringAngle   = "SteeringWheelAngle"
	SigSteeringRate    = "SteeringWheelRate"
	SigDriverTorque    = "LKADriverAppldTrq"
	SigEPSTorque       = "LKATorqueDelivered"
	SigEPSTorqueStatus = "LKATorqueDeliveredStatus"

	SigFrontLeftDoor  = "FrontLeftDoor"
	SigFrontRightDoor = "FrontRightDoor"
	SigRearLeftDoor   = "RearLeftDoor"
	SigRearRightDoor  = "RearRightDoor"
	SigDriverSeatBelt = "LeftSeatBelt"
	SigTurnSignals    = "TurnSignals"
	SigParkBrake      = "ParkBrake"

	SigCruiseMainOn   = "CruiseMainOn"
	SigCruiseActive   = "CruiseActive"
	SigCruiseSetSpeed = "CruiseSetSpeed"
	SigTractionOn     = "TractionControlOn"

	SigButtonCode     = "ACCButtons"
	SigRollingCounter = "RollingCounter"

	SigACCSetpoint = "ACCSpeedSetpoint"
	SigFCWAlert    = "FCWAlert"
	SigAEBActive   = "AEBCmdActive"
)
