package carstate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testTable is a hand-filled SignalTable for driving the decoder.
type testTable struct {
	values map[string]map[string]float64
	counts map[string]int
}

func newTestTable() *testTable {
	return &testTable{
		values: map[string]map[string]float64{},
		counts: map[string]int{},
	}
}

func (t *testTable) set(message, signal string, v float64) *testTable {
	m, ok := t.values[message]
	if !ok {
		m = map[string]float64{}
		t.values[message] = m
	}
	m[signal] = v
	return t
}

func (t *testTable) frames(message string, n int) *testTable {
	t.counts[message] = n
	return t
}

func (t *testTable) Signal(message, signal string) float64 { return t.values[message][signal] }
func (t *testTable) FrameCount(message string) int         { return t.counts[message] }

func testGears() *GearRegistry {
	return NewGearRegistry(map[int64]string{
		0: "P", 1: "R", 2: "N", 3: "D", 4: "L",
	})
}

func TestDecodeStandstill(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	pt := newTestTable().
		set(MsgWheelSpeedFront, SigWheelSpeedFL, 0).
		set(MsgWheelSpeedFront, SigWheelSpeedFR, 0).
		set(MsgWheelSpeedRear, SigWheelSpeedRL, 0).
		set(MsgWheelSpeedRear, SigWheelSpeedRR, 0)

	snap := d.Decode(pt, nil, nil)
	require.Zero(t, snap.VelocityRaw)
	require.True(t, snap.Standstill)
}

func TestDecodeWheelSpeedMean(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	// 36 km/h on every wheel is 10 m/s.
	pt := newTestTable().
		set(MsgWheelSpeedFront, SigWheelSpeedFL, 36).
		set(MsgWheelSpeedFront, SigWheelSpeedFR, 36).
		set(MsgWheelSpeedRear, SigWheelSpeedRL, 36).
		set(MsgWheelSpeedRear, SigWheelSpeedRR, 36)

	snap := d.Decode(pt, nil, nil)
	require.InDelta(t, 10.0, snap.VelocityRaw, 1e-9)
	require.False(t, snap.Standstill)
}

func TestDecodeGear(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	snap := d.Decode(newTestTable().set(MsgGearSelector, SigGearCode, 3), nil, nil)
	require.Equal(t, GearDrive, snap.Gear)

	// A code outside the dictionary degrades to unknown, never an error.
	snap = d.Decode(newTestTable().set(MsgGearSelector, SigGearCode, 9), nil, nil)
	require.Equal(t, GearUnknown, snap.Gear)
}

func TestDecodeGearManualOverride(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	// The manual-mode flag wins regardless of the selector code.
	pt := newTestTable().
		set(MsgGearSelector, SigManualMode, 1).
		set(MsgGearSelector, SigGearCode, 0)
	snap := d.Decode(pt, nil, nil)
	require.Equal(t, GearManualOverride, snap.Gear)
}

func TestDecodeBrakeThresholdIntegrated(t *testing.T) {
	d := NewDecoder(Config{Topology: TopologyIntegrated}, testGears())

	snap := d.Decode(newTestTable().set(MsgAcceleratorPos, SigBrakePedalPos, 7), nil, nil)
	require.False(t, snap.BrakePressed)

	snap = d.Decode(newTestTable().set(MsgAcceleratorPos, SigBrakePedalPos, 8), nil, nil)
	require.True(t, snap.BrakePressed)
	require.InDelta(t, 8.0, snap.Brake, 1e-9)
}

func TestDecodeBrakeThresholdGateway(t *testing.T) {
	d := NewDecoder(Config{Topology: TopologyForwardGateway}, testGears())

	snap := d.Decode(newTestTable().set(MsgAcceleratorPos, SigBrakePedalPos, 19), nil, nil)
	require.False(t, snap.BrakePressed)

	snap = d.Decode(newTestTable().set(MsgAcceleratorPos, SigBrakePedalPos, 20), nil, nil)
	require.True(t, snap.BrakePressed)
}

func TestDecodeRegenPaddleIsBraking(t *testing.T) {
	d := NewDecoder(Config{Transmission: TransmissionDirectDrive}, testGears())

	// Below the pedal threshold but paddle pulled: still braking.
	pt := newTestTable().
		set(MsgAcceleratorPos, SigBrakePedalPos, 3).
		set(MsgRegenPaddle, SigRegenPaddle, 1)
	snap := d.Decode(pt, nil, nil)
	require.True(t, snap.BrakePressed)

	// Conventional transmission ignores the paddle signal entirely.
	d = NewDecoder(Config{Transmission: TransmissionConventional}, testGears())
	snap = d.Decode(pt, nil, nil)
	require.False(t, snap.BrakePressed)
}

func TestDecodeThrottleStock(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	snap := d.Decode(newTestTable().set(MsgAcceleratorPed2, SigAccelPedal, 127), nil, nil)
	require.InDelta(t, 0.5, snap.Throttle, 0.01)
	require.True(t, snap.ThrottlePressed)

	snap = d.Decode(newTestTable(), nil, nil)
	require.False(t, snap.ThrottlePressed)
}

func TestDecodeThrottleInterceptor(t *testing.T) {
	d := NewDecoder(Config{GasInterceptor: true}, testGears())

	pt := newTestTable().
		set(MsgGasInterceptor, SigInterceptorGas, 10).
		set(MsgGasInterceptor, SigInterceptorGas2, 30)
	snap := d.Decode(pt, nil, nil)
	require.InDelta(t, 20.0, snap.Throttle, 1e-9)
	require.True(t, snap.ThrottlePressed)

	pt = newTestTable().
		set(MsgGasInterceptor, SigInterceptorGas, 14).
		set(MsgGasInterceptor, SigInterceptorGas2, 16)
	snap = d.Decode(pt, nil, nil)
	require.False(t, snap.ThrottlePressed)
}

func TestDecodeSteerFaultTable(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	cases := []struct {
		code      float64
		temporary bool
		permanent bool
	}{
		{0, false, false},
		{1, false, false},
		{2, true, false},
		{3, false, true},
	}
	for _, tc := range cases {
		snap := d.Decode(newTestTable().set(MsgSteeringStatus, SigEPSTorqueStatus, tc.code), nil, nil)
		require.Equal(t, tc.temporary, snap.SteerFaultTemporary, "code %v", tc.code)
		require.Equal(t, tc.permanent, snap.SteerFaultPermanent, "code %v", tc.code)
		require.False(t, snap.SteerFaultTemporary && snap.SteerFaultPermanent)
	}
}

func TestDecodeSteeringPressed(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	snap := d.Decode(newTestTable().set(MsgSteeringStatus, SigDriverTorque, -1.5), nil, nil)
	require.True(t, snap.SteeringPressed)
	require.InDelta(t, -1.5, snap.SteeringTorque, 1e-9)

	snap = d.Decode(newTestTable().set(MsgSteeringStatus, SigDriverTorque, 0.5), nil, nil)
	require.False(t, snap.SteeringPressed)
}

func TestDecodeBodySignals(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	pt := newTestTable().
		set(MsgDoorBeltStatus, SigRearLeftDoor, 1).
		set(MsgDoorBeltStatus, SigDriverSeatBelt, 0).
		set(MsgTurnSignals, SigTurnSignals, 1).
		set(MsgIgnitionAlt, SigParkBrake, 1).
		set(MsgESPStatus, SigTractionOn, 0)
	snap := d.Decode(pt, nil, nil)
	require.True(t, snap.DoorOpen)
	require.True(t, snap.SeatbeltUnlatched)
	require.True(t, snap.LeftBlinker)
	require.False(t, snap.RightBlinker)
	require.True(t, snap.ParkingBrake)
	require.True(t, snap.TractionDisabled)

	pt = newTestTable().
		set(MsgDoorBeltStatus, SigDriverSeatBelt, 1).
		set(MsgTurnSignals, SigTurnSignals, 2).
		set(MsgESPStatus, SigTractionOn, 1)
	snap = d.Decode(pt, nil, nil)
	require.False(t, snap.DoorOpen)
	require.False(t, snap.SeatbeltUnlatched)
	require.False(t, snap.LeftBlinker)
	require.True(t, snap.RightBlinker)
	require.False(t, snap.TractionDisabled)

	// Any other blinker code means neither side.
	snap = d.Decode(newTestTable().set(MsgTurnSignals, SigTurnSignals, 3), nil, nil)
	require.False(t, snap.LeftBlinker)
	require.False(t, snap.RightBlinker)
}

func TestDecodeCruiseAdaptiveStatusCodes(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	base := func(code float64) *testTable {
		return newTestTable().
			set(MsgEngineStatus, SigCruiseMainOn, 1).
			set(MsgAcceleratorPed2, SigCruiseStatus, code)
	}

	snap := d.Decode(base(AccStateOff), nil, nil)
	require.True(t, snap.Cruise.Available)
	require.False(t, snap.Cruise.Enabled)
	require.False(t, snap.Cruise.Faulted)

	snap = d.Decode(base(AccStateActive), nil, nil)
	require.True(t, snap.Cruise.Enabled)
	require.False(t, snap.Cruise.Standstill)

	snap = d.Decode(base(AccStateStandstill), nil, nil)
	require.True(t, snap.Cruise.Enabled)
	require.True(t, snap.Cruise.Standstill)

	snap = d.Decode(base(AccStateFaulted), nil, nil)
	require.True(t, snap.Cruise.Faulted)
}

func TestDecodeCruiseEnabledImpliesAvailable(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	pt := newTestTable().
		set(MsgEngineStatus, SigCruiseMainOn, 0).
		set(MsgAcceleratorPed2, SigCruiseStatus, AccStateActive)
	snap := d.Decode(pt, nil, nil)
	require.False(t, snap.Cruise.Available)
	require.False(t, snap.Cruise.Enabled)
}

func TestDecodeCruiseConventionalOnly(t *testing.T) {
	d := NewDecoder(Config{ConventionalCruiseOnly: true}, testGears())

	// The raw status reads faulted at all times on this variant; the
	// decoded fault stays forced off.
	pt := newTestTable().
		set(MsgEngineStatus, SigCruiseMainOn, 1).
		set(MsgEngineStatus, SigCruiseActive, 1).
		set(MsgAcceleratorPed2, SigCruiseStatus, AccStateFaulted).
		set(MsgCruiseControl, SigCruiseSetSpeed, 72)
	snap := d.Decode(pt, nil, nil)
	require.False(t, snap.Cruise.Faulted)
	require.False(t, snap.Cruise.Standstill)
	require.True(t, snap.Cruise.NonAdaptive)
	require.True(t, snap.Cruise.Enabled)
	require.InDelta(t, 20.0, snap.Cruise.Setpoint, 1e-9) // 72 km/h
}

func TestDecodeCruiseInterceptorFlipsAvailable(t *testing.T) {
	d := NewDecoder(Config{GasInterceptor: true}, testGears())

	snap := d.Decode(newTestTable().set(MsgEngineStatus, SigCruiseMainOn, 0), nil, nil)
	require.True(t, snap.Cruise.Available)

	snap = d.Decode(newTestTable().set(MsgEngineStatus, SigCruiseMainOn, 1), nil, nil)
	require.False(t, snap.Cruise.Available)
}

func TestDecodeGatewaySetpointAndForwardSensing(t *testing.T) {
	d := NewDecoder(Config{Topology: TopologyForwardGateway}, testGears())

	pt := newTestTable().
		set(MsgEngineStatus, SigCruiseMainOn, 1).
		set(MsgAcceleratorPed2, SigCruiseStatus, AccStateActive)
	// The gateway setpoint signal carries 16ths of a km/h: 576/16 = 36 km/h.
	gw := newTestTable().
		set(MsgACCStatus, SigACCSetpoint, 576).
		set(MsgACCStatus, SigFCWAlert, 1).
		set(MsgAEBCmd, SigAEBActive, 1)

	snap := d.Decode(pt, gw, nil)
	require.InDelta(t, 10.0, snap.Cruise.Setpoint, 1e-9)
	require.True(t, snap.StockFCW)
	require.True(t, snap.StockAEB)
}

func TestDecodeForwardSensingIntegrated(t *testing.T) {
	d := NewDecoder(Config{Topology: TopologyIntegrated}, testGears())

	gw := newTestTable().
		set(MsgAEBCmd, SigAEBActive, 1).
		set(MsgACCStatus, SigFCWAlert, 1)
	snap := d.Decode(newTestTable(), gw, nil)
	require.False(t, snap.StockFCW)
	require.False(t, snap.StockAEB)
}

func TestDecodeEcho(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	// Absent this cycle: not seen.
	snap := d.Decode(newTestTable(), nil, newTestTable())
	require.False(t, snap.EchoSeen)

	// Present, even duplicated: seen, latest counter cached.
	loop := newTestTable().
		frames(MsgSteeringCmd, 2).
		set(MsgSteeringCmd, SigRollingCounter, 3)
	snap = d.Decode(newTestTable(), nil, loop)
	require.True(t, snap.EchoSeen)
	require.Equal(t, int64(3), snap.EchoCounter)

	// The cached counter survives a silent cycle.
	snap = d.Decode(newTestTable(), nil, newTestTable())
	require.False(t, snap.EchoSeen)
	require.Equal(t, int64(3), snap.EchoCounter)
}

func TestDecodeButtonEdgeTracking(t *testing.T) {
	d := NewDecoder(Config{}, testGears())

	snap := d.Decode(newTestTable().
		set(MsgSteeringButton, SigButtonCode, float64(ButtonDecelSet)).
		set(MsgSteeringButton, SigRollingCounter, 12), nil, nil)
	require.Equal(t, ButtonDecelSet, snap.ButtonCode)
	require.Equal(t, int64(0), snap.PrevButtonCode)
	require.Equal(t, int64(12), snap.ButtonCounter)

	snap = d.Decode(newTestTable().
		set(MsgSteeringButton, SigButtonCode, float64(ButtonUnpress)), nil, nil)
	require.Equal(t, ButtonUnpress, snap.ButtonCode)
	require.Equal(t, ButtonDecelSet, snap.PrevButtonCode)
}

func TestDecoderInstancesAreIndependent(t *testing.T) {
	a := NewDecoder(Config{}, testGears())
	b := NewDecoder(Config{}, testGears())

	pt := newTestTable().set(MsgSteeringButton, SigButtonCode, float64(ButtonMain))
	a.Decode(pt, nil, nil)

	snap := b.Decode(newTestTable(), nil, nil)
	require.Equal(t, int64(0), snap.ButtonCode)
	require.Equal(t, int64(0), snap.PrevButtonCode)
}
