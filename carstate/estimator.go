package carstate

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Estimator tick, matching the 100 Hz control schedule.
const estimatorDT = 0.01

// A raw-velocity step larger than this in one tick means the filter was
// started (or restarted) while the vehicle was already moving; the state
// snaps to the measurement instead of slewing through a huge acceleration.
const estimatorSnapDelta = 2.0

// SpeedEstimator is a fixed-gain constant-acceleration filter over the raw
// wheel-speed mean. The gains are the steady-state Kalman gains for the
// process/measurement noise tuned for passenger-vehicle dynamics, so no
// covariance is propagated at runtime. Update must run exactly once per
// cycle; the filter is never reset during normal operation, standstill
// included, to keep its phase continuous.
type SpeedEstimator struct {
	x *mat.VecDense // [velocity, acceleration]
	a *mat.Dense    // state transition
	k *mat.VecDense // steady-state gain
}

func NewSpeedEstimator() *SpeedEstimator {
	return &SpeedEstimator{
		x: mat.NewVecDense(2, []float64{0, 0}),
		a: mat.NewDense(2, 2, []float64{
			1, estimatorDT,
			0, 1,
		}),
		k: mat.NewVecDense(2, []float64{0.12287673, 0.29666309}),
	}
}

// Update folds one raw velocity sample in and returns the filtered velocity
// and acceleration: x = A x + K (z - C A x), with C = [1 0].
func (e *SpeedEstimator) Update(raw float64) (velocity, acceleration float64) {
	if math.Abs(raw-e.x.AtVec(0)) > estimatorSnapDelta {
		e.x.SetVec(0, raw)
		e.x.SetVec(1, 0)
	}

	var pred mat.VecDense
	pred.MulVec(e.a, e.x)
	innovation := raw - pred.AtVec(0)
	e.x.AddScaledVec(&pred, innovation, e.k)
	return e.x.AtVec(0), e.x.AtVec(1)
}
