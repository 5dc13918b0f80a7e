// Package imu adapts WingFC's accelerometer/gyro fusion (a 2-state
// Kalman filter blending accel-derived pitch/roll with gyro rate) into
// an attitude estimator that feeds roll/pitch trim into the mixer's
// command assembler.
package imu

import (
	"math"

	"tinygo.org/x/drivers/lsm6ds3tr"
)

// Sample holds one tick's raw sensor reading, already converted to
// physical units (m/s^2, rad/s).
type Sample struct {
	AccelX, AccelY, AccelZ float64
	GyroX, GyroY           float64
}

// Attitude is the estimator's output: pitch and roll, in radians.
type Attitude struct {
	Pitch float64
	Roll  float64
}

// Estimator fuses accelerometer-derived pitch/roll with gyro rate using
// a 2-state Kalman filter. State X: [pitch, roll].
type Estimator struct {
	x *matrix // (2x1) estimated state
	p *matrix // (2x2) estimate error covariance
	q *matrix // (2x2) process noise covariance
	r *matrix // (2x2) measurement noise covariance
	h *matrix // (2x2) observation matrix

	dt float64
}

// NewEstimator builds an estimator with the same process/measurement
// noise covariances WingFC's KalmanFilter used (small process noise,
// since the gyro is trusted over a noisier accelerometer).
func NewEstimator(dt float64) *Estimator {
	q := identity(2)
	q.set(0, 0, 0.01)
	q.set(1, 1, 0.01)

	r := identity(2)
	r.set(0, 0, 0.5)
	r.set(1, 1, 0.5)

	return &Estimator{
		x:  newMatrix(2, 1),
		p:  identity(2),
		q:  q,
		r:  r,
		h:  identity(2),
		dt: dt,
	}
}

// Predict advances the state estimate using gyro rate alone.
func (e *Estimator) Predict(gyroX, gyroY float64) {
	rate := newMatrix(2, 1)
	rate.set(0, 0, gyroY*e.dt)
	rate.set(1, 0, gyroX*e.dt)
	e.x = e.x.add(rate)

	f := identity(2)
	ft := f.transpose()
	e.p = f.multiply(e.p).multiply(ft).add(e.q)
}

// Update corrects the state estimate with an accelerometer-derived
// pitch/roll measurement.
func (e *Estimator) Update(accelPitch, accelRoll float64) {
	z := newMatrix(2, 1)
	z.set(0, 0, accelPitch)
	z.set(1, 0, accelRoll)

	innovation := z.subtract(e.h.multiply(e.x))

	ht := e.h.transpose()
	s := e.h.multiply(e.p).multiply(ht).add(e.r)
	sInv := s.inverse2x2()

	k := e.p.multiply(ht).multiply(sInv)

	e.x = e.x.add(k.multiply(innovation))

	i := identity(2)
	e.p = i.subtract(k.multiply(e.h)).multiply(e.p)
}

// Attitude returns the current fused pitch/roll estimate.
func (e *Estimator) Attitude() Attitude {
	return Attitude{Pitch: e.x.at(0, 0), Roll: e.x.at(1, 0)}
}

// Fuse runs one predict/update cycle from a raw sample and returns the
// updated attitude estimate.
func (e *Estimator) Fuse(s Sample) Attitude {
	e.Predict(s.GyroX, s.GyroY)
	e.Update(pitchFromAccel(s), rollFromAccel(s))
	return e.Attitude()
}

func pitchFromAccel(s Sample) float64 {
	return math.Atan2(-s.AccelX, math.Sqrt(s.AccelY*s.AccelY+s.AccelZ*s.AccelZ))
}

func rollFromAccel(s Sample) float64 {
	return math.Atan2(s.AccelY, s.AccelZ)
}

// Sensor bundles the LSM6DS3TR driver and the unit conversion WingFC's
// main.go performs on its raw micro-g / micro-dps readings.
type Sensor struct {
	Device *lsm6ds3tr.Device
}

const (
	microGToMS2    = 9.80665 / 1e6
	microDPSToRadS = math.Pi / (180 * 1e6)
)

// Read converts one raw LSM6DS3TR reading into a Sample.
func (s *Sensor) Read() (Sample, error) {
	ax, ay, az, err := s.Device.ReadAcceleration()
	if err != nil {
		return Sample{}, err
	}
	gx, gy, _, err := s.Device.ReadRotation()
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		AccelX: float64(ax) * microGToMS2,
		AccelY: float64(ay) * microGToMS2,
		AccelZ: float64(az) * microGToMS2,
		GyroX:  float64(gx) * microDPSToRadS,
		GyroY:  float64(gy) * microDPSToRadS,
	}, nil
}
