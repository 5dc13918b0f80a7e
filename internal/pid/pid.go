// Package pid implements a simple proportional-integral-derivative
// controller, one instance per controlled axis.
package pid

// Controller holds the gains and running state for one axis. WingFC
// shared a single *PIDController across pitch and roll, which mixes
// their integral/derivative state together — a latent bug documented
// in DESIGN.md. This package is built for one Controller per axis.
type Controller struct {
	Kp, Ki, Kd float64

	prevError float64
	integral  float64
}

// New creates a Controller with the given gains.
func New(kp, ki, kd float64) *Controller {
	return &Controller{Kp: kp, Ki: ki, Kd: kd}
}

// Update computes the control output for one tick given the current
// error and the tick's time step in seconds.
func (c *Controller) Update(currentError, dt float64) float64 {
	proportional := c.Kp * currentError

	c.integral += currentError * dt
	integral := c.Ki * c.integral

	var derivative float64
	if dt > 0 {
		derivative = c.Kd * (currentError - c.prevError) / dt
	}
	c.prevError = currentError

	return proportional + integral + derivative
}

// Reset clears integral and derivative history, e.g. on disarm.
func (c *Controller) Reset() {
	c.prevError = 0
	c.integral = 0
}
