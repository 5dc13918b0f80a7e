package main

// flightctl configuration — compile-time parameters and hardware
// mappings, following WingFC's config.go convention of collecting
// everything tunable into one file.

const (
	geometryKey = "hex_+"

	// Control loop rate. WingFC's elevon firmware ran at 100 Hz (10ms
	// ticker); a multirotor mixer runs faster, inside spec.md's
	// 250-1000 Hz range, since it's doing geometric projection instead
	// of a single elevon sum.
	controlLoopHz = 400

	idleSpeed    = 0.05
	thrustFactor = 0.3
	deltaOutMax  = 0.35 // per-tick slew limit, re-armed every tick

	rollScale  = 1.0
	pitchScale = 1.0
	yawScale   = 1.0
	xScale     = 1.0
	yScale     = 1.0
	zScale     = 1.0

	minPulseWidthUS = 1000
	maxPulseWidthUS = 2000

	escPWMFrequency = 400 // Hz

	minRxValue     = 988
	maxRxValue     = 2012
	neutralRxValue = 1500
	highRxValue    = 1800
	deadband       = 20

	failsafeTimeoutMS = 500
)
