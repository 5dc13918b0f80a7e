package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/lsm6ds3tr"

	"github.com/skywardfc/sixdof-mixer/internal/diag"
	"github.com/skywardfc/sixdof-mixer/internal/imu"
	"github.com/skywardfc/sixdof-mixer/internal/led"
	"github.com/skywardfc/sixdof-mixer/internal/mixer"
	"github.com/skywardfc/sixdof-mixer/internal/pid"
	"github.com/skywardfc/sixdof-mixer/internal/receiver"
)

type flightState int

const (
	initialization flightState = iota
	waiting
	calibrating
	flightMode
	failsafe
)

var (
	watchdog = machine.Watchdog

	decoder        = receiver.NewIBusDecoder()
	lastPacketAt   time.Time
	latestSticks   receiver.Command
	latestChannels [receiver.NumChannels]uint16

	lsm        *lsm6ds3tr.Device
	sensor     *imu.Sensor
	estimator  *imu.Estimator
	rollPID    *pid.Controller
	pitchPID   *pid.Controller
	yawPID     *pid.Controller
	attitude   imu.Attitude

	mix    *mixer.Multirotor6DoFMixer
	outBuf [mixer.MaxRotors]float32
	rotors []rotorPWM

	statusLED *led.State

	lastState flightState
)

// adapter bridges the per-tick stick + attitude-correction state into
// mixer.ControlReader, the only point where the allocator reaches back
// out into the rest of the firmware.
type adapter struct{}

func (adapter) ControlValue(group uint8, index mixer.ControlIndex) float32 {
	switch index {
	case mixer.IndexRoll:
		return float32(rollPID.Update(float64(latestSticks.Roll)-attitude.Roll, 1.0/float64(controlLoopHz)))
	case mixer.IndexPitch:
		return float32(pitchPID.Update(float64(latestSticks.Pitch)-attitude.Pitch, 1.0/float64(controlLoopHz)))
	case mixer.IndexYaw:
		return float32(yawPID.Update(float64(latestSticks.Yaw), 1.0/float64(controlLoopHz)))
	case mixer.IndexXThrust:
		return latestSticks.X
	case mixer.IndexYThrust:
		return latestSticks.Y
	case mixer.IndexZThrust:
		return latestSticks.Z
	default:
		return 0
	}
}

func main() {
	time.Sleep(2 * time.Second)
	println("flightctl - six-DoF multirotor firmware")

	ticker := time.NewTicker(time.Second / time.Duration(controlLoopHz))
	defer ticker.Stop()

	state := initialization

	for {
		<-ticker.C

		if state != initialization {
			pollReceiver()
		}

		if time.Since(lastPacketAt).Milliseconds() > failsafeTimeoutMS && state == flightMode {
			state = failsafe
		}

		switch state {
		case initialization:
			state = initHardware()

		case waiting:
			holdIdle()
			if lastState == failsafe {
				break
			}
			if armed() {
				lastState = state
				state = flightMode
			}

		case calibrating:
			holdIdle()
			state = waiting

		case flightMode:
			if !armed() {
				lastState = state
				state = waiting
				break
			}
			runControlTick()

		case failsafe:
			holdIdle()
			statusLED.SetPattern(led.FastFlash)
			if time.Since(lastPacketAt).Milliseconds() <= failsafeTimeoutMS {
				lastState = state
				state = waiting
			}
		}

		if state != lastState {
			lastState = state
		}
		statusLED.Update()
		watchdog.Update()
	}
}

func initHardware() flightState {
	uart := machine.DefaultUART
	uart.Configure(machine.UARTConfig{BaudRate: 115200})

	i2c := machine.I2C0
	i2c.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})

	lsm = lsm6ds3tr.New(i2c)
	if err := lsm.Configure(lsm6ds3tr.Configuration{
		AccelRange:      lsm6ds3tr.ACCEL_8G,
		AccelSampleRate: lsm6ds3tr.ACCEL_SR_104,
		GyroRange:       lsm6ds3tr.GYRO_1000DPS,
		GyroSampleRate:  lsm6ds3tr.GYRO_SR_104,
	}); err != nil {
		diag.Printf("could not configure IMU: %v", err)
	}
	sensor = &imu.Sensor{Device: lsm}

	dt := 1.0 / float64(controlLoopHz)
	estimator = imu.NewEstimator(dt)
	rollPID = pid.New(0.6, 0.05, 0.1)
	pitchPID = pid.New(0.6, 0.05, 0.1)
	yawPID = pid.New(0.4, 0.02, 0.0)

	var err error
	mix, err = mixer.New(geometryKey, mixer.AxisScales{
		Roll: rollScale, Pitch: pitchScale, Yaw: yawScale, X: xScale, Y: yScale, Z: zScale,
	}, idleSpeed, adapter{})
	if err != nil {
		for {
			diag.Printf("fatal: unknown geometry %q", geometryKey)
			time.Sleep(time.Second)
		}
	}
	mix.SetThrustFactor(thrustFactor)

	rotors = make([]rotorPWM, mix.Count())
	configureRotorPWM()

	statusLED = led.New(machine.LED)
	statusLED.SetPattern(led.SlowFlash)

	watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 500})
	watchdog.Start()

	holdIdle()
	return waiting
}

func configureRotorPWM() {
	pwmConfig := machine.PWMConfig{Period: machine.GHz * 1 / escPWMFrequency}
	periodNs := uint64(1e9 / escPWMFrequency)

	pwms := []*machine.PWM{machine.PWM0, machine.PWM1, machine.PWM2, machine.PWM3}
	for i := range rotors {
		p := pwms[i%len(pwms)]
		if err := p.Configure(pwmConfig); err != nil {
			diag.Printf("could not configure PWM for rotor %d: %v", i, err)
			continue
		}
		ch, err := p.Channel(machine.Pin(i))
		if err != nil {
			diag.Printf("could not get PWM channel for rotor %d: %v", i, err)
			continue
		}
		rotors[i] = rotorPWM{pwm: p, channel: ch, periodNs: periodNs}
	}
}

func pollReceiver() {
	uart := machine.DefaultUART
	for uart.Buffered() > 0 {
		b, err := uart.ReadByte()
		if err != nil {
			break
		}
		if ok, channels := decoder.Feed(b); ok {
			latestChannels = channels
			latestSticks = receiver.NormalizeChannels(channels, minRxValue, maxRxValue)
			lastPacketAt = time.Now()
		}
	}
}

// armed mirrors WingFC's ch5 > HIGH_RX_VALUE arm gate: the dedicated
// arm channel must be pulled high, independent of stick position.
func armed() bool {
	return latestChannels[receiver.ChannelArm] > highRxValue
}

func holdIdle() {
	for _, r := range rotors {
		r.setPulse(minPulseWidthUS)
	}
}

func runControlTick() {
	if sample, err := sensor.Read(); err == nil {
		attitude = estimator.Fuse(sample)
	}

	mix.SetDeltaOutMax(deltaOutMax)
	n := mix.Mix(outBuf[:])
	for i := 0; i < n; i++ {
		rotors[i].setPulse(outputToPulse(outBuf[i]))
	}

	if mix.SaturationStatus()&1 == 0 {
		statusLED.SetPattern(led.FastFlash)
	} else {
		statusLED.SetPattern(led.On)
	}
}
