package rover

import (
	"flag"
	"fmt"
	"time"

	"github.com/antongulenko/golib"
	"github.com/antongulenko/rover/bus"
	"github.com/antongulenko/rover/dcmotor"
	"github.com/antongulenko/rover/pca9685"
	log "github.com/sirupsen/logrus"
)

// Vehicle is the common surface of both drivetrains: one (steering, throttle)
// command per control loop tick, neutral on shutdown.
type Vehicle interface {
	Run(steering, throttle float64) error
	Shutdown() error
}

var DefaultRover = Rover{
	PwmAddr: pca9685.ADDRESS,
	PwmFreq: 60,
	Steering: SteeringConfig{
		Channel:    0,
		LeftPulse:  290,
		RightPulse: 490,
	},
	ThrottleChannel: 1,
	Throttle: ThrottleConfig{
		MaxPulse:  300,
		MinPulse:  490,
		ZeroPulse: 350,
		Settle:    time.Second,
	},
	LeftMotorAddr:  dcmotor.DefaultAddress,
	RightMotorAddr: dcmotor.DefaultAddress + 1,
	MotorFreq:      dcmotor.PWM_3921Hz,
}

type SteeringConfig struct {
	Channel    byte
	LeftPulse  int
	RightPulse int
}

// Rover aggregates the construction-time configuration of one vehicle and
// owns the bus resource. One control loop owns each Rover, there is no
// internal locking.
type Rover struct {
	BusName      string
	Dummy        bool
	Differential bool

	// Servo drivetrain (PCA9685 board)
	PwmAddr         byte
	PwmFreq         float64
	Steering        SteeringConfig
	ThrottleChannel byte
	Throttle        ThrottleConfig

	// Differential drivetrain (one Grove board per side)
	LeftMotorAddr  byte
	RightMotorAddr byte
	MotorFreq      byte

	bus      bus.Bus
	steering *PWMSteering
	throttle *PWMThrottle
	drive    *DifferentialDrive
	vehicle  Vehicle
}

func (r *Rover) RegisterFlags() {
	flag.StringVar(&r.BusName, "bus", r.BusName, "I2C bus to open (empty for the first available bus)")
	flag.BoolVar(&r.Dummy, "dummy", r.Dummy, "Disable real I2C peripherals, only log commands")
	flag.BoolVar(&r.Differential, "differential", r.Differential, "Drive a differential chassis instead of a steering servo + ESC")
	flag.Float64Var(&r.PwmFreq, "pwm-freq", r.PwmFreq, "PWM frequency (Hz) of the servo/ESC board")
	flag.IntVar(&r.Steering.LeftPulse, "steering-left", r.Steering.LeftPulse, "Steering pulse width for full left")
	flag.IntVar(&r.Steering.RightPulse, "steering-right", r.Steering.RightPulse, "Steering pulse width for full right")
	flag.IntVar(&r.Throttle.MaxPulse, "throttle-max", r.Throttle.MaxPulse, "Throttle pulse width for full forward")
	flag.IntVar(&r.Throttle.MinPulse, "throttle-min", r.Throttle.MinPulse, "Throttle pulse width for full reverse")
	flag.IntVar(&r.Throttle.ZeroPulse, "throttle-zero", r.Throttle.ZeroPulse, "Throttle pulse width for standstill (ESC arming pulse)")
	flag.DurationVar(&r.Throttle.Settle, "esc-settle", r.Throttle.Settle, "Time to wait after the ESC arming pulse")
}

// Setup opens the bus and constructs the configured drivetrain. The ESC
// arming pulse and settle wait happen here. Failures are fatal, a partially
// initialized Rover must be discarded.
func (r *Rover) Setup() error {
	if r.Dummy {
		log.Println("Dummy rover: not opening I2C peripherals")
		r.bus = new(bus.Dummy)
	} else {
		b, err := bus.Open(r.BusName)
		if err != nil {
			return err
		}
		r.bus = b
	}
	var err error
	if r.Differential {
		err = r.setupDifferential()
	} else {
		err = r.setupServo()
	}
	if err != nil {
		golib.Printerr(r.bus.Close())
		return err
	}
	log.Println("Successfully initialized I2C peripherals")
	return nil
}

func (r *Rover) setupServo() error {
	driver := &pca9685.Driver{Bus: r.bus, Addr: r.PwmAddr, Freq: r.PwmFreq}
	if err := driver.Init(); err != nil {
		return err
	}
	steering, err := NewPWMSteering(driver, r.Steering.Channel, r.Steering.LeftPulse, r.Steering.RightPulse)
	if err != nil {
		return err
	}
	throttle, err := NewPWMThrottle(driver, r.ThrottleChannel, r.Throttle)
	if err != nil {
		return err
	}
	r.steering = steering
	r.throttle = throttle
	r.vehicle = &ServoVehicle{Steering: steering, Throttle: throttle}
	return nil
}

func (r *Rover) setupDifferential() error {
	left := &dcmotor.Driver{Bus: r.bus, Addr: r.LeftMotorAddr}
	right := &dcmotor.Driver{Bus: r.bus, Addr: r.RightMotorAddr}
	if err := left.Init(r.MotorFreq); err != nil {
		return err
	}
	if err := right.Init(r.MotorFreq); err != nil {
		return err
	}
	r.drive = NewDifferentialDrive(&groveBank{boards: []*dcmotor.Driver{left, right}})
	r.vehicle = r.drive
	return nil
}

// Vehicle returns the configured drivetrain. Only valid after Setup.
func (r *Rover) Vehicle() Vehicle {
	return r.vehicle
}

func (r *Rover) SteeringActuator() *PWMSteering {
	return r.steering
}

func (r *Rover) ThrottleActuator() *PWMThrottle {
	return r.throttle
}

// Cleanup returns all actuators to neutral and releases the bus. Called
// explicitly by the owning control loop on teardown.
func (r *Rover) Cleanup() {
	if r.vehicle != nil {
		golib.Printerr(r.vehicle.Shutdown())
	}
	if r.bus != nil {
		golib.Printerr(r.bus.Close())
	}
}

// ServoVehicle combines the two pulse actuators of an RC car into one Vehicle.
type ServoVehicle struct {
	Steering *PWMSteering
	Throttle *PWMThrottle
}

func (v *ServoVehicle) Run(steering, throttle float64) error {
	if err := v.Steering.Run(steering); err != nil {
		return err
	}
	return v.Throttle.Run(throttle)
}

func (v *ServoVehicle) Shutdown() error {
	if err := v.Steering.Shutdown(); err != nil {
		return err
	}
	return v.Throttle.Shutdown()
}

// groveBank maps the flat motor indices of the polarity table onto the two
// Grove boards: motors 0,1 on the left board, 2,3 on the right board.
type groveBank struct {
	boards []*dcmotor.Driver
}

func (b *groveBank) RunMotor(motor int, percent float64, clockwise bool) error {
	board := motor / 2
	if motor < 0 || board >= len(b.boards) {
		return fmt.Errorf("Illegal motor index %v (have %v boards with 2 motors each)", motor, len(b.boards))
	}
	output := dcmotor.MotorA
	if motor%2 == 1 {
		output = dcmotor.MotorB
	}
	return b.boards[board].Run(output, percent, clockwise)
}
