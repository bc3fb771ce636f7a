package rover

import "math"

// MotorRunner is the motor driver capability used by the differential drive:
// one unsigned magnitude (percent) plus a rotation sense per physical motor.
// Commands either succeed or fail fatally, there is no retry.
type MotorRunner interface {
	RunMotor(motor int, percent float64, clockwise bool) error
}

// DriveMotor names one physical motor and its wiring polarity. Inverted
// motors run counter-clockwise when their side drives forward.
type DriveMotor struct {
	Motor    int
	Inverted bool
}

// DefaultChassis is the common 4-motor wiring: two motors per side, the
// second right motor mounted mirrored and therefore inverted.
var DefaultChassis = Chassis{
	Left:  []DriveMotor{{Motor: 0}, {Motor: 1}},
	Right: []DriveMotor{{Motor: 2}, {Motor: 3, Inverted: true}},
}

type Chassis struct {
	Left  []DriveMotor
	Right []DriveMotor
}

// DifferentialDrive converts one (steering, throttle) pair into independent
// left/right motor speeds for a skid-steer chassis. Every Run call issues
// hardware commands to all motors: redundant calls are safe, but not skipped.
type DifferentialDrive struct {
	Driver  MotorRunner
	Chassis Chassis
}

func NewDifferentialDrive(driver MotorRunner) *DifferentialDrive {
	return &DifferentialDrive{
		Driver:  driver,
		Chassis: DefaultChassis,
	}
}

// Run blends the steering and throttle commands into per-side speeds and
// dispatches them. Validation errors and motor driver errors are returned,
// the latter abort the remaining motors of the call.
func (d *DifferentialDrive) Run(steering, throttle float64) error {
	if err := validateCommand("throttle", throttle); err != nil {
		return err
	}
	if err := validateCommand("steering", steering); err != nil {
		return err
	}
	left, right := quadrantSpeeds(steering, throttle)
	if err := d.runSide(d.Chassis.Left, left); err != nil {
		return err
	}
	return d.runSide(d.Chassis.Right, right)
}

// Shutdown stops all motors.
func (d *DifferentialDrive) Shutdown() error {
	return d.Run(0, 0)
}

func (d *DifferentialDrive) runSide(motors []DriveMotor, speed float64) error {
	speed = clamp(speed)
	percent := MapRange(math.Abs(speed), 0, 1, 0, 100)
	clockwise := speed > 0
	for _, m := range motors {
		if err := d.Driver.RunMotor(m.Motor, percent, clockwise != m.Inverted); err != nil {
			return err
		}
	}
	return nil
}

// quadrantSpeeds reduces the inner side's speed by the steering magnitude
// instead of computing true kinematic wheel speeds. For valid inputs each
// result stays within [-1; 1], every formula moves one side towards zero.
func quadrantSpeeds(steering, throttle float64) (left, right float64) {
	switch {
	case steering == 0:
		left, right = throttle, throttle
	case steering > 0 && throttle > 0: // Quadrant 1
		left, right = throttle, throttle-steering
	case steering < 0 && throttle > 0: // Quadrant 2
		left, right = throttle+steering, throttle
	case steering > 0 && throttle < 0: // Quadrant 4
		left, right = throttle, throttle+steering
	case steering < 0 && throttle < 0: // Quadrant 3
		left, right = throttle-steering, throttle
	}
	return
}

// clamp keeps a blended speed inside [-1; 1] so a changed blend can never
// emit more than 100% magnitude.
func clamp(speed float64) float64 {
	if speed > 1 {
		return 1
	}
	if speed < -1 {
		return -1
	}
	return speed
}
