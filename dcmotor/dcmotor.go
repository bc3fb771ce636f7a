// Driver for the Grove I2C motor board (http://wiki.seeed.cc/Grove-I2C_Motor_Driver_V1.3/).
// Every board carries two DC motor outputs and accepts 3-byte commands.
package dcmotor

import (
	"fmt"
	"math"

	"github.com/antongulenko/rover/bus"
	log "github.com/sirupsen/logrus"
)

type Motor int

const (
	MotorA = Motor(iota)
	MotorB
)

const (
	// Every I2C command contains 3 bytes
	CommandLength = 3

	// Configuration commands
	Command_SetPWMFrequency = 0x84

	// DC motor commands
	Command_SetMotorSpeed = 0x82 // 2 parameters: 2 byte, 0..255 speed for motor A and B
	Command_SetMotorDir   = 0xaa // 1 parameter: 0x0000bbaa, directions for both motors
	Command_SetMotorA     = 0xa1 // 2 parameters: Dir* value + speed for motor A
	Command_SetMotorB     = 0xa5 // 2 parameters: Dir* value + speed for motor B

	// Parameter for Command_SetPWMFrequency
	// PWM signal Frequency (cycle length = 510, system clock = 16MHz)
	PWM_31372Hz = byte(0x01)
	PWM_3921Hz  = byte(0x02)
	PWM_490Hz   = byte(0x03) // Default
	PWM_122Hz   = byte(0x04)
	PWM_30Hz    = byte(0x05)

	// Direction parameters
	DirClockwise     = byte(0x02)
	DirAntiClockwise = byte(0x01)
	DirStop          = byte(0)

	// No-op parameter filler (if less than 3 bytes are required)
	emptyParameter = 0x01

	DefaultAddress = byte(0x0f)
	maxSpeed       = 255
)

// Driver controls one Grove motor board. Commands are assumed to either
// succeed or fail fatally: errors are returned as-is, there is no retry.
type Driver struct {
	Bus  bus.Bus
	Addr byte
}

// Init programs the PWM frequency of the board. Invalid frequencies are
// coerced to the board default.
func (d *Driver) Init(frequency byte) error {
	log.Printf("Initializing motor board at %#02x...", d.Addr)
	switch frequency {
	case PWM_31372Hz, PWM_3921Hz, PWM_490Hz, PWM_122Hz, PWM_30Hz:
	default:
		log.Warnf("Invalid PWM motor frequency %#02x, using board default 490Hz", frequency)
		frequency = PWM_490Hz
	}
	return d.Bus.I2cWrite(d.Addr, Command_SetPWMFrequency, frequency, emptyParameter)
}

// Run drives one motor output at the given magnitude (percent, 0..100) in the
// given rotation sense.
func (d *Driver) Run(motor Motor, percent float64, clockwise bool) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("Illegal motor speed %v (must be 0..100)", percent)
	}
	speed := byte(math.Floor(percent/100*maxSpeed + .5))
	dir := DirAntiClockwise
	if clockwise {
		dir = DirClockwise
	}
	if speed == 0 {
		dir = DirStop
	}
	command := byte(Command_SetMotorA)
	if motor == MotorB {
		command = Command_SetMotorB
	}
	return d.Bus.I2cWrite(d.Addr, command, dir&0x3, speed)
}

// Stop halts both motor outputs.
func (d *Driver) Stop() error {
	if err := d.Bus.I2cWrite(d.Addr, Command_SetMotorSpeed, 0, 0); err != nil {
		return err
	}
	return d.Bus.I2cWrite(d.Addr, Command_SetMotorDir, DirStop, emptyParameter)
}
